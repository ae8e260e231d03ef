package natswire

import "strconv"

// Format renders m as the exact byte sequence to transmit: canonical
// uppercase keyword, single-space separators, absent optional fields omitted
// entirely, size fields computed from the actual payload length, and CRLF
// after the header line and after any payload block.
//
// Format is the inverse of Parse for every value a Parser can produce, and
// cannot fail for any constructible Message.
func Format(m Message) []byte { return m.appendWire(nil) }

// AppendFormat appends the wire form of m to dst and returns the extended
// buffer, for callers that batch messages into one write buffer.
func AppendFormat(dst []byte, m Message) []byte { return m.appendWire(dst) }

func appendToken(dst []byte, tok string) []byte {
	dst = append(dst, ' ')
	return append(dst, tok...)
}

func appendSize(dst []byte, n int) []byte {
	dst = append(dst, ' ')
	return strconv.AppendInt(dst, int64(n), 10)
}

func appendPayload(dst, payload []byte) []byte {
	dst = append(dst, crlf...)
	dst = append(dst, payload...)
	return append(dst, crlf...)
}

func (m *Pub) appendWire(dst []byte) []byte {
	dst = append(dst, opPub...)
	dst = appendToken(dst, m.Subject)
	if m.ReplyTo != nil {
		dst = appendToken(dst, *m.ReplyTo)
	}
	dst = appendSize(dst, len(m.Payload))
	return appendPayload(dst, m.Payload)
}

func (m *Sub) appendWire(dst []byte) []byte {
	dst = append(dst, opSub...)
	dst = appendToken(dst, m.Subject)
	if m.QueueGroup != nil {
		dst = appendToken(dst, *m.QueueGroup)
	}
	dst = appendToken(dst, m.SID)
	return append(dst, crlf...)
}

func (m *Unsub) appendWire(dst []byte) []byte {
	dst = append(dst, opUnsub...)
	dst = appendToken(dst, m.SID)
	if m.MaxMessages != nil {
		dst = appendSize(dst, *m.MaxMessages)
	}
	return append(dst, crlf...)
}

func (m *Msg) appendWire(dst []byte) []byte {
	dst = append(dst, opMsg...)
	dst = appendToken(dst, m.Subject)
	dst = appendToken(dst, m.SID)
	if m.ReplyTo != nil {
		dst = appendToken(dst, *m.ReplyTo)
	}
	dst = appendSize(dst, len(m.Payload))
	return appendPayload(dst, m.Payload)
}

func (m *HMsg) appendWire(dst []byte) []byte {
	// Both size fields derive from the encoded header and the actual body,
	// never from caller-supplied numbers.
	hdr := m.Header.appendEncoded(nil)
	dst = append(dst, opHMsg...)
	dst = appendToken(dst, m.Subject)
	dst = appendToken(dst, m.SID)
	if m.ReplyTo != nil {
		dst = appendToken(dst, *m.ReplyTo)
	}
	dst = appendSize(dst, len(hdr))
	dst = appendSize(dst, len(hdr)+len(m.Payload))
	dst = append(dst, crlf...)
	dst = append(dst, hdr...)
	dst = append(dst, m.Payload...)
	return append(dst, crlf...)
}

func (m *Info) appendWire(dst []byte) []byte {
	// Marshalling a struct of scalar fields cannot fail.
	doc, _ := json.Marshal(m)
	dst = append(dst, opInfo...)
	dst = append(dst, ' ')
	dst = append(dst, doc...)
	return append(dst, crlf...)
}

func (m *Connect) appendWire(dst []byte) []byte {
	doc, _ := json.Marshal(m)
	dst = append(dst, opConnect...)
	dst = append(dst, ' ')
	dst = append(dst, doc...)
	return append(dst, crlf...)
}

func (m *Ping) appendWire(dst []byte) []byte {
	dst = append(dst, opPing...)
	return append(dst, crlf...)
}

func (m *Pong) appendWire(dst []byte) []byte {
	dst = append(dst, opPong...)
	return append(dst, crlf...)
}

func (m *OK) appendWire(dst []byte) []byte {
	dst = append(dst, opOK...)
	return append(dst, crlf...)
}

func (m *Err) appendWire(dst []byte) []byte {
	dst = append(dst, opErr...)
	dst = append(dst, " '"...)
	dst = append(dst, m.Message...)
	dst = append(dst, '\'')
	return append(dst, crlf...)
}
