package natswire

import (
	"bytes"
	"fmt"
)

// Operation keywords as they appear on the wire. Matching is
// case-insensitive on input; output always uses the canonical form.
const (
	opPub     = "PUB"
	opSub     = "SUB"
	opUnsub   = "UNSUB"
	opMsg     = "MSG"
	opHMsg    = "HMSG"
	opInfo    = "INFO"
	opConnect = "CONNECT"
	opPing    = "PING"
	opPong    = "PONG"
	opOK      = "+OK"
	opErr     = "-ERR"
)

// Kind identifies the wire operation a Message carries.
type Kind uint8

// Message kinds, one per protocol operation.
const (
	KindPub Kind = iota + 1
	KindSub
	KindUnsub
	KindMsg
	KindHMsg
	KindInfo
	KindConnect
	KindPing
	KindPong
	KindOK
	KindErr
)

// String returns the canonical wire keyword for the kind.
func (k Kind) String() string {
	switch k {
	case KindPub:
		return opPub
	case KindSub:
		return opSub
	case KindUnsub:
		return opUnsub
	case KindMsg:
		return opMsg
	case KindHMsg:
		return opHMsg
	case KindInfo:
		return opInfo
	case KindConnect:
		return opConnect
	case KindPing:
		return opPing
	case KindPong:
		return opPong
	case KindOK:
		return opOK
	case KindErr:
		return opErr
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// Message is one protocol message. The set of implementations is closed:
// Pub, Sub, Unsub, Msg, HMsg, Info, Connect, Ping, Pong, OK and Err.
// A Message is immutable once constructed; it is produced either by a Parser
// or directly by calling code, handed to Format, and discarded.
type Message interface {
	// Kind reports which operation this message carries.
	Kind() Kind
	// Equal reports whether both messages have the same kind and all fields
	// equal, payload bytes included.
	Equal(Message) bool

	// appendWire renders the exact wire form. Unexported so the variant set
	// stays closed and every formatter branch is checked at compile time.
	appendWire(dst []byte) []byte
}

// String returns a pointer to s, for filling optional fields.
// An absent optional field and an empty one are distinct on the wire, so
// optional fields are pointers rather than sentinel values.
func String(s string) *string { return &s }

// Int returns a pointer to n, for filling optional fields.
func Int(n int) *int { return &n }

// Pub is a client publish request:
//
//	PUB <subject> [reply-to] <#bytes>\r\n[payload]\r\n
type Pub struct {
	Subject string
	ReplyTo *string
	Payload []byte
}

// Kind returns KindPub.
func (m *Pub) Kind() Kind { return KindPub }

// PayloadSize returns the byte length the size field carries on the wire.
func (m *Pub) PayloadSize() int { return len(m.Payload) }

// Equal reports whether o is a Pub with the same fields.
func (m *Pub) Equal(o Message) bool {
	p, ok := o.(*Pub)
	return ok && m.Subject == p.Subject &&
		eqString(m.ReplyTo, p.ReplyTo) &&
		bytes.Equal(m.Payload, p.Payload)
}

// Sub is a client subscription request:
//
//	SUB <subject> [queue group] <sid>\r\n
type Sub struct {
	Subject    string
	QueueGroup *string
	SID        string
}

// Kind returns KindSub.
func (m *Sub) Kind() Kind { return KindSub }

// Equal reports whether o is a Sub with the same fields.
func (m *Sub) Equal(o Message) bool {
	s, ok := o.(*Sub)
	return ok && m.Subject == s.Subject &&
		eqString(m.QueueGroup, s.QueueGroup) &&
		m.SID == s.SID
}

// Unsub ends a subscription, optionally after MaxMessages more deliveries:
//
//	UNSUB <sid> [max_msgs]\r\n
type Unsub struct {
	SID         string
	MaxMessages *int
}

// Kind returns KindUnsub.
func (m *Unsub) Kind() Kind { return KindUnsub }

// Equal reports whether o is an Unsub with the same fields.
func (m *Unsub) Equal(o Message) bool {
	u, ok := o.(*Unsub)
	return ok && m.SID == u.SID && eqInt(m.MaxMessages, u.MaxMessages)
}

// Msg is a server-to-client message delivery:
//
//	MSG <subject> <sid> [reply-to] <#bytes>\r\n[payload]\r\n
type Msg struct {
	Subject string
	SID     string
	ReplyTo *string
	Payload []byte
}

// Kind returns KindMsg.
func (m *Msg) Kind() Kind { return KindMsg }

// PayloadSize returns the byte length the size field carries on the wire.
func (m *Msg) PayloadSize() int { return len(m.Payload) }

// Equal reports whether o is a Msg with the same fields.
func (m *Msg) Equal(o Message) bool {
	d, ok := o.(*Msg)
	return ok && m.Subject == d.Subject && m.SID == d.SID &&
		eqString(m.ReplyTo, d.ReplyTo) &&
		bytes.Equal(m.Payload, d.Payload)
}

// HMsg is a message delivery carrying headers, used when the server
// advertises header support:
//
//	HMSG <subject> <sid> [reply-to] <#header bytes> <#total bytes>\r\n[headers][payload]\r\n
type HMsg struct {
	Subject string
	SID     string
	ReplyTo *string
	Header  Header
	Payload []byte
}

// Kind returns KindHMsg.
func (m *HMsg) Kind() Kind { return KindHMsg }

// PayloadSize returns the body byte length, excluding the header block.
func (m *HMsg) PayloadSize() int { return len(m.Payload) }

// Equal reports whether o is an HMsg with the same fields.
func (m *HMsg) Equal(o Message) bool {
	h, ok := o.(*HMsg)
	return ok && m.Subject == h.Subject && m.SID == h.SID &&
		eqString(m.ReplyTo, h.ReplyTo) &&
		m.Header.Equal(h.Header) &&
		bytes.Equal(m.Payload, h.Payload)
}

// Ping is a keep-alive request. It carries no fields.
type Ping struct{}

// Kind returns KindPing.
func (m *Ping) Kind() Kind { return KindPing }

// Equal reports whether o is also a Ping.
func (m *Ping) Equal(o Message) bool { _, ok := o.(*Ping); return ok }

// Pong is a keep-alive response. It carries no fields.
type Pong struct{}

// Kind returns KindPong.
func (m *Pong) Kind() Kind { return KindPong }

// Equal reports whether o is also a Pong.
func (m *Pong) Equal(o Message) bool { _, ok := o.(*Pong); return ok }

// OK is the +OK acknowledgment the server sends in verbose mode.
type OK struct{}

// Kind returns KindOK.
func (m *OK) Kind() Kind { return KindOK }

// Equal reports whether o is also an OK.
func (m *OK) Equal(o Message) bool { _, ok := o.(*OK); return ok }

// Err is a -ERR line carrying a free-text error description.
type Err struct {
	Message string
}

// Kind returns KindErr.
func (m *Err) Kind() Kind { return KindErr }

// Equal reports whether o is an Err with the same text.
func (m *Err) Equal(o Message) bool {
	e, ok := o.(*Err)
	return ok && m.Message == e.Message
}

func eqString(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func eqInt(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Compile-time variant set checks.
var (
	_ Message = (*Pub)(nil)
	_ Message = (*Sub)(nil)
	_ Message = (*Unsub)(nil)
	_ Message = (*Msg)(nil)
	_ Message = (*HMsg)(nil)
	_ Message = (*Info)(nil)
	_ Message = (*Connect)(nil)
	_ Message = (*Ping)(nil)
	_ Message = (*Pong)(nil)
	_ Message = (*OK)(nil)
	_ Message = (*Err)(nil)
)
