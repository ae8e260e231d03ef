package natswire

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// crlf terminates every protocol line and payload block.
var crlf = []byte{'\r', '\n'}

// Parser converts raw wire bytes into Messages.
//
// A Parser holds only configuration: it keeps no state between calls and is
// safe for concurrent use. The zero value is a lenient parser with no payload
// limit.
type Parser struct {
	pedantic   bool
	maxPayload int64
}

// New returns a Parser configured by the given options.
func New(opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var defaultParser = &Parser{}

// Parse parses a complete protocol message using a default lenient Parser.
// See Parser.Parse.
func Parse(data []byte) (Message, error) { return defaultParser.Parse(data) }

// Decode parses one message from the front of a stream using a default
// lenient Parser. See Parser.Decode.
func Decode(data []byte) (Message, int, error) { return defaultParser.Decode(data) }

// Parse parses data as exactly one protocol message: the header line, with or
// without its CRLF terminator, followed by the declared payload block when
// the operation carries one.
//
// A payload shorter than declared yields ErrTruncatedPayload; bytes beyond
// the end of the message yield ErrPayloadLengthMismatch for payload-bearing
// operations and ErrUnexpectedTrailingData otherwise.
func (p *Parser) Parse(data []byte) (Message, error) {
	msg, n, err := p.parse(data, true)
	if err != nil {
		return nil, err
	}
	if n < len(data) {
		switch msg.Kind() {
		case KindPub, KindMsg, KindHMsg:
			return nil, fmt.Errorf("%w: %d byte(s) past the declared payload", ErrPayloadLengthMismatch, len(data)-n)
		default:
			return nil, fmt.Errorf("%w: %d byte(s) after the message", ErrUnexpectedTrailingData, len(data)-n)
		}
	}
	return msg, nil
}

// Decode parses one message from the front of data and returns the number of
// bytes it consumed, so a caller can walk a buffered stream message by
// message. When data ends mid-message (header line not yet terminated, or
// payload bytes still outstanding) Decode returns ErrTruncatedPayload; the
// caller should buffer more input and try again.
func (p *Parser) Decode(data []byte) (Message, int, error) {
	return p.parse(data, false)
}

// parse does the work for both entry points. In complete mode an unterminated
// header line is accepted as the whole input; in stream mode it means more
// bytes are needed.
func (p *Parser) parse(data []byte, complete bool) (Message, int, error) {
	var header, rest []byte
	var n int
	if i := bytes.Index(data, crlf); i >= 0 {
		header = data[:i]
		rest = data[i+2:]
		n = i + 2
	} else {
		if !complete {
			return nil, 0, fmt.Errorf("%w: header line not terminated", ErrTruncatedPayload)
		}
		header = data
		n = len(data)
	}

	kw, args := splitKeyword(header)
	if len(kw) == 0 {
		return nil, 0, fmt.Errorf("%w: empty input", ErrUnknownOperation)
	}

	switch strings.ToUpper(string(kw)) {
	case opPub:
		subject, replyTo, size, err := p.parsePubArgs(args)
		if err != nil {
			return nil, 0, err
		}
		payload, used, err := framePayload(rest, size)
		if err != nil {
			return nil, 0, err
		}
		return &Pub{Subject: subject, ReplyTo: replyTo, Payload: payload}, n + used, nil

	case opSub:
		msg, err := parseSubArgs(args)
		if err != nil {
			return nil, 0, err
		}
		return msg, n, nil

	case opUnsub:
		msg, err := parseUnsubArgs(args)
		if err != nil {
			return nil, 0, err
		}
		return msg, n, nil

	case opMsg:
		subject, sid, replyTo, size, err := p.parseMsgArgs(args)
		if err != nil {
			return nil, 0, err
		}
		payload, used, err := framePayload(rest, size)
		if err != nil {
			return nil, 0, err
		}
		return &Msg{Subject: subject, SID: sid, ReplyTo: replyTo, Payload: payload}, n + used, nil

	case opHMsg:
		subject, sid, replyTo, hdrSize, totalSize, err := p.parseHMsgArgs(args)
		if err != nil {
			return nil, 0, err
		}
		block, used, err := framePayload(rest, totalSize)
		if err != nil {
			return nil, 0, err
		}
		hdr, err := parseHeaderBlock(block[:hdrSize])
		if err != nil {
			return nil, 0, err
		}
		return &HMsg{Subject: subject, SID: sid, ReplyTo: replyTo, Header: hdr, Payload: block[hdrSize:]}, n + used, nil

	case opInfo:
		info := new(Info)
		if err := unmarshalDoc(args, info); err != nil {
			return nil, 0, err
		}
		return info, n, nil

	case opConnect:
		conn := new(Connect)
		if err := unmarshalDoc(args, conn); err != nil {
			return nil, 0, err
		}
		return conn, n, nil

	case opPing:
		if err := p.bareArgs(opPing, args); err != nil {
			return nil, 0, err
		}
		return &Ping{}, n, nil

	case opPong:
		if err := p.bareArgs(opPong, args); err != nil {
			return nil, 0, err
		}
		return &Pong{}, n, nil

	case opOK:
		if err := p.bareArgs(opOK, args); err != nil {
			return nil, 0, err
		}
		return &OK{}, n, nil

	case opErr:
		return &Err{Message: unquoteErr(args)}, n, nil

	default:
		return nil, 0, fmt.Errorf("%w: %q", ErrUnknownOperation, string(kw))
	}
}

// splitKeyword splits the header line into the operation keyword and the raw
// remainder, with separators trimmed on both sides of the split. The
// remainder stays unsplit because INFO, CONNECT and -ERR carry free text that
// may itself contain spaces.
func splitKeyword(header []byte) (kw, args []byte) {
	header = bytes.TrimRight(header, " \t")
	i := bytes.IndexAny(header, " \t")
	if i < 0 {
		return header, nil
	}
	return header[:i], bytes.TrimLeft(header[i:], " \t")
}

// splitFields tokenizes on runs of the separator characters, so irregular
// spacing between fields is accepted.
func splitFields(args []byte) [][]byte {
	return bytes.FieldsFunc(args, func(r rune) bool { return r == ' ' || r == '\t' })
}

func trimSeparators(b []byte) []byte {
	return bytes.Trim(b, " \t")
}

// parsePubArgs extracts "<subject> [reply-to] <#bytes>". Two fields mean no
// reply subject, three mean one; the count is the only disambiguator, so
// keep this logic in one place.
func (p *Parser) parsePubArgs(args []byte) (subject string, replyTo *string, size int64, err error) {
	fields := splitFields(args)
	switch len(fields) {
	case 2:
	case 3:
		replyTo = String(string(fields[1]))
	default:
		return "", nil, 0, fmt.Errorf("%w: PUB takes 2 or 3 fields, got %d", ErrMalformedFieldCount, len(fields))
	}
	size, err = p.parseSize(fields[len(fields)-1])
	if err != nil {
		return "", nil, 0, err
	}
	return string(fields[0]), replyTo, size, nil
}

// parseMsgArgs extracts "<subject> <sid> [reply-to] <#bytes>".
func (p *Parser) parseMsgArgs(args []byte) (subject, sid string, replyTo *string, size int64, err error) {
	fields := splitFields(args)
	switch len(fields) {
	case 3:
	case 4:
		replyTo = String(string(fields[2]))
	default:
		return "", "", nil, 0, fmt.Errorf("%w: MSG takes 3 or 4 fields, got %d", ErrMalformedFieldCount, len(fields))
	}
	size, err = p.parseSize(fields[len(fields)-1])
	if err != nil {
		return "", "", nil, 0, err
	}
	return string(fields[0]), string(fields[1]), replyTo, size, nil
}

// parseHMsgArgs extracts "<subject> <sid> [reply-to] <#header bytes> <#total bytes>".
func (p *Parser) parseHMsgArgs(args []byte) (subject, sid string, replyTo *string, hdrSize, totalSize int64, err error) {
	fields := splitFields(args)
	switch len(fields) {
	case 4:
	case 5:
		replyTo = String(string(fields[2]))
	default:
		return "", "", nil, 0, 0, fmt.Errorf("%w: HMSG takes 4 or 5 fields, got %d", ErrMalformedFieldCount, len(fields))
	}
	if hdrSize, err = parseCount(fields[len(fields)-2]); err != nil {
		return "", "", nil, 0, 0, err
	}
	if totalSize, err = p.parseSize(fields[len(fields)-1]); err != nil {
		return "", "", nil, 0, 0, err
	}
	if hdrSize > totalSize {
		return "", "", nil, 0, 0, fmt.Errorf("%w: header size %d exceeds total size %d", ErrInvalidPayloadSize, hdrSize, totalSize)
	}
	return string(fields[0]), string(fields[1]), replyTo, hdrSize, totalSize, nil
}

// parseSubArgs extracts "<subject> [queue group] <sid>".
func parseSubArgs(args []byte) (*Sub, error) {
	fields := splitFields(args)
	var queue *string
	switch len(fields) {
	case 2:
	case 3:
		queue = String(string(fields[1]))
	default:
		return nil, fmt.Errorf("%w: SUB takes 2 or 3 fields, got %d", ErrMalformedFieldCount, len(fields))
	}
	return &Sub{Subject: string(fields[0]), QueueGroup: queue, SID: string(fields[len(fields)-1])}, nil
}

// parseUnsubArgs extracts "<sid> [max_msgs]".
func parseUnsubArgs(args []byte) (*Unsub, error) {
	fields := splitFields(args)
	var maxMsgs *int
	switch len(fields) {
	case 1:
	case 2:
		n, err := parseCount(fields[1])
		if err != nil {
			return nil, err
		}
		maxMsgs = Int(int(n))
	default:
		return nil, fmt.Errorf("%w: UNSUB takes 1 or 2 fields, got %d", ErrMalformedFieldCount, len(fields))
	}
	return &Unsub{SID: string(fields[0]), MaxMessages: maxMsgs}, nil
}

// bareArgs enforces the trailing-token policy for operations that carry no
// fields.
func (p *Parser) bareArgs(op string, args []byte) error {
	if p.pedantic && len(args) > 0 {
		return fmt.Errorf("%w: %s carries no fields", ErrUnexpectedTrailingData, op)
	}
	return nil
}

// parseCount parses a non-negative integer field.
func parseCount(field []byte) (int64, error) {
	n, err := strconv.ParseInt(string(field), 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPayloadSize, string(field))
	}
	return n, nil
}

// parseSize parses a payload size field and applies the configured limit.
func (p *Parser) parseSize(field []byte) (int64, error) {
	n, err := parseCount(field)
	if err != nil {
		return 0, err
	}
	if p.maxPayload > 0 && n > p.maxPayload {
		return 0, fmt.Errorf("%w: %d exceeds maximum payload %d", ErrInvalidPayloadSize, n, p.maxPayload)
	}
	return n, nil
}

// framePayload takes the declared number of payload bytes from the block
// following the header line and checks the terminator sits exactly at the
// declared boundary. The payload is copied so the Message does not alias the
// caller's read buffer.
func framePayload(rest []byte, size int64) (payload []byte, used int, err error) {
	// Compared this way round so a hostile size near the int64 maximum cannot
	// overflow the sum and slip past the bounds check.
	if size > int64(len(rest))-int64(len(crlf)) {
		return nil, 0, fmt.Errorf("%w: have %d of %d payload byte(s)", ErrTruncatedPayload, len(rest), size)
	}
	need := int(size) + len(crlf)
	if !bytes.Equal(rest[size:size+2], crlf) {
		return nil, 0, fmt.Errorf("%w: no terminator at declared size %d", ErrPayloadLengthMismatch, size)
	}
	return append([]byte(nil), rest[:size]...), need, nil
}

// unquoteErr strips the single quotes the server puts around -ERR text.
// Unquoted text is accepted as-is.
func unquoteErr(args []byte) string {
	s := string(args)
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		return s[1 : len(s)-1]
	}
	return s
}
