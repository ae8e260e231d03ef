// Package natswire implements a bidirectional codec for the NATS client/server
// wire protocol: parsing raw protocol bytes into typed messages and formatting
// typed messages back into the exact byte sequence exchanged over a socket.
//
// The package is a building block for clients and servers, not a client itself.
// It performs no I/O: callers read bytes from their transport and hand them to
// a Parser, and write the bytes produced by Format back to the transport.
//
// Formatting a message:
//
//	pub := &natswire.Pub{
//	    Subject: "workdispatch",
//	    ReplyTo: natswire.String("INBOX.42"),
//	    Payload: []byte("Hello World"),
//	}
//	out := natswire.Format(pub)
//	// out == []byte("PUB workdispatch INBOX.42 11\r\nHello World\r\n")
//
// Parsing the two-line form received from a server:
//
//	msg, err := natswire.Parse([]byte("PUB FOO 11\r\nHello NATS!\r\n"))
//	if err != nil {
//	    return err
//	}
//	if pub, ok := msg.(*natswire.Pub); ok {
//	    fmt.Println(pub.Subject, len(pub.Payload))
//	}
//
// For incremental decoding of a byte stream, Decode parses one message from
// the front of the buffer and reports how many bytes it consumed. When the
// buffer ends mid-message, Decode returns ErrTruncatedPayload to signal that
// the caller should retry with more data:
//
//	for len(buf) > 0 {
//	    msg, n, err := parser.Decode(buf)
//	    if errors.Is(err, natswire.ErrTruncatedPayload) {
//	        break // read more from the transport
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    handle(msg)
//	    buf = buf[n:]
//	}
//
// Parsers and the formatter are stateless and safe for concurrent use.
package natswire
