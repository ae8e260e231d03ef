package natswire

import "errors"

// Parse failure sentinels.
// Every error returned by Parse or Decode wraps exactly one of these, so
// callers classify failures with errors.Is. All of them are terminal for the
// parse attempt except ErrTruncatedPayload, which signals that the input ends
// mid-message and the call should be repeated once more bytes are available.
var (
	// ErrUnknownOperation is returned when the first token of a line is not
	// one of the protocol's operation keywords.
	ErrUnknownOperation = errors.New("unknown protocol operation")

	// ErrMalformedFieldCount is returned when a line carries the wrong number
	// of fields for its operation.
	ErrMalformedFieldCount = errors.New("wrong number of fields for operation")

	// ErrInvalidPayloadSize is returned when a numeric field (payload size,
	// header size or max_msgs) is not a non-negative integer, or when a
	// declared size exceeds the parser's configured maximum payload.
	ErrInvalidPayloadSize = errors.New("invalid size field")

	// ErrMalformedPayload is returned when the INFO or CONNECT document does
	// not parse as JSON.
	ErrMalformedPayload = errors.New("malformed handshake document")

	// ErrMalformedHeader is returned when the header block of an HMSG frame
	// is missing its version line, a field separator, or its blank-line
	// terminator.
	ErrMalformedHeader = errors.New("malformed header block")

	// ErrTruncatedPayload is returned when the input ends before the declared
	// payload (or the header line terminator, in Decode) has arrived. It is
	// recoverable: buffer more input and parse again.
	ErrTruncatedPayload = errors.New("truncated message: need more data")

	// ErrUnexpectedTrailingData is returned when bytes follow a message the
	// caller asserted to be complete, or when a bare operation (PING, PONG,
	// +OK) carries extra tokens under a pedantic parser.
	ErrUnexpectedTrailingData = errors.New("unexpected trailing data")

	// ErrPayloadLengthMismatch is returned when the declared payload size
	// disagrees with the bytes actually supplied: the terminator is not found
	// at the declared boundary, or surplus bytes follow it.
	ErrPayloadLengthMismatch = errors.New("declared payload size disagrees with supplied bytes")
)
