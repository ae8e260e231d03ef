package natswire

// Option configures a Parser.
type Option func(*Parser)

// WithPedantic controls whether trailing tokens after the bare operations
// PING, PONG and +OK are rejected with ErrUnexpectedTrailingData. The
// protocol's informal grammar leaves this open; the default is lenient,
// matching the server's non-pedantic mode.
func WithPedantic(pedantic bool) Option {
	return func(p *Parser) { p.pedantic = pedantic }
}

// WithMaxPayload rejects declared payload sizes larger than n bytes with
// ErrInvalidPayloadSize, before any payload bytes are consumed. This mirrors
// the max_payload limit a server advertises in INFO. Zero (the default)
// means no limit.
func WithMaxPayload(n int64) Option {
	return func(p *Parser) { p.maxPayload = n }
}
