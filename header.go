package natswire

import (
	"bytes"
	"fmt"
)

// headerPrefix opens every header block.
const headerPrefix = "NATS/1.0"

// Header is the header block carried by HMSG frames.
//
// Entries keep their insertion order and duplicate keys are allowed, so a
// parsed block re-encodes to the same bytes. Status holds the optional text
// after "NATS/1.0" on the version line (e.g. "503" for no-responders).
type Header struct {
	Status string

	entries []headerEntry
}

type headerEntry struct {
	key   string
	value string
}

// Add appends value under key, keeping any existing values.
func (h *Header) Add(key, value string) {
	h.entries = append(h.entries, headerEntry{key: key, value: value})
}

// Set replaces all values stored under key with value.
func (h *Header) Set(key, value string) {
	h.Del(key)
	h.Add(key, value)
}

// Get returns the first value stored under key, or "" if absent.
func (h *Header) Get(key string) string {
	for _, e := range h.entries {
		if e.key == key {
			return e.value
		}
	}
	return ""
}

// Values returns all values stored under key in insertion order.
func (h *Header) Values(key string) []string {
	var vals []string
	for _, e := range h.entries {
		if e.key == key {
			vals = append(vals, e.value)
		}
	}
	return vals
}

// Del removes all values stored under key.
func (h *Header) Del(key string) {
	kept := h.entries[:0]
	for _, e := range h.entries {
		if e.key != key {
			kept = append(kept, e)
		}
	}
	h.entries = kept
}

// Len returns the number of entries.
func (h Header) Len() int { return len(h.entries) }

// Equal reports whether both headers have the same status and the same
// entries in the same order.
func (h Header) Equal(o Header) bool {
	if h.Status != o.Status || len(h.entries) != len(o.entries) {
		return false
	}
	for i, e := range h.entries {
		if e != o.entries[i] {
			return false
		}
	}
	return true
}

// appendEncoded renders the block: version line, one "Key: Value" line per
// entry, then the blank-line terminator.
func (h Header) appendEncoded(dst []byte) []byte {
	dst = append(dst, headerPrefix...)
	if h.Status != "" {
		dst = append(dst, ' ')
		dst = append(dst, h.Status...)
	}
	dst = append(dst, crlf...)
	for _, e := range h.entries {
		dst = append(dst, e.key...)
		dst = append(dst, ": "...)
		dst = append(dst, e.value...)
		dst = append(dst, crlf...)
	}
	return append(dst, crlf...)
}

// parseHeaderBlock decodes the first header-size bytes of an HMSG payload
// block. The block must open with the version line and close with an empty
// line, CRLF-terminated throughout.
func parseHeaderBlock(block []byte) (Header, error) {
	var h Header
	if !bytes.HasSuffix(block, []byte("\r\n\r\n")) {
		return h, fmt.Errorf("%w: missing blank-line terminator", ErrMalformedHeader)
	}
	lines := bytes.Split(block[:len(block)-4], crlf)
	version := lines[0]
	if !bytes.HasPrefix(version, []byte(headerPrefix)) {
		return h, fmt.Errorf("%w: missing %s version line", ErrMalformedHeader, headerPrefix)
	}
	status := version[len(headerPrefix):]
	// The version token must stand alone: anything after it needs a separator,
	// so "NATS/1.0503" does not pass as version plus status.
	if len(status) > 0 && status[0] != ' ' && status[0] != '\t' {
		return h, fmt.Errorf("%w: malformed version line %q", ErrMalformedHeader, string(version))
	}
	h.Status = string(trimSeparators(status))
	for _, line := range lines[1:] {
		colon := bytes.IndexByte(line, ':')
		if colon <= 0 {
			return Header{}, fmt.Errorf("%w: header line %q", ErrMalformedHeader, string(line))
		}
		h.Add(string(line[:colon]), string(trimSeparators(line[colon+1:])))
	}
	return h, nil
}
