package main

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/rbaliyan/natswire"
)

func TestDumpReemit(t *testing.T) {
	// Irregular whitespace and lowercase keywords normalize on re-emit.
	in := strings.NewReader("ping\r\nPUB   FOO \t 3\r\nabc\r\nSUB BAR G1 44\r\n")
	var out bytes.Buffer
	log := zerolog.New(io.Discard)

	if err := dump(natswire.New(), in, &out, log, true); err != nil {
		t.Fatalf("dump failed: %v", err)
	}
	want := "PING\r\nPUB FOO 3\r\nabc\r\nSUB BAR G1 44\r\n"
	if out.String() != want {
		t.Errorf("got %q, want %q", out.String(), want)
	}
}

func TestDumpTruncatedStream(t *testing.T) {
	in := strings.NewReader("PING\r\nPUB FOO 11\r\nHel")
	var out bytes.Buffer
	log := zerolog.New(io.Discard)

	err := dump(natswire.New(), in, &out, log, true)
	if !errors.Is(err, natswire.ErrTruncatedPayload) {
		t.Fatalf("expected ErrTruncatedPayload, got %v", err)
	}
	// The complete frame before the cut was still emitted.
	if out.String() != "PING\r\n" {
		t.Errorf("got %q", out.String())
	}
}

func TestDumpLogsFrames(t *testing.T) {
	in := strings.NewReader("MSG orders.eu 7 INBOX.1 2\r\nok\r\n")
	var logged bytes.Buffer
	log := zerolog.New(&logged)

	if err := dump(natswire.New(), in, io.Discard, log, false); err != nil {
		t.Fatalf("dump failed: %v", err)
	}
	for _, want := range []string{`"op":"MSG"`, `"subject":"orders.eu"`, `"sid":"7"`, `"reply_to":"INBOX.1"`} {
		if !strings.Contains(logged.String(), want) {
			t.Errorf("log output missing %s: %s", want, logged.String())
		}
	}
}
