// natsdump decodes a captured NATS protocol stream (for example the output
// of a proxy tap or a pcap payload dump) and prints one line per frame.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/rbaliyan/natswire"
)

func main() {
	app := &cli.App{
		Name:  "natsdump",
		Usage: "decode a captured NATS protocol stream",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "read the stream from `PATH` instead of stdin"},
			&cli.BoolFlag{Name: "pedantic", Usage: "reject trailing tokens after PING, PONG and +OK"},
			&cli.Int64Flag{Name: "max-payload", Usage: "reject frames declaring more than `N` payload bytes"},
			&cli.BoolFlag{Name: "reemit", Usage: "write canonical wire bytes to stdout instead of logging frames"},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	in := io.Reader(os.Stdin)
	if path := c.String("file"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	parser := natswire.New(
		natswire.WithPedantic(c.Bool("pedantic")),
		natswire.WithMaxPayload(c.Int64("max-payload")),
	)
	return dump(parser, in, os.Stdout, log, c.Bool("reemit"))
}

// dump walks the stream frame by frame. A stream that ends mid-frame is
// reported as an error; anything before the cut is still printed.
func dump(parser *natswire.Parser, in io.Reader, out io.Writer, log zerolog.Logger, reemit bool) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return err
	}
	for len(data) > 0 {
		msg, n, err := parser.Decode(data)
		if err != nil {
			if errors.Is(err, natswire.ErrTruncatedPayload) {
				return fmt.Errorf("stream ends mid-frame: %w", err)
			}
			return err
		}
		if reemit {
			if _, err := out.Write(natswire.Format(msg)); err != nil {
				return err
			}
		} else {
			logFrame(log, msg)
		}
		data = data[n:]
	}
	return nil
}

func logFrame(log zerolog.Logger, msg natswire.Message) {
	ev := log.Info().Stringer("op", msg.Kind())
	switch m := msg.(type) {
	case *natswire.Pub:
		ev = ev.Str("subject", m.Subject).Int("bytes", len(m.Payload))
		if m.ReplyTo != nil {
			ev = ev.Str("reply_to", *m.ReplyTo)
		}
	case *natswire.Sub:
		ev = ev.Str("subject", m.Subject).Str("sid", m.SID)
		if m.QueueGroup != nil {
			ev = ev.Str("queue", *m.QueueGroup)
		}
	case *natswire.Unsub:
		ev = ev.Str("sid", m.SID)
		if m.MaxMessages != nil {
			ev = ev.Int("max_msgs", *m.MaxMessages)
		}
	case *natswire.Msg:
		ev = ev.Str("subject", m.Subject).Str("sid", m.SID).Int("bytes", len(m.Payload))
		if m.ReplyTo != nil {
			ev = ev.Str("reply_to", *m.ReplyTo)
		}
	case *natswire.HMsg:
		ev = ev.Str("subject", m.Subject).Str("sid", m.SID).
			Int("bytes", len(m.Payload)).Int("header_entries", m.Header.Len())
		if m.Header.Status != "" {
			ev = ev.Str("status", m.Header.Status)
		}
	case *natswire.Info:
		ev = ev.Str("server_id", m.ServerID).Str("version", m.Version)
	case *natswire.Connect:
		ev = ev.Str("name", m.Name).Str("lang", m.Lang)
	case *natswire.Err:
		ev = ev.Str("message", m.Message)
	}
	ev.Msg("frame")
}
