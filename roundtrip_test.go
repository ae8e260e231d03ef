package natswire

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"syreclabs.com/go/faker"
)

// Every constructible message must survive a format/parse cycle unchanged.
func TestRoundTrip(t *testing.T) {
	var hdr Header
	hdr.Add("Nats-Msg-Id", "id-7")
	hdr.Add("X-Trace", "a")
	hdr.Add("X-Trace", "b")

	proto := 1
	clientID := uint64(1337)

	tests := []struct {
		name string
		msg  Message
	}{
		{"pub", &Pub{Subject: "workdispatch", Payload: []byte("Hello World")}},
		{"pub reply", &Pub{Subject: "workdispatch", ReplyTo: String("INBOX.42"), Payload: []byte("Hello World")}},
		{"pub empty payload", &Pub{Subject: "FOO"}},
		{"sub", &Sub{Subject: "FOO.*", SID: "pouet"}},
		{"sub queue", &Sub{Subject: "FOO.>", QueueGroup: String("G1"), SID: "44"}},
		{"unsub", &Unsub{SID: "21"}},
		{"unsub max", &Unsub{SID: "21", MaxMessages: Int(40)}},
		{"msg", &Msg{Subject: "FOO.BAR", SID: "9", Payload: []byte("Hello World")}},
		{"msg reply", &Msg{Subject: "FOO.BAR", SID: "9", ReplyTo: String("INBOX.34"), Payload: []byte("Hello World")}},
		{"hmsg", &HMsg{Subject: "FOO.BAR", SID: "9", Header: hdr, Payload: []byte("Hello World")}},
		{"hmsg status", &HMsg{Subject: "INBOX.7", SID: "2", Header: Header{Status: "503"}}},
		{"info", &Info{ServerID: "test", Version: "1.3.0", Proto: &proto, Go: "go1.10.3", Host: "0.0.0.0", Port: 4222, MaxPayload: 4000, ClientID: &clientID}},
		{"info urls", &Info{ServerID: "test", Version: "2.9.0", Go: "go1.19", Host: "0.0.0.0", Port: 4222, Headers: true, ConnectURLs: []string{"10.0.0.1:4222", "10.0.0.2:4222"}}},
		{"connect", &Connect{Verbose: true, Lang: "go", Name: "testing", Version: "1.2.2", Protocol: &proto, Echo: true}},
		{"connect auth", &Connect{Lang: "go", Name: "t", Version: "1.0.0", AuthToken: String("s3cr3t"), User: String("u"), Pass: String("p")}},
		{"ping", &Ping{}},
		{"pong", &Pong{}},
		{"ok", &OK{}},
		{"err", &Err{Message: "Stale Connection"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(Format(tt.msg))
			if err != nil {
				t.Fatalf("parse of %q failed: %v", Format(tt.msg), err)
			}
			if diff := cmp.Diff(tt.msg, got); diff != "" {
				t.Errorf("round trip changed the message (-want +got):\n%s", diff)
			}
		})
	}
}

// Canonical wire bytes must survive a parse/format cycle byte for byte.
func TestParseFormatStability(t *testing.T) {
	tests := []string{
		"PUB FOO 11\r\nHello NATS!\r\n",
		"PUB FRONT.DOOR INBOX.22 3\r\nabc\r\n",
		"SUB FOO 1\r\n",
		"SUB BAR G1 44\r\n",
		"UNSUB 21\r\n",
		"UNSUB 21 40\r\n",
		"MSG workdispatch 1 11\r\nHello World\r\n",
		"MSG FOO.BAR 9 INBOX.34 11\r\nHello World\r\n",
		"HMSG FOO.BAR 9 34 45\r\nNATS/1.0\r\nFoodGroup: vegetable\r\n\r\nHello World\r\n",
		"PING\r\n",
		"PONG\r\n",
		"+OK\r\n",
		"-ERR 'Stale Connection'\r\n",
		`CONNECT {"verbose":false,"pedantic":false,"tls_required":false,"lang":"go","name":"testing","version":"1.2.2","protocol":1}` + "\r\n",
		`INFO {"server_id":"abc","version":"2.9.0","go":"go1.19","host":"0.0.0.0","port":4222,"auth_required":false,"tls_required":false,"max_payload":1048576}` + "\r\n",
	}
	for _, raw := range tests {
		msg, err := Parse([]byte(raw))
		if err != nil {
			t.Errorf("%q: parse failed: %v", raw, err)
			continue
		}
		if got := Format(msg); string(got) != raw {
			t.Errorf("parse/format changed the bytes:\n got %q\nwant %q", got, raw)
		}
	}
}

// Keyword case normalizes to canonical uppercase; everything else is stable.
func TestParseFormatCaseNormalization(t *testing.T) {
	msg, err := Parse([]byte("pub FOO 3\r\nabc\r\n"))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if got := Format(msg); string(got) != "PUB FOO 3\r\nabc\r\n" {
		t.Errorf("got %q", got)
	}
}

func TestRoundTripRandom(t *testing.T) {
	faker.Seed(time.Now().UnixNano())

	optional := func(s string) *string {
		if faker.RandomInt(0, 1) == 0 {
			return nil
		}
		return String(s)
	}

	for i := 0; i < 200; i++ {
		subject := faker.Lorem().Word() + "." + faker.Lorem().Word()
		sid := faker.Lorem().Word()
		payload := []byte(faker.Lorem().Sentence(3))

		var msg Message
		switch faker.RandomInt(0, 3) {
		case 0:
			msg = &Pub{Subject: subject, ReplyTo: optional(NewInbox()), Payload: payload}
		case 1:
			msg = &Sub{Subject: subject, QueueGroup: optional(faker.Lorem().Word()), SID: sid}
		case 2:
			n := faker.RandomInt(0, 100000)
			var maxMsgs *int
			if faker.RandomInt(0, 1) == 1 {
				maxMsgs = Int(n)
			}
			msg = &Unsub{SID: sid, MaxMessages: maxMsgs}
		case 3:
			msg = &Msg{Subject: subject, SID: sid, ReplyTo: optional(NewInbox()), Payload: payload}
		}

		got, err := Parse(Format(msg))
		if err != nil {
			t.Fatalf("parse of %q failed: %v", Format(msg), err)
		}
		if !msg.Equal(got) {
			t.Fatalf("round trip changed %q into %q", Format(msg), Format(got))
		}
	}
}

// Length invariant: payload size always reflects the parsed byte count.
func TestParsedPayloadSize(t *testing.T) {
	msg, err := Parse([]byte("MSG FOO 1 4\r\ntoto\r\n"))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	m := msg.(*Msg)
	if m.PayloadSize() != len(m.Payload) || m.PayloadSize() != 4 {
		t.Errorf("payload size %d, payload length %d", m.PayloadSize(), len(m.Payload))
	}
}
