package natswire

import (
	"strings"
	"testing"
)

func TestNewInbox(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		inbox := NewInbox()
		if !strings.HasPrefix(inbox, InboxPrefix) {
			t.Fatalf("inbox %q missing %q prefix", inbox, InboxPrefix)
		}
		if strings.ContainsAny(inbox, " \t\r\n") {
			t.Fatalf("inbox %q contains separator characters", inbox)
		}
		if seen[inbox] {
			t.Fatalf("inbox %q repeated", inbox)
		}
		seen[inbox] = true
	}
}

func TestNewInboxIsValidReplyTo(t *testing.T) {
	pub := &Pub{Subject: "req.work", ReplyTo: String(NewInbox()), Payload: []byte("job")}
	msg, err := Parse(Format(pub))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !pub.Equal(msg) {
		t.Errorf("round trip changed the message: %s", Format(msg))
	}
}
