package natswire

import "github.com/nats-io/nuid"

// InboxPrefix is the conventional subject prefix for reply inboxes.
const InboxPrefix = "_INBOX."

// NewInbox returns a unique subject suitable for a Pub reply-to field,
// following the _INBOX convention used across NATS clients.
func NewInbox() string {
	return InboxPrefix + nuid.Next()
}
