package bus

import "time"

// Event represents a domain event published on the bus.
type Event struct {
	Kind      string
	Timestamp time.Time
	Payload   any
}

// Event kinds.
const (
	NamespaceConversations   = "conversations."
	KindConversationsChanged = "conversations.changed"
)

// Op names a conversation mutation.
type Op string

const (
	OpUpsert    Op = "upsert"
	OpPin       Op = "pin"
	OpUnpin     Op = "unpin"
	OpArchive   Op = "archive"
	OpUnarchive Op = "unarchive"
	OpUnread    Op = "unread"
	OpRead      Op = "read"
	OpDelete    Op = "delete"
)

// ConversationsChanged is the payload of KindConversationsChanged.
type ConversationsChanged struct {
	Op  Op
	IDs []string
}
