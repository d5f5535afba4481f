package entity

// Conversation is a derived inbox row: one entry per correspondent carrying
// the most recent message exchanged with them. It is computed per request and
// never persisted.
type Conversation struct {
	OtherUserID   string   `json:"otherUserId"`
	OtherUserName string   `json:"name"`
	OtherUserRole string   `json:"role,omitempty"`
	LatestMessage *Message `json:"latestMessage"`
}
