package domain

// ChatRole identifies the author of a conversation turn.
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatTurn is a single turn of the assistant conversation; an ordered slice
// of turns forms the history sent to the completion provider.
type ChatTurn struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}
