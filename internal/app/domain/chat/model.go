// Package chat contains the AI assistant message model.
package chat

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Message is a single turn in an assistant conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Request is the body of a chat call. HorseID optionally scopes the reply to
// a horse for context.
type Request struct {
	Messages []Message `json:"messages"`
	HorseID  string    `json:"horse_id,omitempty"`
}

// Reply is the assistant's answer.
type Reply struct {
	Response string `json:"response"`
}

// LatestUserMessage returns the most recent message authored by the user, or
// an empty string if there is none.
func LatestUserMessage(messages []Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == RoleUser {
			return messages[i].Content
		}
	}
	return ""
}
