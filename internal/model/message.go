package model

// Role represents the author of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ConversationMessage is one turn of the intake transcript. The transcript is
// owned by the client and re-sent in full with every request.
type ConversationMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Message             string                `json:"message"`
	ConversationHistory []ConversationMessage `json:"conversationHistory"`
}

// ChatResponse carries the assistant reply verbatim.
type ChatResponse struct {
	Response string `json:"response"`
}

// InsightsRequest is the body of POST /insights.
type InsightsRequest struct {
	ConversationHistory []ConversationMessage `json:"conversationHistory"`
}
