package ai

import "context"

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Provider produces an assistant reply for an ordered list of chat messages.
type Provider interface {
	Reply(ctx context.Context, req ReplyRequest) (string, error)
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ReplyRequest struct {
	Messages []Message
}
