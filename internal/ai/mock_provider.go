package ai

import (
	"context"
	"fmt"
	"strings"
)

// MockProvider answers offline. It is used for demos and smoke runs without an API key.
type MockProvider struct{}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (p *MockProvider) Reply(ctx context.Context, req ReplyRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", newError(ErrTimeout, err.Error())
	}

	lastUserMessage := ""
	for i := len(req.Messages) - 1; i >= 0; i-- {
		if req.Messages[i].Role == RoleUser {
			lastUserMessage = strings.TrimSpace(req.Messages[i].Content)
			break
		}
	}

	return fmt.Sprintf(
		"Mock coach reply to %q. This is demo mode, not medical advice.",
		lastUserMessage,
	), nil
}
