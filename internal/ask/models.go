package ask

import (
	"github.com/fdg312/fitness-coach/internal/ai"
	"github.com/fdg312/fitness-coach/internal/coach"
)

// DefaultHistoryLimit is how many trailing conversation messages are forwarded upstream.
const DefaultHistoryLimit = 10

type AskRequest struct {
	Question            string             `json:"question"`
	UserContext         *coach.UserContext `json:"userContext,omitempty"`
	ConversationHistory []ai.Message       `json:"conversationHistory,omitempty"`
}

type AskResponse struct {
	Answer string `json:"answer"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}
