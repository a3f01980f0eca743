package ask

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fdg312/fitness-coach/internal/ai"
	"github.com/fdg312/fitness-coach/internal/coach"
	"github.com/rs/zerolog"
)

var ErrInvalidRequest = errors.New("invalid request")

type Service struct {
	provider     ai.Provider
	available    bool
	historyLimit int
	now          func() time.Time
}

// NewService builds the ask service. When available is false every call fails
// with ai.ErrUnavailable and provider may be nil.
func NewService(provider ai.Provider, available bool, historyLimit int) *Service {
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	return &Service{
		provider:     provider,
		available:    available && provider != nil,
		historyLimit: historyLimit,
		now:          time.Now,
	}
}

// Ask validates the request, builds the message list and makes one provider call.
func (s *Service) Ask(ctx context.Context, req AskRequest) (*AskResponse, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		recordOutcome(outcomeInvalid)
		return nil, fmt.Errorf("%w: question must not be empty", ErrInvalidRequest)
	}

	if !s.available {
		recordOutcome(outcomeUnavailable)
		return nil, &ai.Error{Kind: ai.ErrUnavailable, Detail: "AI service is unavailable: OpenRouter API key is not configured"}
	}

	messages, err := s.buildMessages(question, req.UserContext, req.ConversationHistory)
	if err != nil {
		recordOutcome(outcomeInvalid)
		return nil, err
	}

	logger := zerolog.Ctx(ctx)
	logger.Debug().
		Int("messages", len(messages)).
		Bool("has_context", req.UserContext != nil).
		Msg("sending question to AI provider")

	// the outbound call is not aborted when the client goes away
	callCtx := context.WithoutCancel(ctx)

	start := s.now()
	answer, err := s.provider.Reply(callCtx, ai.ReplyRequest{Messages: messages})
	elapsed := s.now().Sub(start)
	upstreamDuration.Observe(elapsed.Seconds())

	if err != nil {
		recordOutcome(outcomeFor(err))
		logger.Warn().Err(err).Dur("elapsed", elapsed).Msg("AI provider call failed")
		return nil, err
	}

	recordOutcome(outcomeOK)
	logger.Info().Dur("elapsed", elapsed).Int("answer_len", len(answer)).Msg("AI answer received")
	return &AskResponse{Answer: answer}, nil
}

func (s *Service) buildMessages(question string, userCtx *coach.UserContext, history []ai.Message) ([]ai.Message, error) {
	if len(history) > s.historyLimit {
		history = history[len(history)-s.historyLimit:]
	}

	messages := make([]ai.Message, 0, len(history)+2)
	messages = append(messages, ai.Message{
		Role:    ai.RoleSystem,
		Content: coach.BuildSystemPrompt(userCtx),
	})
	for i, msg := range history {
		role := strings.ToLower(strings.TrimSpace(msg.Role))
		if role != ai.RoleUser && role != ai.RoleAssistant {
			return nil, fmt.Errorf("%w: conversationHistory[%d].role must be user or assistant", ErrInvalidRequest, i)
		}
		messages = append(messages, ai.Message{Role: role, Content: msg.Content})
	}
	messages = append(messages, ai.Message{Role: ai.RoleUser, Content: question})
	return messages, nil
}

func outcomeFor(err error) string {
	switch {
	case errors.Is(err, ai.ErrTimeout):
		return outcomeTimeout
	case errors.Is(err, ai.ErrUpstream):
		return outcomeUpstream
	case errors.Is(err, ai.ErrMalformedResponse):
		return outcomeMalformed
	case errors.Is(err, ai.ErrUnavailable):
		return outcomeUnavailable
	default:
		return outcomeError
	}
}
