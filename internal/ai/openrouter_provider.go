package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/fdg312/fitness-coach/internal/config"
)

type OpenRouterProvider struct {
	apiKey      string
	endpoint    string
	model       string
	maxTokens   int
	temperature float64
	timeout     time.Duration
	referer     string
	title       string
	httpClient  *http.Client
}

func NewOpenRouterProvider(cfg *config.Config) *OpenRouterProvider {
	timeoutSeconds := cfg.AITimeoutSeconds
	if timeoutSeconds <= 0 {
		timeoutSeconds = 20
	}
	timeout := time.Duration(timeoutSeconds) * time.Second

	return &OpenRouterProvider{
		apiKey:      cfg.OpenRouterAPIKey,
		endpoint:    strings.TrimRight(cfg.AIBaseURL, "/") + "/chat/completions",
		model:       cfg.AIModel,
		maxTokens:   cfg.AIMaxOutputTokens,
		temperature: cfg.AITemperature,
		timeout:     timeout,
		referer:     cfg.AIReferer,
		title:       cfg.AITitle,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Reply makes a single chat completion call. There are no retries.
func (p *OpenRouterProvider) Reply(ctx context.Context, req ReplyRequest) (string, error) {
	requestPayload := chatCompletionsRequest{
		Model:       p.model,
		Temperature: p.temperature,
		MaxTokens:   p.maxTokens,
		Messages:    req.Messages,
	}

	body, err := json.Marshal(requestPayload)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	if p.referer != "" {
		httpReq.Header.Set("HTTP-Referer", p.referer)
	}
	if p.title != "" {
		httpReq.Header.Set("X-Title", p.title)
	}

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", p.classifyTransportError(err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", p.classifyTransportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", newError(ErrUpstream, fmt.Sprintf("OpenRouter returned status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(responseBody))))
	}

	var parsed chatCompletionsResponse
	if err := json.Unmarshal(responseBody, &parsed); err != nil {
		return "", newError(ErrMalformedResponse, "unexpected AI response: "+string(responseBody))
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == nil {
		return "", newError(ErrMalformedResponse, "unexpected AI response: "+string(responseBody))
	}

	return strings.TrimSpace(*parsed.Choices[0].Message.Content), nil
}

func (p *OpenRouterProvider) classifyTransportError(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return newError(ErrTimeout, fmt.Sprintf("AI did not answer within %s", p.timeout))
	}
	return newError(ErrUpstream, "network or OpenRouter error: "+err.Error())
}

type chatCompletionsRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type chatCompletionsResponse struct {
	Choices []struct {
		Message struct {
			Role    string  `json:"role"`
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}
