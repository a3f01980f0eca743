package ai

import (
	"strings"

	"github.com/fdg312/fitness-coach/internal/config"
)

// NewProvider picks the provider for cfg.AIMode. The bool is false when the
// AI feature is unavailable, in which case the returned provider is nil.
func NewProvider(cfg *config.Config) (Provider, bool) {
	mode := strings.ToLower(strings.TrimSpace(cfg.AIMode))

	switch mode {
	case config.AIModeMock:
		return NewMockProvider(), true
	default:
		if !cfg.AIAvailable() {
			return nil, false
		}
		return NewOpenRouterProvider(cfg), true
	}
}
