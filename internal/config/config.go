package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
)

const (
	AIModeOpenRouter = "openrouter"
	AIModeMock       = "mock"

	DefaultConfigPath = "config.json"
	DefaultModel      = "meta-llama/llama-3.1-8b-instruct"
	DefaultBaseURL    = "https://openrouter.ai/api/v1"
)

// Config holds the runtime configuration of the service.
type Config struct {
	Env       string // local | staging | production
	Host      string
	Port      int
	LogLevel  string
	LogFormat string // console | json

	// Credential file
	ConfigPath string
	// KeySource describes where OpenRouterAPIKey came from: env, file or "" when unset.
	KeySource string

	// AI
	AIMode            string // openrouter | mock
	OpenRouterAPIKey  string
	AIBaseURL         string
	AIModel           string
	AIMaxOutputTokens int
	AITemperature     float64
	AITimeoutSeconds  int
	AIHistoryLimit    int
	AIReferer         string
	AITitle           string

	// Health metrics
	DefaultStepsGoal int

	// Warnings collected while loading; logged by the caller once the logger exists.
	Warnings []string
}

// fileConfig mirrors the JSON credential file.
type fileConfig struct {
	OpenRouterAPIKey string `json:"openrouter_api_key"`
}

// Load reads configuration from the environment and the JSON credential file.
// It never fails: a missing or broken credential file only disables the AI feature.
func Load() *Config {
	cfg := &Config{}

	cfg.Env = os.Getenv("APP_ENV")
	if cfg.Env == "" {
		cfg.Env = "local"
	}

	cfg.Host = strings.TrimSpace(os.Getenv("HOST"))
	if cfg.Host == "" {
		cfg.Host = "0.0.0.0"
	}

	// PORT (default: 8000, the port the mobile client targets)
	cfg.Port = envInt("PORT", 8000)
	if cfg.Port <= 0 || cfg.Port > 65535 {
		cfg.warnf("invalid PORT=%d, fallback to 8000", cfg.Port)
		cfg.Port = 8000
	}

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL")))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(os.Getenv("LOG_FORMAT")))
	if cfg.LogFormat == "" {
		if cfg.Env == "local" {
			cfg.LogFormat = "console"
		} else {
			cfg.LogFormat = "json"
		}
	}

	// ---------- AI ----------
	cfg.AIMode = strings.ToLower(strings.TrimSpace(os.Getenv("AI_MODE")))
	if cfg.AIMode == "" {
		cfg.AIMode = AIModeOpenRouter
	}
	if cfg.AIMode != AIModeOpenRouter && cfg.AIMode != AIModeMock {
		cfg.warnf("unknown AI_MODE=%q, fallback to %s", cfg.AIMode, AIModeOpenRouter)
		cfg.AIMode = AIModeOpenRouter
	}

	cfg.ConfigPath = strings.TrimSpace(os.Getenv("CONFIG_PATH"))
	if cfg.ConfigPath == "" {
		cfg.ConfigPath = DefaultConfigPath
	}

	if key := strings.TrimSpace(os.Getenv("OPENROUTER_API_KEY")); key != "" {
		cfg.OpenRouterAPIKey = key
		cfg.KeySource = "env"
	} else {
		key, err := readAPIKey(cfg.ConfigPath)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			cfg.warnf("%s not found, AI assistant disabled (create it with {\"openrouter_api_key\": \"sk-or-...\"})", cfg.ConfigPath)
		case err != nil:
			cfg.warnf("cannot read %s, AI assistant disabled: %v", cfg.ConfigPath, err)
		case key == "":
			cfg.warnf("%s has no openrouter_api_key, AI assistant disabled", cfg.ConfigPath)
		default:
			cfg.OpenRouterAPIKey = key
			cfg.KeySource = "file"
		}
	}

	cfg.AIBaseURL = strings.TrimRight(strings.TrimSpace(os.Getenv("AI_BASE_URL")), "/")
	if cfg.AIBaseURL == "" {
		cfg.AIBaseURL = DefaultBaseURL
	}

	cfg.AIModel = strings.TrimSpace(os.Getenv("AI_MODEL"))
	if cfg.AIModel == "" {
		cfg.AIModel = DefaultModel
	}

	cfg.AIMaxOutputTokens = envInt("AI_MAX_OUTPUT_TOKENS", 800)
	if cfg.AIMaxOutputTokens <= 0 {
		cfg.AIMaxOutputTokens = 800
	}

	cfg.AITemperature = envFloat("AI_TEMPERATURE", 0.3)
	if cfg.AITemperature < 0 {
		cfg.AITemperature = 0
	}
	if cfg.AITemperature > 2 {
		cfg.AITemperature = 2
	}

	cfg.AITimeoutSeconds = envInt("AI_TIMEOUT_SECONDS", 20)
	if cfg.AITimeoutSeconds <= 0 {
		cfg.AITimeoutSeconds = 20
	}

	cfg.AIHistoryLimit = envInt("AI_HISTORY_LIMIT", 10)
	if cfg.AIHistoryLimit <= 0 {
		cfg.warnf("AI_HISTORY_LIMIT must be >= 1, fallback to 10")
		cfg.AIHistoryLimit = 10
	}

	cfg.AIReferer = envString("AI_REFERER", "http://localhost")
	cfg.AITitle = envString("AI_TITLE", "FitnessApp")

	// ---------- Health ----------
	cfg.DefaultStepsGoal = envInt("HEALTH_DEFAULT_STEPS_GOAL", 10000)
	if cfg.DefaultStepsGoal < 1 {
		cfg.warnf("HEALTH_DEFAULT_STEPS_GOAL must be >= 1, fallback to 10000")
		cfg.DefaultStepsGoal = 10000
	}

	return cfg
}

// AIAvailable reports whether /ask can reach a provider.
func (c *Config) AIAvailable() bool {
	if c.AIMode == AIModeMock {
		return true
	}
	return strings.TrimSpace(c.OpenRouterAPIKey) != ""
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *Config) warnf(format string, args ...any) {
	c.Warnings = append(c.Warnings, fmt.Sprintf(format, args...))
}

func readAPIKey(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return "", fmt.Errorf("invalid JSON: %w", err)
	}
	return strings.TrimSpace(fc.OpenRouterAPIKey), nil
}

func envString(key, defaultVal string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return defaultVal
	}
	return v
}

// envInt reads an int env var with a default value.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}

func envFloat(key string, defaultVal float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return defaultVal
	}
	return v
}
