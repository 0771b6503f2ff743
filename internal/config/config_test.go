package config

import (
	"os"
	"testing"

	"github.com/kitbuilder587/prompt-refactor-bot/internal/llm"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		wantErr error
	}{
		{
			name: "valid config",
			envVars: map[string]string{
				"TELEGRAM_BOT_TOKEN": "test_token",
				"DATABASE_URL":       "postgres://localhost:5432/test",
			},
			wantErr: nil,
		},
		{
			name: "missing telegram token",
			envVars: map[string]string{
				"DATABASE_URL": "postgres://localhost:5432/test",
			},
			wantErr: ErrMissingToken,
		},
		{
			name: "missing database url",
			envVars: map[string]string{
				"TELEGRAM_BOT_TOKEN": "test_token",
			},
			wantErr: ErrMissingDB,
		},
		{
			// ключ LLM проверяется при вызове, не на старте
			name: "missing api key is fine",
			envVars: map[string]string{
				"TELEGRAM_BOT_TOKEN": "test_token",
				"DATABASE_URL":       "postgres://localhost:5432/test",
			},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnvVars()

			for k, v := range tt.envVars {
				os.Setenv(k, v)
			}
			defer clearEnvVars()

			cfg, err := Load()

			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Errorf("Load() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Errorf("Load() unexpected error = %v", err)
				return
			}

			if cfg == nil {
				t.Error("Load() returned nil config")
			}
		})
	}
}

func TestDefaults(t *testing.T) {
	clearEnvVars()
	os.Setenv("TELEGRAM_BOT_TOKEN", "test_token")
	os.Setenv("DATABASE_URL", "postgres://localhost:5432/test")
	defer clearEnvVars()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %v, want info", cfg.Log.Level)
	}
	if cfg.LLM.Timeout.Seconds() != 60 {
		t.Errorf("LLM.Timeout = %v, want 60s", cfg.LLM.Timeout)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("HTTP.Addr = %v, want :8080", cfg.HTTP.Addr)
	}
	if cfg.Cache.TTL.Hours() != 1 {
		t.Errorf("Cache.TTL = %v, want 1h", cfg.Cache.TTL)
	}
	if cfg.RateLimit.RequestsPerMinute != 10 {
		t.Errorf("RateLimit.RequestsPerMinute = %v, want 10", cfg.RateLimit.RequestsPerMinute)
	}
	if cfg.History.DefaultLimit != 5 || cfg.History.MaxLimit != 20 {
		t.Errorf("History = %+v, want defaults 5/20", cfg.History)
	}
}

func TestLLMSettings(t *testing.T) {
	clearEnvVars()
	defer clearEnvVars()

	settings := LLMSettings()
	if settings.APIKey != "" {
		t.Errorf("APIKey = %q, want empty", settings.APIKey)
	}
	if settings.Endpoint != llm.DefaultEndpoint {
		t.Errorf("Endpoint = %v, want %v", settings.Endpoint, llm.DefaultEndpoint)
	}
	if settings.Model != llm.DefaultModel {
		t.Errorf("Model = %v, want %v", settings.Model, llm.DefaultModel)
	}
	if settings.MaxTokens != llm.DefaultMaxTokens {
		t.Errorf("MaxTokens = %v, want %v", settings.MaxTokens, llm.DefaultMaxTokens)
	}
}

// настройки перечитываются из окружения при каждом вызове
func TestLLMSettings_FreshOnEachCall(t *testing.T) {
	clearEnvVars()
	defer clearEnvVars()

	os.Setenv("OPENAI_MODEL", "gpt-4")
	first := LLMSettings()

	os.Setenv("OPENAI_MODEL", "gpt-4-turbo")
	os.Setenv("OPENAI_API_KEY", "sk-new")
	second := LLMSettings()

	if first.Model != "gpt-4" {
		t.Errorf("first.Model = %v, want gpt-4", first.Model)
	}
	if second.Model != "gpt-4-turbo" {
		t.Errorf("second.Model = %v, want gpt-4-turbo", second.Model)
	}
	if second.APIKey != "sk-new" {
		t.Errorf("second.APIKey = %v, want sk-new", second.APIKey)
	}
}

func TestGetEnvIntOrDefault(t *testing.T) {
	tests := []struct {
		name       string
		envValue   string
		defaultVal int
		want       int
	}{
		{"valid int", "42", 10, 42},
		{"empty string", "", 10, 10},
		{"invalid int", "abc", 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Setenv("TEST_INT", tt.envValue)
			defer os.Unsetenv("TEST_INT")

			got := getEnvIntOrDefault("TEST_INT", tt.defaultVal)
			if got != tt.want {
				t.Errorf("getEnvIntOrDefault() = %v, want %v", got, tt.want)
			}
		})
	}
}

func clearEnvVars() {
	envVars := []string{
		"TELEGRAM_BOT_TOKEN",
		"TELEGRAM_DEBUG",
		"DATABASE_URL",
		"OPENAI_API_KEY",
		"OPENAI_ENDPOINT",
		"OPENAI_MODEL",
		"OPENAI_MAX_TOKENS",
		"LLM_TIMEOUT_SEC",
		"HTTP_ADDR",
		"LOG_LEVEL",
		"CACHE_TTL_SEC",
		"RATE_LIMIT_PER_MINUTE",
		"HISTORY_DEFAULT_LIMIT",
		"HISTORY_MAX_LIMIT",
	}
	for _, v := range envVars {
		os.Unsetenv(v)
	}
}
