package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"

	"github.com/khadim210/WolumaProject-sub000/internal/ai"
	"github.com/khadim210/WolumaProject-sub000/internal/config"
	"github.com/khadim210/WolumaProject-sub000/internal/model"
	"github.com/khadim210/WolumaProject-sub000/internal/service"
	"github.com/khadim210/WolumaProject-sub000/internal/storage"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath()
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// newID generates an id for a new record.
func newID() string {
	return uuid.NewString()
}

// createScorer builds the AI scorer from configuration. API keys come from
// the config file or the provider's conventional environment variable.
func createScorer() (*ai.Scorer, error) {
	provider := viper.GetString("ai.provider")
	if provider == "" {
		provider = "openai"
	}

	cfg := ai.Config{
		Provider:    provider,
		Model:       viper.GetString("ai.model"),
		Temperature: viper.GetFloat64("ai.temperature"),
		MaxTokens:   viper.GetInt("ai.max_tokens"),
		MaxRetries:  viper.GetInt("ai.max_retries"),
		RetryDelay:  viper.GetDuration("ai.retry_delay"),
		RateLimit:   viper.GetInt("ai.rate_limit"),
	}

	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = time.Second
	}
	if cfg.RateLimit == 0 {
		cfg.RateLimit = 60 // requests per minute
	}

	switch provider {
	case "openai":
		apiKey := viper.GetString("ai.openai_api_key")
		if apiKey == "" {
			apiKey = os.Getenv("OPENAI_API_KEY")
		}
		if apiKey == "" {
			return nil, fmt.Errorf("OpenAI API key not found in config or OPENAI_API_KEY environment variable")
		}
		cfg.APIKey = apiKey
		if cfg.Model == "" {
			cfg.Model = "gpt-4-turbo-preview"
		}

	case "anthropic":
		apiKey := viper.GetString("ai.anthropic_api_key")
		if apiKey == "" {
			apiKey = os.Getenv("ANTHROPIC_API_KEY")
		}
		if apiKey == "" {
			return nil, fmt.Errorf("anthropic API key not found in config or ANTHROPIC_API_KEY environment variable")
		}
		cfg.APIKey = apiKey
		if cfg.Model == "" {
			cfg.Model = "claude-3-opus-20240229"
		}

	default:
		return nil, fmt.Errorf("unsupported AI provider: %s", provider)
	}

	return ai.NewScorer(cfg, slog.Default())
}

// resolveActor loads the acting user named by --as (an email address).
func resolveActor(ctx context.Context, store service.Storage, email string) (*model.User, error) {
	if email == "" {
		return nil, fmt.Errorf("an acting user is required; pass --as <email>")
	}
	user, err := store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve acting user %q: %w", email, err)
	}
	if !user.IsActive {
		return nil, fmt.Errorf("user %q is deactivated", email)
	}
	return user, nil
}
