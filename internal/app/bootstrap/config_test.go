package bootstrap

import (
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func validAppConfig() AppConfig {
	return AppConfig{
		APIURL:           DefaultAPIURL,
		APITimeout:       10 * time.Second,
		MongoURI:         "mongodb://localhost:27017",
		MongoDatabase:    "resourcehub",
		MongoMaxPoolSize: 100,
		MongoMinPoolSize: 10,
		SessionKey:       devSessionKey,
		SessionName:      "resourcehub-browse",
		SearchLog:        true,
		CSRF:             true,
		ActionRate:       5,
		ActionBurst:      20,

		SearchLogRetention:     90 * 24 * time.Hour,
		SearchLogPruneInterval: time.Hour,
		SiteName:         "Resources",
	}
}

func TestValidateConfig(t *testing.T) {
	dev := &config.CoreConfig{Env: "dev"}
	prod := &config.CoreConfig{Env: "prod"}

	tests := []struct {
		name    string
		core    *config.CoreConfig
		mutate  func(*AppConfig)
		wantErr string
	}{
		{name: "defaults in dev", core: dev},
		{
			name:    "relative api url",
			core:    dev,
			mutate:  func(c *AppConfig) { c.APIURL = "/api" },
			wantErr: "invalid api_url",
		},
		{
			name:    "non-http api url",
			core:    dev,
			mutate:  func(c *AppConfig) { c.APIURL = "ftp://example.org/api" },
			wantErr: "invalid api_url",
		},
		{
			name:    "zero api timeout",
			core:    dev,
			mutate:  func(c *AppConfig) { c.APITimeout = 0 },
			wantErr: "api_timeout",
		},
		{
			name:    "bad mongo uri",
			core:    dev,
			mutate:  func(c *AppConfig) { c.MongoURI = "localhost:27017" },
			wantErr: "invalid MongoDB URI",
		},
		{
			name:    "empty database",
			core:    dev,
			mutate:  func(c *AppConfig) { c.MongoDatabase = "" },
			wantErr: "mongo_database",
		},
		{
			name:    "pool sizes inverted",
			core:    dev,
			mutate:  func(c *AppConfig) { c.MongoMinPoolSize = 200 },
			wantErr: "mongo_min_pool_size",
		},
		{
			name:    "zero retention",
			core:    dev,
			mutate:  func(c *AppConfig) { c.SearchLogRetention = 0 },
			wantErr: "search_log_retention",
		},
		{
			name:   "zero retention with search log off",
			core:   dev,
			mutate: func(c *AppConfig) { c.SearchLog = false; c.SearchLogRetention = 0 },
		},
		{
			name:    "negative action rate",
			core:    dev,
			mutate:  func(c *AppConfig) { c.ActionRate = -1 },
			wantErr: "action_rate",
		},
		{
			name:    "rate without burst",
			core:    dev,
			mutate:  func(c *AppConfig) { c.ActionBurst = 0 },
			wantErr: "action_burst",
		},
		{
			name:   "rate limiting off",
			core:   dev,
			mutate: func(c *AppConfig) { c.ActionRate = 0; c.ActionBurst = 0 },
		},
		{
			name:    "dev session key in prod",
			core:    prod,
			wantErr: "session_key",
		},
		{
			name:    "short session key in prod",
			core:    prod,
			mutate:  func(c *AppConfig) { c.SessionKey = "short" },
			wantErr: "session_key",
		},
		{
			name:   "strong session key in prod",
			core:   prod,
			mutate: func(c *AppConfig) { c.SessionKey = strings.Repeat("k", 48) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validAppConfig()
			if tt.mutate != nil {
				tt.mutate(&cfg)
			}
			err := ValidateConfig(tt.core, cfg, testLogger())
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("ValidateConfig: unexpected error %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("ValidateConfig: expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ValidateConfig: got %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}
