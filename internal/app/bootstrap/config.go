// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/resourcehub/internal/app/system/uistate"
	"github.com/dalemusser/resourcehub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"go.uber.org/zap"
)

// DefaultAPIURL is the CMS GraphQL endpoint the catalog is read from.
const DefaultAPIURL = "https://www.cinecolab.be/api"

const devSessionKey = "dev-only-change-me-please-0123456789ABCDEF"

// appConfigKeys defines the configuration keys for resourcehub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: api_url, mongo_uri, etc.
//   - Environment variables: RESOURCEHUB_API_URL, RESOURCEHUB_MONGO_URI, etc.
//   - Command-line flags: --api_url, --mongo_uri, etc.
var appConfigKeys = []config.AppKey{
	{Name: "api_url", Default: DefaultAPIURL, Desc: "GraphQL endpoint of the resources CMS"},
	{Name: "api_timeout", Default: "10s", Desc: "HTTP timeout for one API request (e.g., 10s, 1m)"},

	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "resourcehub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	{Name: "session_key", Default: devSessionKey, Desc: "Browse-state cookie signing key (must be strong in production)"},
	{Name: "session_name", Default: uistate.DefaultName, Desc: "Browse-state cookie name"},
	{Name: "session_domain", Default: "", Desc: "Browse-state cookie domain (blank means current host)"},

	{Name: "search_log", Default: true, Desc: "Record browse queries in MongoDB and show popular searches"},
	{Name: "search_log_retention", Default: "2160h", Desc: "How long search log entries are kept (e.g., 2160h for 90 days)"},
	{Name: "search_log_prune_interval", Default: "1h", Desc: "How often old search log entries are pruned"},

	{Name: "csrf", Default: true, Desc: "Require a CSRF token on form posts"},
	{Name: "action_rate", Default: 5, Desc: "Browse requests per second allowed per client IP (0 disables)"},
	{Name: "action_burst", Default: 20, Desc: "Burst size for action_rate"},
	{Name: "trust_proxy", Default: false, Desc: "Rate limit on X-Forwarded-For/X-Real-IP (only behind a reverse proxy)"},

	{Name: "site_name", Default: viewdata.DefaultSiteName, Desc: "Name shown in the page header"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig merges, with precedence
// flags > env > files > defaults:
//   - .env files
//   - config.yaml/json/toml files
//   - environment variables (WAFFLE_* for core, RESOURCEHUB_* for app)
//   - command-line flags
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "RESOURCEHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		APIURL:     strings.TrimSpace(appValues.String("api_url")),
		APITimeout: appValues.Duration("api_timeout", 10*time.Second),

		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),

		SearchLog:              appValues.Bool("search_log"),
		SearchLogRetention:     appValues.Duration("search_log_retention", 90*24*time.Hour),
		SearchLogPruneInterval: appValues.Duration("search_log_prune_interval", time.Hour),

		CSRF:        appValues.Bool("csrf"),
		ActionRate:  float64(appValues.Int("action_rate")),
		ActionBurst: appValues.Int("action_burst"),
		TrustProxy:  appValues.Bool("trust_proxy"),

		SiteName: appValues.String("site_name"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if !urlutil.IsValidAbsHTTPURL(appCfg.APIURL) {
		logger.Error("invalid API URL", zap.String("api_url", appCfg.APIURL))
		return fmt.Errorf("invalid api_url %q: must be an absolute http(s) URL", appCfg.APIURL)
	}
	if appCfg.APITimeout <= 0 {
		return fmt.Errorf("api_timeout must be positive, got %s", appCfg.APITimeout)
	}

	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if appCfg.MongoDatabase == "" {
		return fmt.Errorf("mongo_database must not be empty")
	}
	if appCfg.MongoMinPoolSize > appCfg.MongoMaxPoolSize {
		return fmt.Errorf("mongo_min_pool_size (%d) exceeds mongo_max_pool_size (%d)",
			appCfg.MongoMinPoolSize, appCfg.MongoMaxPoolSize)
	}

	if appCfg.SearchLog && (appCfg.SearchLogRetention <= 0 || appCfg.SearchLogPruneInterval <= 0) {
		return fmt.Errorf("search_log_retention and search_log_prune_interval must be positive")
	}
	if appCfg.ActionRate < 0 || (appCfg.ActionRate > 0 && appCfg.ActionBurst < 1) {
		return fmt.Errorf("action_rate must be >= 0 and action_burst >= 1 when limiting")
	}

	if coreCfg != nil && coreCfg.Env == "prod" {
		if appCfg.SessionKey == devSessionKey || len(appCfg.SessionKey) < 32 {
			return fmt.Errorf("session_key must be set to a secret of at least 32 characters in prod")
		}
	}

	return nil
}
