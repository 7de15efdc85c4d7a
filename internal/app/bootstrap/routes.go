// internal/app/bootstrap/routes.go
package bootstrap

import (
	"crypto/sha256"
	"net/http"
	"time"

	errorsfeature "github.com/dalemusser/resourcehub/internal/app/features/errors"
	healthfeature "github.com/dalemusser/resourcehub/internal/app/features/health"
	homefeature "github.com/dalemusser/resourcehub/internal/app/features/home"
	resourcesfeature "github.com/dalemusser/resourcehub/internal/app/features/resources"
	"github.com/dalemusser/resourcehub/internal/app/store/catalog"
	"github.com/dalemusser/resourcehub/internal/app/store/searchlog"
	"github.com/dalemusser/resourcehub/internal/app/system/graphql"
	"github.com/dalemusser/resourcehub/internal/app/system/ratelimit"
	"github.com/dalemusser/resourcehub/internal/app/system/uistate"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// the Startup hook have completed. It boots the template engine, builds the
// catalog client and mounts the feature routers.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	secure := coreCfg.Env == "prod"

	state, err := uistate.New(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("browse state store init failed", zap.Error(err))
		return nil, err
	}

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	errLog := errorsfeature.NewErrorLogger(logger)

	gql := graphql.New(appCfg.APIURL, &http.Client{Timeout: appCfg.APITimeout}, logger)
	store := catalog.New(gql)

	// A nil interface, not a nil *searchlog.Store, disables the search log.
	var sl resourcesfeature.SearchLog
	if appCfg.SearchLog {
		sl = searchlog.New(deps.MongoDatabase)
	}

	r := chi.NewRouter()

	if appCfg.CSRF {
		r.Use(csrfMiddleware(appCfg, secure)...)
	}

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, appCfg.APIURL, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	homeHandler := homefeature.NewHandler()
	r.Mount("/", homefeature.Routes(homeHandler))

	// Each browse request costs one or two upstream API calls.
	var limiter *ratelimit.Limiter
	if appCfg.ActionRate > 0 {
		var opts []ratelimit.Option
		if appCfg.TrustProxy {
			opts = append(opts, ratelimit.WithProxyHeaders())
		}
		limiter = ratelimit.New(appCfg.ActionRate, appCfg.ActionBurst, 10*time.Minute, opts...)
		background.mu.Lock()
		background.limiter = limiter
		background.mu.Unlock()
	}

	resHandler := resourcesfeature.NewHandler(store, state, sl, errLog, logger)
	r.Mount("/resources", resourcesfeature.Routes(resHandler, limiter))

	errorsHandler := errorsfeature.NewHandler()
	r.NotFound(errorsHandler.NotFound)

	logger.Info("routes built",
		zap.String("api_url", appCfg.APIURL),
		zap.Bool("search_log", appCfg.SearchLog),
		zap.Bool("csrf", appCfg.CSRF))
	return r, nil
}

// csrfMiddleware returns the CSRF middleware chain. The token key is derived
// from the session key so both rotate together. Over plain HTTP (dev) the
// request is marked as such so the origin check does not demand TLS.
func csrfMiddleware(appCfg AppConfig, secure bool) []func(http.Handler) http.Handler {
	key := sha256.Sum256([]byte("csrf:" + appCfg.SessionKey))
	protect := csrf.Protect(key[:],
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.SameSite(csrf.SameSiteLaxMode),
	)
	if secure {
		return []func(http.Handler) http.Handler{protect}
	}
	plaintext := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
		})
	}
	return []func(http.Handler) http.Handler{plaintext, protect}
}
