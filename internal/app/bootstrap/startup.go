// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/resourcehub/internal/app/resources"
	"github.com/dalemusser/resourcehub/internal/app/store/searchlog"
	"github.com/dalemusser/resourcehub/internal/app/system/timeouts"
	"github.com/dalemusser/resourcehub/internal/app/system/viewdata"
	"github.com/dalemusser/resourcehub/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()
	viewdata.SetSiteName(appCfg.SiteName)

	// A browse request waits on one API round trip (the two queries run
	// concurrently), plus a little for the search log write.
	timeouts.Configure(timeouts.Config{Medium: appCfg.APITimeout + timeouts.Short()})
	logger.Debug("timeouts configured",
		zap.Duration("ping", timeouts.Ping()),
		zap.Duration("short", timeouts.Short()),
		zap.Duration("medium", timeouts.Medium()))

	if appCfg.SearchLog && deps.MongoDatabase != nil {
		w := workers.NewSearchLogPrune(searchlog.New(deps.MongoDatabase), logger,
			appCfg.SearchLogPruneInterval, appCfg.SearchLogRetention)
		w.Start()
		background.mu.Lock()
		background.prune = w
		background.mu.Unlock()
	}
	return nil
}
