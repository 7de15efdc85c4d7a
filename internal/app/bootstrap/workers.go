// internal/app/bootstrap/workers.go
package bootstrap

import (
	"sync"

	"github.com/dalemusser/resourcehub/internal/app/system/ratelimit"
	"github.com/dalemusser/resourcehub/internal/app/system/workers"
)

// background holds the long-lived goroutines started by Startup and
// BuildHandler so Shutdown can stop them.
var background struct {
	mu      sync.Mutex
	prune   *workers.SearchLogPrune
	limiter *ratelimit.Limiter
}

func stopBackground() {
	background.mu.Lock()
	defer background.mu.Unlock()
	if background.prune != nil {
		background.prune.Stop()
		background.prune = nil
	}
	if background.limiter != nil {
		background.limiter.Stop()
		background.limiter = nil
	}
}
