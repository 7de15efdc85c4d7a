// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig covers the framework-level settings (ports, TLS,
// logging, request limits). AppConfig covers what is specific to browsing
// the resources catalog: where the API lives, where the search log is
// stored, and how visitor state is signed.
type AppConfig struct {
	// Resources API (GraphQL endpoint of the CMS)
	APIURL     string        // e.g., https://www.cinecolab.be/api
	APITimeout time.Duration // per-request HTTP timeout

	// MongoDB connection configuration (search log)
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Browse-state cookie configuration
	SessionKey    string // Secret key for signing the cookie (must be strong in production)
	SessionName   string // Cookie name (default: resourcehub-browse)
	SessionDomain string // Cookie domain (blank means current host)

	// Search log
	SearchLog              bool          // record browse queries and show popular searches
	SearchLogRetention     time.Duration // entries older than this are pruned
	SearchLogPruneInterval time.Duration

	// Request protection
	CSRF        bool    // apply gorilla/csrf to the form posts
	ActionRate  float64 // browse requests per second per client IP (0 disables)
	ActionBurst int
	TrustProxy  bool // key the rate limit on proxy headers instead of RemoteAddr

	// Presentation
	SiteName string
}
