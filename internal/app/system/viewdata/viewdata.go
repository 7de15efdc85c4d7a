// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"net/http"
	"sync"

	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/gorilla/csrf"
)

// DefaultSiteName is shown in the page header when none is configured.
const DefaultSiteName = "Resources"

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
//	data := listData{
//	    BaseVM: viewdata.NewBaseVM(r, "Resources"),
//	    // page-specific fields...
//	}
type BaseVM struct {
	SiteName string

	// Page context
	Title       string
	CurrentPath string

	// CSRF protection for the browse forms
	CSRFToken string
}

var (
	mu       sync.RWMutex
	siteName = DefaultSiteName
)

// SetSiteName sets the header text used by every page.
// Call this once at startup from bootstrap.
func SetSiteName(name string) {
	if name == "" {
		return
	}
	mu.Lock()
	siteName = name
	mu.Unlock()
}

// NewBaseVM creates a populated BaseVM for a page.
func NewBaseVM(r *http.Request, title string) BaseVM {
	mu.RLock()
	name := siteName
	mu.RUnlock()

	return BaseVM{
		SiteName:    name,
		Title:       title,
		CurrentPath: httpnav.CurrentPath(r),
		CSRFToken:   csrf.Token(r),
	}
}
