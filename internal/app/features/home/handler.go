package home

import (
	"net/http"
)

// Handler serves the site root.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET / – landing                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeRoot sends visitors to the browse page, the only page the site has.
func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/resources", http.StatusSeeOther)
}
