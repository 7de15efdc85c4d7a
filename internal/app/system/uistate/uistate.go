// Package uistate keeps a visitor's browse selections (categories, search
// text, page) in a signed cookie session so a reload or an HTMX action can
// rebuild the same view.
package uistate

import (
	"fmt"
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Session keys                                                                |
*─────────────────────────────────────────────────────────────────────────────*/

const (
	DefaultName = "resourcehub-browse"

	categoriesKey = "cats"
	searchKey     = "q"
	pageKey       = "page"
)

// State is the user-controlled part of a browse view.
type State struct {
	CategoryIDs []string
	Search      string
	Page        int
}

// Store reads and writes State in a cookie session.
type Store struct {
	cookies *sessions.CookieStore
	name    string
	log     *zap.Logger
}

// New builds a Store signing cookies with sessionKey.
//
// An empty key is replaced by a random one, which means state does not
// survive a restart; a short key is accepted with a warning.
// In production (secure=true) cookies are Secure with SameSite=Lax; in local
// dev over http://localhost use secure=false so cookies are accepted.
func New(sessionKey, name, domain string, secure bool, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	key := []byte(sessionKey)
	if len(key) == 0 {
		key = securecookie.GenerateRandomKey(32)
		if key == nil {
			return nil, fmt.Errorf("uistate: could not generate a session key")
		}
		logger.Warn("session key is empty; using a random key (browse state resets on restart)")
	} else if len(key) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(key)))
	}
	if name == "" {
		name = DefaultName
	}

	cs := sessions.NewCookieStore(key)
	cs.Options = &sessions.Options{
		Domain:   domain,
		Path:     "/",
		MaxAge:   0, // browser-session cookie
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	return &Store{cookies: cs, name: name, log: logger}, nil
}

// Load returns the stored state, or the zero state (page 1) if the visitor
// has none or the cookie cannot be decoded.
func (s *Store) Load(r *http.Request) State {
	st := State{Page: 1}

	sess, err := s.cookies.Get(r, s.name)
	if err != nil {
		// A tampered or rotated-key cookie yields a fresh session.
		s.log.Debug("browse session decode failed", zap.Error(err))
	}
	if sess == nil {
		return st
	}

	if v, ok := sess.Values[categoriesKey].([]string); ok && len(v) > 0 {
		st.CategoryIDs = v
	}
	if v, ok := sess.Values[searchKey].(string); ok {
		st.Search = v
	}
	if v, ok := sess.Values[pageKey].(int); ok {
		st.Page = v
	}
	return st
}

// Save writes st to the visitor's cookie.
func (s *Store) Save(w http.ResponseWriter, r *http.Request, st State) error {
	sess, err := s.cookies.Get(r, s.name)
	if err != nil && sess == nil {
		return fmt.Errorf("uistate: get session: %w", err)
	}
	// gob registers []string, so ids containing any character round-trip.
	sess.Values[categoriesKey] = append([]string{}, st.CategoryIDs...)
	sess.Values[searchKey] = st.Search
	sess.Values[pageKey] = st.Page
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("uistate: save session: %w", err)
	}
	return nil
}
