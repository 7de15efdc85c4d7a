package errors

import (
	"net/http"

	"github.com/dalemusser/resourcehub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// pageData is the view model for error pages and fragments.
type pageData struct {
	viewdata.BaseVM
	Message string
	BackURL string
}

// ErrorLogger logs server-side failures and shows the visitor a friendly
// message instead of the raw error.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger writing to logger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

// LogServerError logs err with msg and the request path, then shows userMsg:
// a 502 page for full requests, or a 200 alert fragment for HTMX requests
// (htmx does not swap non-2xx responses). Upstream API failures are the only
// server errors this app produces, hence Bad Gateway.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	e.log.Error(msg,
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path))

	if backURL == "" {
		backURL = "/"
	}
	data := pageData{
		BaseVM:  viewdata.NewBaseVM(r, "Something went wrong"),
		Message: userMsg,
		BackURL: backURL,
	}

	if r.Header.Get("HX-Request") == "true" {
		templates.RenderSnippet(w, "error_alert", data)
		return
	}
	w.WriteHeader(http.StatusBadGateway)
	templates.Render(w, r, "error_page", data)
}

// Handler is the errors feature handler.
// No dependencies; it just renders templates.
type Handler struct{}

// NewHandler constructs an errors Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// NotFound renders a friendly 404 page.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	data := pageData{
		BaseVM:  viewdata.NewBaseVM(r, "Not found"),
		Message: "We couldn't find that page.",
		BackURL: "/resources",
	}
	w.WriteHeader(http.StatusNotFound)
	templates.Render(w, r, "error_page", data)
}
