package web

// errors.go maps errors to responses. The technical error is logged with the
// request ID; the client gets core.MapError's message, action, and code as
// JSON for API routes or as an HTML alert for pages.

import (
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/JonMunkholm/ModCompare/internal/core"
	"github.com/JonMunkholm/ModCompare/internal/export"
	"github.com/JonMunkholm/ModCompare/internal/logging"
	"github.com/JonMunkholm/ModCompare/internal/web/templates"
)

var errRateLimited = errors.New("rate limit exceeded")

// ErrorResponse is the JSON body of API error responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// respondError logs err and writes a user-facing error response.
func respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	userMsg := core.MapError(err)

	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", userMsg.Code,
	)

	if wantsJSON(r) {
		writeJSON(w, statusCode, ErrorResponse{
			Error:   msgOrDefault(userMsg.Message),
			Message: userMsg.Message,
			Action:  userMsg.Action,
			Code:    userMsg.Code,
		})
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	templates.ErrorPage(activeNav(r), userMsg.Message, userMsg.Action, userMsg.Code).Render(r.Context(), w)
}

func msgOrDefault(s string) string {
	if s == "" {
		return http.StatusText(http.StatusInternalServerError)
	}
	return s
}

// statusFor picks the HTTP status for err.
func statusFor(err error) int {
	var loadErr *core.DataLoadError
	switch {
	case errors.Is(err, export.ErrTooManyRenders), errors.Is(err, errRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, core.ErrUnknownFormat):
		return http.StatusNotFound
	case errors.Is(err, core.ErrNoModelsSelected),
		errors.Is(err, core.ErrNoParametersSelected),
		errors.Is(err, core.ErrEmptyGrid):
		return http.StatusUnprocessableEntity
	case errors.Is(err, core.ErrRendererUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, core.ErrSourceNotFound),
		errors.Is(err, core.ErrEmptyTable),
		errors.As(err, &loadErr):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// wantsJSON reports whether the client should get a JSON error body.
func wantsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	return strings.HasPrefix(r.URL.Path, "/api/")
}

func activeNav(r *http.Request) string {
	if strings.HasPrefix(r.URL.Path, "/custom") {
		return templates.NavCustom
	}
	return templates.NavCompare
}

// clientKey strips the port from a remote address.
func clientKey(remoteAddr string) string {
	if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
		return host
	}
	return remoteAddr
}
