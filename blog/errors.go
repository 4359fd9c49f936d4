package blog

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrymomot/awesome"
	"github.com/dmitrymomot/awesome/middlewares"
)

var (
	ErrInvalidCookie    = errors.New("blog: malformed session cookie")
	ErrCookieExpired    = errors.New("blog: session cookie expired")
	ErrInvalidSignature = errors.New("blog: session cookie signature mismatch")
	ErrUnknownUser      = errors.New("blog: session user does not exist")
	ErrTemplateNotFound = errors.New("blog: template not found")
	ErrParseTemplates   = errors.New("blog: failed to parse templates")
)

// HandleError renders errors that reached the application error handler.
// API paths get a JSON payload shaped like an APIError, pages get text.
func HandleError(c awesome.Context, err error) error {
	code, message := http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
	if httpErr := awesome.AsHTTPError(err); httpErr != nil {
		code, message = httpErr.Code, httpErr.Message
	} else if rl, ok := middlewares.AsRateLimitError(err); ok {
		code, message = http.StatusTooManyRequests, "Too many attempts, retry in "+rl.RetryAfter.Round(time.Second).String()+"."
	}

	if code >= http.StatusInternalServerError {
		c.LogError("request failed", "error", err)
	} else {
		c.LogDebug("request rejected", "status", code, "error", err)
	}

	if strings.HasPrefix(c.Request().URL.Path, "/api/") {
		return c.JSON(code, map[string]any{
			"error":   "http:" + strings.ToLower(strings.ReplaceAll(http.StatusText(code), " ", "_")),
			"data":    "",
			"message": message,
		})
	}
	return c.String(code, message)
}

// HandleNotFound renders 404 responses.
func HandleNotFound(c awesome.Context) error {
	return HandleError(c, awesome.ErrNotFound("Page not found"))
}
