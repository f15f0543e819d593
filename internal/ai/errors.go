package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
)

// Kind is the diagnostic class of a failed model call. It is used for logging only.
type Kind string

const (
	KindConfig          Kind = "config"
	KindRateLimited     Kind = "rate_limited"
	KindUnauthorized    Kind = "unauthorized"
	KindServerError     Kind = "server_error"
	KindModelDeprecated Kind = "model_deprecated"
	KindTimeout         Kind = "timeout"
	KindUnknown         Kind = "unknown"
)

// ProviderError is a failed call to the provider, classified once at the boundary.
type ProviderError struct {
	Kind   Kind
	Status int
	Err    error
}

func (e *ProviderError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("ai provider %s (status %d): %v", e.Kind, e.Status, e.Err)
	}
	return fmt.Sprintf("ai provider %s: %v", e.Kind, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

func wrapProviderError(err error) error {
	if err == nil {
		return nil
	}
	pe := &ProviderError{Err: err}
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		pe.Status = apiErr.StatusCode
	}
	pe.Kind = classify(pe.Status, err)
	return pe
}

// Classify maps any error from this package to its Kind. Errors from elsewhere
// are classified by status and message the same way.
func Classify(err error) Kind {
	if err == nil {
		return ""
	}
	var ce *ConfigError
	if errors.As(err, &ce) {
		return KindConfig
	}
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	status := 0
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		status = apiErr.StatusCode
	}
	return classify(status, err)
}

func classify(status int, err error) Kind {
	switch {
	case status == http.StatusTooManyRequests:
		return KindRateLimited
	case status == http.StatusUnauthorized:
		return KindUnauthorized
	case status >= http.StatusInternalServerError:
		return KindServerError
	}

	msg := strings.ToLower(errorMessage(err))
	switch {
	case strings.Contains(msg, "decommissioned"), strings.Contains(msg, "no longer supported"):
		return KindModelDeprecated
	case errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	}
	return KindUnknown
}

// errorMessage avoids (*openai.Error).Error, which dereferences Request and
// Response and panics on errors built without them.
func errorMessage(err error) string {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		if apiErr.Request == nil || apiErr.Response == nil {
			return apiErr.Message
		}
		return apiErr.Message + " " + apiErr.RawJSON()
	}
	return err.Error()
}
