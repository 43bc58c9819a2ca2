package hooksched

import (
	"errors"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// retryValidate checks RetryConfig bounds against its struct tags. Error
// messages use the JSON field names, not the Go ones.
var retryValidate = newRetryValidator()

func newRetryValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return v
}

// normalizeWebhookURL validates a webhook target and resolves relative paths
// against the configured base URL. Absolute http(s) URLs pass through
// unchanged. Deterministic, no side effects.
func normalizeWebhookURL(raw, base string) (string, error) {
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		if _, err := url.ParseRequestURI(raw); err != nil {
			return "", newValidationError("invalid webhook_url %q: not a well-formed URL", raw)
		}
		return raw, nil
	}

	if strings.HasPrefix(raw, "/") {
		if base == "" {
			return "", newValidationError("relative webhook_url %q requires a configured base URL", raw)
		}
		resolved := strings.TrimSuffix(base, "/") + raw
		if _, err := url.ParseRequestURI(resolved); err != nil {
			return "", newValidationError("invalid webhook_url %q resolved against base URL %q: not a well-formed URL", raw, base)
		}
		return resolved, nil
	}

	return "", newValidationError("invalid webhook_url %q: must be an absolute http(s) URL or a path starting with '/'", raw)
}

// validateRetryConfig bounds-checks the fields that are present. A nil config
// means "use remote defaults" and always passes; absent fields are not
// required.
func validateRetryConfig(rc *RetryConfig) error {
	if rc == nil {
		return nil
	}
	err := retryValidate.Struct(rc)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return newValidationError("invalid retry_config: field %s rejected value %v", fe.Field(), fe.Value())
	}
	return newValidationError("invalid retry_config: %v", err)
}

// validateHeaders rejects blank header keys. Values are typed strings, so
// nothing else can go wrong client-side; no size or count limit applies.
func validateHeaders(headers map[string]string) error {
	for key := range headers {
		if strings.TrimSpace(key) == "" {
			return newValidationError("invalid header key %q: header keys must be non-blank", key)
		}
	}
	return nil
}

var allowedMethods = map[string]struct{}{
	"GET": {}, "POST": {}, "PUT": {}, "PATCH": {},
	"DELETE": {}, "HEAD": {}, "OPTIONS": {},
}

// validateMethod checks membership in the fixed method set. An empty string
// means the caller did not specify a method and passes through; create
// operations substitute POST afterwards, updates never do.
func validateMethod(method string) error {
	if method == "" {
		return nil
	}
	if _, ok := allowedMethods[method]; !ok {
		return newValidationError("invalid method %q: must be one of GET, POST, PUT, PATCH, DELETE, HEAD, OPTIONS", method)
	}
	return nil
}

// validateScheduledAt requires an RFC 3339 timestamp strictly after now.
// "now" itself is rejected. This is a fast-fail guard only: a timestamp that
// races past the current instant between this check and transmission is the
// server's to reject.
func validateScheduledAt(raw string, now time.Time) error {
	if strings.TrimSpace(raw) == "" {
		return newValidationError("scheduled_at must be a non-empty timestamp, got %q", raw)
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return newValidationError("scheduled_at %q is not a valid RFC 3339 timestamp", raw)
	}
	if !ts.After(now) {
		return newValidationError("scheduled_at %q must be strictly after the current time %s", raw, now.UTC().Format(time.RFC3339))
	}
	return nil
}
