package hooksched

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// transport performs one authenticated JSON request per call. It owns the
// status-code-to-error mapping; everything above it deals only in typed
// values and *Error.
type transport struct {
	apiURL     string
	apiKey     string
	httpClient *http.Client
	logger     zerolog.Logger
}

// key returns the resolved API key. The presence check is deferred to here so
// that constructing a client without credentials never fails, only using one.
func (t *transport) key() (string, error) {
	if t.apiKey == "" {
		return "", &Error{
			Code:       ErrCodeUnauthorized,
			StatusCode: 401,
			Message:    fmt.Sprintf("API key is required: set Config.APIKey or the %s environment variable", EnvAPIKey),
		}
	}
	return t.apiKey, nil
}

// do issues a single request and decodes the response into out (when out is
// non-nil). Non-2xx responses are translated into *Error; transport-level
// failures are wrapped and returned as-is.
func (t *transport) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	key, err := t.key()
	if err != nil {
		return err
	}

	endpoint := t.apiURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, marshalErr := json.Marshal(body)
		if marshalErr != nil {
			return fmt.Errorf("marshal request body: %w", marshalErr)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+key)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("hooksched API request: %w", err)
	}
	defer resp.Body.Close()

	t.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("API request completed")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return t.apiError(resp)
	}

	if out != nil {
		if decodeErr := json.NewDecoder(resp.Body).Decode(out); decodeErr != nil {
			return &Error{
				Code:       ErrCodeInternalServerError,
				StatusCode: resp.StatusCode,
				Message:    fmt.Sprintf("failed to decode response body: %v", decodeErr),
			}
		}
	}
	return nil
}

// errorEnvelope is the wire shape of API failures.
type errorEnvelope struct {
	Error struct {
		Message string `json:"message"`
		Code    string `json:"code"`
		Details any    `json:"details"`
	} `json:"error"`
}

// apiError maps a non-2xx response onto the error taxonomy. A 400 is split
// into validation vs. generic bad request on the server-supplied code; any
// unmapped status and any undecodable body collapse into an internal error.
func (t *transport) apiError(resp *http.Response) error {
	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	var envelope errorEnvelope
	if readErr != nil || json.Unmarshal(raw, &envelope) != nil || envelope.Error.Message == "" {
		return &Error{
			Code:       ErrCodeInternalServerError,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("unexpected response from API (status %d)", resp.StatusCode),
		}
	}

	var code string
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		code = ErrCodeUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		code = ErrCodeNotFound
	case resp.StatusCode == http.StatusBadRequest:
		if envelope.Error.Code == ErrCodeValidation {
			code = ErrCodeValidation
		} else {
			code = ErrCodeBadRequest
		}
	default:
		code = ErrCodeInternalServerError
	}

	return &Error{
		Code:       code,
		StatusCode: resp.StatusCode,
		Message:    envelope.Error.Message,
		Details:    envelope.Error.Details,
	}
}
