package hooksched

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

const cronsPath = "/api/v1/crons"

// CronsService manages recurring cron-style schedules. Cron expression
// syntax is deliberately not checked client-side; the server is the sole
// authority on what parses.
type CronsService struct {
	client *Client
}

// List returns one page of crons.
func (s *CronsService) List(ctx context.Context, params *ListCronsParams) (*CronPage, error) {
	query := url.Values{}
	if params != nil {
		if params.Page != nil {
			query.Set("page", strconv.Itoa(*params.Page))
		}
		if params.Limit != nil {
			query.Set("limit", strconv.Itoa(*params.Limit))
		}
		if params.IsActive != nil {
			query.Set("is_active", strconv.FormatBool(*params.IsActive))
		}
	}

	var page CronPage
	if err := s.client.transport.do(ctx, http.MethodGet, cronsPath, query, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Get retrieves a single cron by ID.
func (s *CronsService) Get(ctx context.Context, id string) (*Cron, error) {
	var env dataEnvelope[Cron]
	if err := s.client.transport.do(ctx, http.MethodGet, cronsPath+"/"+url.PathEscape(id), nil, nil, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// Create registers a new recurring schedule. An unset method defaults to
// POST. Validation runs before any request is sent.
func (s *CronsService) Create(ctx context.Context, in CreateCronInput) (*Cron, error) {
	if err := validateMethod(in.Method); err != nil {
		return nil, err
	}
	if in.Method == "" {
		in.Method = http.MethodPost
	}
	resolved, err := normalizeWebhookURL(in.WebhookURL, s.client.baseURL)
	if err != nil {
		return nil, err
	}
	in.WebhookURL = resolved
	if err := validateRetryConfig(in.RetryConfig); err != nil {
		return nil, err
	}
	if err := validateHeaders(in.Headers); err != nil {
		return nil, err
	}

	var env dataEnvelope[Cron]
	if err := s.client.transport.do(ctx, http.MethodPost, cronsPath, nil, &in, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// Update modifies a cron. Fields left empty stay unchanged; the method is
// never defaulted here.
func (s *CronsService) Update(ctx context.Context, id string, in UpdateCronInput) (*Cron, error) {
	if err := validateMethod(in.Method); err != nil {
		return nil, err
	}
	if in.WebhookURL != "" {
		resolved, err := normalizeWebhookURL(in.WebhookURL, s.client.baseURL)
		if err != nil {
			return nil, err
		}
		in.WebhookURL = resolved
	}
	if err := validateRetryConfig(in.RetryConfig); err != nil {
		return nil, err
	}
	if err := validateHeaders(in.Headers); err != nil {
		return nil, err
	}

	var env dataEnvelope[Cron]
	if err := s.client.transport.do(ctx, http.MethodPut, cronsPath+"/"+url.PathEscape(id), nil, &in, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// Delete removes a cron. What happens to its already-spawned events is the
// server's policy, not the client's.
func (s *CronsService) Delete(ctx context.Context, id string) error {
	return s.client.transport.do(ctx, http.MethodDelete, cronsPath+"/"+url.PathEscape(id), nil, nil, nil)
}
