package hooksched

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const eventsPath = "/api/v1/events"

// EventsService manages one-off scheduled webhook events.
type EventsService struct {
	client *Client
}

// List returns one page of events. All filters are optional; out-of-range
// pages are not checked here and surface as a server error.
func (s *EventsService) List(ctx context.Context, params *ListEventsParams) (*EventPage, error) {
	query := url.Values{}
	if params != nil {
		if params.Page != nil {
			query.Set("page", strconv.Itoa(*params.Page))
		}
		if params.Limit != nil {
			query.Set("limit", strconv.Itoa(*params.Limit))
		}
		if params.Status != nil {
			query.Set("status", string(*params.Status))
		}
		if params.CronID != nil {
			query.Set("cron_id", *params.CronID)
		}
	}

	var page EventPage
	if err := s.client.transport.do(ctx, http.MethodGet, eventsPath, query, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Get retrieves a single event by ID.
func (s *EventsService) Get(ctx context.Context, id string) (*Event, error) {
	var env dataEnvelope[Event]
	if err := s.client.transport.do(ctx, http.MethodGet, eventsPath+"/"+url.PathEscape(id), nil, nil, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// Create schedules a new webhook event. The scheduled time must be strictly
// in the future; an unset method defaults to POST. All validation runs before
// any request is sent.
func (s *EventsService) Create(ctx context.Context, in CreateEventInput) (*Event, error) {
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
	if err := validateScheduledAt(in.ScheduledAt, time.Now()); err != nil {
		return nil, err
	}

	var env dataEnvelope[Event]
	if err := s.client.transport.do(ctx, http.MethodPost, eventsPath, nil, &in, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// Update modifies a pending event. Fields left empty are not validated and
// stay unchanged; the method is never defaulted here.
func (s *EventsService) Update(ctx context.Context, id string, in UpdateEventInput) (*Event, error) {
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
	if in.ScheduledAt != "" {
		if err := validateScheduledAt(in.ScheduledAt, time.Now()); err != nil {
			return nil, err
		}
	}

	var env dataEnvelope[Event]
	if err := s.client.transport.do(ctx, http.MethodPut, eventsPath+"/"+url.PathEscape(id), nil, &in, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// Delete removes a pending event. Events spawned by a cron cannot be deleted
// directly; the server rejects that.
func (s *EventsService) Delete(ctx context.Context, id string) error {
	return s.client.transport.do(ctx, http.MethodDelete, eventsPath+"/"+url.PathEscape(id), nil, nil, nil)
}
