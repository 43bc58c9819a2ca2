// Package hooksched provides a typed Go client for the hookSCHED
// webhook-scheduling API.
//
// Usage:
//
//	c := hooksched.New(hooksched.Config{
//	    APIKey:  "hs_...",
//	    BaseURL: "https://example.com",
//	})
//
//	// Schedule a one-off webhook.
//	event, err := c.Schedule(ctx, hooksched.CreateEventInput{
//	    WebhookURL:  "/hooks/report",
//	    ScheduledAt: time.Now().Add(time.Hour).Format(time.RFC3339),
//	})
//
//	// Register a recurring one.
//	cron, err := c.Repeat(ctx, hooksched.CreateCronInput{
//	    CronExpression: "0 9 * * 1",
//	    WebhookURL:     "https://example.com/hooks/weekly",
//	})
//
// All scheduling, cron evaluation, and delivery retries happen on the remote
// service; this package only validates inputs, issues requests, and maps
// responses into typed values and errors.
package hooksched

import (
	"context"

	"github.com/rs/zerolog"
)

// Client is the hookSCHED API client. It is safe for concurrent use: nothing
// is mutated after New returns.
type Client struct {
	Events *EventsService
	Crons  *CronsService

	baseURL   string
	transport *transport
}

// New builds a client from cfg. It never fails; a missing API key is only
// reported by the first call that needs one.
func New(cfg Config) *Client {
	cfg = resolveConfig(cfg)

	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	c := &Client{
		baseURL: cfg.BaseURL,
		transport: &transport{
			apiURL:     cfg.APIURL,
			apiKey:     cfg.APIKey,
			httpClient: cfg.HTTPClient,
			logger:     logger,
		},
	}
	c.Events = &EventsService{client: c}
	c.Crons = &CronsService{client: c}
	return c
}

// dataEnvelope is the wire wrapper for single-item responses.
type dataEnvelope[T any] struct {
	Data T `json:"data"`
}

// Schedule is shorthand for Events.Create.
func (c *Client) Schedule(ctx context.Context, in CreateEventInput) (*Event, error) {
	return c.Events.Create(ctx, in)
}

// Repeat is shorthand for Crons.Create.
func (c *Client) Repeat(ctx context.Context, in CreateCronInput) (*Cron, error) {
	return c.Crons.Create(ctx, in)
}
