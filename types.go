package hooksched

// EventStatus is the server-owned lifecycle state of an Event. The client
// only reads it; transitions happen on the remote service
// (pending → processing → success|failed).
type EventStatus string

const (
	EventPending    EventStatus = "pending"
	EventProcessing EventStatus = "processing"
	EventSuccess    EventStatus = "success"
	EventFailed     EventStatus = "failed"
)

// RetryConfig is the delivery retry policy applied by the remote service.
// All fields are optional; absent fields fall back to remote defaults.
// Present fields are bounds-checked client-side before transmission.
type RetryConfig struct {
	MaxRetries  *int    `json:"maxRetries,omitempty" validate:"omitnil,min=1,max=10"`
	BackoffMs   *int    `json:"backoffMs,omitempty" validate:"omitnil,min=100,max=5000"`
	BackoffType *string `json:"backoffType,omitempty" validate:"omitnil,oneof=exponential linear"`
}

// WebhookResponse is the recorded outcome of a webhook delivery, filled in by
// the server after an event executes. Body is truncated server-side.
type WebhookResponse struct {
	StatusCode int               `json:"status_code"`
	Headers    map[string]string `json:"headers,omitempty"`
	Body       string            `json:"body,omitempty"`
	DurationMs int               `json:"duration_ms"`
	Error      string            `json:"error,omitempty"`
}

// Event is a one-off scheduled webhook invocation. CronID is set when the
// event was spawned by a cron firing; RetryOf points at the failed event this
// one retries.
type Event struct {
	ID          string            `json:"id"`
	CronID      *string           `json:"cron_id,omitempty"`
	RetryOf     *string           `json:"retry_of,omitempty"`
	ScheduledAt string            `json:"scheduled_at"`
	ExecutedAt  *string           `json:"executed_at,omitempty"`
	Status      EventStatus       `json:"status"`
	WebhookURL  string            `json:"webhook_url"`
	Method      string            `json:"method"`
	Headers     map[string]string `json:"headers,omitempty"`
	Payload     map[string]any    `json:"payload,omitempty"`
	RetryConfig *RetryConfig      `json:"retry_config,omitempty"`
	Response    *WebhookResponse  `json:"response,omitempty"`
	CreatedAt   string            `json:"created_at"`
	UpdatedAt   string            `json:"updated_at"`
	TeamID      string            `json:"team_id"`
}

// Cron is a recurring schedule definition. Each firing produces an Event
// whose CronID references this cron. IsActive defaults to true when nil.
type Cron struct {
	ID             string            `json:"id"`
	CronExpression string            `json:"cron_expression"`
	Timezone       string            `json:"timezone,omitempty"`
	WebhookURL     string            `json:"webhook_url"`
	Method         string            `json:"method"`
	Headers        map[string]string `json:"headers,omitempty"`
	Payload        map[string]any    `json:"payload,omitempty"`
	RetryConfig    *RetryConfig      `json:"retry_config,omitempty"`
	IsActive       *bool             `json:"is_active,omitempty"`
	CreatedAt      string            `json:"created_at"`
	UpdatedAt      string            `json:"updated_at"`
	TeamID         string            `json:"team_id"`
}

// Pagination wraps list results. Page is 0-indexed.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// EventPage is one page of events as returned by the list endpoint.
type EventPage struct {
	Data       []Event    `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// CronPage is one page of crons as returned by the list endpoint.
type CronPage struct {
	Data       []Cron     `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// CreateEventInput is the payload for Events.Create. ScheduledAt must be an
// RFC 3339 timestamp strictly in the future. An empty Method defaults to POST.
type CreateEventInput struct {
	ScheduledAt string            `json:"scheduled_at"`
	WebhookURL  string            `json:"webhook_url"`
	Method      string            `json:"method,omitempty"`
	Headers     map[string]string `json:"headers,omitempty"`
	Payload     map[string]any    `json:"payload,omitempty"`
	RetryConfig *RetryConfig      `json:"retry_config,omitempty"`
}

// UpdateEventInput is the payload for Events.Update. Unlike create, Method is
// never defaulted; leave it empty to keep the method unchanged. The server
// only accepts updates while the event is still pending.
type UpdateEventInput struct {
	ScheduledAt string            `json:"scheduled_at,omitempty"`
	WebhookURL  string            `json:"webhook_url,omitempty"`
	Method      string            `json:"method,omitempty"`
	Headers     map[string]string `json:"headers,omitempty"`
	Payload     map[string]any    `json:"payload,omitempty"`
	RetryConfig *RetryConfig      `json:"retry_config,omitempty"`
}

// CreateCronInput is the payload for Crons.Create. CronExpression is a
// five-field schedule string; its syntax is validated by the server, not here.
type CreateCronInput struct {
	CronExpression string            `json:"cron_expression"`
	Timezone       string            `json:"timezone,omitempty"`
	WebhookURL     string            `json:"webhook_url"`
	Method         string            `json:"method,omitempty"`
	Headers        map[string]string `json:"headers,omitempty"`
	Payload        map[string]any    `json:"payload,omitempty"`
	RetryConfig    *RetryConfig      `json:"retry_config,omitempty"`
	IsActive       *bool             `json:"is_active,omitempty"`
}

// UpdateCronInput is the payload for Crons.Update.
type UpdateCronInput struct {
	CronExpression string            `json:"cron_expression,omitempty"`
	Timezone       string            `json:"timezone,omitempty"`
	WebhookURL     string            `json:"webhook_url,omitempty"`
	Method         string            `json:"method,omitempty"`
	Headers        map[string]string `json:"headers,omitempty"`
	Payload        map[string]any    `json:"payload,omitempty"`
	RetryConfig    *RetryConfig      `json:"retry_config,omitempty"`
	IsActive       *bool             `json:"is_active,omitempty"`
}

// ListEventsParams are optional filters for Events.List. Nil fields are
// omitted from the query string.
type ListEventsParams struct {
	Page   *int
	Limit  *int
	Status *EventStatus
	CronID *string
}

// ListCronsParams are optional filters for Crons.List.
type ListCronsParams struct {
	Page     *int
	Limit    *int
	IsActive *bool
}

// Int returns a pointer to v, for use in params and retry configs.
func Int(v int) *int { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// Status returns a pointer to v, for use in ListEventsParams.
func Status(v EventStatus) *EventStatus { return &v }
