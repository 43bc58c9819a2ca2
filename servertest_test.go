package hooksched_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	hooksched "github.com/cankoe/hooksched-go"
)

const testAPIKey = "hs_test_key"

// fakeAPI is an in-memory stand-in for the hookSCHED service, implementing
// just enough of the wire contract for the test suite. Tests run their calls
// sequentially, so there is no locking.
type fakeAPI struct {
	events map[string]*hooksched.Event
	crons  map[string]*hooksched.Cron
	nextID int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		events: make(map[string]*hooksched.Event),
		crons:  make(map[string]*hooksched.Cron),
	}
}

func (f *fakeAPI) id(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s_%d", prefix, f.nextID)
}

func (f *fakeAPI) router() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	api := r.Group("/api/v1", authMiddleware(testAPIKey))
	{
		api.GET("/events", f.listEvents)
		api.POST("/events", f.createEvent)
		api.GET("/events/:id", f.getEvent)
		api.PUT("/events/:id", f.updateEvent)
		api.DELETE("/events/:id", f.deleteEvent)

		api.GET("/crons", f.listCrons)
		api.POST("/crons", f.createCron)
		api.GET("/crons/:id", f.getCron)
		api.PUT("/crons/:id", f.updateCron)
		api.DELETE("/crons/:id", f.deleteCron)
	}
	return r
}

func authMiddleware(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != "Bearer "+apiKey {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "Invalid or missing API key", "code": "UNAUTHORIZED"},
			})
			return
		}
		c.Next()
	}
}

func apiError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error": gin.H{"message": message, "code": code},
	})
}

func (f *fakeAPI) createEvent(c *gin.Context) {
	var evt hooksched.Event
	if err := c.ShouldBindJSON(&evt); err != nil {
		apiError(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body")
		return
	}
	now := time.Now().UTC().Format(time.RFC3339)
	evt.ID = f.id("evt")
	evt.Status = hooksched.EventPending
	evt.CreatedAt = now
	evt.UpdatedAt = now
	evt.TeamID = "team_1"
	f.events[evt.ID] = &evt
	c.JSON(http.StatusCreated, gin.H{"data": evt})
}

func (f *fakeAPI) getEvent(c *gin.Context) {
	evt, ok := f.events[c.Param("id")]
	if !ok {
		apiError(c, http.StatusNotFound, "NOT_FOUND", "Event not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": evt})
}

func (f *fakeAPI) updateEvent(c *gin.Context) {
	evt, ok := f.events[c.Param("id")]
	if !ok {
		apiError(c, http.StatusNotFound, "NOT_FOUND", "Event not found")
		return
	}
	if evt.Status != hooksched.EventPending {
		apiError(c, http.StatusBadRequest, "BAD_REQUEST", "Only pending events can be updated")
		return
	}
	var in hooksched.UpdateEventInput
	if err := c.ShouldBindJSON(&in); err != nil {
		apiError(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body")
		return
	}
	if in.ScheduledAt != "" {
		evt.ScheduledAt = in.ScheduledAt
	}
	if in.WebhookURL != "" {
		evt.WebhookURL = in.WebhookURL
	}
	if in.Method != "" {
		evt.Method = in.Method
	}
	if in.Headers != nil {
		evt.Headers = in.Headers
	}
	if in.Payload != nil {
		evt.Payload = in.Payload
	}
	if in.RetryConfig != nil {
		evt.RetryConfig = in.RetryConfig
	}
	evt.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	c.JSON(http.StatusOK, gin.H{"data": evt})
}

func (f *fakeAPI) deleteEvent(c *gin.Context) {
	evt, ok := f.events[c.Param("id")]
	if !ok {
		apiError(c, http.StatusNotFound, "NOT_FOUND", "Event not found")
		return
	}
	if evt.CronID != nil {
		apiError(c, http.StatusBadRequest, "BAD_REQUEST", "Cron-spawned events cannot be deleted directly")
		return
	}
	delete(f.events, evt.ID)
	c.Status(http.StatusNoContent)
}

func (f *fakeAPI) listEvents(c *gin.Context) {
	var items []*hooksched.Event
	for _, evt := range f.events {
		if status := c.Query("status"); status != "" && string(evt.Status) != status {
			continue
		}
		if cronID := c.Query("cron_id"); cronID != "" && (evt.CronID == nil || *evt.CronID != cronID) {
			continue
		}
		items = append(items, evt)
	}
	paginate(c, len(items), func(start, end int) any { return items[start:end] })
}

func (f *fakeAPI) createCron(c *gin.Context) {
	var cron hooksched.Cron
	if err := c.ShouldBindJSON(&cron); err != nil {
		apiError(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body")
		return
	}
	if len(strings.Fields(cron.CronExpression)) != 5 {
		apiError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid cron expression: expected 5 fields")
		return
	}
	now := time.Now().UTC().Format(time.RFC3339)
	cron.ID = f.id("cron")
	cron.CreatedAt = now
	cron.UpdatedAt = now
	cron.TeamID = "team_1"
	f.crons[cron.ID] = &cron
	c.JSON(http.StatusCreated, gin.H{"data": cron})
}

func (f *fakeAPI) getCron(c *gin.Context) {
	cron, ok := f.crons[c.Param("id")]
	if !ok {
		apiError(c, http.StatusNotFound, "NOT_FOUND", "Cron not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": cron})
}

func (f *fakeAPI) updateCron(c *gin.Context) {
	cron, ok := f.crons[c.Param("id")]
	if !ok {
		apiError(c, http.StatusNotFound, "NOT_FOUND", "Cron not found")
		return
	}
	var in hooksched.UpdateCronInput
	if err := c.ShouldBindJSON(&in); err != nil {
		apiError(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body")
		return
	}
	if in.CronExpression != "" {
		if len(strings.Fields(in.CronExpression)) != 5 {
			apiError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid cron expression: expected 5 fields")
			return
		}
		cron.CronExpression = in.CronExpression
	}
	if in.WebhookURL != "" {
		cron.WebhookURL = in.WebhookURL
	}
	if in.Method != "" {
		cron.Method = in.Method
	}
	if in.Headers != nil {
		cron.Headers = in.Headers
	}
	if in.RetryConfig != nil {
		cron.RetryConfig = in.RetryConfig
	}
	if in.IsActive != nil {
		cron.IsActive = in.IsActive
	}
	cron.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	c.JSON(http.StatusOK, gin.H{"data": cron})
}

func (f *fakeAPI) deleteCron(c *gin.Context) {
	if _, ok := f.crons[c.Param("id")]; !ok {
		apiError(c, http.StatusNotFound, "NOT_FOUND", "Cron not found")
		return
	}
	delete(f.crons, c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (f *fakeAPI) listCrons(c *gin.Context) {
	var items []*hooksched.Cron
	for _, cron := range f.crons {
		if active := c.Query("is_active"); active != "" {
			isActive := cron.IsActive == nil || *cron.IsActive
			if strconv.FormatBool(isActive) != active {
				continue
			}
		}
		items = append(items, cron)
	}
	paginate(c, len(items), func(start, end int) any { return items[start:end] })
}

// paginate slices a result set by the page/limit query params. A page past
// the end of the data is a server-side failure, mirroring how the real API
// behaves on out-of-range pages.
func paginate(c *gin.Context, total int, slice func(start, end int) any) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 {
		limit = 50
	}

	start := page * limit
	if start > total || (start == total && page > 0 && total > 0) {
		apiError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR",
			fmt.Sprintf("page %d is out of range", page))
		return
	}
	end := start + limit
	if end > total {
		end = total
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       slice(start, end),
		"pagination": gin.H{"page": page, "limit": limit, "total": total},
	})
}

// newTestClient starts an httptest server around a fake API and returns a
// client pointed at it, plus a cleanup function.
func newTestClient(t *testing.T, f *fakeAPI, mutate ...func(*hooksched.Config)) (*hooksched.Client, func()) {
	t.Helper()
	srv := httptest.NewServer(f.router())
	cfg := hooksched.Config{
		APIKey: testAPIKey,
		APIURL: srv.URL,
		Getenv: func(string) string { return "" },
	}
	for _, m := range mutate {
		m(&cfg)
	}
	return hooksched.New(cfg), srv.Close
}

func futureTimestamp(d time.Duration) string {
	return time.Now().Add(d).UTC().Format(time.RFC3339)
}
