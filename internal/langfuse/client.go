// Package langfuse talks to the Langfuse public API: summary traces and
// ratings go through the batch ingestion endpoint, prompts through the prompt
// endpoint. An unconfigured client is a no-op.
package langfuse

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/blaisecz/health-trends/internal/logger"
)

const (
	queueSize     = 256
	maxBatch      = 20
	flushInterval = time.Second
	sendTimeout   = 5 * time.Second
)

// Client records summary traces and ratings.
type Client interface {
	IsEnabled() bool
	// CreateTrace queues a trace and returns its ID without waiting for
	// delivery.
	CreateTrace(ctx context.Context, in TraceInput) (string, error)
	// CreateScore queues a score for an existing trace.
	CreateScore(ctx context.Context, in ScoreInput) error
	// Close delivers queued events and stops the sender.
	Close(ctx context.Context) error
}

// TraceInput describes one generated summary or chat reply.
type TraceInput struct {
	ID        string // defaults to a random UUID
	UserID    string // patient identifier
	SessionID string // groups a patient's traces
	Name      string // e.g. "health-summary"
	Input     any
	Output    any
	Tags      []string
	Metadata  map[string]any
}

// ScoreInput is a rating attached to a trace.
type ScoreInput struct {
	TraceID string
	Name    string // e.g. "summary_rating"
	Value   float64
	Comment string
}

// Config holds Langfuse client configuration.
type Config struct {
	BaseURL     string
	PublicKey   string
	SecretKey   string
	Environment string
}

type client struct {
	baseURL     string
	publicKey   string
	secretKey   string
	environment string
	httpClient  *http.Client
	log         *logger.Entry

	mu     sync.Mutex
	closed bool
	queue  chan ingestionEvent
	done   chan struct{}
}

// NewClient creates a Langfuse client. Without a base URL and both keys it
// returns a disabled no-op client; otherwise it starts the batch sender.
func NewClient(cfg Config) Client {
	log := logger.GetLogger().WithComponent("langfuse")

	c := &client{
		baseURL:     cfg.BaseURL,
		publicKey:   cfg.PublicKey,
		secretKey:   cfg.SecretKey,
		environment: cfg.Environment,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		log:         log,
	}

	switch {
	case cfg.BaseURL == "":
		log.Info("disabled: LANGFUSE_BASE_URL is empty")
		return c
	case cfg.PublicKey == "":
		log.Info("disabled: LANGFUSE_PUBLIC_KEY is empty")
		return c
	case cfg.SecretKey == "":
		log.Info("disabled: LANGFUSE_SECRET_KEY is empty")
		return c
	}

	log.WithFields(logger.Fields{"base_url": cfg.BaseURL, "env": cfg.Environment}).Info("enabled")
	c.queue = make(chan ingestionEvent, queueSize)
	c.done = make(chan struct{})
	go c.run()
	return c
}

func (c *client) IsEnabled() bool {
	return c.queue != nil
}

func (c *client) CreateTrace(ctx context.Context, in TraceInput) (string, error) {
	if !c.IsEnabled() {
		return "", nil
	}

	traceID := in.ID
	if traceID == "" {
		traceID = uuid.New().String()
	}

	metadata := make(map[string]any, len(in.Metadata)+1)
	for k, v := range in.Metadata {
		metadata[k] = v
	}
	if c.environment != "" {
		metadata["environment"] = c.environment
	}

	c.enqueue("trace-create", traceBody{
		ID:          traceID,
		Name:        in.Name,
		UserID:      in.UserID,
		SessionID:   in.SessionID,
		Input:       in.Input,
		Output:      in.Output,
		Tags:        in.Tags,
		Metadata:    metadata,
		Environment: c.environment,
	})
	return traceID, nil
}

func (c *client) CreateScore(ctx context.Context, in ScoreInput) error {
	if !c.IsEnabled() {
		return nil
	}
	if in.TraceID == "" {
		return fmt.Errorf("score %q has no trace ID", in.Name)
	}

	c.enqueue("score-create", scoreBody{
		ID:       uuid.New().String(),
		TraceID:  in.TraceID,
		Name:     in.Name,
		Value:    in.Value,
		DataType: "NUMERIC",
		Comment:  in.Comment,
	})
	return nil
}

// enqueue never blocks the request path. Events are dropped once the queue
// is full or the client is closed.
func (c *client) enqueue(eventType string, body any) {
	event := ingestionEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Body:      body,
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		c.log.WithFields(logger.Fields{"event_type": eventType}).Warn("client closed, event dropped")
		return
	}
	select {
	case c.queue <- event:
	default:
		c.log.WithFields(logger.Fields{"event_type": eventType}).Warn("queue full, event dropped")
	}
}

func (c *client) Close(ctx context.Context) error {
	if !c.IsEnabled() {
		return nil
	}

	c.mu.Lock()
	if !c.closed {
		c.closed = true
		close(c.queue)
	}
	c.mu.Unlock()

	select {
	case <-c.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// run batches queued events until the queue is closed and drained.
func (c *client) run() {
	defer close(c.done)

	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()

	var batch []ingestionEvent
	flush := func() {
		if len(batch) == 0 {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()
		if err := c.sendBatch(ctx, batch); err != nil {
			c.log.WithError(err).WithFields(logger.Fields{"events": len(batch)}).Warn("batch send failed")
		}
		batch = nil
	}

	for {
		select {
		case event, ok := <-c.queue:
			if !ok {
				flush()
				return
			}
			batch = append(batch, event)
			if len(batch) >= maxBatch {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}

func (c *client) sendBatch(ctx context.Context, events []ingestionEvent) error {
	body, err := json.Marshal(batchPayload{Batch: events})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/public/ingestion", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.publicKey, c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("ingestion failed with status %d", resp.StatusCode)
	}

	// 207 reports per-event failures.
	if resp.StatusCode == http.StatusMultiStatus {
		var result ingestionResult
		if err := json.NewDecoder(resp.Body).Decode(&result); err == nil && len(result.Errors) > 0 {
			return fmt.Errorf("ingestion rejected %d of %d events: %s",
				len(result.Errors), len(events), result.Errors[0].Message)
		}
	}
	return nil
}

type batchPayload struct {
	Batch []ingestionEvent `json:"batch"`
}

type ingestionEvent struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
	Body      any    `json:"body"`
}

type ingestionResult struct {
	Errors []struct {
		ID      string `json:"id"`
		Status  int    `json:"status"`
		Message string `json:"message"`
	} `json:"errors"`
}

type traceBody struct {
	ID          string         `json:"id"`
	Name        string         `json:"name,omitempty"`
	UserID      string         `json:"userId,omitempty"`
	SessionID   string         `json:"sessionId,omitempty"`
	Input       any            `json:"input,omitempty"`
	Output      any            `json:"output,omitempty"`
	Tags        []string       `json:"tags,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	Environment string         `json:"environment,omitempty"`
}

type scoreBody struct {
	ID       string  `json:"id"`
	TraceID  string  `json:"traceId"`
	Name     string  `json:"name"`
	Value    float64 `json:"value"`
	DataType string  `json:"dataType"`
	Comment  string  `json:"comment,omitempty"`
}
