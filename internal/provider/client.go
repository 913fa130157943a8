package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/blaisecz/health-trends/internal/domain"
	"github.com/blaisecz/health-trends/internal/logger"
	"github.com/blaisecz/health-trends/internal/observability"
)

const (
	defaultPageSize = 100
	defaultRPS      = 10
	defaultBurst    = 5
	maxErrorBody    = 512
)

// ClientConfig holds Lonvital client configuration.
type ClientConfig struct {
	BaseURL  string
	APIKey   string
	PageSize int
	// RequestsPerSecond caps outbound calls; zero uses the default.
	RequestsPerSecond float64
	Timeout           time.Duration
}

// Client talks to the Lonvital REST API.
type Client struct {
	baseURL    string
	apiKey     string
	pageSize   int
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *logger.Entry
}

// NewClient creates a Lonvital client.
func NewClient(cfg ClientConfig) *Client {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = defaultRPS
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		pageSize:   pageSize,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(rps), defaultBurst),
		log:        logger.GetLogger().WithComponent("lonvital_client"),
	}
}

// envelope keeps items raw so one malformed item does not fail the whole
// collection.
type envelope struct {
	Data []json.RawMessage `json:"data"`
}

// records decodes the items that are JSON objects and reports how many were
// skipped.
func (e envelope) records() ([]domain.RawRecord, int) {
	out := make([]domain.RawRecord, 0, len(e.Data))
	skipped := 0
	for _, item := range e.Data {
		var rec domain.RawRecord
		if err := json.Unmarshal(item, &rec); err != nil || rec == nil {
			skipped++
			continue
		}
		out = append(out, rec)
	}
	return out, skipped
}

// FetchCollection calls GET {base}/{source}/{userId}.
func (c *Client) FetchCollection(ctx context.Context, source domain.SourceType, q Query) ([]domain.RawRecord, error) {
	if !source.IsValid() {
		return nil, fmt.Errorf("%w: unknown source %q", domain.ErrInvalidInput, source)
	}

	params := url.Values{}
	if q.From != "" {
		params.Set("from", q.From)
	}
	if q.To != "" {
		params.Set("to", q.To)
	}
	params.Set("pageSize", strconv.Itoa(c.pageSize))
	if q.FindByHC {
		params.Set("findByHc", "true")
	}

	endpoint := fmt.Sprintf("%s/%s/%s?%s", c.baseURL, source, url.PathEscape(q.UserID), params.Encode())

	var env envelope
	if err := c.get(ctx, endpoint, &env); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", source, err)
	}
	records, skipped := env.records()
	if skipped > 0 {
		c.log.WithFields(logger.Fields{
			"source":  source,
			"skipped": skipped,
			"kept":    len(records),
		}).Warn("skipped collection items that are not objects")
		observability.RecordSkippedRecords(string(source), skipped)
	}
	return records, nil
}

// FetchAnalyticsDocument calls GET {base}/analytics/{userId}/{documentId}.
// The provider answers either with the document or with {"data": document}.
func (c *Client) FetchAnalyticsDocument(ctx context.Context, userID, documentID string, findByHC bool) (domain.RawRecord, error) {
	endpoint := fmt.Sprintf("%s/analytics/%s/%s", c.baseURL, url.PathEscape(userID), url.PathEscape(documentID))
	if findByHC {
		endpoint += "?findByHc=true"
	}

	var doc domain.RawRecord
	if err := c.get(ctx, endpoint, &doc); err != nil {
		return nil, fmt.Errorf("fetch analytics document: %w", err)
	}
	if inner, ok := doc["data"].(map[string]any); ok {
		return domain.RawRecord(inner), nil
	}
	if markers, ok := doc["data"].([]any); ok {
		return domain.RawRecord{"id": documentID, "markers": markers}, nil
	}
	return doc, nil
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	c.log.WithFields(logger.Fields{
		"path":        req.URL.Path,
		"status":      resp.StatusCode,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("provider request")

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %d", domain.ErrNotFound, resp.StatusCode)
	}
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%w: %d %s", ErrProviderStatus, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrProviderDecode, err)
	}
	return nil
}
