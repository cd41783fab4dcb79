// Package lexica is the outbound client for the Lexica image/prompt search API.
package lexica

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/okian/adgenius/internal/domain/model"
	"github.com/okian/adgenius/pkg/logger"
	"github.com/okian/adgenius/pkg/metrics"
)

const (
	// DefaultEndpoint is the public Lexica search endpoint.
	DefaultEndpoint = "https://lexica.art/api/v1/search"

	defaultTimeout    = 15 * time.Second
	defaultMaxResults = 30
	maxBodyBytes      = 16 << 20
	userAgent         = "adgenius-relay/1.0"
)

// Client performs exactly one upstream GET per Search call.
type Client struct {
	httpClient  *http.Client
	endpoint    string
	timeout     time.Duration
	maxResults  int
	escapeQuery bool
	logger      logger.Logger
}

// New creates a Client with defaults overridden by opts.
func New(opts ...Option) *Client {
	c := &Client{
		endpoint:    DefaultEndpoint,
		timeout:     defaultTimeout,
		maxResults:  defaultMaxResults,
		escapeQuery: true,
		logger:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}
	return c
}

var jsonNull = []byte("null")

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), jsonNull)
}

// URL returns the upstream request URL for query.
func (c *Client) URL(query string) string {
	if c.escapeQuery {
		query = url.QueryEscape(query)
	}
	sep := "?"
	if strings.Contains(c.endpoint, "?") {
		sep = "&"
	}
	return c.endpoint + sep + "q=" + query
}

// Search queries upstream and returns at most maxResults cards in upstream
// order, skipping records without an image address or prompt text.
func (c *Client) Search(ctx context.Context, query string) ([]model.PromptCard, error) {
	target := c.URL(query)
	start := time.Now()
	c.logger.Debug(ctx, "calling upstream search", logger.String("url", target))

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		c.observe(ctx, metrics.OutcomeDecodeError, start, err)
		return nil, fmt.Errorf("%w: build request: %w", ErrInternal, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(ctx, metrics.OutcomeTransportError, start, err)
		return nil, fmt.Errorf("%w: %w: %w", ErrUpstreamUnreachable, ErrTransport, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	metrics.RecordUpstreamStatus(strconv.Itoa(resp.StatusCode))
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		statusErr := &StatusError{StatusCode: resp.StatusCode}
		c.observe(ctx, metrics.OutcomeStatusError, start, statusErr)
		return nil, statusErr
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		c.observe(ctx, metrics.OutcomeTransportError, start, err)
		return nil, fmt.Errorf("%w: %w: read body: %w", ErrUpstreamUnreachable, ErrTransport, err)
	}

	cards, err := c.extract(body)
	if err != nil {
		c.observe(ctx, metrics.OutcomeDecodeError, start, err)
		return nil, err
	}

	c.observe(ctx, metrics.OutcomeOK, start, nil)
	metrics.RecordCardsReturned(len(cards))
	c.logger.Info(ctx, "upstream search completed",
		logger.Int("cards", len(cards)),
		logger.Duration("took", time.Since(start)))
	return cards, nil
}

// extract decodes body and applies the cap and the image/prompt filter.
// The body must be an object. An absent "images" key yields no cards, while
// a null list or a null entry within the cap is malformed. Entries are
// decoded one by one so records past the cap are never inspected.
func (c *Client) extract(body []byte) ([]model.PromptCard, error) {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: decode body: %w", ErrInternal, err)
	}
	if payload == nil {
		return nil, fmt.Errorf("%w: body is null", ErrInternal)
	}

	field, ok := payload["images"]
	if !ok {
		return []model.PromptCard{}, nil
	}
	var images []json.RawMessage
	if err := json.Unmarshal(field, &images); err != nil {
		return nil, fmt.Errorf("%w: decode images: %w", ErrInternal, err)
	}
	if images == nil {
		return nil, fmt.Errorf("%w: images is null", ErrInternal)
	}

	if len(images) > c.maxResults {
		metrics.RecordRecordsTruncated(len(images) - c.maxResults)
		images = images[:c.maxResults]
	}

	cards := make([]model.PromptCard, 0, len(images))
	for i, rawJSON := range images {
		if isNull(rawJSON) {
			return nil, fmt.Errorf("%w: image %d is null", ErrInternal, i)
		}
		var raw model.RawImage
		if err := json.Unmarshal(rawJSON, &raw); err != nil {
			return nil, fmt.Errorf("%w: decode image %d: %w", ErrInternal, i, err)
		}
		card, ok, err := model.NewPromptCard(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: image %d: %w", ErrInternal, i, err)
		}
		if ok {
			cards = append(cards, card)
		}
	}
	metrics.RecordRecordsDropped(len(images) - len(cards))
	return cards, nil
}

func (c *Client) observe(ctx context.Context, outcome string, start time.Time, err error) {
	took := time.Since(start)
	metrics.RecordUpstreamRequest(outcome, float64(took.Milliseconds()))
	if err != nil {
		c.logger.Warn(ctx, "upstream search failed",
			logger.String("outcome", outcome),
			logger.Duration("took", took),
			logger.Error(err))
	}
}
