package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/tutorium-admin-api/internal/models"
	"github.com/noah-isme/tutorium-admin-api/pkg/config"
	appErrors "github.com/noah-isme/tutorium-admin-api/pkg/errors"
)

type metricsObserver interface {
	ObserveUpstreamFetch(endpoint string, duration time.Duration)
}

// Client calls the core marketplace backend that owns the raw collections.
// It performs no retries: a failed fetch fails the page load it belongs to.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *zap.Logger
	metrics metricsObserver
}

// NewClient constructs an upstream client.
func NewClient(cfg config.UpstreamConfig, logger *zap.Logger, metrics metricsObserver) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
		logger:  logger,
		metrics: metrics,
	}
}

// Reports fetches the moderation report collection.
func (c *Client) Reports(ctx context.Context) ([]models.Report, error) {
	return fetch[models.Report](ctx, c, "/reports")
}

// BanLearners fetches learner ban records.
func (c *Client) BanLearners(ctx context.Context) ([]models.BanRecord, error) {
	return fetch[models.BanRecord](ctx, c, "/ban-learners")
}

// BanTeachers fetches teacher ban records.
func (c *Client) BanTeachers(ctx context.Context) ([]models.BanRecord, error) {
	return fetch[models.BanRecord](ctx, c, "/ban-teachers")
}

// PaymentTransactions fetches the full payment transaction collection.
func (c *Client) PaymentTransactions(ctx context.Context) ([]models.Transaction, error) {
	return fetch[models.Transaction](ctx, c, "/payment-transactions")
}

// Users fetches the account collection.
func (c *Client) Users(ctx context.Context) ([]models.User, error) {
	return fetch[models.User](ctx, c, "/users")
}

func fetch[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, fmt.Sprintf("build request for %s", path))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, fmt.Sprintf("fetch %s", path))
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, appErrors.Wrap(fmt.Errorf("unexpected status %d", resp.StatusCode), appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, fmt.Sprintf("fetch %s", path))
	}

	var records []T
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, fmt.Sprintf("decode %s payload", path))
	}

	duration := time.Since(start)
	if c.metrics != nil {
		c.metrics.ObserveUpstreamFetch(path, duration)
	}
	c.logger.Debug("upstream fetch", zap.String("path", path), zap.Int("records", len(records)), zap.Duration("latency", duration))
	return records, nil
}
