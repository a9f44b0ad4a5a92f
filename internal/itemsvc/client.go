// Package itemsvc talks to the remote item service over HTTP.
package itemsvc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/idilsaglam/todo/internal/model"
)

// maxErrorBody caps how much of a failed response ends up in a StatusError.
const maxErrorBody = 512

// Service is the remote collaborator the board drives.
type Service interface {
	// FetchItems returns the full list in server order.
	FetchItems(ctx context.Context) ([]model.Item, error)

	// CreateItem asks the server to create an item and returns it.
	CreateItem(ctx context.Context, name string) (model.Item, error)
}

// Config holds what the HTTP client needs to reach the server.
type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

type httpClient struct {
	cfg    Config
	http   *http.Client
	logger *log.Logger
}

// NewHTTPClient creates a Service backed by GET/POST {BaseURL}/items.
func NewHTTPClient(cfg Config, logger *log.Logger) Service {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &httpClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		logger: logger,
	}
}

type createRequest struct {
	Name string `json:"name"`
}

func (c *httpClient) FetchItems(ctx context.Context) ([]model.Item, error) {
	var items []model.Item
	if err := c.do(ctx, http.MethodGet, nil, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.Item{}
	}
	return items, nil
}

func (c *httpClient) CreateItem(ctx context.Context, name string) (model.Item, error) {
	var it model.Item
	if err := c.do(ctx, http.MethodPost, createRequest{Name: name}, &it); err != nil {
		return model.Item{}, err
	}
	return it, nil
}

func (c *httpClient) do(ctx context.Context, method string, body, out any) error {
	start := time.Now()
	reqID := uuid.NewString()
	logger := c.logger.With("method", method, "path", "/items", "request_id", reqID)

	err := c.roundTrip(ctx, method, reqID, body, out, logger)
	latency := time.Since(start).Milliseconds()
	if err != nil {
		logger.Warn("item request failed", "latency_ms", latency, "kind", KindOf(err), "err", err)
		return err
	}
	logger.Debug("item request", "latency_ms", latency)
	return nil
}

func (c *httpClient) roundTrip(ctx context.Context, method, reqID string, body, out any, logger *log.Logger) error {
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+"/items", reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", reqID)
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if c.cfg.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return classify(ctx, err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return classify(ctx, fmt.Errorf("reading response: %w", err))
	}
	logger.Debug("item response", "status", httpResp.StatusCode, "bytes", len(respBody))

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		msg := strings.TrimSpace(string(respBody))
		if len(msg) > maxErrorBody {
			msg = msg[:maxErrorBody] + "..."
		}
		return &StatusError{Code: httpResp.StatusCode, Body: msg}
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}

// classify turns transport failures into the package sentinels.
func classify(ctx context.Context, err error) error {
	switch ctx.Err() {
	case context.DeadlineExceeded:
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	case context.Canceled:
		return fmt.Errorf("%w: %v", ErrCanceled, err)
	}
	if isConnectionError(err) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}
