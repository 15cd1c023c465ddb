package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/avelar/pitch/internal/config"
	"github.com/ollama/ollama/api"
	"github.com/sony/gobreaker/v2"
)

var ErrCircuitOpen = errors.New("ollama circuit open")

// Client wraps the Ollama API client and adds retries, per-request timeouts,
// and a circuit breaker around the generate path.
type Client struct {
	api     *api.Client
	cfg     config.OllamaConfig
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[GenerateResult]
	closed  int32 // atomic flag for Close()
}

// GenerateResult is a typed representation of a model response.
type GenerateResult struct {
	Text string         `json:"text"`
	Meta map[string]any `json:"meta,omitempty"`
}

// package-level logger for pkg/ollama; can be replaced by callers
var logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// SetLogger sets the logger used by pkg/ollama. Passing nil is a no-op.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

// NewClient creates a new Ollama client wrapper.
func NewClient(cfg config.OllamaConfig, httpClient *http.Client) (*Client, error) {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	u, err := url.ParseRequestURI(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}

	threshold := cfg.CircuitFailureThreshold
	if threshold <= 0 {
		threshold = 5
	}
	reset := cfg.CircuitReset
	if reset <= 0 {
		reset = 30 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker[GenerateResult](gobreaker.Settings{
		Name:    "ollama-generate",
		Timeout: reset,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(threshold)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("ollama: circuit state changed",
				slog.String("name", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})

	c := &Client{
		api:     api.NewClient(u, httpClient),
		cfg:     cfg,
		client:  httpClient,
		breaker: breaker,
	}
	logger.Info("ollama: NewClient created", slog.String("base_url", cfg.BaseURL), slog.Duration("timeout", cfg.Timeout))
	return c, nil
}

func NewDefaultClient(cfg config.OllamaConfig) (*Client, error) {
	defaultClient := &http.Client{
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 15 * time.Second,
			}).DialContext,
			ForceAttemptHTTP2:     true,
			MaxIdleConns:          100,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}

	return NewClient(cfg, defaultClient)
}

// Close releases any resources held by the client. Currently this will close
// idle connections on the underlying HTTP transport when supported. Close is
// idempotent and safe to call multiple times.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	if !atomic.CompareAndSwapInt32(&c.closed, 0, 1) {
		return nil
	}
	if c.client != nil && c.client.Transport != nil {
		if tr, ok := c.client.Transport.(interface{ CloseIdleConnections() }); ok {
			tr.CloseIdleConnections()
		}
	}
	return nil
}

// Health pings the Ollama instance by requesting info about models.
func (c *Client) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	models, err := c.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	if len(models) == 0 {
		return fmt.Errorf("health check failed: no models returned")
	}

	return nil
}

// ModelInfo is a lightweight model descriptor returned by ListModels.
type ModelInfo struct {
	Name string          `json:"name"`
	Raw  json.RawMessage `json:"-"`
}

// ListModels calls the Ollama /models endpoint and returns basic model info.
func (c *Client) ListModels(ctx context.Context) ([]ModelInfo, error) {
	base, err := url.Parse(c.cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	u := base.ResolveReference(&url.URL{Path: "/models"})
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("models endpoint returned status %d", resp.StatusCode)
	}

	var raw []map[string]any
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}

	out := make([]ModelInfo, 0, len(raw))
	for _, m := range raw {
		name := ""
		if v, ok := m["name"].(string); ok {
			name = v
		}
		b, _ := json.Marshal(m)
		out = append(out, ModelInfo{Name: name, Raw: b})
	}

	return out, nil
}

// Generate sends a prompt to the model and collects the streamed response.
func (c *Client) Generate(ctx context.Context, model, prompt string) (GenerateResult, error) {
	return c.generate(ctx, model, prompt, nil)
}

// GenerateJSON requests the model's structured JSON response mode.
func (c *Client) GenerateJSON(ctx context.Context, model, prompt string) (GenerateResult, error) {
	return c.generate(ctx, model, prompt, json.RawMessage(`"json"`))
}

func (c *Client) generate(ctx context.Context, model, prompt string, format json.RawMessage) (GenerateResult, error) {
	res, err := c.breaker.Execute(func() (GenerateResult, error) {
		return c.generateWithRetries(ctx, model, prompt, format)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return GenerateResult{}, ErrCircuitOpen
	}

	return res, err
}

func (c *Client) generateWithRetries(ctx context.Context, model, prompt string, format json.RawMessage) (GenerateResult, error) {
	var lastErr error
	var empty GenerateResult

	for attempt := 0; attempt <= c.cfg.Retries; attempt++ {
		ctxReq, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
		req := &api.GenerateRequest{Model: model, Prompt: prompt, Format: format}

		var sb strings.Builder
		start := time.Now()
		err := c.api.Generate(ctxReq, req, func(r api.GenerateResponse) error {
			sb.WriteString(r.Response)
			return nil
		})
		cancel()
		latency := time.Since(start)

		if err == nil {
			meta := map[string]any{"model": model, "latency_ms": latency.Milliseconds()}
			return GenerateResult{Text: sb.String(), Meta: meta}, nil
		}

		lastErr = err

		// backoff before the next attempt
		if attempt < c.cfg.Retries {
			time.Sleep(c.cfg.Backoff * time.Duration(attempt+1))
		}
	}

	return empty, fmt.Errorf("generate failed after retries: %w", lastErr)
}
