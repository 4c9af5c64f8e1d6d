// Package api provides the HTTP client for the goalchat assistant endpoint.
package api

import (
	"fmt"
	"strings"
	"sync"
	"time"

	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"go.uber.org/zap"

	"github.com/diogo/goalchat/internal/config"
	"github.com/diogo/goalchat/internal/models"
)

// Client performs reply requests against the configured assistant endpoint
type Client struct {
	httpClient tls_client.HttpClient
	baseURL    string
	timeout    time.Duration
	logger     *zap.Logger
	mu         sync.RWMutex
}

// ClientOption is a function that configures the client
type ClientOption func(*Client)

// WithTimeout sets the transport timeout for a single request
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithHTTPClient replaces the transport, mainly for tests
func WithHTTPClient(httpClient tls_client.HttpClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets the logger used for request diagnostics
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a Client for baseURL
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	if err := config.ValidateEndpoint(baseURL); err != nil {
		return nil, err
	}

	client := &Client{
		baseURL: normalizeBaseURL(baseURL),
		timeout: 300 * time.Second,
		logger:  zap.NewNop(),
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		options := []tls_client.HttpClientOption{
			tls_client.WithTimeoutSeconds(int(client.timeout.Seconds())),
			tls_client.WithClientProfile(profiles.Chrome_120),
		}

		httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		client.httpClient = httpClient
	}

	return client, nil
}

// NewClientFromConfig creates a Client using the endpoint and timeout in cfg
func NewClientFromConfig(cfg config.Config, opts ...ClientOption) (*Client, error) {
	base := []ClientOption{WithTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second)}
	return NewClient(cfg.APIEndpoint, append(base, opts...)...)
}

// BaseURL returns the current base endpoint
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// SetBaseURL switches the base endpoint; used by the endpoint selector
func (c *Client) SetBaseURL(baseURL string) error {
	if err := config.ValidateEndpoint(baseURL); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseURL = normalizeBaseURL(baseURL)
	return nil
}

// ChatURL returns the full URL reply requests are posted to
func (c *Client) ChatURL() string {
	return c.BaseURL() + models.ChatPath
}

// Close releases idle connections
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

func normalizeBaseURL(baseURL string) string {
	return strings.TrimRight(strings.TrimSpace(baseURL), "/")
}
