// Package api provides the client for the text-generation endpoint.
package api

import (
	"context"
	"fmt"
	"sync"
	"time"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"github.com/rs/zerolog"

	"github.com/diogo/cvischat/internal/models"
)

// HTTPDoer is the part of tls_client.HttpClient the generate client needs
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// GenerateClientInterface is implemented by GenerateClient and MockGenerateClient
type GenerateClientInterface interface {
	Generate(ctx context.Context, prompt string) (*models.Reply, error)
	GetModel() string
	SetModel(model string)
	GetEndpoint() string
	Close()
	IsClosed() bool
}

var _ GenerateClientInterface = (*GenerateClient)(nil)

// GenerateClient posts prompts to a generate endpoint and returns the reply
type GenerateClient struct {
	httpClient HTTPDoer
	endpoint   string
	model      string
	timeout    time.Duration
	logger     zerolog.Logger
	mu         sync.RWMutex
	closed     bool
}

// ClientOption is a function that configures the client
type ClientOption func(*GenerateClient)

// WithEndpoint sets the URL requests are posted to
func WithEndpoint(endpoint string) ClientOption {
	return func(c *GenerateClient) {
		if endpoint != "" {
			c.endpoint = endpoint
		}
	}
}

// WithModel sets the model name sent in every request
func WithModel(model string) ClientOption {
	return func(c *GenerateClient) {
		if model != "" {
			c.model = model
		}
	}
}

// WithTimeout sets the transport timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *GenerateClient) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithHTTPClient replaces the transport (used by tests)
func WithHTTPClient(doer HTTPDoer) ClientOption {
	return func(c *GenerateClient) {
		c.httpClient = doer
	}
}

// WithLogger sets the diagnostic logger
func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *GenerateClient) {
		c.logger = logger
	}
}

// NewClient creates a new GenerateClient
func NewClient(opts ...ClientOption) (*GenerateClient, error) {
	client := &GenerateClient{
		endpoint: models.DefaultEndpoint,
		model:    models.DefaultModel,
		timeout:  models.DefaultTimeout,
		logger:   zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		options := []tls_client.HttpClientOption{
			tls_client.WithTimeoutSeconds(int(client.timeout / time.Second)),
			tls_client.WithClientProfile(profiles.Chrome_120),
			tls_client.WithNotFollowRedirects(),
		}

		httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		client.httpClient = httpClient
	}

	return client, nil
}

// Close marks the client closed; later Generate calls fail
func (c *GenerateClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

// IsClosed returns whether the client is closed
func (c *GenerateClient) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// GetModel returns the model name
func (c *GenerateClient) GetModel() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.model
}

// SetModel changes the model name used by later requests
func (c *GenerateClient) SetModel(model string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.model = model
}

// GetEndpoint returns the endpoint URL
func (c *GenerateClient) GetEndpoint() string {
	return c.endpoint
}

// GetTimeout returns the transport timeout
func (c *GenerateClient) GetTimeout() time.Duration {
	return c.timeout
}
