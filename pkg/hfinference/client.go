package hfinference

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the default Inference API base URL for task endpoints.
	DefaultBaseURL = "https://api-inference.huggingface.co"

	// DefaultRouterURL is the default base URL of the OpenAI-compatible router.
	DefaultRouterURL = "https://router.huggingface.co/v1"

	// DefaultTimeout is the default request timeout. Cold models can take
	// a long time to answer, so this is more generous than a typical API.
	DefaultTimeout = 120 * time.Second
)

// Client is the Hugging Face Inference API client.
type Client struct {
	// Image provides text-to-image generation.
	Image *ImageService

	// Caption provides image-to-text captioning.
	Caption *CaptionService

	// Translation provides machine translation.
	Translation *TranslationService

	// Music provides text-to-audio generation.
	Music *MusicService

	// Chat provides chat completions through the router.
	Chat *ChatService

	config *clientConfig
	http   *httpClient
}

// clientConfig holds the client configuration.
type clientConfig struct {
	apiKey       string
	baseURL      string
	routerURL    string
	httpClient   *http.Client
	timeout      time.Duration
	maxRetries   int
	limiter      *rate.Limiter
	waitForModel bool
}

// Option is a function that configures the client.
type Option func(*clientConfig)

// WithBaseURL sets a custom base URL for task endpoints.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithRouterURL sets a custom base URL for chat completions.
func WithRouterURL(url string) Option {
	return func(c *clientConfig) {
		c.routerURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTimeout sets the request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithRetry sets the maximum number of retries for transient errors.
// The default is zero: a failed request is reported as is.
func WithRetry(maxRetries int) Option {
	return func(c *clientConfig) {
		c.maxRetries = maxRetries
	}
}

// WithRateLimit caps outgoing requests to rps requests per second.
// A value <= 0 disables limiting.
func WithRateLimit(rps float64) Option {
	return func(c *clientConfig) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithWaitForModel asks the API to hold the request until a cold model is
// loaded instead of answering 503 right away.
func WithWaitForModel(wait bool) Option {
	return func(c *clientConfig) {
		c.waitForModel = wait
	}
}

// NewClient creates a new Inference API client.
//
// The apiKey is a Hugging Face access token.
//
// Example:
//
//	client := hfinference.NewClient("hf_xxx")
//	client := hfinference.NewClient("hf_xxx", hfinference.WithTimeout(60*time.Second))
func NewClient(apiKey string, opts ...Option) *Client {
	cfg := &clientConfig{
		apiKey:    apiKey,
		baseURL:   DefaultBaseURL,
		routerURL: DefaultRouterURL,
		timeout:   DefaultTimeout,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.httpClient == nil {
		cfg.httpClient = &http.Client{
			Timeout: cfg.timeout,
		}
	}

	c := &Client{
		config: cfg,
		http:   newHTTPClient(cfg),
	}

	c.Image = newImageService(c)
	c.Caption = newCaptionService(c)
	c.Translation = newTranslationService(c)
	c.Music = newMusicService(c)
	c.Chat = newChatService(c)

	return c
}

// APIKey returns the configured API key.
func (c *Client) APIKey() string {
	return c.config.apiKey
}

// BaseURL returns the configured task endpoint base URL.
func (c *Client) BaseURL() string {
	return c.config.baseURL
}

// RouterURL returns the configured chat router base URL.
func (c *Client) RouterURL() string {
	return c.config.routerURL
}
