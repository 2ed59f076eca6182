package gtts

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the default endpoint host.
	DefaultBaseURL = "https://translate.google.com"

	// DefaultLang is the default spoken language.
	DefaultLang = "en"

	// DefaultTimeout is the default per-part request timeout.
	DefaultTimeout = 30 * time.Second

	// MaxPartRunes is the longest part sent in one request.
	MaxPartRunes = 100

	// MIMEType is the content type of synthesized audio.
	MIMEType = "audio/mpeg"

	userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
)

// ErrEmptyText is returned when there is nothing to speak.
var ErrEmptyText = errors.New("gtts: empty text")

// Error is returned when the endpoint rejects a part.
type Error struct {
	// HTTPStatus is the HTTP status code.
	HTTPStatus int

	// Part is the zero-based index of the failing part.
	Part int
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("gtts: part %d: %s (status=%d)", e.Part, http.StatusText(e.HTTPStatus), e.HTTPStatus)
}

// Client is a text-to-speech client.
type Client struct {
	config *clientConfig
}

type clientConfig struct {
	baseURL    string
	lang       string
	httpClient *http.Client
	timeout    time.Duration
	limiter    *rate.Limiter
}

// Option is a function that configures the client.
type Option func(*clientConfig)

// WithBaseURL sets a custom endpoint host.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithLang sets the spoken language, e.g. "en" or "ar".
func WithLang(lang string) Option {
	return func(c *clientConfig) {
		c.lang = lang
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTimeout sets the per-part request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithRateLimit caps part requests to rps per second.
func WithRateLimit(rps float64) Option {
	return func(c *clientConfig) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// NewClient creates a new text-to-speech client.
func NewClient(opts ...Option) *Client {
	cfg := &clientConfig{
		baseURL: DefaultBaseURL,
		lang:    DefaultLang,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.httpClient == nil {
		cfg.httpClient = &http.Client{Timeout: cfg.timeout}
	}
	cfg.baseURL = strings.TrimRight(cfg.baseURL, "/")
	return &Client{config: cfg}
}

// Lang returns the configured language.
func (c *Client) Lang() string {
	return c.config.lang
}

// Synthesize converts text to MP3 audio.
func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.SynthesizeTo(ctx, &buf, text); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SynthesizeTo converts text to MP3 audio and writes it to w.
func (c *Client) SynthesizeTo(ctx context.Context, w io.Writer, text string) error {
	for part, err := range c.Stream(ctx, text) {
		if err != nil {
			return err
		}
		if _, err := w.Write(part); err != nil {
			return fmt.Errorf("write audio: %w", err)
		}
	}
	return nil
}

// Stream yields the MP3 segment of each part in order. Iteration stops at
// the first error.
func (c *Client) Stream(ctx context.Context, text string) iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		parts := Split(text, MaxPartRunes)
		if len(parts) == 0 {
			yield(nil, ErrEmptyText)
			return
		}

		slog.Debug("gtts synthesize", "lang", c.config.lang, "parts", len(parts), "text_len", len(text))

		for i, part := range parts {
			audio, err := c.fetch(ctx, part, i, len(parts))
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(audio, nil) {
				return
			}
		}
	}
}

func (c *Client) fetch(ctx context.Context, part string, idx, total int) ([]byte, error) {
	if c.config.limiter != nil {
		if err := c.config.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("q", part)
	q.Set("tl", c.config.lang)
	q.Set("total", strconv.Itoa(total))
	q.Set("idx", strconv.Itoa(idx))
	q.Set("textlen", strconv.Itoa(utf8.RuneCountInString(part)))
	q.Set("client", "tw-ob")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.baseURL+"/translate_tts?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Referer", c.config.baseURL+"/")

	resp, err := c.config.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, &Error{HTTPStatus: resp.StatusCode, Part: idx}
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	return audio, nil
}
