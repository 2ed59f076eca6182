package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
)

const (
	// DefaultBaseDir is the base configuration directory name.
	DefaultBaseDir = ".giztoy"
	// DefaultConfigFile is the default configuration filename.
	DefaultConfigFile = "config.yaml"

	// TokenEnv is consulted when a context has no api_key.
	TokenEnv = "HF_TOKEN"
)

// Caption backends.
const (
	CaptionBackendHF     = "hf"
	CaptionBackendGemini = "gemini"
)

// Config is the configuration file of a CLI app.
type Config struct {
	// AppName is the application name, e.g. "studio".
	AppName string `yaml:"-"`

	// CurrentContext is the name of the active context.
	CurrentContext string `yaml:"current_context,omitempty"`

	// Contexts maps context names to their settings.
	Contexts map[string]*Context `yaml:"contexts,omitempty"`

	configPath string
}

// Context is one named set of endpoint credentials and settings.
type Context struct {
	Name string `yaml:"name"`

	// APIKey is the Hugging Face access token.
	APIKey string `yaml:"api_key,omitempty"`

	// BaseURL overrides the inference task endpoint base.
	BaseURL string `yaml:"base_url,omitempty"`

	// RouterURL overrides the chat completions router base.
	RouterURL string `yaml:"router_url,omitempty"`

	// Timeout is the per-call timeout in seconds.
	Timeout int `yaml:"timeout,omitempty"`

	MaxRetries int `yaml:"max_retries,omitempty"`

	// RateLimit caps requests per second toward each endpoint. Zero means
	// no limit.
	RateLimit float64 `yaml:"rate_limit,omitempty"`

	Models Models `yaml:"models,omitempty"`

	Speech SpeechConfig `yaml:"speech,omitempty"`

	// CaptionBackend selects "hf" (default) or "gemini".
	CaptionBackend string `yaml:"caption_backend,omitempty"`
	GeminiAPIKey   string `yaml:"gemini_api_key,omitempty"`
	GeminiModel    string `yaml:"gemini_model,omitempty"`

	Storage StorageConfig `yaml:"storage,omitempty"`

	// HistoryDir enables run history when set.
	HistoryDir string `yaml:"history_dir,omitempty"`
}

// Models overrides the model used for each capability.
type Models struct {
	Image       string `yaml:"image,omitempty"`
	Caption     string `yaml:"caption,omitempty"`
	Translation string `yaml:"translation,omitempty"`
	Music       string `yaml:"music,omitempty"`
	Chat        string `yaml:"chat,omitempty"`
}

// SpeechConfig configures speech synthesis.
type SpeechConfig struct {
	BaseURL string `yaml:"base_url,omitempty"`
	Lang    string `yaml:"lang,omitempty"`
}

// StorageConfig selects where transient audio lives. S3 is used when
// S3Bucket is set, otherwise Dir on the local filesystem.
type StorageConfig struct {
	Dir        string `yaml:"dir,omitempty"`
	S3Bucket   string `yaml:"s3_bucket,omitempty"`
	S3Prefix   string `yaml:"s3_prefix,omitempty"`
	S3Region   string `yaml:"s3_region,omitempty"`
	S3Endpoint string `yaml:"s3_endpoint,omitempty"`
}

// LoadConfig loads or creates the configuration of appName.
func LoadConfig(appName string) (*Config, error) {
	return LoadConfigWithPath(appName, "")
}

// LoadConfigWithPath loads configuration from customPath, or from
// ~/.giztoy/<app>/config.yaml when customPath is empty. A missing file is
// created empty.
func LoadConfigWithPath(appName, customPath string) (*Config, error) {
	configPath := customPath
	if configPath == "" {
		paths, err := NewPaths(appName)
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configPath = paths.ConfigFile()
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	cfg := &Config{
		AppName:    appName,
		Contexts:   make(map[string]*Context),
		configPath: configPath,
	}

	data, err := os.ReadFile(configPath)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, cfg.Save()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Contexts == nil {
		cfg.Contexts = make(map[string]*Context)
	}
	for name, c := range cfg.Contexts {
		c.Name = name
	}
	cfg.AppName = appName
	cfg.configPath = configPath
	return cfg, nil
}

// Save writes the configuration with owner-only permissions; it holds
// credentials.
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(c.configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Path returns the config file path.
func (c *Config) Path() string {
	return c.configPath
}

// AddContext adds or replaces a context. The first context added becomes
// the current one.
func (c *Config) AddContext(name string, ctx *Context) error {
	if name == "" {
		return errors.New("context name is required")
	}
	ctx.Name = name
	c.Contexts[name] = ctx
	if c.CurrentContext == "" {
		c.CurrentContext = name
	}
	return c.Save()
}

// DeleteContext removes a context.
func (c *Config) DeleteContext(name string) error {
	if _, ok := c.Contexts[name]; !ok {
		return fmt.Errorf("context %q not found", name)
	}
	delete(c.Contexts, name)
	if c.CurrentContext == name {
		c.CurrentContext = ""
	}
	return c.Save()
}

// UseContext makes name the current context.
func (c *Config) UseContext(name string) error {
	if _, ok := c.Contexts[name]; !ok {
		return fmt.Errorf("context %q not found", name)
	}
	c.CurrentContext = name
	return c.Save()
}

// GetContext returns the named context.
func (c *Config) GetContext(name string) (*Context, error) {
	ctx, ok := c.Contexts[name]
	if !ok {
		return nil, fmt.Errorf("context %q not found", name)
	}
	return ctx, nil
}

// ResolveContext returns the named context, or the current one when name
// is empty. With neither, a context built from the environment is
// returned so that `HF_TOKEN=... studio chat hi` works without setup.
func (c *Config) ResolveContext(name string) (*Context, error) {
	if name != "" {
		return c.GetContext(name)
	}
	if c.CurrentContext != "" {
		return c.GetContext(c.CurrentContext)
	}
	if os.Getenv(TokenEnv) != "" {
		return &Context{Name: "env"}, nil
	}
	return nil, fmt.Errorf("no current context set; run '%s config add-context' or set %s", c.AppName, TokenEnv)
}

// ListContexts returns all context names in sorted order.
func (c *Config) ListContexts() []string {
	names := make([]string, 0, len(c.Contexts))
	for name := range c.Contexts {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Token returns the API key, falling back to $HF_TOKEN.
func (ctx *Context) Token() string {
	if ctx.APIKey != "" {
		return ctx.APIKey
	}
	return os.Getenv(TokenEnv)
}

// TimeoutDuration returns the per-call timeout, or zero when unset.
func (ctx *Context) TimeoutDuration() time.Duration {
	return time.Duration(ctx.Timeout) * time.Second
}

// MaskAPIKey masks all but the first and last four characters of key.
func MaskAPIKey(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}
