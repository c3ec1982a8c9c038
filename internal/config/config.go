package config

import (
	"context"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/brendan.keane/numberfacts/internal/errors"
	"github.com/spf13/pflag"
)

// DefaultAPIURL is the trivia API base the handler forwards to
const DefaultAPIURL = "http://numbersapi.com/"

const envPrefix = "NUMBERFACTS_"

// Config holds all application configuration
type Config struct {
	// Upstream settings
	APIURL  string
	Timeout time.Duration // zero leaves the deadline to the invoking platform

	Logger  LoggerConfig
	Tracing bool

	// CLI settings
	Listen      string
	Function    string
	EndpointURL string

	MCP MCPConfig
}

// LoggerConfig holds logging settings
type LoggerConfig struct {
	Level      string
	Format     string
	WithCaller bool
}

// MCPConfig holds MCP-specific configuration
type MCPConfig struct {
	Description string // Server instructions for LLM context
}

// contextKey is a custom type for context keys
type contextKey string

// configKey is the context key for storing config
const configKey contextKey = "config"

// WithConfig adds config to context
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// FromContext retrieves config from context
func FromContext(ctx context.Context) (*Config, bool) {
	cfg, ok := ctx.Value(configKey).(*Config)
	return cfg, ok
}

// NewConfig creates a Config with default values
func NewConfig() *Config {
	format := "pretty"
	if RunningOnLambda() {
		format = "json"
	}

	return &Config{
		APIURL: DefaultAPIURL,
		Logger: LoggerConfig{
			Level:  "info",
			Format: format,
		},
		Listen: ":3000",
	}
}

// RunningOnLambda reports whether the process runs inside the Lambda runtime
func RunningOnLambda() bool {
	return os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != ""
}

// LoadFromEnv creates a Config from NUMBERFACTS_ environment variables
func LoadFromEnv() (*Config, error) {
	config := NewConfig()

	if v := getenv("API_URL"); v != "" {
		config.APIURL = v
	}

	if v := getenv("TIMEOUT"); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeConfig, "invalid duration").
				WithContext("key", envPrefix+"TIMEOUT")
		}
		config.Timeout = timeout
	}

	if v := getenv("LOG_LEVEL"); v != "" {
		config.Logger.Level = strings.ToLower(v)
	}

	if v := getenv("LOG_FORMAT"); v != "" {
		config.Logger.Format = strings.ToLower(v)
	}

	if v := getenv("TRACING"); v != "" {
		tracing, err := strconv.ParseBool(v)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeConfig, "invalid boolean").
				WithContext("key", envPrefix+"TRACING")
		}
		config.Tracing = tracing
	}

	if v := getenv("LISTEN"); v != "" {
		config.Listen = v
	}

	config.Function = getenv("FUNCTION")
	config.EndpointURL = getenv("ENDPOINT_URL")
	config.MCP.Description = getenv("MCP_DESCRIPTION")

	return config, nil
}

// LoadFromFlags creates a Config from the environment, then applies any
// flags explicitly set on the command line
func LoadFromFlags(flags *pflag.FlagSet) (*Config, error) {
	config, err := LoadFromEnv()
	if err != nil {
		return nil, err
	}

	if changed(flags, "api-url") {
		if config.APIURL, err = flags.GetString("api-url"); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to get api-url flag")
		}
	}

	if changed(flags, "timeout") {
		if config.Timeout, err = flags.GetDuration("timeout"); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to get timeout flag")
		}
	}

	if changed(flags, "log-level") {
		if config.Logger.Level, err = flags.GetString("log-level"); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to get log-level flag")
		}
	}

	if changed(flags, "log-format") {
		if config.Logger.Format, err = flags.GetString("log-format"); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to get log-format flag")
		}
	}

	if changed(flags, "debug") {
		debug, err := flags.GetBool("debug")
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to get debug flag")
		}
		if debug {
			config.Logger.Level = "debug"
			config.Logger.WithCaller = true
		}
	}

	if changed(flags, "listen") {
		if config.Listen, err = flags.GetString("listen"); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to get listen flag")
		}
	}

	if changed(flags, "function") {
		if config.Function, err = flags.GetString("function"); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to get function flag")
		}
	}

	if changed(flags, "url") {
		if config.EndpointURL, err = flags.GetString("url"); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to get url flag")
		}
	}

	if changed(flags, "mcp-desc") {
		if config.MCP.Description, err = flags.GetString("mcp-desc"); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to get mcp-desc flag")
		}
	}

	return config, nil
}

// Validate ensures the configuration is valid
func (c *Config) Validate() error {
	parsed, err := url.Parse(c.APIURL)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeConfig, "invalid trivia API URL").
			WithContext("key", envPrefix+"API_URL")
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return errors.New(errors.ErrorTypeConfig, "trivia API URL must be an absolute http(s) URL").
			WithContext("key", envPrefix+"API_URL").
			WithContext("api_url", c.APIURL)
	}

	if c.Timeout < 0 {
		return errors.New(errors.ErrorTypeConfig, "timeout must not be negative").
			WithContext("key", envPrefix+"TIMEOUT")
	}

	if c.Logger.Format != "pretty" && c.Logger.Format != "json" {
		return errors.New(errors.ErrorTypeConfig, "log format must be pretty or json").
			WithContext("key", envPrefix+"LOG_FORMAT").
			WithContext("format", c.Logger.Format)
	}

	if c.Function != "" && c.EndpointURL != "" {
		return errors.New(errors.ErrorTypeValidation, "function and endpoint URL are mutually exclusive").
			WithContext("suggestion", "use either --function or --url")
	}

	return nil
}

// BaseURL returns the trivia API base with exactly one trailing slash
func (c *Config) BaseURL() string {
	return strings.TrimRight(c.APIURL, "/") + "/"
}

func getenv(key string) string {
	return strings.TrimSpace(os.Getenv(envPrefix + key))
}

func changed(flags *pflag.FlagSet, name string) bool {
	if flags == nil {
		return false
	}
	flag := flags.Lookup(name)
	return flag != nil && flag.Changed
}
