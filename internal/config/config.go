// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment selects which vendor endpoints the engine talks to.
const (
	EnvSandbox    = "sandbox"
	EnvProduction = "production"
)

// Config is the top-level application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Session   SessionConfig   `yaml:"session"`
	Ebay      EbayConfig      `yaml:"ebay"`
	G2A       G2AConfig       `yaml:"g2a"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Schedule  ScheduleConfig  `yaml:"schedule"`
	Notify    NotifyConfig    `yaml:"notify"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// NotifyConfig defines optional operational event delivery. An empty
// webhook URL disables notifications.
type NotifyConfig struct {
	DiscordWebhookURL string `yaml:"discord_webhook_url"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	BaseURL      string        `yaml:"base_url"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// SessionConfig defines the PostgreSQL session store and cookie settings.
type SessionConfig struct {
	Database  DatabaseConfig `yaml:"database"`
	CookieTTL time.Duration  `yaml:"cookie_ttl"`
}

// DatabaseConfig defines PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	PoolSize int    `yaml:"pool_size"`
}

// DSN returns a PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		d.Host, d.Port, d.Name, d.User, d.Password, d.SSLMode,
	)
}

// EbayConfig defines eBay API settings. AppID/CertID are the app-level
// client-credentials pair; the OAuth block covers the user-level
// authorization-code flow.
type EbayConfig struct {
	AppID        string          `yaml:"app_id"`
	CertID       string          `yaml:"cert_id"`
	Environment  string          `yaml:"environment"` // sandbox, production
	TokenURL     string          `yaml:"token_url"`
	AuthorizeURL string          `yaml:"authorize_url"`
	BrowseURL    string          `yaml:"browse_url"`
	FindingURL   string          `yaml:"finding_url"`
	Marketplace  string          `yaml:"marketplace"`
	OAuth        OAuthConfig     `yaml:"oauth"`
	RateLimit    RateLimitConfig `yaml:"rate_limit"`
}

// OAuthConfig defines the user-level OAuth authorization-code flow settings.
// RedirectURI is the eBay RuName in production.
type OAuthConfig struct {
	RedirectURI string   `yaml:"redirect_uri"`
	Scopes      []string `yaml:"scopes"`
}

// G2AConfig defines G2A Products API settings. The API uses a static
// hash/secret pair, not user OAuth.
type G2AConfig struct {
	APIHash     string `yaml:"api_hash"`
	APISecret   string `yaml:"api_secret"`
	Environment string `yaml:"environment"` // sandbox, production
	ProductsURL string `yaml:"products_url"`
}

// RateLimitConfig defines vendor API rate limiting settings.
type RateLimitConfig struct {
	PerSecond  float64 `yaml:"per_second"`
	Burst      int     `yaml:"burst"`
	DailyLimit int64   `yaml:"daily_limit"`
}

// DashboardConfig defines the fixed keyword searches fanned out per
// dashboard request and the uniform timeout applied to each vendor call.
type DashboardConfig struct {
	Keywords    []string      `yaml:"keywords"`
	CallTimeout time.Duration `yaml:"call_timeout"`
	Featured    int           `yaml:"featured"`
}

// ScheduleConfig defines the proactive token refresh sweep.
type ScheduleConfig struct {
	RefreshSweepInterval time.Duration `yaml:"refresh_sweep_interval"`
	RefreshWatermark     time.Duration `yaml:"refresh_watermark"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applySessionDefaults(&cfg.Session)
	applyEbayDefaults(&cfg.Ebay)
	applyG2ADefaults(&cfg.G2A)
	applyDashboardDefaults(&cfg.Dashboard)
	applyScheduleDefaults(&cfg.Schedule)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.BaseURL == "" {
		s.BaseURL = fmt.Sprintf("http://localhost:%d", s.Port)
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
}

func applySessionDefaults(s *SessionConfig) {
	if s.Database.Port == 0 {
		s.Database.Port = 5432
	}
	if s.Database.SSLMode == "" {
		s.Database.SSLMode = "disable"
	}
	if s.Database.PoolSize == 0 {
		s.Database.PoolSize = 10
	}
	if s.CookieTTL == 0 {
		s.CookieTTL = 30 * 24 * time.Hour
	}
}

func applyEbayDefaults(e *EbayConfig) {
	if e.Environment == "" {
		e.Environment = EnvSandbox
	}
	if e.TokenURL == "" {
		if e.Environment == EnvProduction {
			e.TokenURL = "https://api.ebay.com/identity/v1/oauth2/token"
		} else {
			e.TokenURL = "https://api.sandbox.ebay.com/identity/v1/oauth2/token"
		}
	}
	if e.AuthorizeURL == "" {
		if e.Environment == EnvProduction {
			e.AuthorizeURL = "https://auth.ebay.com/oauth2/authorize"
		} else {
			e.AuthorizeURL = "https://auth.sandbox.ebay.com/oauth2/authorize"
		}
	}
	if e.BrowseURL == "" {
		if e.Environment == EnvProduction {
			e.BrowseURL = "https://api.ebay.com/buy/browse/v1/item_summary/search"
		} else {
			e.BrowseURL = "https://api.sandbox.ebay.com/buy/browse/v1/item_summary/search"
		}
	}
	if e.FindingURL == "" {
		e.FindingURL = "https://svcs.ebay.com/services/search/FindingService/v1"
	}
	if e.Marketplace == "" {
		e.Marketplace = "EBAY_US"
	}
	if len(e.OAuth.Scopes) == 0 {
		e.OAuth.Scopes = []string{"https://api.ebay.com/oauth/api_scope"}
	}
	applyRateLimitDefaults(&e.RateLimit)
}

func applyRateLimitDefaults(r *RateLimitConfig) {
	if r.PerSecond == 0 {
		r.PerSecond = 5.0
	}
	if r.Burst == 0 {
		r.Burst = 10
	}
	if r.DailyLimit == 0 {
		r.DailyLimit = 5000
	}
}

func applyG2ADefaults(g *G2AConfig) {
	if g.Environment == "" {
		g.Environment = EnvSandbox
	}
	if g.ProductsURL == "" {
		if g.Environment == EnvProduction {
			g.ProductsURL = "https://api.g2a.com/v1/products"
		} else {
			g.ProductsURL = "https://sandboxapi.g2a.com/v1/products"
		}
	}
}

func applyDashboardDefaults(d *DashboardConfig) {
	if len(d.Keywords) == 0 {
		d.Keywords = []string{
			"iphone 15 pro",
			"playstation 5",
			"steam gift card",
			"pokemon cards sealed",
			"airpods pro",
		}
	}
	if d.CallTimeout == 0 {
		d.CallTimeout = 10 * time.Second
	}
	if d.Featured == 0 {
		d.Featured = 8
	}
}

func applyScheduleDefaults(s *ScheduleConfig) {
	if s.RefreshSweepInterval == 0 {
		s.RefreshSweepInterval = time.Minute
	}
	if s.RefreshWatermark == 0 {
		s.RefreshWatermark = 5 * time.Minute
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Session.Database.Host == "" {
		errs = append(errs, fmt.Errorf("session.database.host is required"))
	}
	if cfg.Session.Database.Name == "" {
		errs = append(errs, fmt.Errorf("session.database.name is required"))
	}
	if cfg.Session.Database.User == "" {
		errs = append(errs, fmt.Errorf("session.database.user is required"))
	}

	if cfg.Ebay.AppID == "" {
		errs = append(errs, fmt.Errorf("ebay.app_id is required"))
	}
	if cfg.Ebay.CertID == "" {
		errs = append(errs, fmt.Errorf("ebay.cert_id is required"))
	}
	if err := validateEnvironment("ebay.environment", cfg.Ebay.Environment); err != nil {
		errs = append(errs, err)
	}
	if err := validateEnvironment("g2a.environment", cfg.G2A.Environment); err != nil {
		errs = append(errs, err)
	}

	// The user OAuth flow cannot start without a registered redirect.
	if cfg.Ebay.OAuth.RedirectURI == "" {
		errs = append(errs, fmt.Errorf("ebay.oauth.redirect_uri is required"))
	}

	return errors.Join(errs...)
}

func validateEnvironment(field, env string) error {
	if env != EnvSandbox && env != EnvProduction {
		return fmt.Errorf("%s must be %q or %q (got %q)", field, EnvSandbox, EnvProduction, env)
	}
	return nil
}
