package main

import "errors"

// KnownMetrics is the set of metric names exported by the trade engine
// plus recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// HTTP metrics.
	"yte_http_request_duration_seconds": true,
	"yte_http_requests_total":           true,

	// Health metrics.
	"yte_healthz_up": true,
	"yte_readyz_up":  true,

	// Vendor API metrics.
	"yte_vendor_api_calls_total":      true,
	"yte_vendor_api_errors_total":     true,
	"yte_simulation_fallbacks_total":  true,
	"yte_ebay_daily_usage":            true,
	"yte_ebay_daily_limit_hits_total": true,

	// Session metrics.
	"yte_token_refreshes_total":  true,
	"yte_sessions_active":        true,
	"yte_sessions_expired_total": true,

	// Dashboard metrics.
	"yte_dashboard_duration_seconds":     true,
	"yte_dashboard_demo_fallbacks_total": true,

	// Notification metrics.
	"yte_notification_duration_seconds": true,

	// Recording rules.
	"yte:http_requests:rate5m":          true,
	"yte:http_errors:rate5m":            true,
	"yte:vendor_api_calls:rate5m":       true,
	"yte:vendor_api_errors:rate5m":      true,
	"yte:simulation_fallbacks:rate5m":   true,
	"yte:token_refresh_failures:rate5m": true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
