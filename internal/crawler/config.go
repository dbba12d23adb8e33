package crawler

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config captures every knob that influences a crawl run. All values except
// the seed originate from Viper so the crawler can be configured via config
// file, env vars, or CLI flags.
type Config struct {
	SeedURL        string
	UserAgent      string
	MaxConcurrency int
	MaxPages       int
	RequestTimeout time.Duration
	RobotsTimeout  time.Duration
	ReportPath     string
	GraphPath      string
	MetricsAddr    string
}

// LoadConfig constructs a Config by reading from Viper. The seed URL is
// positional on the CLI and set by the caller afterwards.
func LoadConfig(v *viper.Viper) Config {
	return Config{
		UserAgent:      v.GetString("crawler.user_agent"),
		MaxConcurrency: v.GetInt("crawler.max_concurrency"),
		MaxPages:       v.GetInt("crawler.max_pages"),
		RequestTimeout: v.GetDuration("crawler.request_timeout"),
		RobotsTimeout:  v.GetDuration("crawler.robots_timeout"),
		ReportPath:     v.GetString("report.csv_path"),
		GraphPath:      v.GetString("report.dot_path"),
		MetricsAddr:    v.GetString("metrics.addr"),
	}
}

// Validate checks for configurations that must abort the run before any
// work starts. Violations are setup errors.
func (c Config) Validate() error {
	if c.SeedURL == "" {
		return fmt.Errorf("%w: seed URL must be provided", ErrSetup)
	}
	if c.UserAgent == "" {
		return fmt.Errorf("%w: crawler.user_agent must be set", ErrSetup)
	}
	if c.MaxConcurrency <= 0 {
		return fmt.Errorf("%w: crawler.max_concurrency must be > 0", ErrSetup)
	}
	if c.MaxPages <= 0 {
		return fmt.Errorf("%w: crawler.max_pages must be > 0", ErrSetup)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("%w: crawler.request_timeout must be > 0", ErrSetup)
	}
	if c.RobotsTimeout <= 0 {
		return fmt.Errorf("%w: crawler.robots_timeout must be > 0", ErrSetup)
	}
	return nil
}
