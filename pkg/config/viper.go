// Package config initializes the application's configuration. It uses the
// Viper library to read settings from a config file, environment variables,
// and command-line flags, providing a unified configuration system.
package config

import (
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// InitConfig initializes the application's configuration using Viper. It
// sets defaults, defines configuration search paths, and enables reading
// from environment variables. Called once at startup, before any command
// runs.
func InitConfig(logger *zap.Logger) {
	viper.SetConfigName("config")
	viper.AddConfigPath(".")               // current working directory
	viper.AddConfigPath("/etc/webgraph/")  // system-wide configuration
	viper.AddConfigPath("$HOME/.webgraph") // user-specific configuration

	const defaultUA = "webgraph/1.0 (+https://github.com/grrrrrrh/web-crawler-bd)"
	viper.SetDefault("crawler.user_agent", defaultUA)
	viper.SetDefault("crawler.max_concurrency", 5)
	viper.SetDefault("crawler.max_pages", 100)
	viper.SetDefault("crawler.request_timeout", "10s")
	viper.SetDefault("crawler.robots_timeout", "10s")
	viper.SetDefault("report.csv_path", "report.csv")
	viper.SetDefault("report.dot_path", "site.dot")
	viper.SetDefault("metrics.addr", "")

	viper.SetEnvPrefix("CRAWLER") // e.g. CRAWLER_CRAWLER_MAX_PAGES=500
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logger.Debug("config file not found; using defaults and environment variables")
		} else {
			logger.Error("error reading config file", zap.Error(err))
		}
	} else {
		logger.Info("using config file", zap.String("path", viper.ConfigFileUsed()))
	}
}
