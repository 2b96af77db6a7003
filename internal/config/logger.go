package config

import (
	"os"
	"sync"
)

type LoggerConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

var (
	loggerConfig *LoggerConfig
	loggerOnce   sync.Once
)

func LoadLoggerConfig() *LoggerConfig {
	loggerOnce.Do(func() {
		level := os.Getenv("LOG_LEVEL")
		if level == "" {
			level = "info"
		}
		format := os.Getenv("LOG_FORMAT")
		if format == "" {
			format = "pretty"
		}
		loggerConfig = &LoggerConfig{
			Level:  level,
			Format: format,
		}
	})
	return loggerConfig
}
