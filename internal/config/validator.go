package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

var validLogLevels = map[string]bool{
	"DEBUG": true,
	"INFO":  true,
	"WARN":  true,
	"ERROR": true,
}

// Validate проверяет корректность конфигурации
func (c *Config) Validate() error {
	var errors []string

	// Валидация порта
	if c.Port == "" {
		errors = append(errors, "port is required")
	} else {
		port, err := strconv.Atoi(c.Port)
		if err != nil {
			errors = append(errors, fmt.Sprintf("invalid port: %s", c.Port))
		} else if port < 1 || port > 65535 {
			errors = append(errors, fmt.Sprintf("port must be between 1 and 65535, got %d", port))
		}
	}

	if c.JournalPath == "" {
		errors = append(errors, "journal path is required")
	}

	if c.FormatsFile != "" {
		if _, err := os.Stat(c.FormatsFile); err != nil {
			errors = append(errors, fmt.Sprintf("formats file is not accessible: %v", err))
		}
	}

	// Пустая строка допустима, используется INFO
	if c.LogLevel != "" && !validLogLevels[strings.ToUpper(c.LogLevel)] {
		errors = append(errors, fmt.Sprintf("invalid log level: %s (expected DEBUG, INFO, WARN or ERROR)", c.LogLevel))
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "json", "text":
	default:
		errors = append(errors, fmt.Sprintf("invalid log format: %s (expected json or text)", c.LogFormat))
	}

	if c.MaxUploadMB < 1 {
		errors = append(errors, "max upload size must be at least 1 MB")
	}
	if c.RateLimitRPS <= 0 {
		errors = append(errors, "rate limit must be positive")
	}
	if c.RateLimitBurst < 1 {
		errors = append(errors, "rate limit burst must be at least 1")
	}
	if c.ShutdownTimeout < 0 {
		errors = append(errors, "shutdown timeout cannot be negative")
	}

	if len(errors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}
	return nil
}
