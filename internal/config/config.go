package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	// HTTP Server
	Port string

	// Backend selection
	DataBackend string

	// File backend
	StateFilePath string

	// SQLite backend
	SQLiteDBPath string

	// Share link
	WhatsAppLinkBase string
}

func Load() *Config {
	return &Config{
		Port:             getEnv("PORT", "8081"),
		DataBackend:      getEnv("DATA_BACKEND", "file"),
		StateFilePath:    getEnv("STATE_FILE_PATH", "./data/mawazna.json"),
		SQLiteDBPath:     getEnv("SQLITE_DB_PATH", "./data/mawazna.db"),
		WhatsAppLinkBase: getEnv("WHATSAPP_LINK_BASE", "https://wa.me/"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	// Validate data backend
	validBackends := []string{"file", "sqlite", "memory"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	// Validate file configuration if backend is file
	if c.DataBackend == "file" {
		if c.StateFilePath == "" {
			errors = append(errors, "state file path cannot be empty when using file backend")
		} else if err := ensureDir(c.StateFilePath); err != nil {
			errors = append(errors, err.Error())
		}
	}

	// Validate SQLite configuration if backend is sqlite
	if c.DataBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else if err := ensureDir(c.SQLiteDBPath); err != nil {
			errors = append(errors, err.Error())
		}
	}

	// Validate share link base
	if c.WhatsAppLinkBase != "" {
		if parsedURL, err := url.Parse(c.WhatsAppLinkBase); err != nil {
			errors = append(errors, fmt.Sprintf("invalid WhatsApp link base '%s': %v", c.WhatsAppLinkBase, err))
		} else if parsedURL.Scheme != "https" && parsedURL.Scheme != "http" {
			errors = append(errors, fmt.Sprintf("invalid WhatsApp link base scheme '%s': must be 'http' or 'https'", parsedURL.Scheme))
		}
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("cannot create data directory '%s': %v", dir, err)
		}
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
