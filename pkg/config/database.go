package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

const defaultDatabaseName = "products"

// DatabaseConfig holds the MongoDB connection settings.
// Either URI is set, or the discrete User/Password/Host fields are used to build
// an SRV connection string.
type DatabaseConfig struct {
	URI      string        `koanf:"uri"`
	User     string        `koanf:"user"`
	Password string        `koanf:"password"`
	Host     string        `koanf:"host"`
	Name     string        `koanf:"name"`
	Timeout  time.Duration `koanf:"timeout" validate:"gt=0"`
}

// ConnectionString returns the configured URI, or a mongodb+srv URI built from the discrete fields.
func (c *DatabaseConfig) ConnectionString() string {
	if c.URI != "" {
		return c.URI
	}
	u := url.URL{
		Scheme: "mongodb+srv",
		User:   url.UserPassword(c.User, c.Password),
		Host:   c.Host,
		Path:   "/" + c.DatabaseName(),
	}
	return u.String()
}

// DatabaseName returns the database to use, defaulting to "products".
func (c *DatabaseConfig) DatabaseName() string {
	if c.Name == "" {
		return defaultDatabaseName
	}
	return c.Name
}

// String returns a string representation of the database configuration.
func (c *DatabaseConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Database ---\n")
	b.WriteString(fmt.Sprintf("  uri: %s\n", MaskURL(c.ConnectionString())))
	b.WriteString(fmt.Sprintf("  name: %s\n", c.DatabaseName()))
	b.WriteString(fmt.Sprintf("  timeout: %s\n", c.Timeout))
	return b.String()
}

func (c *DatabaseConfig) Validate() error {
	if c.URI == "" && c.Host == "" {
		return fmt.Errorf("database URI or host is not configured")
	}
	if c.URI != "" && !isValidMongoURL(c.URI) {
		return fmt.Errorf("database URI must start with 'mongodb://' or 'mongodb+srv://': %s", MaskURL(c.URI))
	}
	return nil
}

// MaskURL hides the credentials part of a connection string.
func MaskURL(url string) string {
	if url == "" {
		return "<not configured>"
	}
	// Mask the URL by replacing the username and password with "****"
	parts := strings.Split(url, "@")
	if len(parts) == 2 {
		return "****@" + parts[1]
	}
	return url
}

// isValidMongoURL checks if the provided URL is a valid MongoDB URL
func isValidMongoURL(url string) bool {
	return strings.HasPrefix(url, "mongodb://") ||
		strings.HasPrefix(url, "mongodb+srv://")
}
