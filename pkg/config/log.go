package config

import (
	"fmt"
	"strings"
)

type LogConfig struct {
	Level string `koanf:"level" validate:"omitempty,oneof=debug info warn error"`
	// Format is json (default) or text. Text is easier to read in a local terminal.
	Format string `koanf:"format"`
}

// String returns a string representation of the log configuration.
func (c *LogConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Log ---\n")
	b.WriteString(fmt.Sprintf("  level: %s\n", c.Level))
	b.WriteString(fmt.Sprintf("  format: %s\n", c.Format))
	return b.String()
}

func (c *LogConfig) Validate() error {
	switch c.Format {
	case "", "json", "text":
		return nil
	default:
		return fmt.Errorf("unsupported log format %q", c.Format)
	}
}
