// Package config defines the CLI surface for g19ctl.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

type Log struct {
	Level string `help:"Log level: trace, debug, info, warn, error" default:"info" env:"G19CTL_LOG_LEVEL"`
	File  string `help:"Log file path (default: none; logs only to console)" env:"G19CTL_LOG_FILE"`
}

// CLI is the root command structure for kong parsing.
type CLI struct {
	Log `embed:"" prefix:"log."`

	R       int  `name:"r" required:"" help:"Red component of the color (0-255)."`
	G       int  `name:"g" required:"" help:"Green component of the color (0-255)."`
	B       int  `name:"b" required:"" help:"Blue component of the color (0-255)."`
	Inspect bool `help:"Inspect the HID reports of the found device instead of setting a color. Useful for debugging."`
	Verbose bool `short:"v" help:"Print the outgoing report buffer as a hex dump." env:"G19CTL_VERBOSE"`
}

func (c *CLI) Validate() error {
	channels := []struct {
		name  string
		value int
	}{
		{"r", c.R},
		{"g", c.G},
		{"b", c.B},
	}
	for _, ch := range channels {
		if ch.value < 0 || ch.value > 255 {
			return fmt.Errorf("--%s must be in the range 0-255, got %d", ch.name, ch.value)
		}
	}
	return nil
}

// CandidatePaths returns the locations probed for configuration files,
// split by format. Missing files are fine; kong skips them. Flags and
// environment variables override configuration values.
func CandidatePaths() (jsonPaths, yamlPaths, tomlPaths []string) {
	dirs := []string{"."}
	if d, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(d, "g19ctl"))
	}
	for _, dir := range dirs {
		jsonPaths = append(jsonPaths, filepath.Join(dir, "g19ctl.json"))
		yamlPaths = append(yamlPaths, filepath.Join(dir, "g19ctl.yaml"))
		tomlPaths = append(tomlPaths, filepath.Join(dir, "g19ctl.toml"))
	}
	return jsonPaths, yamlPaths, tomlPaths
}
