package config

import (
	"fmt"
	"strings"

	"flacsmith/internal/services"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateTranscode(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		return services.Wrap(services.ErrConfiguration, "config", "validate", "paths.output_dir must be set", nil)
	}
	if strings.TrimSpace(c.Paths.TorrentDir) == "" {
		return services.Wrap(services.ErrConfiguration, "config", "validate", "paths.torrent_dir must be set", nil)
	}
	return nil
}

func (c *Config) validateTranscode() error {
	if len(c.Transcode.Formats) == 0 {
		return services.Wrap(services.ErrConfiguration, "config", "validate", "transcode.formats must include at least one target format", nil)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "auto", "console", "json":
	default:
		return services.Wrap(
			services.ErrConfiguration,
			"config",
			"validate",
			fmt.Sprintf("logging.format must be auto, console or json, got %q", c.Logging.Format),
			nil,
		)
	}
	return nil
}
