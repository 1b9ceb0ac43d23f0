package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDataset(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateDataset() error {
	if c.Dataset.CropHeight <= 0 {
		return errors.New("dataset.crop_height must be positive")
	}
	if c.Dataset.CropWidth <= 0 {
		return errors.New("dataset.crop_width must be positive")
	}
	if c.Dataset.Channels != 1 && c.Dataset.Channels != 3 {
		return fmt.Errorf("dataset.channels must be 1 or 3, got %d", c.Dataset.Channels)
	}
	if c.Dataset.NumClasses <= 0 {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/clipset/config.toml"
		}
		return fmt.Errorf("dataset.num_classes is required. Set CLIPSET_NUM_CLASSES env var or edit %s (create with 'clipset config init')", defaultPath)
	}
	if c.Dataset.SampleFrames <= 0 {
		return errors.New("dataset.sample_frames must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
