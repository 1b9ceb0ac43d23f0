package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeDataset(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if value, ok := os.LookupEnv("CLIPSET_DATA_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.DataDir = strings.TrimSpace(value)
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.MetaDir, err = expandPath(c.Paths.MetaDir); err != nil {
		return fmt.Errorf("paths.meta_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.CatalogPath) == "" {
		c.Paths.CatalogPath = defaultCatalogPath
	}
	if c.Paths.CatalogPath, err = expandPath(c.Paths.CatalogPath); err != nil {
		return fmt.Errorf("paths.catalog_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeDataset() error {
	if c.Dataset.NumClasses == 0 {
		if value, ok := os.LookupEnv("CLIPSET_NUM_CLASSES"); ok {
			parsed, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return fmt.Errorf("CLIPSET_NUM_CLASSES: %w", err)
			}
			c.Dataset.NumClasses = parsed
		}
	}
	c.Dataset.RecordExt = strings.TrimSpace(c.Dataset.RecordExt)
	if c.Dataset.RecordExt == "" {
		c.Dataset.RecordExt = defaultRecordExt
	}
	if !strings.HasPrefix(c.Dataset.RecordExt, ".") {
		c.Dataset.RecordExt = "." + c.Dataset.RecordExt
	}
	if c.Dataset.SampleFrames == 0 {
		c.Dataset.SampleFrames = defaultSampleFrames
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
