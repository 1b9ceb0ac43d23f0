package main

import (
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"clipset/internal/config"
	"clipset/internal/logging"
)

type commandContext struct {
	configFlag *string
	seedFlag   *int64

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string, seedFlag *int64) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		seedFlag:   seedFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

// rng builds the random source commands use for shuffling and augmentation.
// The --seed flag makes runs reproducible; 0 falls back to the clock.
func (c *commandContext) rng() *rand.Rand {
	seed := time.Now().UnixNano()
	if c.seedFlag != nil && *c.seedFlag != 0 {
		seed = *c.seedFlag
	}
	return rand.New(rand.NewSource(seed))
}
