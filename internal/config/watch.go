package config

import (
	"github.com/fsnotify/fsnotify"

	"codeberg.org/telvik/displayctl/internal/errors"
	"codeberg.org/telvik/displayctl/internal/logger"
)

// Watch starts watching the config file loaded by Load for changes and
// invokes the callback with each freshly parsed configuration. Reloads
// that fail to parse or validate are dropped with a warning. Timing
// values are fixed for the lifetime of a daemon run; callers should
// only act on changes to the target mode.
func Watch(onChange func(*Config)) error {
	mu.Lock()
	defer mu.Unlock()

	errFactory := errors.New()

	if v == nil || v.ConfigFileUsed() == "" {
		return errFactory.WithMessage(errors.ErrWatchConfig, "no config file in use")
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		mu.Lock()
		defer mu.Unlock()

		cfg := &Config{}
		if err := v.Unmarshal(cfg); err != nil {
			logger.Warn().Err(err).Str("file", e.Name).Msg("Ignoring config reload: parse failed")
			return
		}

		if err := cfg.Validate(); err != nil {
			logger.Warn().Err(err).Str("file", e.Name).Msg("Ignoring config reload: validation failed")
			return
		}

		logger.Info().Str("file", e.Name).Msg("Configuration file changed")
		onChange(cfg)
	})
	v.WatchConfig()

	return nil
}
