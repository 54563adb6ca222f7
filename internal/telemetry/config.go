package telemetry

import "codeberg.org/telvik/displayctl/internal/errors"

const (
	defaultDirPerm = 0o755
	defaultDBPath  = "/var/lib/displayctl/telemetry.db"

	defaultBatchSize    = 16
	defaultBatchTimeout = 30 // seconds
)

type Config struct {
	DBPath       string
	BatchSize    int
	BatchTimeout int
	Enabled      bool
}

func DefaultConfig() Config {
	return Config{
		DBPath:       defaultDBPath,
		BatchSize:    defaultBatchSize,
		BatchTimeout: defaultBatchTimeout,
		Enabled:      false, // Disabled by default
	}
}

func (c Config) Validate() error {
	errFactory := errors.New()

	// Storage settings only matter when telemetry is enabled
	if !c.Enabled {
		return nil
	}

	if c.DBPath == "" {
		return errFactory.New(ErrInvalidDBPath)
	}

	if c.BatchSize < 0 || c.BatchTimeout < 0 {
		return errFactory.WithData(ErrInvalidConfig, struct {
			BatchSize    int
			BatchTimeout int
		}{c.BatchSize, c.BatchTimeout})
	}

	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
