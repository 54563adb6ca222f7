package telemetry

import (
	"context"

	"codeberg.org/telvik/displayctl/internal/errors"
	"codeberg.org/telvik/displayctl/internal/logger"
)

type service struct {
	repo Repository
	cfg  Config
}

func NewService(cfg Config) (Collector, error) {
	errFactory := errors.New()

	if err := cfg.Validate(); err != nil {
		return nil, errFactory.Wrap(ErrInvalidConfig, err)
	}

	// If telemetry is disabled, return a no-op collector
	if !cfg.Enabled {
		logger.Debug().Msg("Telemetry disabled, using no-op collector")
		return &noopCollector{}, nil
	}

	repo, err := NewRepository(cfg, logger.Default())
	if err != nil {
		logger.Debug().Err(err).Msg("Failed to create telemetry repository")
		return nil, err
	}

	logger.Debug().
		Str("db_path", cfg.DBPath).
		Bool("enabled", cfg.Enabled).
		Msg("Telemetry service initialized successfully")

	return &service{
		repo: repo,
		cfg:  cfg,
	}, nil
}

func (s *service) Record(ctx context.Context, outcome *ReconcileOutcome) error {
	errFactory := errors.New()

	if outcome == nil {
		return errFactory.New(ErrInvalidOutcome)
	}

	select {
	case <-ctx.Done():
		return errFactory.Wrap(ErrOperationTimeout, ctx.Err())
	default:
		if err := s.repo.Record(outcome); err != nil {
			return errFactory.Wrap(ErrRecordFailed, err)
		}
	}

	return nil
}

func (s *service) Close() error {
	errFactory := errors.New()

	if err := s.repo.Close(); err != nil {
		return errFactory.Wrap(ErrServiceShutdown, err)
	}
	return nil
}

// noopCollector satisfies Collector when telemetry is disabled
type noopCollector struct{}

func (*noopCollector) Record(_ context.Context, _ *ReconcileOutcome) error {
	return nil
}

func (*noopCollector) Close() error {
	return nil
}
