package telemetry

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/telvik/displayctl/internal/errors"
	"codeberg.org/telvik/displayctl/internal/logger"
)

func testConfig(t *testing.T) Config {
	t.Helper()

	return Config{
		DBPath:       filepath.Join(t.TempDir(), "telemetry.db"),
		BatchSize:    1,
		BatchTimeout: 1,
		Enabled:      true,
	}
}

func sampleOutcome() *ReconcileOutcome {
	return &ReconcileOutcome{
		Timestamp:  time.Now(),
		SessionID:  "4be0643f-1d98-573b-97cd-ca98a65347dd",
		Trigger:    TriggerActivityReturn,
		Attempts:   2,
		AlreadySet: false,
		Success:    true,
		From:       ModeMetrics{Width: 1920, Height: 1080, RefreshHz: 60},
		To:         ModeMetrics{Width: 3840, Height: 2160, RefreshHz: 120},
	}
}

func TestNewServiceDisabled(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "telemetry.db")

	collector, err := NewService(Config{DBPath: dbPath, Enabled: false})
	require.NoError(t, err)

	require.NoError(t, collector.Record(context.Background(), sampleOutcome()))
	require.NoError(t, collector.Close())

	_, err = os.Stat(dbPath)
	assert.True(t, os.IsNotExist(err), "disabled telemetry must not touch the filesystem")
}

func TestRecordAndQueryBack(t *testing.T) {
	cfg := testConfig(t)

	collector, err := NewService(cfg)
	require.NoError(t, err)

	outcome := sampleOutcome()
	require.NoError(t, collector.Record(context.Background(), outcome))
	require.NoError(t, collector.Close())

	db, err := sql.Open("sqlite3", cfg.DBPath)
	require.NoError(t, err)
	defer db.Close()

	var (
		sessionID string
		trigger   string
		attempts  int
		success   int
		toWidth   int
	)
	err = db.QueryRow(`
        SELECT session_id, trigger_kind, attempts, success, to_width
        FROM reconcile_outcomes
    `).Scan(&sessionID, &trigger, &attempts, &success, &toWidth)
	require.NoError(t, err)

	assert.Equal(t, outcome.SessionID, sessionID)
	assert.Equal(t, TriggerActivityReturn, trigger)
	assert.Equal(t, 2, attempts)
	assert.Equal(t, 1, success)
	assert.Equal(t, 3840, toWidth)
}

func TestBufferedRecordsFlushOnClose(t *testing.T) {
	cfg := testConfig(t)
	cfg.BatchSize = 100

	repo, err := NewRepository(cfg, logger.Default())
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Record(sampleOutcome()))
	}
	require.NoError(t, repo.Close())

	db, err := sql.Open("sqlite3", cfg.DBPath)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM reconcile_outcomes").Scan(&count))
	assert.Equal(t, 3, count)
}

func TestRecordNilOutcome(t *testing.T) {
	collector, err := NewService(testConfig(t))
	require.NoError(t, err)
	defer collector.Close()

	err = collector.Record(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, ErrInvalidOutcome))
}

func TestRecordCanceledContext(t *testing.T) {
	collector, err := NewService(testConfig(t))
	require.NoError(t, err)
	defer collector.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = collector.Record(ctx, sampleOutcome())
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrTimeout))
}

func TestSchemaMismatchRefused(t *testing.T) {
	cfg := testConfig(t)

	db, err := sql.Open("sqlite3", cfg.DBPath)
	require.NoError(t, err)
	_, err = db.Exec(`
        CREATE TABLE schema_versions (version INTEGER PRIMARY KEY, applied_at TEXT NOT NULL);
        INSERT INTO schema_versions (version, applied_at) VALUES (99, datetime('now'));
    `)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = NewRepository(cfg, logger.Default())
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrInitFailed))
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "disabled skips storage checks", cfg: Config{Enabled: false}, wantErr: false},
		{name: "enabled without path", cfg: Config{Enabled: true}, wantErr: true},
		{name: "negative batch size", cfg: Config{Enabled: true, DBPath: "/tmp/t.db", BatchSize: -1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
