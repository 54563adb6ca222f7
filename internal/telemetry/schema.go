package telemetry

import (
	"database/sql"

	"codeberg.org/telvik/displayctl/internal/errors"
	"codeberg.org/telvik/displayctl/internal/logger"
)

const (
	SchemaVersion = 1

	// SQL statements derived from schema
	createTablesSQL = `
	   CREATE TABLE IF NOT EXISTS schema_versions (
	       version     INTEGER PRIMARY KEY,
	       applied_at  TEXT NOT NULL
	   );
	   CREATE TABLE IF NOT EXISTS reconcile_outcomes (
	       timestamp       INTEGER NOT NULL,
	       session_id      TEXT NOT NULL,
	       trigger_kind    TEXT NOT NULL,
	       attempts        INTEGER NOT NULL CHECK (typeof(attempts) = 'integer'),
	       already_set     INTEGER NOT NULL CHECK (already_set IN (0, 1)),
	       success         INTEGER NOT NULL CHECK (success IN (0, 1)),
	       error_text      TEXT NOT NULL,
	       from_width      INTEGER NOT NULL,
	       from_height     INTEGER NOT NULL,
	       from_refresh_hz INTEGER NOT NULL,
	       to_width        INTEGER NOT NULL,
	       to_height       INTEGER NOT NULL,
	       to_refresh_hz   INTEGER NOT NULL
	   );`

	insertOutcomeSQL = `
    INSERT INTO reconcile_outcomes (
        timestamp, session_id, trigger_kind,
        attempts, already_set, success, error_text,
        from_width, from_height, from_refresh_hz,
        to_width, to_height, to_refresh_hz
    ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
)

// InitSchema creates a new database schema with the current version
func InitSchema(db *sql.DB, log logger.Logger) error {
	errFactory := errors.New()

	log.Debug().Msg("Creating database...")

	tx, err := db.Begin()
	if err != nil {
		return errFactory.Wrap(ErrSchemaInitFailed, err)
	}

	// Track transaction state
	committed := false
	defer func() {
		if !committed {
			if err := tx.Rollback(); err != nil {
				// Only log if it's not the "already committed" error
				if !errors.Is(err, sql.ErrTxDone) {
					log.Debug().Err(err).Msg("Failed to rollback transaction")
				}
			}
		}
	}()

	if _, err := tx.Exec(createTablesSQL); err != nil {
		return errFactory.WithData(ErrSchemaInitFailed, struct {
			Error string
			SQL   string
		}{
			Error: err.Error(),
			SQL:   createTablesSQL,
		})
	}

	if _, err := tx.Exec(`
        INSERT INTO schema_versions (version, applied_at)
        VALUES (?, datetime('now'))
    `, SchemaVersion); err != nil {
		return errFactory.WithData(ErrSchemaInitFailed, struct {
			Error string
			Phase string
		}{
			Error: err.Error(),
			Phase: "record_version",
		})
	}

	if err := tx.Commit(); err != nil {
		return errFactory.Wrap(ErrSchemaInitFailed, err)
	}
	committed = true

	log.Info().
		Int("version", SchemaVersion).
		Msg("Schema initialized successfully")

	return nil
}

// ValidateAndUpdateSchema initializes an empty database and accepts a
// current one. Any other version is refused; no migration path exists
// yet.
func ValidateAndUpdateSchema(db *sql.DB, log logger.Logger) error {
	errFactory := errors.New()

	version, err := GetSchemaVersion(db)
	if err != nil {
		return errFactory.Wrap(ErrSchemaValidationFailed, err)
	}

	switch version {
	case 0:
		return InitSchema(db, log)
	case SchemaVersion:
		log.Debug().Int("version", version).Msg("Schema version is current")
		return nil
	default:
		return errFactory.WithData(ErrSchemaMismatch, struct {
			Found    int
			Expected int
		}{version, SchemaVersion})
	}
}

// GetSchemaVersion returns the current schema version
func GetSchemaVersion(db *sql.DB) (int, error) {
	errFactory := errors.New()

	exists, err := TableExists(db, "schema_versions")
	if err != nil {
		return 0, errFactory.Wrap(ErrSchemaValidationFailed, err)
	}
	if !exists {
		return 0, nil
	}

	var version int
	err = db.QueryRow(`
        SELECT version
        FROM schema_versions
        ORDER BY version DESC
        LIMIT 1
    `).Scan(&version)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, errFactory.WithData(ErrSchemaValidationFailed, struct {
			Phase string
			Error string
		}{
			Phase: "get_version",
			Error: err.Error(),
		})
	}

	return version, nil
}

// TableExists checks if a table exists
func TableExists(db *sql.DB, tableName string) (bool, error) {
	errFactory := errors.New()
	var exists bool
	err := db.QueryRow(`
        SELECT EXISTS (
            SELECT 1 FROM sqlite_master
            WHERE type='table' AND name=?
        )
    `, tableName).Scan(&exists)
	if err != nil {
		return false, errFactory.WithData(ErrSchemaValidationFailed, struct {
			Phase string
			Table string
			Error string
		}{
			Phase: "check_table_exists",
			Table: tableName,
			Error: err.Error(),
		})
	}
	return exists, nil
}

// GetInsertOutcomeSQL returns the SQL to insert one outcome
func GetInsertOutcomeSQL() string {
	return insertOutcomeSQL
}
