package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/example/phrasedrill/pkg/models"
)

// DB is the global database connection
var DB *sqlx.DB

// Connect establishes a connection to the database. DB_TYPE selects the
// driver: "postgres" connects to DATABASE_URL, anything else opens a local
// SQLite file at DB_PATH (default data/phrasedrill.db).
func Connect() error {
	dbType := os.Getenv("DB_TYPE")
	if dbType == "postgres" {
		db, err := sqlx.Connect("postgres", os.Getenv("DATABASE_URL"))
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %v", err)
		}
		DB = db
		// Postgres schema is managed by migrations, not bootstrapped here.
		return nil
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = filepath.Join("data", "phrasedrill.db")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %v", err)
	}

	db, err := sqlx.Connect("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %v", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %v", err)
	}

	// SQLite doesn't support multiple writers
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	DB = db
	return initializeSchema()
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// initializeSchema creates necessary tables if they don't exist
func initializeSchema() error {
	_, err := DB.Exec(`
		CREATE TABLE IF NOT EXISTS items (
			id TEXT PRIMARY KEY,
			skill TEXT NOT NULL,
			module TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			expression TEXT NOT NULL,
			ja_hint TEXT NOT NULL DEFAULT '',
			typing_enabled BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create items table: %v", err)
	}

	_, err = DB.Exec(`
		CREATE TABLE IF NOT EXISTS questions (
			id TEXT PRIMARY KEY,
			skill TEXT NOT NULL,
			mode TEXT NOT NULL,
			module TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			prompt TEXT NOT NULL,
			correct_expression TEXT NOT NULL,
			choices TEXT NOT NULL DEFAULT '[]',
			hint_first_char TEXT NOT NULL DEFAULT '',
			hint_length INTEGER NOT NULL DEFAULT 0,
			item_id TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (item_id) REFERENCES items(id)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create questions table: %v", err)
	}

	// The uniqueness constraint carries all four key parts; dropping module
	// from it would collapse two modules' histories for the same item id.
	_, err = DB.Exec(`
		CREATE TABLE IF NOT EXISTS mastery_states (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			learner_id INTEGER NOT NULL,
			item_id TEXT NOT NULL,
			mode TEXT NOT NULL,
			module TEXT NOT NULL,
			stage INTEGER NOT NULL DEFAULT 0,
			correct_streak INTEGER NOT NULL DEFAULT 0,
			total_correct INTEGER NOT NULL DEFAULT 0,
			total_wrong INTEGER NOT NULL DEFAULT 0,
			last_review_on TIMESTAMP NOT NULL,
			next_review_on TIMESTAMP NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(learner_id, item_id, mode, module)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create mastery_states table: %v", err)
	}

	_, err = DB.Exec(`
		CREATE TABLE IF NOT EXISTS attempt_logs (
			id TEXT PRIMARY KEY,
			learner_id INTEGER NOT NULL,
			question_id TEXT NOT NULL,
			item_id TEXT,
			mode TEXT NOT NULL,
			module TEXT NOT NULL,
			is_correct BOOLEAN NOT NULL,
			answer TEXT NOT NULL DEFAULT '',
			elapsed_ms INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create attempt_logs table: %v", err)
	}

	return nil
}

// storeErr classifies a driver error: missing rows stay ErrNotFound, every
// other failure surfaces as ErrStoreUnavailable so callers can degrade.
func storeErr(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	return fmt.Errorf("%s: %w: %v", op, models.ErrStoreUnavailable, err)
}
