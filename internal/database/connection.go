package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// DB is the global database connection
var DB *sqlx.DB

// Connect establishes a connection to the database. DB_TYPE selects the
// backend: "sqlite" (default) uses DB_PATH or data/tutorbot.db, "postgres"
// uses DATABASE_URL.
func Connect() error {
	dbType := os.Getenv("DB_TYPE")
	if dbType == "" {
		dbType = "sqlite"
	}

	var db *sqlx.DB
	var err error

	switch dbType {
	case "postgres":
		dsn := os.Getenv("DATABASE_URL")
		if dsn == "" {
			return fmt.Errorf("DATABASE_URL environment variable is not set")
		}
		db, err = sqlx.Connect("postgres", dsn)
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %v", err)
		}

	case "sqlite":
		dbPath := os.Getenv("DB_PATH")
		if dbPath == "" {
			if err := os.MkdirAll("data", 0755); err != nil {
				return fmt.Errorf("failed to create data directory: %v", err)
			}
			dbPath = filepath.Join("data", "tutorbot.db")
		}
		db, err = sqlx.Connect("sqlite3", dbPath)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %v", err)
		}
		if _, err = db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			return fmt.Errorf("failed to enable foreign keys: %v", err)
		}
		// SQLite doesn't support multiple writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)

	default:
		return fmt.Errorf("unsupported DB_TYPE %q", dbType)
	}

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
		CREATE TABLE IF NOT EXISTS knowledge_points (
			id TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			content TEXT NOT NULL,
			pronunciation TEXT DEFAULT '',
			translation TEXT DEFAULT '',
			tags TEXT DEFAULT '[]',
			prerequisites TEXT DEFAULT '[]',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create knowledge_points table: %v", err)
	}

	_, err = DB.Exec(`
		CREATE TABLE IF NOT EXISTS mastery_records (
			knowledge_point_id TEXT PRIMARY KEY,
			mode TEXT NOT NULL DEFAULT 'learning',
			p_known REAL DEFAULT 0,
			p_transit REAL DEFAULT 0.3,
			p_slip REAL DEFAULT 0.1,
			p_guess REAL DEFAULT 0.2,
			practice_count INTEGER DEFAULT 0,
			correct_count INTEGER DEFAULT 0,
			consecutive_correct INTEGER DEFAULT 0,
			last_practiced TIMESTAMP,
			stability REAL,
			difficulty REAL,
			due TIMESTAMP,
			last_review TIMESTAMP,
			fsrs_state INTEGER,
			fsrs_step INTEGER,
			transitioned_at TIMESTAMP,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (knowledge_point_id) REFERENCES knowledge_points(id)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create mastery_records table: %v", err)
	}

	_, err = DB.Exec(`
		CREATE TABLE IF NOT EXISTS session_state (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			practice_mode TEXT NOT NULL DEFAULT 'interleaved',
			active_cluster_tag TEXT DEFAULT '',
			learning_retention_ratio REAL DEFAULT 0.7,
			exercises_since_menu INTEGER DEFAULT 0,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create session_state table: %v", err)
	}

	return nil
}
