package session

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/AdityaPradhan01/Bloom/internal/models"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaFS embed.FS

// Store persists the single user profile in one durable slot.
type Store interface {
	// Load reads the slot. An absent or undeserializable slot yields
	// (nil, nil); corruption is logged, never surfaced.
	Load(ctx context.Context) (*models.User, error)
	// Save overwrites the slot with user, or deletes it when user is nil.
	Save(ctx context.Context, user *models.User) error
	Close() error
}

// SQLiteStore implements Store on a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and if needed initializes) the store at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return nil, fmt.Errorf("error enabling WAL mode: %w", err)
	}

	if err := initializeSchema(db); err != nil {
		return nil, fmt.Errorf("error initializing schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func initializeSchema(db *sql.DB) error {
	schemaBytes, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("error reading schema file: %w", err)
	}
	if _, err := db.Exec(string(schemaBytes)); err != nil {
		return fmt.Errorf("error executing schema: %w", err)
	}
	return nil
}

// Load reads and deserializes the profile slot.
func (s *SQLiteStore) Load(ctx context.Context) (*models.User, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM session WHERE slot = 0`).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading session slot: %w", err)
	}

	var user models.User
	if err := json.Unmarshal([]byte(data), &user); err != nil {
		// A corrupt slot means logged out, not a failure.
		log.Printf("Discarding corrupt session slot: %v", err)
		return nil, nil
	}
	return &user, nil
}

// Save serializes user into the slot, or deletes the slot for nil.
func (s *SQLiteStore) Save(ctx context.Context, user *models.User) error {
	if user == nil {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM session WHERE slot = 0`); err != nil {
			return fmt.Errorf("error clearing session slot: %w", err)
		}
		return nil
	}

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("error serializing user: %w", err)
	}

	query := `
		INSERT INTO session (slot, data, updated_at) VALUES (0, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET
			data = excluded.data,
			updated_at = excluded.updated_at
	`
	if _, err := s.db.ExecContext(ctx, query, string(data), time.Now()); err != nil {
		return fmt.Errorf("error writing session slot: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
