package weightstore

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteStore keeps one weight list per exercise in dir/weights.db.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the SQLite store in dir and applies pending
// migrations.
func OpenSQLite(dir string) (*SQLiteStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating state dir %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, "weights.db")
	if err := runMigrations(dbPath); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening weights db: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func runMigrations(dbPath string) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("loading migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, "sqlite://"+dbPath)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// Load returns the list stored for exercise.
func (s *SQLiteStore) Load(ctx context.Context, exercise string) (List, error) {
	var prec int
	var weights string
	err := s.db.QueryRowContext(ctx,
		`SELECT decimals, weights FROM weight_lists WHERE exercise = ?`, exercise,
	).Scan(&prec, &weights)
	if errors.Is(err, sql.ErrNoRows) {
		return List{}, ErrNotFound
	}
	if err != nil {
		return List{}, fmt.Errorf("querying weights for %q: %w", exercise, err)
	}

	ws, err := decodeWeights(weights)
	if err != nil {
		return List{}, fmt.Errorf("decoding weights for %q: %w", exercise, err)
	}
	return List{Precision: prec, Weights: ws}, nil
}

// Save replaces the list stored for exercise.
func (s *SQLiteStore) Save(ctx context.Context, exercise string, l List) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO weight_lists (exercise, decimals, weights, updated_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)`,
		exercise, l.Precision, encodeWeights(l.Weights, l.Precision),
	)
	if err != nil {
		return fmt.Errorf("saving weights for %q: %w", exercise, err)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
