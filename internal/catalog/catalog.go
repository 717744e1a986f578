// Package catalog is the shared, admin-curated exercise catalog backed by
// PostgreSQL. Unlike the per-user state document, catalog rows are regular
// relational data visible to every user of the instance.
package catalog

import (
	"context"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meltforce/liftlog/internal/models"
)

// DB wraps a pgxpool.Pool and provides catalog repository methods.
type DB struct {
	Pool *pgxpool.Pool
}

// New creates a new DB with a connection pool.
func New(ctx context.Context, dsn string) (*DB, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("creating pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &DB{Pool: pool}, nil
}

// Close closes the connection pool.
func (db *DB) Close() {
	db.Pool.Close()
}

// RunMigrations applies all pending migrations from the given directory.
func RunMigrations(dsn, migrationsPath string) error {
	m, err := migrate.New("file://"+migrationsPath, dsn)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// List retrieves all catalog exercises, newest first.
func (db *DB) List(ctx context.Context) ([]models.CatalogExercise, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, name, category, media_url, media_type, created_at
		 FROM system_exercises
		 ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	var result []models.CatalogExercise
	for rows.Next() {
		var e models.CatalogExercise
		if err := rows.Scan(&e.ID, &e.Name, &e.Category, &e.MediaURL, &e.MediaType, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning catalog exercise: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

// Get retrieves one catalog exercise by id.
func (db *DB) Get(ctx context.Context, id uuid.UUID) (*models.CatalogExercise, error) {
	var e models.CatalogExercise
	err := db.Pool.QueryRow(ctx,
		`SELECT id, name, category, media_url, media_type, created_at
		 FROM system_exercises
		 WHERE id = $1`, id).
		Scan(&e.ID, &e.Name, &e.Category, &e.MediaURL, &e.MediaType, &e.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("querying catalog exercise: %w", err)
	}
	return &e, nil
}

// Insert adds a catalog exercise and returns it with its assigned id.
func (db *DB) Insert(ctx context.Context, name, category, mediaURL, mediaType string) (*models.CatalogExercise, error) {
	var e models.CatalogExercise
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO system_exercises (id, name, category, media_url, media_type)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, name, category, media_url, media_type, created_at`,
		uuid.New(), name, category, mediaURL, mediaType).
		Scan(&e.ID, &e.Name, &e.Category, &e.MediaURL, &e.MediaType, &e.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting catalog exercise: %w", err)
	}
	return &e, nil
}

// Update replaces the editable fields of a catalog exercise. Returns true
// when a row was updated.
func (db *DB) Update(ctx context.Context, id uuid.UUID, name, category, mediaURL, mediaType string) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE system_exercises
		 SET name = $2, category = $3, media_url = $4, media_type = $5
		 WHERE id = $1`,
		id, name, category, mediaURL, mediaType)
	if err != nil {
		return false, fmt.Errorf("updating catalog exercise: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Delete removes a catalog exercise. Returns true when a row was deleted.
func (db *DB) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM system_exercises WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("deleting catalog exercise: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
