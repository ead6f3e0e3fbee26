package scanstore

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"github.com/ferrylab/tagmind/internal/model"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// PostgresStore persists scan records in a Postgres table, for server
// deployments where the record must survive restarts and be shared across
// replicas.
type PostgresStore struct {
	db *sql.DB
}

var (
	_ Store       = (*PostgresStore)(nil)
	_ ActorSetter = (*PostgresStore)(nil)
)

// NewPostgresStore opens a connection to the database at the given URL,
// configures the connection pool, and runs any pending migrations.
func NewPostgresStore(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	dbDriver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", dbDriver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

func (s *PostgresStore) Get(ctx context.Context, name string) (model.Record, error) {
	var (
		rec      model.Record
		lastScan sql.NullTime
		actor    sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT last_scan, actor, count FROM scan_records WHERE name = $1`,
		name,
	).Scan(&lastScan, &actor, &rec.Count)
	if err == sql.ErrNoRows {
		return model.Record{}, nil
	}
	if err != nil {
		return model.Record{}, fmt.Errorf("get scan record %s: %w", name, err)
	}

	if lastScan.Valid {
		t := lastScan.Time.UTC()
		rec.LastScan = &t
	}
	if actor.Valid {
		rec.Actor = actor.String
	}
	return rec, nil
}

func (s *PostgresStore) Set(ctx context.Context, name string, t time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO scan_records (name, last_scan, count)
		 VALUES ($1, $2, 1)
		 ON CONFLICT (name)
		 DO UPDATE SET last_scan = EXCLUDED.last_scan, count = scan_records.count + 1`,
		name, t.UTC(),
	)
	if err != nil {
		return fmt.Errorf("set scan record %s: %w", name, err)
	}
	return nil
}

func (s *PostgresStore) SetActor(ctx context.Context, name, actor string) error {
	if actor == "" {
		return nil
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE scan_records SET actor = $2 WHERE name = $1`,
		name, actor,
	)
	if err != nil {
		return fmt.Errorf("set scan actor %s: %w", name, err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, name string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM scan_records WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("delete scan record %s: %w", name, err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
