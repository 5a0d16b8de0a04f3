package datastore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/dinextw/traveltime/datastore/migrations"
)

// Postgres is a Store backed by a pgx connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres connects to the database, verifies the connection, and runs
// any pending schema migrations.
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("datastore: connecting: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()

		return nil, fmt.Errorf("datastore: pinging: %w", err)
	}
	if err := runMigrations(ctx, dsn); err != nil {
		pool.Close()

		return nil, err
	}

	return &Postgres{pool: pool}, nil
}

var gooseOnce sync.Once

// runMigrations applies the embedded goose migrations over a database/sql
// connection (goose speaks database/sql, hence the pgx stdlib driver).
func runMigrations(ctx context.Context, dsn string) error {
	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("datastore: opening migration connection: %w", err)
	}
	defer sqlDB.Close()

	var dialectErr error
	gooseOnce.Do(func() {
		goose.SetBaseFS(migrations.FS)
		dialectErr = goose.SetDialect("postgres")
	})
	if dialectErr != nil {
		return fmt.Errorf("datastore: setting goose dialect: %w", dialectErr)
	}
	if err := goose.UpContext(ctx, sqlDB, "."); err != nil {
		return fmt.Errorf("datastore: running migrations: %w", err)
	}

	return nil
}

// ImportTimes implements Store. The upsert keeps the minimum on collision.
func (p *Postgres) ImportTimes(ctx context.Context, staIdx int64, times map[int64]float64) error {
	batch := &pgx.Batch{}
	for souIdx, t := range times {
		batch.Queue(
			`INSERT INTO travel_time (sta_idx, sou_idx, seconds)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (sta_idx, sou_idx)
			 DO UPDATE SET seconds = LEAST(travel_time.seconds, EXCLUDED.seconds)`,
			staIdx, souIdx, t,
		)
	}
	if err := p.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("datastore: importing times for station %d: %w", staIdx, err)
	}

	return nil
}

// Time implements Store.
func (p *Postgres) Time(ctx context.Context, staIdx, souIdx int64) (float64, error) {
	var seconds float64
	err := p.pool.QueryRow(ctx,
		`SELECT seconds FROM travel_time WHERE sta_idx = $1 AND sou_idx = $2`,
		staIdx, souIdx,
	).Scan(&seconds)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNotFound
		}

		return 0, fmt.Errorf("datastore: querying time %d→%d: %w", staIdx, souIdx, err)
	}

	return seconds, nil
}

// Close implements Store.
func (p *Postgres) Close() error {
	p.pool.Close()

	return nil
}
