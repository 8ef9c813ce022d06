package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dtroode/projectopen-signup/database"
)

// migrate is a seam for testing database.Migrate.
var migrate = database.Migrate

// Connection is a pgx pool over a migrated users schema.
type Connection struct {
	*pgxpool.Pool
}

// NewConnection applies pending migrations and opens a pool to dsn.
// The pool is only created once the schema is in place.
func NewConnection(ctx context.Context, dsn string) (*Connection, error) {
	conf, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres dsn: %w", err)
	}

	if err := migrate(ctx, dsn); err != nil {
		return nil, fmt.Errorf("failed to migrate users schema: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to open connection pool: %w", err)
	}

	return &Connection{Pool: pool}, nil
}

// Close releases the pool. It is safe on a zero Connection.
func (c *Connection) Close() error {
	if c.Pool != nil {
		c.Pool.Close()
	}
	return nil
}

// Ping checks that the database is reachable.
func (c *Connection) Ping(ctx context.Context) error {
	if c.Pool == nil {
		return errors.New("connection pool is nil")
	}
	return c.Pool.Ping(ctx)
}
