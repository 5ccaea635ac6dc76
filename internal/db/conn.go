// Package db is the connection manager: it opens the single session the CLI
// works through, and offers raw statement execution with fully materialized
// result sets for operator use.
package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/shopkeeper/internal/common"
	"github.com/dmitrijs2005/shopkeeper/internal/config"
	"github.com/dmitrijs2005/shopkeeper/internal/logging"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
)

// openDB is a seam for tests; production opens a pgx-backed *sql.DB.
var openDB = func(dsn, charset string) (*sql.DB, error) {
	cc, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	if charset != "" {
		if _, ok := cc.RuntimeParams["client_encoding"]; !ok {
			cc.RuntimeParams["client_encoding"] = charset
		}
	}
	return stdlib.OpenDB(*cc), nil
}

// Conn owns the one connection to the store for the lifetime of the process.
type Conn struct {
	db     *sql.DB
	logger logging.Logger
}

// Connect opens the session described by cfg and verifies it with a ping.
// On failure everything acquired so far is released and the returned error
// wraps common.ErrConnectFailed. There is no retry.
func Connect(ctx context.Context, cfg *config.Config, logger logging.Logger) (*Conn, error) {
	sqlDB, err := openDB(cfg.DSN(), cfg.DBCharset)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrConnectFailed, err)
	}

	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	pingCtx := ctx
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("%w: %w", common.ErrConnectFailed, err)
	}

	logger.Info(ctx, "connected to store", "host", cfg.DBHost, "database", cfg.DBName)
	return &Conn{db: sqlDB, logger: logger}, nil
}

// DB exposes the underlying handle for repositories and transactions.
func (c *Conn) DB() *sql.DB {
	return c.db
}

// Disconnect releases the session. Calling it again is a no-op.
func (c *Conn) Disconnect() error {
	if c == nil || c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	return err
}

// ExecContext runs a mutating statement and reports the affected row count.
func (c *Conn) ExecContext(ctx context.Context, stmt string, args ...any) (int64, error) {
	if c.db == nil {
		return 0, fmt.Errorf("%w: connection is closed", common.ErrStatementFailed)
	}
	res, err := c.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", common.ErrStatementFailed, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", common.ErrStatementFailed, err)
	}
	return n, nil
}

// Execute runs a mutating statement and reports only whether it succeeded.
// The diagnostic goes to the log.
func (c *Conn) Execute(ctx context.Context, stmt string, args ...any) bool {
	if _, err := c.ExecContext(ctx, stmt, args...); err != nil {
		c.logger.Error(ctx, "execute failed", "err", err)
		return false
	}
	return true
}

// QueryContext runs a read statement and materializes the whole result.
func (c *Conn) QueryContext(ctx context.Context, stmt string, args ...any) (*ResultSet, error) {
	if c.db == nil {
		return nil, fmt.Errorf("%w: connection is closed", common.ErrStatementFailed)
	}
	rows, err := c.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrStatementFailed, err)
	}
	return materialize(rows)
}

// Query is QueryContext with the error logged instead of returned; nil means
// the statement failed.
func (c *Conn) Query(ctx context.Context, stmt string, args ...any) *ResultSet {
	rs, err := c.QueryContext(ctx, stmt, args...)
	if err != nil {
		c.logger.Error(ctx, "query failed", "err", err)
		return nil
	}
	return rs
}
