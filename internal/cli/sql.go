package cli

import (
	"context"
	"errors"
	"strings"
)

var errNoStatement = errors.New("usage: sql <query> | exec <statement>")

// SQL runs a read statement and prints the materialized result.
func (a *App) SQL(ctx context.Context, stmt string) error {
	if strings.TrimSpace(stmt) == "" {
		return errNoStatement
	}
	rs := a.conn.Query(ctx, stmt)
	if rs == nil {
		return errors.New("query failed, see log for details")
	}
	return rs.Write(a.out)
}

// Exec runs a mutating statement.
func (a *App) Exec(ctx context.Context, stmt string) error {
	if strings.TrimSpace(stmt) == "" {
		return errNoStatement
	}
	if !a.conn.Execute(ctx, stmt) {
		return errors.New("statement failed, see log for details")
	}
	return a.done("OK")
}
