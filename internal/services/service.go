// Package services is the caller-facing layer over the repositories. It keeps
// the compatibility return shapes of the access modules: creates return the
// new id or -1, lookups return nil when absent, writes return a bool, and
// aggregates return zero on failure. The cause of every such collapse is
// logged, never returned. Composite operations (PlaceOrder, Checkout) are the
// exception and report their errors directly.
package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/shopkeeper/internal/common"
	"github.com/dmitrijs2005/shopkeeper/internal/logging"
	"github.com/dmitrijs2005/shopkeeper/internal/repositories/repomanager"
)

// FailedID is what Create* returns when nothing was stored.
const FailedID int64 = -1

type base struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
}

func newBase(db *sql.DB, rm repomanager.RepositoryManager, log logging.Logger, name string) base {
	if log == nil {
		log = logging.Discard()
	}
	return base{db: db, repomanager: rm, log: log.With("service", name)}
}

// report logs err at a level matching its kind.
func (b *base) report(ctx context.Context, op string, err error, args ...any) {
	args = append(args, "err", err)
	switch {
	case errors.Is(err, common.ErrorNotFound):
		b.log.Debug(ctx, op+": not found", args...)
	case errors.Is(err, common.ErrValidation):
		b.log.Warn(ctx, op+": rejected", args...)
	default:
		b.log.Error(ctx, op+" failed", args...)
	}
}

func (b *base) created(ctx context.Context, op string, id int64, err error) int64 {
	if err != nil {
		b.report(ctx, op, err)
		return FailedID
	}
	b.log.Debug(ctx, op, "id", id)
	return id
}

func (b *base) ok(ctx context.Context, op string, err error, args ...any) bool {
	if err != nil {
		b.report(ctx, op, err, args...)
		return false
	}
	return true
}

func found[T any](ctx context.Context, b *base, op string, rec *T, err error) *T {
	if err != nil {
		b.report(ctx, op, err)
		return nil
	}
	return rec
}

func listed[T any](ctx context.Context, b *base, op string, recs []T, err error) []T {
	if err != nil {
		b.report(ctx, op, err)
		return nil
	}
	return recs
}
