package databases

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Transactor runs a unit of work, inside a multi-document transaction when the
// deployment supports one
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// NewTransactor returns a Transactor backed by db's client. With enabled false
// (standalone servers have no transactions) fn simply runs in order.
func NewTransactor(db DatabaseHelper, enabled bool) Transactor {
	if !enabled || db == nil {
		return sequential{}
	}
	return &mongoTransactor{db: db}
}

type sequential struct{}

func (sequential) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mongoTransactor struct {
	db DatabaseHelper
}

// WithTransaction runs fn once in a transaction. Transient failures are
// returned to the caller, never retried.
func (t *mongoTransactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := t.db.Client().StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	if err := session.StartTransaction(); err != nil {
		return err
	}
	if err := fn(mongo.NewSessionContext(ctx, session)); err != nil {
		if abortErr := session.AbortTransaction(ctx); abortErr != nil {
			zap.S().Warnw("failed to abort transaction", "error", abortErr)
		}
		return err
	}
	return session.CommitTransaction(ctx)
}
