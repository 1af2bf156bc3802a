package databases

// go generate: mockery --name StatusHistoryDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/linesmerrill/human-rights-mis-api/models"
)

const statusHistoryName = "case_status_history"

// StatusHistoryDatabase is the append-only ledger of case status transitions.
// There is deliberately no update or delete.
type StatusHistoryDatabase interface {
	InsertOne(ctx context.Context, entry models.StatusHistory, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.StatusHistory, error)
}

type statusHistoryDatabase struct {
	db DatabaseHelper
}

// NewStatusHistoryDatabase initializes a new instance of status history database with the provided db connection
func NewStatusHistoryDatabase(db DatabaseHelper) StatusHistoryDatabase {
	return &statusHistoryDatabase{
		db: db,
	}
}

func (s *statusHistoryDatabase) InsertOne(ctx context.Context, entry models.StatusHistory, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return s.db.Collection(statusHistoryName).InsertOne(ctx, entry, opts...)
}

func (s *statusHistoryDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.StatusHistory, error) {
	var entries []models.StatusHistory
	curr, err := s.db.Collection(statusHistoryName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer curr.Close(ctx)
	err = curr.All(ctx, &entries)
	if err != nil {
		return nil, err
	}
	return entries, nil
}
