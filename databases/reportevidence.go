package databases

// go generate: mockery --name ReportEvidenceDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/linesmerrill/human-rights-mis-api/models"
)

const reportEvidenceName = "report_evidence"

// reportEvidenceView flattens the evidence embedded in each incident report
// into one row per item. The report document stays the only copy.
var reportEvidenceView = bson.A{
	bson.M{"$unwind": "$evidence"},
	bson.M{"$project": bson.M{
		"_id":           0,
		"report_id":     1,
		"type":          "$evidence.type",
		"url":           "$evidence.url",
		"description":   "$evidence.description",
		"date_uploaded": "$evidence.date_uploaded",
	}},
}

// ReportEvidenceDatabase reads the report_evidence view
type ReportEvidenceDatabase interface {
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.ReportEvidence, error)
}

type reportEvidenceDatabase struct {
	db DatabaseHelper
}

// NewReportEvidenceDatabase initializes a new instance of report evidence database with the provided db connection
func NewReportEvidenceDatabase(db DatabaseHelper) ReportEvidenceDatabase {
	return &reportEvidenceDatabase{
		db: db,
	}
}

func (r *reportEvidenceDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.ReportEvidence, error) {
	var rows []models.ReportEvidence
	curr, err := r.db.Collection(reportEvidenceName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer curr.Close(ctx)
	err = curr.All(ctx, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
