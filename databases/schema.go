package databases

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// uniqueKeys are the external identifiers that must not repeat within their collection
var uniqueKeys = map[string]string{
	caseName:   "case_id",
	reportName: "report_id",
	userName:   "username",
	victimName: "victim_id",
}

// EnsureSchema creates the unique identifier indexes, the lookup indexes used by
// the list filters and the report_evidence view. It is safe to call on every start.
func EnsureSchema(ctx context.Context, db DatabaseHelper) error {
	for coll, key := range uniqueKeys {
		_, err := db.Collection(coll).CreateIndex(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: key, Value: 1}},
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			return fmt.Errorf("failed to create unique index on %s.%s: %w", coll, key, err)
		}
	}

	lookups := []struct {
		coll string
		key  string
	}{
		{caseName, "incident_report_id"},
		{statusHistoryName, "case_id"},
		{victimName, "case_ids"},
	}
	for _, l := range lookups {
		if _, err := db.Collection(l.coll).CreateIndex(ctx, mongo.IndexModel{Keys: bson.D{{Key: l.key, Value: 1}}}); err != nil {
			return fmt.Errorf("failed to create index on %s.%s: %w", l.coll, l.key, err)
		}
	}

	if err := db.CreateView(ctx, reportEvidenceName, reportName, reportEvidenceView); err != nil {
		return fmt.Errorf("failed to create %s view: %w", reportEvidenceName, err)
	}
	zap.S().Debugw("database schema ensured", "views", []string{reportEvidenceName})
	return nil
}
