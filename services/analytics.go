package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/linesmerrill/human-rights-mis-api/databases"
	"github.com/linesmerrill/human-rights-mis-api/models"
)

// markerTextLimit is the number of characters kept in a geo marker description
const markerTextLimit = 100

// bucketFormats are $dateToString formats per timeline bucket. Every label is
// year first and zero padded so sorting labels sorts chronologically. Weeks
// are ISO weeks labelled with their ISO week-year.
var bucketFormats = map[string]string{
	"day":   "%Y-%m-%d",
	"week":  "%G-W%V",
	"month": "%Y-%m",
	"year":  "%Y",
}

type aggregator interface {
	Aggregate(ctx context.Context, pipeline interface{}, results interface{}) error
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
}

// source maps the analytics concepts onto the field paths of one collection
type source struct {
	coll     aggregator
	date     string
	tags     string
	location string
	text     string
}

// AnalyticsService computes read-only aggregations over cases or reports
type AnalyticsService struct {
	sources map[string]source
	now     func() time.Time
}

// NewAnalyticsService creates the aggregator over both collections
func NewAnalyticsService(cases databases.CaseDatabase, reports databases.ReportDatabase) *AnalyticsService {
	return &AnalyticsService{
		sources: map[string]source{
			models.SourceCases: {
				coll:     cases,
				date:     "date_occurred",
				tags:     "violation_types",
				location: "location",
				text:     "title",
			},
			models.SourceReports: {
				coll:     reports,
				date:     "incident_details.date",
				tags:     "incident_details.violation_types",
				location: "incident_details.location",
				text:     "incident_details.description",
			},
		},
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (s *AnalyticsService) source(name string) (source, error) {
	if name == "" {
		name = models.SourceReports
	}
	src, ok := s.sources[name]
	if !ok {
		return source{}, models.NewValidationError("source must be one of cases, reports", nil)
	}
	return src, nil
}

// ViolationCounts counts documents per violation tag, most frequent first.
// With daysBack > 0 only documents dated within the last daysBack days count.
func (s *AnalyticsService) ViolationCounts(ctx context.Context, sourceName string, daysBack int) ([]models.ViolationCount, error) {
	src, err := s.source(sourceName)
	if err != nil {
		return nil, err
	}
	match := bson.M{}
	if daysBack > 0 {
		match[src.date] = bson.M{"$gte": s.now().AddDate(0, 0, -daysBack)}
	}
	pipeline := bson.A{
		bson.M{"$match": match},
		bson.M{"$unwind": "$" + src.tags},
		bson.M{"$group": bson.M{"_id": "$" + src.tags, "count": bson.M{"$sum": 1}}},
		bson.M{"$sort": bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}},
		bson.M{"$project": bson.M{"_id": 0, "violation_type": "$_id", "count": 1}},
	}
	var counts []models.ViolationCount
	if err := src.coll.Aggregate(ctx, pipeline, &counts); err != nil {
		return nil, models.NewStorageError("failed to count violations", err)
	}
	return emptyIfNil(counts), nil
}

// Timeline counts documents per day, week, month or year, oldest first. An
// unknown bucket falls back to month. Documents without a real date are skipped.
func (s *AnalyticsService) Timeline(ctx context.Context, sourceName, bucket string) ([]models.TimelineData, error) {
	src, err := s.source(sourceName)
	if err != nil {
		return nil, err
	}
	format, ok := bucketFormats[bucket]
	if !ok {
		format = bucketFormats["month"]
	}
	pipeline := bson.A{
		bson.M{"$match": bson.M{src.date: bson.M{"$exists": true, "$type": "date"}}},
		bson.M{"$group": bson.M{
			"_id":   bson.M{"$dateToString": bson.M{"format": format, "date": "$" + src.date}},
			"count": bson.M{"$sum": 1},
		}},
		bson.M{"$sort": bson.M{"_id": 1}},
		bson.M{"$project": bson.M{"_id": 0, "date": "$_id", "count": 1}},
	}
	var data []models.TimelineData
	if err := src.coll.Aggregate(ctx, pipeline, &data); err != nil {
		return nil, models.NewStorageError("failed to build timeline", err)
	}
	return emptyIfNil(data), nil
}

// Geodata returns one map marker per document with coordinates
func (s *AnalyticsService) Geodata(ctx context.Context, sourceName string) ([]models.GeoMarker, error) {
	src, err := s.source(sourceName)
	if err != nil {
		return nil, err
	}
	point := "$" + src.location + ".coordinates.coordinates"
	pipeline := bson.A{
		bson.M{"$match": bson.M{src.location + ".coordinates": bson.M{"$ne": nil}}},
		bson.M{"$project": bson.M{
			"_id":         0,
			"lon":         bson.M{"$arrayElemAt": bson.A{point, 0}},
			"lat":         bson.M{"$arrayElemAt": bson.A{point, 1}},
			"violations":  bson.M{"$ifNull": bson.A{"$" + src.tags, bson.A{}}},
			"description": bson.M{"$ifNull": bson.A{"$" + src.text, ""}},
		}},
	}
	var markers []models.GeoMarker
	if err := src.coll.Aggregate(ctx, pipeline, &markers); err != nil {
		return nil, models.NewStorageError("failed to load geodata", err)
	}
	for i := range markers {
		markers[i].Description = truncate(markers[i].Description, markerTextLimit)
	}
	return emptyIfNil(markers), nil
}

// Summary returns totals and breakdowns for the dashboard
func (s *AnalyticsService) Summary(ctx context.Context) (*models.Summary, error) {
	cases, reports := s.sources[models.SourceCases], s.sources[models.SourceReports]
	var (
		sum models.Summary
		err error
	)
	if sum.Cases.Total, err = cases.coll.CountDocuments(ctx, bson.M{}); err != nil {
		return nil, models.NewStorageError("failed to count cases", err)
	}
	if sum.Cases.ByStatus, err = groupCounts(ctx, cases.coll, "status"); err != nil {
		return nil, err
	}
	if sum.Cases.ByPriority, err = groupCounts(ctx, cases.coll, "priority"); err != nil {
		return nil, err
	}
	if sum.Reports.Total, err = reports.coll.CountDocuments(ctx, bson.M{}); err != nil {
		return nil, models.NewStorageError("failed to count reports", err)
	}
	if sum.Reports.ByStatus, err = groupCounts(ctx, reports.coll, "status"); err != nil {
		return nil, err
	}
	if sum.Reports.ByReporter, err = groupCounts(ctx, reports.coll, "reporter_type"); err != nil {
		return nil, err
	}
	return &sum, nil
}

func groupCounts(ctx context.Context, coll aggregator, field string) ([]models.GroupCount, error) {
	pipeline := bson.A{
		bson.M{"$group": bson.M{"_id": "$" + field, "count": bson.M{"$sum": 1}}},
		bson.M{"$sort": bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}},
	}
	var rows []models.GroupCount
	if err := coll.Aggregate(ctx, pipeline, &rows); err != nil {
		return nil, models.NewStorageError("failed to group by "+field, err)
	}
	return emptyIfNil(rows), nil
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "..."
}
