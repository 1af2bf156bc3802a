package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/linesmerrill/human-rights-mis-api/databases/mocks"
	"github.com/linesmerrill/human-rights-mis-api/models"
)

func newTestAnalytics() (*AnalyticsService, *mocks.CaseDatabase, *mocks.ReportDatabase) {
	cdb := &mocks.CaseDatabase{}
	rdb := &mocks.ReportDatabase{}
	svc := NewAnalyticsService(cdb, rdb)
	svc.now = func() time.Time { return time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC) }
	return svc, cdb, rdb
}

func stage(p bson.A, i int) bson.M {
	return p[i].(bson.M)
}

func TestAnalytics_ViolationCountsReports(t *testing.T) {
	svc, _, rdb := newTestAnalytics()
	var pipeline bson.A
	rdb.On("Aggregate", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			pipeline = args.Get(1).(bson.A)
			*args.Get(2).(*[]models.ViolationCount) = []models.ViolationCount{
				{ViolationType: "torture", Count: 2},
				{ViolationType: "detention", Count: 1},
			}
		}).
		Return(nil)

	got, err := svc.ViolationCounts(context.Background(), models.SourceReports, 0)
	require.NoError(t, err)
	assert.Equal(t, []models.ViolationCount{{ViolationType: "torture", Count: 2}, {ViolationType: "detention", Count: 1}}, got)

	assert.Equal(t, bson.M{}, stage(pipeline, 0)["$match"])
	assert.Equal(t, "$incident_details.violation_types", stage(pipeline, 1)["$unwind"])
	assert.Equal(t, bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}, stage(pipeline, 3)["$sort"])
}

func TestAnalytics_ViolationCountsCasesWithDays(t *testing.T) {
	svc, cdb, _ := newTestAnalytics()
	var pipeline bson.A
	cdb.On("Aggregate", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { pipeline = args.Get(1).(bson.A) }).
		Return(nil)

	got, err := svc.ViolationCounts(context.Background(), models.SourceCases, 30)
	require.NoError(t, err)
	assert.Equal(t, []models.ViolationCount{}, got)

	match := stage(pipeline, 0)["$match"].(bson.M)
	assert.Equal(t, bson.M{"$gte": time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)}, match["date_occurred"])
	assert.Equal(t, "$violation_types", stage(pipeline, 1)["$unwind"])
}

func TestAnalytics_UnknownSource(t *testing.T) {
	svc, _, _ := newTestAnalytics()
	_, err := svc.ViolationCounts(context.Background(), "victims", 0)
	assert.True(t, errors.Is(err, models.ErrValidation))
	_, err = svc.Timeline(context.Background(), "victims", "day")
	assert.True(t, errors.Is(err, models.ErrValidation))
	_, err = svc.Geodata(context.Background(), "victims")
	assert.True(t, errors.Is(err, models.ErrValidation))
}

func TestAnalytics_AggregateFailureIsStorage(t *testing.T) {
	svc, _, rdb := newTestAnalytics()
	rdb.On("Aggregate", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("boom"))

	_, err := svc.ViolationCounts(context.Background(), "", 0)
	assert.True(t, errors.Is(err, models.ErrStorage))
}

func TestAnalytics_TimelineFormats(t *testing.T) {
	for bucket, format := range map[string]string{
		"day":    "%Y-%m-%d",
		"week":   "%G-W%V",
		"month":  "%Y-%m",
		"year":   "%Y",
		"":       "%Y-%m",
		"decade": "%Y-%m",
	} {
		t.Run(bucket, func(t *testing.T) {
			svc, cdb, _ := newTestAnalytics()
			var pipeline bson.A
			cdb.On("Aggregate", mock.Anything, mock.Anything, mock.Anything).
				Run(func(args mock.Arguments) { pipeline = args.Get(1).(bson.A) }).
				Return(nil)

			_, err := svc.Timeline(context.Background(), models.SourceCases, bucket)
			require.NoError(t, err)

			assert.Equal(t, bson.M{"date_occurred": bson.M{"$exists": true, "$type": "date"}}, stage(pipeline, 0)["$match"])
			group := stage(pipeline, 1)["$group"].(bson.M)
			assert.Equal(t, bson.M{"$dateToString": bson.M{"format": format, "date": "$date_occurred"}}, group["_id"])
			assert.Equal(t, bson.M{"_id": 1}, stage(pipeline, 2)["$sort"])
		})
	}
}

func TestAnalytics_Geodata(t *testing.T) {
	svc, _, rdb := newTestAnalytics()
	long := strings.Repeat("é", 120)
	var pipeline bson.A
	rdb.On("Aggregate", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			pipeline = args.Get(1).(bson.A)
			*args.Get(2).(*[]models.GeoMarker) = []models.GeoMarker{
				{Lat: -4.04, Lon: 39.67, Violations: []string{"torture"}, Description: long},
				{Lat: 0.31, Lon: 32.58, Violations: []string{}, Description: "short"},
			}
		}).
		Return(nil)

	got, err := svc.Geodata(context.Background(), models.SourceReports)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, strings.Repeat("é", 100)+"...", got[0].Description)
	assert.Equal(t, "short", got[1].Description)

	assert.Equal(t, bson.M{"incident_details.location.coordinates": bson.M{"$ne": nil}}, stage(pipeline, 0)["$match"])
}

func TestAnalytics_Summary(t *testing.T) {
	svc, cdb, rdb := newTestAnalytics()
	cdb.On("CountDocuments", mock.Anything, bson.M{}).Return(int64(5), nil)
	rdb.On("CountDocuments", mock.Anything, bson.M{}).Return(int64(9), nil)
	rows := []models.GroupCount{{ID: "new", Count: 3}, {ID: nil, Count: 2}}
	fill := func(args mock.Arguments) { *args.Get(2).(*[]models.GroupCount) = rows }
	cdb.On("Aggregate", mock.Anything, mock.Anything, mock.Anything).Run(fill).Return(nil)
	rdb.On("Aggregate", mock.Anything, mock.Anything, mock.Anything).Run(fill).Return(nil)

	sum, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5), sum.Cases.Total)
	assert.Equal(t, int64(9), sum.Reports.Total)
	assert.Equal(t, rows, sum.Cases.ByStatus)
	assert.Equal(t, rows, sum.Cases.ByPriority)
	assert.Equal(t, rows, sum.Reports.ByReporter)
	cdb.AssertNumberOfCalls(t, "Aggregate", 2)
	rdb.AssertNumberOfCalls(t, "Aggregate", 2)
}

func TestAnalytics_SummaryCountFailure(t *testing.T) {
	svc, cdb, _ := newTestAnalytics()
	cdb.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(0), errors.New("timeout"))

	_, err := svc.Summary(context.Background())
	assert.True(t, errors.Is(err, models.ErrStorage))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 3))
	assert.Equal(t, "ab...", truncate("abc", 2))
}
