package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linesmerrill/human-rights-mis-api/models"
)

type fakeSummarizer struct {
	sum *models.Summary
	err error
}

func (f fakeSummarizer) Summary(context.Context) (*models.Summary, error) {
	return f.sum, f.err
}

func TestScheduler_RefreshStats(t *testing.T) {
	s := NewScheduler(fakeSummarizer{sum: &models.Summary{
		Cases: models.CaseStats{Total: 5, ByStatus: []models.GroupCount{
			{ID: "new", Count: 3},
			{ID: "resolved", Count: 2},
		}},
		Reports: models.ReportStats{Total: 1, ByStatus: []models.GroupCount{
			{ID: nil, Count: 1},
		}},
	}}, "")

	s.refreshStats()

	assert.Equal(t, 3.0, testutil.ToFloat64(casesByStatus.WithLabelValues("new")))
	assert.Equal(t, 2.0, testutil.ToFloat64(casesByStatus.WithLabelValues("resolved")))
	assert.Equal(t, 1.0, testutil.ToFloat64(reportsByStatus.WithLabelValues("none")))
}

func TestScheduler_RefreshStatsKeepsGaugesOnError(t *testing.T) {
	casesByStatus.Reset()
	casesByStatus.WithLabelValues("new").Set(7)

	s := NewScheduler(fakeSummarizer{err: errors.New("mocked-error")}, "")
	s.refreshStats()

	assert.Equal(t, 7.0, testutil.ToFloat64(casesByStatus.WithLabelValues("new")))
}

func TestScheduler_StartRejectsBadSchedule(t *testing.T) {
	s := NewScheduler(fakeSummarizer{}, "every now and then")
	assert.Error(t, s.Start())
}

func TestScheduler_StartStop(t *testing.T) {
	s := NewScheduler(fakeSummarizer{sum: &models.Summary{}}, "@every 1h")
	require.NoError(t, s.Start())
	s.Stop()
}
