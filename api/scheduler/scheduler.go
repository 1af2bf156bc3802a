package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/linesmerrill/human-rights-mis-api/api"
	"github.com/linesmerrill/human-rights-mis-api/models"
)

// DefaultStatsSchedule refreshes the dashboard gauges every five minutes
const DefaultStatsSchedule = "@every 5m"

const statsJobTimeout = time.Minute

var (
	casesByStatus = promauto.With(api.Registry).NewGaugeVec(prometheus.GaugeOpts{
		Name: "hrmis_cases",
		Help: "Number of cases by status",
	}, []string{"status"})

	reportsByStatus = promauto.With(api.Registry).NewGaugeVec(prometheus.GaugeOpts{
		Name: "hrmis_incident_reports",
		Help: "Number of incident reports by status",
	}, []string{"status"})
)

// Summarizer computes the case and report totals
type Summarizer interface {
	Summary(ctx context.Context) (*models.Summary, error)
}

// Scheduler runs periodic background jobs
type Scheduler struct {
	cron     *cron.Cron
	Stats    Summarizer
	schedule string
}

// NewScheduler creates a scheduler that refreshes the status gauges on schedule,
// a cron expression or an @every descriptor
func NewScheduler(stats Summarizer, schedule string) *Scheduler {
	if schedule == "" {
		schedule = DefaultStatsSchedule
	}
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(time.UTC)),
		Stats:    stats,
		schedule: schedule,
	}
}

// Start registers the jobs and begins running them
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.refreshStats); err != nil {
		return fmt.Errorf("failed to register stats job %q: %w", s.schedule, err)
	}
	s.cron.Start()
	zap.S().Infow("scheduler started", "stats_schedule", s.schedule)
	return nil
}

// Stop waits for running jobs to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("scheduler stopped")
}

func (s *Scheduler) refreshStats() {
	ctx, cancel := context.WithTimeout(context.Background(), statsJobTimeout)
	defer cancel()

	sum, err := s.Stats.Summary(ctx)
	if err != nil {
		zap.S().Errorw("failed to refresh status gauges", "error", err)
		return
	}
	setGauges(casesByStatus, sum.Cases.ByStatus)
	setGauges(reportsByStatus, sum.Reports.ByStatus)
	zap.S().Debugw("status gauges refreshed", "cases", sum.Cases.Total, "reports", sum.Reports.Total)
}

// setGauges replaces every label of g so statuses that disappeared drop to nothing
func setGauges(g *prometheus.GaugeVec, rows []models.GroupCount) {
	g.Reset()
	for _, row := range rows {
		label := "none"
		if row.ID != nil {
			label = fmt.Sprint(row.ID)
		}
		g.WithLabelValues(label).Set(float64(row.Count))
	}
}
