package handlers

import (
	"net/http"
	"strconv"

	"github.com/linesmerrill/human-rights-mis-api/api"
	"github.com/linesmerrill/human-rights-mis-api/config"
	"github.com/linesmerrill/human-rights-mis-api/models"
	"github.com/linesmerrill/human-rights-mis-api/services"
)

// Analytics exported for testing purposes
type Analytics struct {
	Service *services.AnalyticsService
}

// ViolationsHandler returns violation counts for ?source=cases|reports, optionally
// limited to the last ?days days
func (a Analytics) ViolationsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	days := 0
	if d := q.Get("days"); d != "" {
		var err error
		if days, err = strconv.Atoi(d); err != nil || days < 0 {
			config.ErrorStatus("days must be a non negative integer", http.StatusBadRequest, w, err)
			return
		}
	}
	a.violations(w, r, q.Get("source"), days)
}

// TimelineHandler returns counts per ?time_period=day|week|month|year
func (a Analytics) TimelineHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	a.timeline(w, r, q.Get("source"), q.Get("time_period"))
}

// GeodataHandler returns map markers for ?source
func (a Analytics) GeodataHandler(w http.ResponseWriter, r *http.Request) {
	a.geodata(w, r, r.URL.Query().Get("source"))
}

// SummaryHandler returns the dashboard totals and breakdowns
func (a Analytics) SummaryHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	sum, err := a.Service.Summary(ctx)
	if err != nil {
		errorStatus("failed to get summary", w, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

// ReportViolationsHandler returns all time violation counts over reports
func (a Analytics) ReportViolationsHandler(w http.ResponseWriter, r *http.Request) {
	a.violations(w, r, models.SourceReports, 0)
}

// ReportTimelineHandler returns daily report counts
func (a Analytics) ReportTimelineHandler(w http.ResponseWriter, r *http.Request) {
	a.timeline(w, r, models.SourceReports, "day")
}

// ReportGeodataHandler returns map markers for reports
func (a Analytics) ReportGeodataHandler(w http.ResponseWriter, r *http.Request) {
	a.geodata(w, r, models.SourceReports)
}

func (a Analytics) violations(w http.ResponseWriter, r *http.Request, source string, days int) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	counts, err := a.Service.ViolationCounts(ctx, source, days)
	if err != nil {
		errorStatus("failed to get violation counts", w, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

func (a Analytics) timeline(w http.ResponseWriter, r *http.Request, source, bucket string) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	data, err := a.Service.Timeline(ctx, source, bucket)
	if err != nil {
		errorStatus("failed to get timeline", w, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (a Analytics) geodata(w http.ResponseWriter, r *http.Request, source string) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	markers, err := a.Service.Geodata(ctx, source)
	if err != nil {
		errorStatus("failed to get geodata", w, err)
		return
	}
	writeJSON(w, http.StatusOK, markers)
}
