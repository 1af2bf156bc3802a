package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/linesmerrill/human-rights-mis-api/api"
	"github.com/linesmerrill/human-rights-mis-api/config"
	"github.com/linesmerrill/human-rights-mis-api/models"
	"github.com/linesmerrill/human-rights-mis-api/services"
)

// Report exported for testing purposes
type Report struct {
	Service *services.ReportService
}

// CreateReportHandler takes an incident report as a multipart or url encoded form
func (rp Report) CreateReportHandler(w http.ResponseWriter, r *http.Request) {
	err := r.ParseMultipartForm(maxUploadMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		err = r.ParseForm()
	}
	if err != nil {
		config.ErrorStatus("failed to parse form", http.StatusBadRequest, w, err)
		return
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(r.FormValue("lat")), 64)
	if err != nil {
		config.ErrorStatus("lat must be a number", http.StatusBadRequest, w, err)
		return
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(r.FormValue("lon")), 64)
	if err != nil {
		config.ErrorStatus("lon must be a number", http.StatusBadRequest, w, err)
		return
	}
	violations := r.FormValue("violation_types_str")
	if violations == "" {
		violations = r.FormValue("violation_types")
	}

	sub := models.ReportSubmission{
		ReportID:         r.FormValue("report_id"),
		ReporterType:     r.FormValue("reporter_type"),
		Anonymous:        r.FormValue("anonymous"),
		Email:            r.FormValue("email"),
		Phone:            r.FormValue("phone"),
		PreferredContact: r.FormValue("preferred_contact"),
		Date:             r.FormValue("date"),
		Country:          r.FormValue("country"),
		City:             r.FormValue("city"),
		Lat:              lat,
		Lon:              lon,
		Description:      r.FormValue("description"),
		ViolationTypes:   violations,
	}

	uploads, closeUploads, err := openUploads(r.MultipartForm, "evidence_files")
	defer closeUploads()
	if err != nil {
		errorStatus("failed to read evidence files", w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	reportID, err := rp.Service.Submit(ctx, sub, uploads)
	if err != nil {
		errorStatus("failed to submit report", w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"message":   "Report submitted",
		"report_id": reportID,
	})
}

// ReportsHandler lists reports filtered by status, country, violation and date
func (rp Report) ReportsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.ReportFilter{
		Status:    q.Get("status"),
		Country:   q.Get("country"),
		Violation: q.Get("violation"),
	}
	if d := q.Get("date"); d != "" {
		date, err := services.ParseDate(d)
		if err != nil {
			errorStatus("failed to parse date", w, err)
			return
		}
		filter.Date = &date
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	reports, err := rp.Service.List(ctx, filter)
	if err != nil {
		errorStatus("failed to get reports", w, err)
		return
	}
	writeJSON(w, http.StatusOK, reports)
}

// UpdateReportStatusHandler sets the status of a report found by its report_id
func (rp Report) UpdateReportStatusHandler(w http.ResponseWriter, r *http.Request) {
	reportID := mux.Vars(r)["report_id"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	res, err := rp.Service.UpdateStatus(ctx, reportID, r.URL.Query().Get("status"))
	if err != nil {
		errorStatus("failed to update report status", w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":   "Status updated",
		"report_id": res.ID,
		"status":    res.Status,
		"changed":   res.Changed,
	})
}

// DeleteReportHandler unlinks a report from its cases and deletes it
func (rp Report) DeleteReportHandler(w http.ResponseWriter, r *http.Request) {
	reportID := mux.Vars(r)["report_id"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := rp.Service.Delete(ctx, reportID); err != nil {
		errorStatus("failed to delete report", w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Report deleted and unlinked from cases"})
}

// ReportEvidenceHandler lists the evidence items of a report
func (rp Report) ReportEvidenceHandler(w http.ResponseWriter, r *http.Request) {
	reportID := mux.Vars(r)["report_id"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	rows, err := rp.Service.ListEvidence(ctx, reportID)
	if err != nil {
		errorStatus("failed to get report evidence", w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}
