package handlers

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/linesmerrill/human-rights-mis-api/api"
	"github.com/linesmerrill/human-rights-mis-api/config"
	"github.com/linesmerrill/human-rights-mis-api/models"
	"github.com/linesmerrill/human-rights-mis-api/services"
)

// Case exported for testing purposes
type Case struct {
	Service *services.CaseService
}

// CreateCaseHandler creates a case. It takes either a multipart form with the
// case as JSON in the "case" field plus "evidence_files", or a plain JSON body.
func (c Case) CreateCaseHandler(w http.ResponseWriter, r *http.Request) {
	var cs models.Case
	var form *multipart.Form
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			config.ErrorStatus("failed to parse multipart form", http.StatusBadRequest, w, err)
			return
		}
		form = r.MultipartForm
		if err := json.Unmarshal([]byte(r.FormValue("case")), &cs); err != nil {
			config.ErrorStatus("failed to unmarshal case", http.StatusBadRequest, w, err)
			return
		}
	} else if err := json.NewDecoder(r.Body).Decode(&cs); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if cs.CreatedBy == "" {
		cs.CreatedBy = api.ActorFrom(r.Context())
	}

	uploads, closeUploads, err := openUploads(form, "evidence_files")
	defer closeUploads()
	if err != nil {
		errorStatus("failed to read evidence files", w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	caseID, err := c.Service.Create(ctx, cs, uploads)
	if err != nil {
		errorStatus("failed to create case", w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"message": "Case created successfully",
		"case_id": caseID,
	})
}

// CasesHandler lists cases filtered by the status, country and violation query params
func (c Case) CasesHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	cases, err := c.Service.List(ctx, models.CaseFilter{
		Status:    q.Get("status"),
		Country:   q.Get("country"),
		Violation: q.Get("violation"),
	})
	if err != nil {
		errorStatus("failed to get cases", w, err)
		return
	}
	writeJSON(w, http.StatusOK, cases)
}

// CaseByIDHandler returns a case by its case_id
func (c Case) CaseByIDHandler(w http.ResponseWriter, r *http.Request) {
	caseID := mux.Vars(r)["case_id"]
	zap.S().Debugf("case_id: %v", caseID)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	cs, err := c.Service.Get(ctx, caseID)
	if err != nil {
		errorStatus("failed to get case by ID", w, err)
		return
	}
	writeJSON(w, http.StatusOK, cs)
}

// UpdateCaseStatusHandler sets the status given in the status query param
func (c Case) UpdateCaseStatusHandler(w http.ResponseWriter, r *http.Request) {
	caseID := mux.Vars(r)["case_id"]
	status := r.URL.Query().Get("status")

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	res, err := c.Service.UpdateStatus(ctx, caseID, status, api.ActorFrom(r.Context()))
	if err != nil {
		errorStatus("failed to update case status", w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Case status updated",
		"case_id": res.ID,
		"status":  res.Status,
		"changed": res.Changed,
	})
}

// CaseHistoryHandler returns the status history of a case, oldest first
func (c Case) CaseHistoryHandler(w http.ResponseWriter, r *http.Request) {
	caseID := mux.Vars(r)["case_id"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	entries, err := c.Service.History(ctx, caseID)
	if err != nil {
		errorStatus("failed to get case history", w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// DeleteCaseHandler deletes a case
func (c Case) DeleteCaseHandler(w http.ResponseWriter, r *http.Request) {
	caseID := mux.Vars(r)["case_id"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := c.Service.Delete(ctx, caseID); err != nil {
		errorStatus("failed to delete case", w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Case archived successfully"})
}
