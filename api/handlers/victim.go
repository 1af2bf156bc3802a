package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/linesmerrill/human-rights-mis-api/api"
	"github.com/linesmerrill/human-rights-mis-api/config"
	"github.com/linesmerrill/human-rights-mis-api/models"
	"github.com/linesmerrill/human-rights-mis-api/services"
)

// Victim exported for testing purposes
type Victim struct {
	Service *services.VictimService
}

// CreateVictimHandler registers a victim or witness
func (v Victim) CreateVictimHandler(w http.ResponseWriter, r *http.Request) {
	var victim models.Victim
	if err := json.NewDecoder(r.Body).Decode(&victim); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	victimID, err := v.Service.Create(ctx, victim)
	if err != nil {
		errorStatus("failed to create victim", w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"message":   "Victim registered",
		"victim_id": victimID,
	})
}

// VictimsHandler lists victims filtered by case_id and risk_level
func (v Victim) VictimsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	victims, err := v.Service.List(ctx, models.VictimFilter{
		CaseID:    q.Get("case_id"),
		RiskLevel: q.Get("risk_level"),
	})
	if err != nil {
		errorStatus("failed to get victims", w, err)
		return
	}
	writeJSON(w, http.StatusOK, victims)
}

// VictimByIDHandler returns a victim by its victim_id
func (v Victim) VictimByIDHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	victim, err := v.Service.Get(ctx, mux.Vars(r)["victim_id"])
	if err != nil {
		errorStatus("failed to get victim by ID", w, err)
		return
	}
	writeJSON(w, http.StatusOK, victim)
}

// AssessRiskHandler replaces the risk assessment of a victim
func (v Victim) AssessRiskHandler(w http.ResponseWriter, r *http.Request) {
	var ra models.RiskAssessment
	if err := json.NewDecoder(r.Body).Decode(&ra); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	victim, err := v.Service.AssessRisk(ctx, mux.Vars(r)["victim_id"], ra, api.ActorFrom(r.Context()))
	if err != nil {
		errorStatus("failed to assess risk", w, err)
		return
	}
	writeJSON(w, http.StatusOK, victim)
}

// AddSupportServiceHandler appends a support service referral to a victim
func (v Victim) AddSupportServiceHandler(w http.ResponseWriter, r *http.Request) {
	var svc models.SupportService
	if err := json.NewDecoder(r.Body).Decode(&svc); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	victim, err := v.Service.AddSupportService(ctx, mux.Vars(r)["victim_id"], svc)
	if err != nil {
		errorStatus("failed to add support service", w, err)
		return
	}
	writeJSON(w, http.StatusOK, victim)
}

// DeleteVictimHandler deletes a victim record
func (v Victim) DeleteVictimHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := v.Service.Delete(ctx, mux.Vars(r)["victim_id"]); err != nil {
		errorStatus("failed to delete victim", w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Victim deleted"})
}
