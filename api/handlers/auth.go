package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/linesmerrill/human-rights-mis-api/api"
	"github.com/linesmerrill/human-rights-mis-api/config"
	"github.com/linesmerrill/human-rights-mis-api/models"
	"github.com/linesmerrill/human-rights-mis-api/services"
)

// Auth exported for testing purposes
type Auth struct {
	Service *services.AuthService
}

// TokenHandler exchanges a username and password for a bearer token. The
// credentials may be posted as JSON or as an oauth2 style form.
func (a Auth) TokenHandler(w http.ResponseWriter, r *http.Request) {
	var req models.TokenRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			config.ErrorStatus("failed to parse form", http.StatusBadRequest, w, err)
			return
		}
		req.Username = r.PostFormValue("username")
		req.Password = r.PostFormValue("password")
	} else if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	token, err := a.Service.Login(ctx, req.Username, req.Password)
	if err != nil {
		if models.KindOf(err) == models.KindUnauthenticated {
			w.Header().Set("WWW-Authenticate", "Bearer")
		}
		errorStatus("failed to issue token", w, err)
		return
	}
	writeJSON(w, http.StatusOK, token)
}
