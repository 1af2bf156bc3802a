package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/linesmerrill/human-rights-mis-api/api/handlers"
	mocksdb "github.com/linesmerrill/human-rights-mis-api/databases/mocks"
	"github.com/linesmerrill/human-rights-mis-api/models"
	"github.com/linesmerrill/human-rights-mis-api/security"
	"github.com/linesmerrill/human-rights-mis-api/services"
)

func newAuthHandler(t *testing.T) handlers.Auth {
	hash, err := security.HashPassword("s3cret")
	require.NoError(t, err)
	udb := &mocksdb.UserDatabase{}
	udb.On("FindOne", mock.Anything, bson.M{"username": "lawyer1"}).Return(&models.User{
		Username:     "lawyer1",
		PasswordHash: hash,
		Roles:        []string{models.RoleLawyer},
		Active:       true,
	}, nil)
	udb.On("FindOne", mock.Anything, mock.Anything).Return(nil, mongo.ErrNoDocuments)
	return handlers.Auth{Service: services.NewAuthService(udb, security.NewTokens("test-signing-key"), 0)}
}

func TestAuth_TokenHandlerJSON(t *testing.T) {
	a := newAuthHandler(t)

	req := httptest.NewRequest("POST", "/api/v1/auth/token", strings.NewReader(`{"username":"lawyer1","password":"s3cret"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	http.HandlerFunc(a.TokenHandler).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var got models.TokenResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "bearer", got.TokenType)
	assert.NotEmpty(t, got.AccessToken)
	assert.Equal(t, []string{models.RoleLawyer}, got.Roles)
}

func TestAuth_TokenHandlerForm(t *testing.T) {
	a := newAuthHandler(t)

	form := url.Values{"username": {"lawyer1"}, "password": {"s3cret"}}
	req := httptest.NewRequest("POST", "/api/v1/auth/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	http.HandlerFunc(a.TokenHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
}

func TestAuth_TokenHandlerRejects(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"wrong password", `{"username":"lawyer1","password":"nope"}`, http.StatusUnauthorized},
		{"unknown user", `{"username":"ghost","password":"s3cret"}`, http.StatusUnauthorized},
		{"missing password", `{"username":"lawyer1"}`, http.StatusBadRequest},
		{"bad json", `{"username":`, http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := newAuthHandler(t)

			req := httptest.NewRequest("POST", "/api/v1/auth/token", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()
			http.HandlerFunc(a.TokenHandler).ServeHTTP(rr, req)

			assert.Equal(t, tc.status, rr.Code)
			if tc.status == http.StatusUnauthorized {
				assert.Equal(t, "Bearer", rr.Header().Get("WWW-Authenticate"))
			}
		})
	}
}
