package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/linesmerrill/human-rights-mis-api/databases/mocks"
	"github.com/linesmerrill/human-rights-mis-api/models"
	"github.com/linesmerrill/human-rights-mis-api/security"
)

func newTestAuth(t *testing.T) (*AuthService, *mocks.UserDatabase) {
	hash, err := security.HashPassword("s3cret")
	require.NoError(t, err)
	udb := &mocks.UserDatabase{}
	udb.On("FindOne", mock.Anything, bson.M{"username": "lawyer1"}).Return(&models.User{
		Username:     "lawyer1",
		PasswordHash: hash,
		Roles:        []string{models.RoleLawyer},
		Active:       true,
	}, nil)
	udb.On("FindOne", mock.Anything, bson.M{"username": "retired"}).Return(&models.User{
		Username:     "retired",
		PasswordHash: hash,
		Roles:        []string{models.RoleAdmin},
		Active:       false,
	}, nil)
	udb.On("FindOne", mock.Anything, mock.Anything).Return(nil, mongo.ErrNoDocuments)
	return NewAuthService(udb, security.NewTokens("test-signing-key"), 0), udb
}

func TestAuth_LoginAndAuthenticate(t *testing.T) {
	svc, _ := newTestAuth(t)

	resp, err := svc.Login(context.Background(), "lawyer1", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, []string{models.RoleLawyer}, resp.Roles)
	assert.NotEmpty(t, resp.AccessToken)

	user, err := svc.Authenticate(context.Background(), resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "lawyer1", user.Username)
}

func TestAuth_LoginFailures(t *testing.T) {
	svc, _ := newTestAuth(t)

	for name, creds := range map[string][2]string{
		"wrong password": {"lawyer1", "guess"},
		"unknown user":   {"ghost", "s3cret"},
		"disabled user":  {"retired", "s3cret"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), creds[0], creds[1])
			assert.True(t, errors.Is(err, models.ErrUnauthenticated))
			assert.Contains(t, err.Error(), "incorrect username or password")
		})
	}

	_, err := svc.Login(context.Background(), "", "")
	assert.True(t, errors.Is(err, models.ErrValidation))
}

func TestAuth_AuthenticateRejects(t *testing.T) {
	svc, _ := newTestAuth(t)

	_, err := svc.Authenticate(context.Background(), "")
	assert.True(t, errors.Is(err, models.ErrUnauthenticated))

	_, err = svc.Authenticate(context.Background(), "not.a.jwt")
	assert.True(t, errors.Is(err, models.ErrUnauthenticated))

	other := security.NewTokens("another-key")
	token, _, err := other.IssueToken(map[string]interface{}{"sub": "lawyer1"}, 0)
	require.NoError(t, err)
	_, err = svc.Authenticate(context.Background(), token)
	assert.True(t, errors.Is(err, models.ErrUnauthenticated))

	token, _, err = svc.Tokens.IssueToken(map[string]interface{}{"sub": "ghost"}, 0)
	require.NoError(t, err)
	_, err = svc.Authenticate(context.Background(), token)
	assert.True(t, errors.Is(err, models.ErrUnauthenticated))
}

func TestAuth_Authorize(t *testing.T) {
	svc, _ := newTestAuth(t)
	lawyer := &models.User{Username: "l", Roles: []string{models.RoleLawyer}}

	assert.NoError(t, svc.Authorize(lawyer, models.RoleAdmin, models.RoleLawyer))
	assert.NoError(t, svc.Authorize(lawyer))
	assert.True(t, errors.Is(svc.Authorize(lawyer, models.RoleAdmin), models.ErrForbidden))
	assert.True(t, errors.Is(svc.Authorize(nil, models.RoleAdmin), models.ErrUnauthenticated))
}
