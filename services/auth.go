package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/linesmerrill/human-rights-mis-api/databases"
	"github.com/linesmerrill/human-rights-mis-api/models"
	"github.com/linesmerrill/human-rights-mis-api/security"
)

var errBadCredentials = errors.New("incorrect username or password")

// AuthService verifies credentials and bearer tokens against the users collection
type AuthService struct {
	Users  databases.UserDatabase
	Tokens *security.Tokens
	TTL    time.Duration
}

// NewAuthService creates the access control service
func NewAuthService(users databases.UserDatabase, tokens *security.Tokens, ttl time.Duration) *AuthService {
	return &AuthService{Users: users, Tokens: tokens, TTL: ttl}
}

// Login checks a username and password and issues an access token
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.TokenResponse, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, models.NewValidationError("username and password are required", nil)
	}
	user, err := s.findUser(ctx, username)
	if models.KindOf(err) == models.KindUnauthenticated || (err == nil && !security.VerifyPassword(password, user.PasswordHash)) {
		return nil, models.NewUnauthenticatedError(errBadCredentials)
	}
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.Tokens.IssueToken(map[string]interface{}{
		"sub":   user.Username,
		"roles": user.Roles,
	}, s.TTL)
	if err != nil {
		return nil, models.NewStorageError("failed to issue token", err)
	}
	return &models.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
		Roles:       emptyIfNil(user.Roles),
	}, nil
}

// Authenticate resolves a bearer token to an active user
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, models.NewUnauthenticatedError(errors.New("missing bearer token"))
	}
	username, err := s.Tokens.Subject(token)
	if err != nil {
		return nil, models.NewUnauthenticatedError(err)
	}
	return s.findUser(ctx, username)
}

// Authorize succeeds when user holds at least one of roles
func (s *AuthService) Authorize(user *models.User, roles ...string) error {
	if user == nil {
		return models.NewUnauthenticatedError(errors.New("no authenticated user"))
	}
	if len(roles) == 0 || user.HasAnyRole(roles...) {
		return nil
	}
	return models.NewForbiddenError("requires one of roles: " + strings.Join(roles, ", "))
}

func (s *AuthService) findUser(ctx context.Context, username string) (*models.User, error) {
	user, err := s.Users.FindOne(ctx, bson.M{"username": username})
	if err != nil {
		if isNoDocuments(err) {
			return nil, models.NewUnauthenticatedError(errors.New("unknown user"))
		}
		return nil, models.NewStorageError("failed to get user", err)
	}
	if !user.Active {
		return nil, models.NewUnauthenticatedError(errors.New("user is disabled"))
	}
	return user, nil
}
