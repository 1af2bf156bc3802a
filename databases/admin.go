package databases

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/linesmerrill/human-rights-mis-api/models"
)

// EnsureAdmin bootstraps an admin user from config if one with that username
// is not already present. An empty username is a no-op.
func EnsureAdmin(ctx context.Context, db DatabaseHelper, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil
	}
	err := db.Collection(userName).FindOne(ctx, bson.M{"username": username}).Decode(&struct{}{})
	if err == nil {
		return nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}
	if password == "" {
		return errors.New("ADMIN_PASSWORD must be set to bootstrap the admin user")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.User{
		Username:     username,
		PasswordHash: string(hash),
		Roles:        []string{models.RoleAdmin},
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}
	_, err = db.Collection(userName).InsertOne(ctx, admin)
	return err
}
