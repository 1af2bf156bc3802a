// Package services holds the case registry, report intake, analytics, access
// control and victim registry operations on top of the databases package.
package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/linesmerrill/human-rights-mis-api/evidence"
	"github.com/linesmerrill/human-rights-mis-api/models"
)

// defaultActor is recorded on history rows when no authenticated user is known
const defaultActor = "admin"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report json names in messages, matching what the client sent
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// validateStruct runs the validate tags on s and converts failures into a
// validation error naming every offending field
func validateStruct(what string, s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return models.NewValidationError("invalid "+what, err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s failed on '%s'", fe.Namespace(), fe.Tag()))
	}
	return models.NewValidationError("invalid "+what, errors.New(strings.Join(msgs, "; ")))
}

func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

// insertError maps an insert failure to conflict for duplicate identifiers and
// storage otherwise
func insertError(what string, err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return models.NewConflictError(fmt.Sprintf("%s already exists", what), err)
	}
	return models.NewStorageError(fmt.Sprintf("failed to insert %s", what), err)
}

func actorOr(actor, fallback string) string {
	if a := strings.TrimSpace(actor); a != "" {
		return a
	}
	return fallback
}

func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// evidenceItems turns stored uploads into evidence entries described by their
// original file names
func evidenceItems(stored []evidence.Stored) []models.Evidence {
	items := make([]models.Evidence, 0, len(stored))
	for _, s := range stored {
		items = append(items, models.Evidence{
			Type:        models.EvidenceCategory(s.ContentType),
			URL:         s.URL,
			Description: s.Filename,
		})
	}
	return items
}
