package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/linesmerrill/human-rights-mis-api/databases"
	"github.com/linesmerrill/human-rights-mis-api/evidence"
	"github.com/linesmerrill/human-rights-mis-api/models"
)

// CaseService is the case registry together with its status history ledger
type CaseService struct {
	Cases  databases.CaseDatabase
	Ledger databases.StatusHistoryDatabase
	Store  evidence.Store
	now    func() time.Time
}

// NewCaseService creates a case registry writing evidence files to store
func NewCaseService(cases databases.CaseDatabase, history databases.StatusHistoryDatabase, store evidence.Store) *CaseService {
	return &CaseService{
		Cases:  cases,
		Ledger: history,
		Store:  store,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Create stores the uploaded files, persists the case with server assigned
// timestamps and records the initial status. The stored files replace any
// evidence in the payload.
func (s *CaseService) Create(ctx context.Context, c models.Case, uploads []evidence.Upload) (string, error) {
	if err := validateStruct("case", c); err != nil {
		return "", err
	}
	if c.Location.Coordinates != nil {
		if err := c.Location.Coordinates.Validate(); err != nil {
			return "", err
		}
	}

	stored, err := evidence.SaveAll(ctx, s.Store, uploads)
	if err != nil {
		return "", models.NewStorageError("failed to store evidence", err)
	}

	now := s.now()
	c.ID = primitive.NilObjectID
	c.Evidence = evidenceItems(stored)
	for i := range c.Evidence {
		c.Evidence[i].DateCaptured = &now
	}
	c.Victims = emptyIfNil(c.Victims)
	c.Perpetrators = emptyIfNil(c.Perpetrators)
	c.CreatedAt = now
	c.UpdatedAt = now

	if _, err := s.Cases.InsertOne(ctx, c); err != nil {
		evidence.Discard(ctx, s.Store, stored)
		return "", insertError("case", err)
	}

	if err := s.appendHistory(ctx, c.CaseID, c.Status, actorOr(c.CreatedBy, "unknown")); err != nil {
		return "", err
	}
	zap.S().Infow("case created", "case_id", c.CaseID, "evidence", len(stored))
	return c.CaseID, nil
}

// List returns every case matching all given filters. It never returns nil.
func (s *CaseService) List(ctx context.Context, f models.CaseFilter) ([]models.Case, error) {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Country != "" {
		filter["location.country"] = f.Country
	}
	if f.Violation != "" {
		filter["violation_types"] = f.Violation
	}
	cases, err := s.Cases.Find(ctx, filter)
	if err != nil {
		return nil, models.NewStorageError("failed to list cases", err)
	}
	return emptyIfNil(cases), nil
}

// Get returns the case with the given external id
func (s *CaseService) Get(ctx context.Context, caseID string) (*models.Case, error) {
	c, err := s.Cases.FindOne(ctx, bson.M{"case_id": caseID})
	if err != nil {
		if isNoDocuments(err) {
			return nil, models.NewNotFoundError("case")
		}
		return nil, models.NewStorageError("failed to get case", err)
	}
	return c, nil
}

// UpdateStatus moves a case to status and appends a history row attributed to
// actor. Setting the status a case already has changes nothing.
func (s *CaseService) UpdateStatus(ctx context.Context, caseID, status, actor string) (*models.StatusUpdate, error) {
	if !models.ValidStatus(status) {
		return nil, models.NewValidationError("invalid status", nil)
	}
	current, err := s.Get(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if current.Status == status {
		return &models.StatusUpdate{ID: caseID, Status: status, Changed: false}, nil
	}

	res, err := s.Cases.UpdateOne(ctx, bson.M{"case_id": caseID}, bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": s.now(),
	}})
	if err != nil {
		return nil, models.NewStorageError("failed to update case status", err)
	}
	if res.MatchedCount == 0 {
		return nil, models.NewNotFoundError("case")
	}

	if err := s.appendHistory(ctx, caseID, status, actorOr(actor, defaultActor)); err != nil {
		return nil, err
	}
	return &models.StatusUpdate{ID: caseID, Status: status, Changed: true}, nil
}

// History returns the status transitions of a case, oldest first
func (s *CaseService) History(ctx context.Context, caseID string) ([]models.StatusHistory, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	entries, err := s.Ledger.Find(ctx, bson.M{"case_id": caseID}, opts)
	if err != nil {
		return nil, models.NewStorageError("failed to get case history", err)
	}
	return emptyIfNil(entries), nil
}

// Delete removes a case. Its history rows stay.
func (s *CaseService) Delete(ctx context.Context, caseID string) error {
	res, err := s.Cases.DeleteOne(ctx, bson.M{"case_id": caseID})
	if err != nil {
		return models.NewStorageError("failed to delete case", err)
	}
	if res.DeletedCount == 0 {
		return models.NewNotFoundError("case")
	}
	return nil
}

func (s *CaseService) appendHistory(ctx context.Context, caseID, status, actor string) error {
	_, err := s.Ledger.InsertOne(ctx, models.StatusHistory{
		CaseID:    caseID,
		Status:    status,
		Timestamp: s.now(),
		ChangedBy: actor,
	})
	if err != nil {
		return models.NewStorageError("failed to record status history", err)
	}
	return nil
}
