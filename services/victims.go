package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/linesmerrill/human-rights-mis-api/databases"
	"github.com/linesmerrill/human-rights-mis-api/models"
)

// VictimService is the victim and witness registry
type VictimService struct {
	Victims databases.VictimDatabase
	now     func() time.Time
}

// NewVictimService creates the victim registry
func NewVictimService(victims databases.VictimDatabase) *VictimService {
	return &VictimService{
		Victims: victims,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Create registers a victim or witness
func (s *VictimService) Create(ctx context.Context, v models.Victim) (string, error) {
	if err := validateStruct("victim", v); err != nil {
		return "", err
	}
	now := s.now()
	v.ID = primitive.NilObjectID
	v.CaseIDs = emptyIfNil(v.CaseIDs)
	v.SupportServices = emptyIfNil(v.SupportServices)
	if v.RiskAssessment != nil {
		v.RiskAssessment.AssessedAt = now
	}
	v.CreatedAt = now
	v.UpdatedAt = now

	if _, err := s.Victims.InsertOne(ctx, v); err != nil {
		return "", insertError("victim", err)
	}
	return v.VictimID, nil
}

// Get returns the victim with the given external id
func (s *VictimService) Get(ctx context.Context, victimID string) (*models.Victim, error) {
	v, err := s.Victims.FindOne(ctx, bson.M{"victim_id": victimID})
	if err != nil {
		if isNoDocuments(err) {
			return nil, models.NewNotFoundError("victim")
		}
		return nil, models.NewStorageError("failed to get victim", err)
	}
	return v, nil
}

// List returns victims linked to a case and/or at a risk level
func (s *VictimService) List(ctx context.Context, f models.VictimFilter) ([]models.Victim, error) {
	filter := bson.M{}
	if f.CaseID != "" {
		filter["case_ids"] = f.CaseID
	}
	if f.RiskLevel != "" {
		filter["risk_assessment.level"] = f.RiskLevel
	}
	victims, err := s.Victims.Find(ctx, filter)
	if err != nil {
		return nil, models.NewStorageError("failed to list victims", err)
	}
	return emptyIfNil(victims), nil
}

// AssessRisk replaces the current risk assessment, stamped with actor and time
func (s *VictimService) AssessRisk(ctx context.Context, victimID string, ra models.RiskAssessment, actor string) (*models.Victim, error) {
	if err := validateStruct("risk assessment", ra); err != nil {
		return nil, err
	}
	now := s.now()
	ra.AssessedBy = actorOr(actor, defaultActor)
	ra.AssessedAt = now
	ra.Threats = emptyIfNil(ra.Threats)

	return s.update(ctx, victimID, bson.M{"$set": bson.M{
		"risk_assessment": ra,
		"updated_at":      now,
	}})
}

// AddSupportService appends a support service referral
func (s *VictimService) AddSupportService(ctx context.Context, victimID string, svc models.SupportService) (*models.Victim, error) {
	if err := validateStruct("support service", svc); err != nil {
		return nil, err
	}
	now := s.now()
	if svc.StartedAt.IsZero() {
		svc.StartedAt = now
	}
	return s.update(ctx, victimID, bson.M{
		"$push": bson.M{"support_services": svc},
		"$set":  bson.M{"updated_at": now},
	})
}

// Delete removes a victim record
func (s *VictimService) Delete(ctx context.Context, victimID string) error {
	res, err := s.Victims.DeleteOne(ctx, bson.M{"victim_id": victimID})
	if err != nil {
		return models.NewStorageError("failed to delete victim", err)
	}
	if res.DeletedCount == 0 {
		return models.NewNotFoundError("victim")
	}
	return nil
}

func (s *VictimService) update(ctx context.Context, victimID string, update bson.M) (*models.Victim, error) {
	res, err := s.Victims.UpdateOne(ctx, bson.M{"victim_id": victimID}, update)
	if err != nil {
		return nil, models.NewStorageError("failed to update victim", err)
	}
	if res.MatchedCount == 0 {
		return nil, models.NewNotFoundError("victim")
	}
	return s.Get(ctx, victimID)
}
