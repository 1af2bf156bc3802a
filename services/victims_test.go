package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/linesmerrill/human-rights-mis-api/databases/mocks"
	"github.com/linesmerrill/human-rights-mis-api/models"
)

var victimClock = time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)

func newTestVictims() (*VictimService, *mocks.VictimDatabase) {
	vdb := &mocks.VictimDatabase{}
	svc := NewVictimService(vdb)
	svc.now = func() time.Time { return victimClock }
	return svc, vdb
}

func TestVictims_Create(t *testing.T) {
	svc, vdb := newTestVictims()
	var stored models.Victim
	vdb.On("InsertOne", mock.Anything, mock.AnythingOfType("models.Victim")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(models.Victim) }).
		Return(&mocks.InsertOneResultHelper{}, nil)

	id, err := svc.Create(context.Background(), models.Victim{
		VictimID:  "V-001",
		Type:      "witness",
		Pseudonym: "Amani",
		CaseIDs:   []string{"HR-2024-001"},
	})
	require.NoError(t, err)
	assert.Equal(t, "V-001", id)
	assert.Equal(t, victimClock, stored.CreatedAt)
	assert.Equal(t, []models.SupportService{}, stored.SupportServices)
}

func TestVictims_CreateValidation(t *testing.T) {
	svc, vdb := newTestVictims()

	_, err := svc.Create(context.Background(), models.Victim{VictimID: "V-1", Type: "bystander", Pseudonym: "x"})
	assert.True(t, errors.Is(err, models.ErrValidation))

	_, err = svc.Create(context.Background(), models.Victim{
		VictimID: "V-1", Type: "victim", Pseudonym: "x",
		RiskAssessment: &models.RiskAssessment{Level: "extreme"},
	})
	assert.True(t, errors.Is(err, models.ErrValidation))
	vdb.AssertNotCalled(t, "InsertOne", mock.Anything, mock.Anything)
}

func TestVictims_AssessRisk(t *testing.T) {
	svc, vdb := newTestVictims()
	var update bson.M
	vdb.On("UpdateOne", mock.Anything, bson.M{"victim_id": "V-001"}, mock.Anything).
		Run(func(args mock.Arguments) { update = args.Get(2).(bson.M) }).
		Return(&mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil)
	vdb.On("FindOne", mock.Anything, bson.M{"victim_id": "V-001"}).
		Return(&models.Victim{VictimID: "V-001"}, nil)

	_, err := svc.AssessRisk(context.Background(), "V-001", models.RiskAssessment{
		Level:            models.RiskHigh,
		ProtectionNeeded: true,
		AssessedBy:       "spoofed",
	}, "ngo1")
	require.NoError(t, err)

	ra := update["$set"].(bson.M)["risk_assessment"].(models.RiskAssessment)
	assert.Equal(t, "ngo1", ra.AssessedBy)
	assert.Equal(t, victimClock, ra.AssessedAt)
	assert.Equal(t, []string{}, ra.Threats)
}

func TestVictims_AssessRiskNotFound(t *testing.T) {
	svc, vdb := newTestVictims()
	vdb.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).Return(&mongo.UpdateResult{}, nil)

	_, err := svc.AssessRisk(context.Background(), "V-404", models.RiskAssessment{Level: models.RiskLow}, "")
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestVictims_AddSupportService(t *testing.T) {
	svc, vdb := newTestVictims()
	var update bson.M
	vdb.On("UpdateOne", mock.Anything, bson.M{"victim_id": "V-001"}, mock.Anything).
		Run(func(args mock.Arguments) { update = args.Get(2).(bson.M) }).
		Return(&mongo.UpdateResult{MatchedCount: 1}, nil)
	vdb.On("FindOne", mock.Anything, mock.Anything).Return(&models.Victim{VictimID: "V-001"}, nil)

	_, err := svc.AddSupportService(context.Background(), "V-001", models.SupportService{
		Type: "legal", Provider: "Legal Aid Clinic", Status: "pending",
	})
	require.NoError(t, err)
	svcPushed := update["$push"].(bson.M)["support_services"].(models.SupportService)
	assert.Equal(t, victimClock, svcPushed.StartedAt)

	_, err = svc.AddSupportService(context.Background(), "V-001", models.SupportService{Type: "legal"})
	assert.True(t, errors.Is(err, models.ErrValidation))
}

func TestVictims_ListAndDelete(t *testing.T) {
	svc, vdb := newTestVictims()
	vdb.On("Find", mock.Anything, bson.M{"case_ids": "HR-1", "risk_assessment.level": "high"}).Return(nil, nil)
	vdb.On("DeleteOne", mock.Anything, bson.M{"victim_id": "V-404"}).Return(&mongo.DeleteResult{}, nil)

	got, err := svc.List(context.Background(), models.VictimFilter{CaseID: "HR-1", RiskLevel: "high"})
	require.NoError(t, err)
	assert.Equal(t, []models.Victim{}, got)

	assert.True(t, errors.Is(svc.Delete(context.Background(), "V-404"), models.ErrNotFound))
}
