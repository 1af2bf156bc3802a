package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Risk levels for victim and witness risk assessments
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// Victim is a victim or witness record linked to one or more cases
type Victim struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	VictimID        string             `bson:"victim_id" json:"victim_id" validate:"required"`
	Type            string             `bson:"type" json:"type" validate:"required,oneof=victim witness"`
	Pseudonym       string             `bson:"pseudonym" json:"pseudonym" validate:"required"`
	Gender          string             `bson:"gender,omitempty" json:"gender,omitempty"`
	AgeGroup        string             `bson:"age_group,omitempty" json:"age_group,omitempty"`
	CaseIDs         []string           `bson:"case_ids" json:"case_ids"`
	RiskAssessment  *RiskAssessment    `bson:"risk_assessment,omitempty" json:"risk_assessment,omitempty"`
	SupportServices []SupportService   `bson:"support_services" json:"support_services"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}

// RiskAssessment records the threat level a victim or witness is exposed to
type RiskAssessment struct {
	Level            string    `bson:"level" json:"level" validate:"required,oneof=low medium high"`
	Threats          []string  `bson:"threats" json:"threats"`
	ProtectionNeeded bool      `bson:"protection_needed" json:"protection_needed"`
	Notes            string    `bson:"notes,omitempty" json:"notes,omitempty"`
	AssessedBy       string    `bson:"assessed_by" json:"assessed_by"`
	AssessedAt       time.Time `bson:"assessed_at" json:"assessed_at"`
}

// SupportService is a referral (legal, medical, psychosocial, relocation...)
type SupportService struct {
	Type      string    `bson:"type" json:"type" validate:"required"`
	Provider  string    `bson:"provider" json:"provider" validate:"required"`
	Status    string    `bson:"status" json:"status" validate:"required,oneof=pending active completed"`
	StartedAt time.Time `bson:"started_at" json:"started_at"`
}

// VictimFilter holds the optional victim list filters
type VictimFilter struct {
	CaseID    string
	RiskLevel string
}
