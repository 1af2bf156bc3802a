package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Case and report statuses
const (
	StatusNew                = "new"
	StatusUnderInvestigation = "under_investigation"
	StatusResolved           = "resolved"
)

// ValidStatus reports whether s is one of the known case/report statuses
func ValidStatus(s string) bool {
	switch s {
	case StatusNew, StatusUnderInvestigation, StatusResolved:
		return true
	}
	return false
}

// Case holds the structure for the cases collection in mongo
type Case struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	CaseID           string             `bson:"case_id" json:"case_id" validate:"required"`
	Title            string             `bson:"title" json:"title" validate:"required"`
	Description      string             `bson:"description" json:"description" validate:"required"`
	ViolationTypes   []string           `bson:"violation_types" json:"violation_types" validate:"required,dive,required"`
	Status           string             `bson:"status" json:"status" validate:"required,oneof=new under_investigation resolved"`
	Priority         string             `bson:"priority,omitempty" json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
	Location         CaseLocation       `bson:"location" json:"location"`
	DateOccurred     time.Time          `bson:"date_occurred" json:"date_occurred" validate:"required"`
	DateReported     time.Time          `bson:"date_reported" json:"date_reported" validate:"required"`
	Victims          []string           `bson:"victims" json:"victims"`
	Perpetrators     []Perpetrator      `bson:"perpetrators" json:"perpetrators" validate:"dive"`
	Evidence         []Evidence         `bson:"evidence" json:"evidence" validate:"dive"`
	CreatedBy        string             `bson:"created_by,omitempty" json:"created_by,omitempty"`
	CreatedAt        time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time          `bson:"updated_at" json:"updated_at"`
	IncidentReportID *string            `bson:"incident_report_id" json:"incident_report_id"`
}

// CaseLocation is where the violation took place
type CaseLocation struct {
	Country     string    `bson:"country" json:"country" validate:"required"`
	Region      string    `bson:"region,omitempty" json:"region,omitempty"`
	Coordinates *GeoPoint `bson:"coordinates" json:"coordinates"`
}

// Perpetrator names a person or body alleged to be responsible
type Perpetrator struct {
	Name string `bson:"name" json:"name" validate:"required"`
	Type string `bson:"type" json:"type" validate:"required"`
}

// CaseFilter holds the optional list filters for cases, combined with AND
type CaseFilter struct {
	Status    string
	Country   string
	Violation string
}

// StatusHistory is one append-only audit row recording a case status transition
type StatusHistory struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	CaseID    string             `bson:"case_id" json:"case_id"`
	Status    string             `bson:"status" json:"status"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
	ChangedBy string             `bson:"changed_by" json:"changed_by"`
}

// StatusUpdate is returned by status update operations. Changed is false when
// the document already had the requested status.
type StatusUpdate struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	Changed bool   `json:"changed"`
}
