package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reporter types
const (
	ReporterVictim    = "victim"
	ReporterWitness   = "witness"
	ReporterNGOWorker = "ngo_worker"
)

// Report represents an incident report submitted by a victim, witness or ngo worker
type Report struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	ReportID        string             `bson:"report_id" json:"report_id"`
	ReporterType    string             `bson:"reporter_type" json:"reporter_type"`
	Anonymous       bool               `bson:"anonymous" json:"anonymous"`
	ContactInfo     *ContactInfo       `bson:"contact_info" json:"contact_info"`
	IncidentDetails IncidentDetails    `bson:"incident_details" json:"incident_details"`
	Evidence        []Evidence         `bson:"evidence" json:"evidence"`
	Status          string             `bson:"status" json:"status"`
	AssignedTo      *string            `bson:"assigned_to" json:"assigned_to"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
}

// ContactInfo is how to reach a non anonymous reporter. Email and Phone are
// sealed at rest.
type ContactInfo struct {
	Email            string `bson:"email,omitempty" json:"email,omitempty"`
	Phone            string `bson:"phone,omitempty" json:"phone,omitempty"`
	PreferredContact string `bson:"preferred_contact,omitempty" json:"preferred_contact,omitempty"`
}

// IncidentDetails describes what happened, where and when
type IncidentDetails struct {
	Date           time.Time        `bson:"date" json:"date"`
	Location       IncidentLocation `bson:"location" json:"location"`
	Description    string           `bson:"description" json:"description"`
	ViolationTypes []string         `bson:"violation_types" json:"violation_types"`
}

// IncidentLocation is the place of the incident
type IncidentLocation struct {
	Country     string    `bson:"country" json:"country"`
	City        string    `bson:"city,omitempty" json:"city,omitempty"`
	Coordinates *GeoPoint `bson:"coordinates" json:"coordinates"`
}

// ReportSubmission is the raw intake form as posted by the reporting client
type ReportSubmission struct {
	ReportID         string `validate:"required"`
	ReporterType     string `validate:"required,oneof=victim witness ngo_worker"`
	Anonymous        string
	Email            string
	Phone            string
	PreferredContact string
	Date             string `validate:"required"`
	Country          string `validate:"required"`
	City             string
	Lat              float64
	Lon              float64
	Description      string `validate:"required"`
	ViolationTypes   string `validate:"required"`
}

// ReportFilter holds the optional list filters for reports, combined with AND.
// Date must equal the stored incident date exactly.
type ReportFilter struct {
	Status    string
	Country   string
	Violation string
	Date      *time.Time
}
