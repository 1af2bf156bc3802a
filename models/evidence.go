package models

import (
	"strings"
	"time"
)

// Evidence is a file supporting a case or report, stored externally and
// referenced by URL
type Evidence struct {
	Type         string     `bson:"type" json:"type" validate:"required"`
	URL          string     `bson:"url" json:"url" validate:"required"`
	Description  string     `bson:"description,omitempty" json:"description,omitempty"`
	DateCaptured *time.Time `bson:"date_captured,omitempty" json:"date_captured,omitempty"`
	DateUploaded *time.Time `bson:"date_uploaded,omitempty" json:"date_uploaded,omitempty"`
}

// ReportEvidence is one row of the report_evidence view: an embedded report
// evidence item flattened and tagged with its report id
type ReportEvidence struct {
	ReportID     string     `bson:"report_id" json:"report_id"`
	Type         string     `bson:"type" json:"type"`
	URL          string     `bson:"url" json:"url"`
	Description  string     `bson:"description,omitempty" json:"description,omitempty"`
	DateUploaded *time.Time `bson:"date_uploaded,omitempty" json:"date_uploaded,omitempty"`
}

// EvidenceCategory derives the evidence type from a MIME content type,
// "image/png" becomes "image"
func EvidenceCategory(contentType string) string {
	if contentType == "" {
		return "unknown"
	}
	category, _, _ := strings.Cut(contentType, "/")
	return category
}
