package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/linesmerrill/human-rights-mis-api/databases"
	"github.com/linesmerrill/human-rights-mis-api/evidence"
	"github.com/linesmerrill/human-rights-mis-api/models"
	"github.com/linesmerrill/human-rights-mis-api/security"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate accepts an ISO 8601 date or date-time. Values without a zone are UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, models.NewValidationError("invalid date, expected ISO 8601", errors.New(s))
}

// ParseViolationTypes splits a comma separated tag list, trimming whitespace
// and dropping empty and repeated tags. Order of first appearance is kept.
func ParseViolationTypes(s string) []string {
	seen := map[string]bool{}
	tags := []string{}
	for _, t := range strings.Split(s, ",") {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		tags = append(tags, t)
	}
	return tags
}

// ReportService is the incident report intake
type ReportService struct {
	Reports  databases.ReportDatabase
	Cases    databases.CaseDatabase
	Evidence databases.ReportEvidenceDatabase
	Store    evidence.Store
	Sealer   *security.Sealer
	Tx       databases.Transactor
	now      func() time.Time
}

// NewReportService creates the report intake
func NewReportService(reports databases.ReportDatabase, cases databases.CaseDatabase, ev databases.ReportEvidenceDatabase,
	store evidence.Store, sealer *security.Sealer, tx databases.Transactor) *ReportService {
	return &ReportService{
		Reports:  reports,
		Cases:    cases,
		Evidence: ev,
		Store:    store,
		Sealer:   sealer,
		Tx:       tx,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Submit validates and persists an incident report with its evidence files.
// Nothing is stored when the submission is rejected.
func (s *ReportService) Submit(ctx context.Context, sub models.ReportSubmission, uploads []evidence.Upload) (string, error) {
	if err := models.ValidateLatLon(sub.Lat, sub.Lon); err != nil {
		return "", err
	}
	if err := validateStruct("report", sub); err != nil {
		return "", err
	}
	date, err := ParseDate(sub.Date)
	if err != nil {
		return "", err
	}

	anonymous := strings.EqualFold(strings.TrimSpace(sub.Anonymous), "true")
	var contact *models.ContactInfo
	if !anonymous {
		contact, err = s.sealContact(models.ContactInfo{
			Email:            sub.Email,
			Phone:            sub.Phone,
			PreferredContact: sub.PreferredContact,
		})
		if err != nil {
			return "", models.NewStorageError("failed to encrypt contact info", err)
		}
	}

	stored, err := evidence.SaveAll(ctx, s.Store, uploads)
	if err != nil {
		return "", models.NewStorageError("failed to store evidence", err)
	}
	now := s.now()
	items := evidenceItems(stored)
	for i := range items {
		items[i].DateUploaded = &now
	}

	report := models.Report{
		ReportID:     sub.ReportID,
		ReporterType: sub.ReporterType,
		Anonymous:    anonymous,
		ContactInfo:  contact,
		IncidentDetails: models.IncidentDetails{
			Date: date,
			Location: models.IncidentLocation{
				Country:     sub.Country,
				City:        sub.City,
				Coordinates: models.NewGeoPoint(sub.Lat, sub.Lon),
			},
			Description:    sub.Description,
			ViolationTypes: ParseViolationTypes(sub.ViolationTypes),
		},
		Evidence:  items,
		Status:    models.StatusNew,
		CreatedAt: now,
	}
	if _, err := s.Reports.InsertOne(ctx, report); err != nil {
		evidence.Discard(ctx, s.Store, stored)
		return "", insertError("report", err)
	}
	zap.S().Infow("report submitted", "report_id", report.ReportID, "anonymous", anonymous, "evidence", len(stored))
	return report.ReportID, nil
}

// List returns every report matching all given filters with contact details
// decrypted. It never returns nil.
func (s *ReportService) List(ctx context.Context, f models.ReportFilter) ([]models.Report, error) {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Country != "" {
		filter["incident_details.location.country"] = f.Country
	}
	if f.Violation != "" {
		filter["incident_details.violation_types"] = f.Violation
	}
	if f.Date != nil {
		filter["incident_details.date"] = *f.Date
	}
	reports, err := s.Reports.Find(ctx, filter)
	if err != nil {
		return nil, models.NewStorageError("failed to list reports", err)
	}
	for i := range reports {
		reports[i].ContactInfo = s.openContact(reports[i].ReportID, reports[i].ContactInfo)
	}
	return emptyIfNil(reports), nil
}

// UpdateStatus sets the status of the report with the given external id
func (s *ReportService) UpdateStatus(ctx context.Context, reportID, status string) (*models.StatusUpdate, error) {
	if !models.ValidStatus(status) {
		return nil, models.NewValidationError("invalid status", nil)
	}
	current, err := s.Reports.FindOne(ctx, bson.M{"report_id": reportID})
	if err != nil {
		if isNoDocuments(err) {
			return nil, models.NewNotFoundError("report")
		}
		return nil, models.NewStorageError("failed to get report", err)
	}
	if current.Status == status {
		return &models.StatusUpdate{ID: reportID, Status: status, Changed: false}, nil
	}

	res, err := s.Reports.UpdateOne(ctx, bson.M{"report_id": reportID}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return nil, models.NewStorageError("failed to update report status", err)
	}
	if res.MatchedCount == 0 {
		return nil, models.NewNotFoundError("report")
	}
	return &models.StatusUpdate{ID: reportID, Status: status, Changed: true}, nil
}

// Delete clears the incident_report_id of every case referencing the report,
// then deletes the report. The unlink always runs, even when the report turns
// out not to exist.
func (s *ReportService) Delete(ctx context.Context, reportID string) error {
	var deleted int64
	err := s.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		unlinked, err := s.Cases.UpdateMany(ctx,
			bson.M{"incident_report_id": reportID},
			bson.M{"$set": bson.M{"incident_report_id": nil}})
		if err != nil {
			return models.NewStorageError("failed to unlink cases", err)
		}
		res, err := s.Reports.DeleteOne(ctx, bson.M{"report_id": reportID})
		if err != nil {
			return models.NewStorageError("failed to delete report", err)
		}
		deleted = res.DeletedCount
		zap.S().Debugw("report delete", "report_id", reportID, "unlinked_cases", unlinked.ModifiedCount, "deleted", deleted)
		return nil
	})
	if err != nil {
		if models.KindOf(err) == "" {
			return models.NewStorageError("failed to delete report", err)
		}
		return err
	}
	if deleted == 0 {
		return models.NewNotFoundError("report")
	}
	return nil
}

// ListEvidence returns the evidence attached to a report. A report without
// evidence and an unknown report both give an empty list.
func (s *ReportService) ListEvidence(ctx context.Context, reportID string) ([]models.ReportEvidence, error) {
	rows, err := s.Evidence.Find(ctx, bson.M{"report_id": reportID})
	if err != nil {
		return nil, models.NewStorageError("failed to list report evidence", err)
	}
	return emptyIfNil(rows), nil
}

func (s *ReportService) sealContact(ci models.ContactInfo) (*models.ContactInfo, error) {
	if s.Sealer == nil {
		return &ci, nil
	}
	var err error
	if ci.Email, err = s.Sealer.Seal(ci.Email); err != nil {
		return nil, err
	}
	if ci.Phone, err = s.Sealer.Seal(ci.Phone); err != nil {
		return nil, err
	}
	return &ci, nil
}

// openContact decrypts contact details for display. Values that cannot be
// opened (for example sealed under a since rotated key) are blanked.
func (s *ReportService) openContact(reportID string, ci *models.ContactInfo) *models.ContactInfo {
	if ci == nil || s.Sealer == nil {
		return ci
	}
	out := *ci
	var err error
	if out.Email, err = s.Sealer.Open(ci.Email); err != nil {
		zap.S().Warnw("failed to decrypt reporter email", "report_id", reportID, "error", err)
		out.Email = ""
	}
	if out.Phone, err = s.Sealer.Open(ci.Phone); err != nil {
		zap.S().Warnw("failed to decrypt reporter phone", "report_id", reportID, "error", err)
		out.Phone = ""
	}
	return &out
}
