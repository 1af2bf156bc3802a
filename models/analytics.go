package models

// Analytics sources
const (
	SourceCases   = "cases"
	SourceReports = "reports"
)

// ViolationCount is the number of documents carrying a violation tag
type ViolationCount struct {
	ViolationType string `bson:"violation_type" json:"violation_type"`
	Count         int64  `bson:"count" json:"count"`
}

// TimelineData is the number of documents falling in one time bucket
type TimelineData struct {
	Date  string `bson:"date" json:"date"`
	Count int64  `bson:"count" json:"count"`
}

// GeoMarker is one map marker
type GeoMarker struct {
	Lat         float64  `bson:"lat" json:"lat"`
	Lon         float64  `bson:"lon" json:"lon"`
	Violations  []string `bson:"violations" json:"violations"`
	Description string   `bson:"description" json:"description"`
}

// GroupCount is one row of a group-by breakdown. ID is nil for documents
// missing the grouped field.
type GroupCount struct {
	ID    interface{} `bson:"_id" json:"_id"`
	Count int64       `bson:"count" json:"count"`
}

// CaseStats summarises the case collection
type CaseStats struct {
	Total      int64        `json:"total"`
	ByStatus   []GroupCount `json:"by_status"`
	ByPriority []GroupCount `json:"by_priority"`
}

// ReportStats summarises the incident report collection
type ReportStats struct {
	Total      int64        `json:"total"`
	ByStatus   []GroupCount `json:"by_status"`
	ByReporter []GroupCount `json:"by_reporter"`
}

// Summary is the dashboard overview of both collections
type Summary struct {
	Cases   CaseStats   `json:"cases"`
	Reports ReportStats `json:"reports"`
}
