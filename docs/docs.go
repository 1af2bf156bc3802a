// Package docs Human Rights MIS API.
//
// Documentation of the Human Rights case management and incident reporting API.
//
//     Schemes: https
//     BasePath: /
//     Version: 1.0.0
//
//     Consumes:
//     - application/json
//     - multipart/form-data
//
//     Produces:
//     - application/json
//
//     Security:
//     - bearer
//
//    SecurityDefinitions:
//    bearer:
//      type: apiKey
//      name: Authorization
//      in: header
//
// swagger:meta
package docs

import (
	"github.com/linesmerrill/human-rights-mis-api/models"
)

// swagger:route GET /health health healthEndpointID
// Lists the healthchex of the web service api.
// responses:
//   200: healthResponse

// Shows the current health of the api. true means it is alive, false means it is not.
// swagger:response healthResponse
type healthResponseWrapper struct {
	// in:body
	Body models.HealthCheckResponse
}

// swagger:route POST /api/v1/auth/token auth tokenEndpointID
// Exchanges a username and password for a bearer token.
// responses:
//   200: tokenResponse
//   401: errorResponse

// An access token and the roles it carries
// swagger:response tokenResponse
type tokenResponseWrapper struct {
	// in:body
	Body models.TokenResponse
}

// swagger:route GET /api/v1/cases/{case_id} cases caseByID
// Gets a single case by its case_id.
// responses:
//   200: caseByIDResponse
//   404: errorResponse

// Shows a single case by the given {case_id}
// swagger:response caseByIDResponse
type caseByIDResponseWrapper struct {
	// in:body
	Body models.Case
}

// swagger:route GET /api/v1/cases/{case_id}/history cases caseHistory
// Lists the status changes of a case, oldest first.
// responses:
//   200: caseHistoryResponse

// swagger:response caseHistoryResponse
type caseHistoryResponseWrapper struct {
	// in:body
	Body []models.StatusHistory
}

// swagger:route GET /api/v1/reports reports reports
// Lists incident reports filtered by status, country, violation and date.
// responses:
//   200: reportsResponse

// swagger:response reportsResponse
type reportsResponseWrapper struct {
	// in:body
	Body []models.Report
}

// swagger:route GET /api/v1/analytics/summary analytics summary
// Dashboard totals and breakdowns for cases and reports.
// responses:
//   200: summaryResponse

// swagger:response summaryResponse
type summaryResponseWrapper struct {
	// in:body
	Body models.Summary
}

// swagger:route GET /api/v1/victims/{victim_id} victims victimByID
// Gets a victim or witness record.
// responses:
//   200: victimResponse
//   404: errorResponse

// swagger:response victimResponse
type victimResponseWrapper struct {
	// in:body
	Body models.Victim
}

// Error body returned by every failing route
// swagger:response errorResponse
type errorResponseWrapper struct {
	// in:body
	Body models.ErrorMessageResponse
}
