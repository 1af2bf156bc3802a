package handlers

import (
	"context"
	"net/http"
	"path"
	"path/filepath"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/linesmerrill/human-rights-mis-api/api"
	"github.com/linesmerrill/human-rights-mis-api/api/scheduler"
	"github.com/linesmerrill/human-rights-mis-api/config"
	"github.com/linesmerrill/human-rights-mis-api/databases"
	"github.com/linesmerrill/human-rights-mis-api/evidence"
	"github.com/linesmerrill/human-rights-mis-api/models"
	"github.com/linesmerrill/human-rights-mis-api/security"
	"github.com/linesmerrill/human-rights-mis-api/services"
)

const (
	mediaPrefix       = "/media/"
	caseEvidenceDir   = "case_evidence"
	reportEvidenceDir = "report_evidence"
)

// App stores the router and db connection, so it can be reused
type App struct {
	Router      *mux.Router
	Config      config.Config
	CaseStore   evidence.Store
	ReportStore evidence.Store
	Sealer      *security.Sealer
	Scheduler   *scheduler.Scheduler
	dbHelper    databases.DatabaseHelper
	client      databases.ClientHelper
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	a.defaultStores()
	if a.Sealer == nil {
		a.Sealer = security.NewSealer(a.Config.EncryptionKey)
	}

	authSvc := services.NewAuthService(databases.NewUserDatabase(a.dbHelper), security.NewTokens(a.Config.JWTSecret), a.Config.AccessTokenTTL)
	m := api.Middleware{Auth: authSvc}
	anyUser := m.Require()
	staff := m.Require(models.RoleAdmin, models.RoleLawyer)
	admin := m.Require(models.RoleAdmin)

	cases := databases.NewCaseDatabase(a.dbHelper)
	reports := databases.NewReportDatabase(a.dbHelper)

	auth := Auth{Service: authSvc}
	c := Case{Service: services.NewCaseService(cases, databases.NewStatusHistoryDatabase(a.dbHelper), a.CaseStore)}
	rp := Report{Service: services.NewReportService(reports, cases, databases.NewReportEvidenceDatabase(a.dbHelper),
		a.ReportStore, a.Sealer, databases.NewTransactor(a.dbHelper, a.Config.Transactions))}
	an := Analytics{Service: services.NewAnalyticsService(cases, reports)}
	v := Victim{Service: services.NewVictimService(databases.NewVictimDatabase(a.dbHelper))}

	// healthchex and metrics
	r := api.New()

	if _, ok := a.CaseStore.(*evidence.DiskStore); ok {
		r.PathPrefix(mediaPrefix).Handler(http.StripPrefix(mediaPrefix, http.FileServer(http.Dir(a.Config.MediaDir)))).Methods("GET")
	}

	apiCreate := r.PathPrefix("/api/v1").Subrouter()
	if a.Config.RequestTimeout > 0 {
		apiCreate.Use(api.TimeoutMiddleware(a.Config.RequestTimeout))
	}

	apiCreate.Handle("/auth/token", http.HandlerFunc(auth.TokenHandler)).Methods("POST")

	apiCreate.Handle("/cases", staff(http.HandlerFunc(c.CreateCaseHandler))).Methods("POST")
	apiCreate.Handle("/cases", anyUser(http.HandlerFunc(c.CasesHandler))).Methods("GET")
	apiCreate.Handle("/cases/{case_id}", anyUser(http.HandlerFunc(c.CaseByIDHandler))).Methods("GET")
	apiCreate.Handle("/cases/{case_id}", staff(http.HandlerFunc(c.UpdateCaseStatusHandler))).Methods("PATCH")
	apiCreate.Handle("/cases/{case_id}", admin(http.HandlerFunc(c.DeleteCaseHandler))).Methods("DELETE")
	apiCreate.Handle("/cases/{case_id}/history", anyUser(http.HandlerFunc(c.CaseHistoryHandler))).Methods("GET")

	// report analytics must go above the {report_id} routes
	apiCreate.Handle("/reports/analytics", http.HandlerFunc(an.ReportViolationsHandler)).Methods("GET")
	apiCreate.Handle("/reports/analytics/timeline", http.HandlerFunc(an.ReportTimelineHandler)).Methods("GET")
	apiCreate.Handle("/reports/analytics/geodata", http.HandlerFunc(an.ReportGeodataHandler)).Methods("GET")

	apiCreate.Handle("/reports", http.HandlerFunc(rp.CreateReportHandler)).Methods("POST")
	apiCreate.Handle("/reports", anyUser(http.HandlerFunc(rp.ReportsHandler))).Methods("GET")
	apiCreate.Handle("/reports/{report_id}", staff(http.HandlerFunc(rp.UpdateReportStatusHandler))).Methods("PATCH")
	apiCreate.Handle("/reports/{report_id}", admin(http.HandlerFunc(rp.DeleteReportHandler))).Methods("DELETE")
	apiCreate.Handle("/reports/{report_id}/evidence", anyUser(http.HandlerFunc(rp.ReportEvidenceHandler))).Methods("GET")

	apiCreate.Handle("/analytics/violations", http.HandlerFunc(an.ViolationsHandler)).Methods("GET")
	apiCreate.Handle("/analytics/timeline", http.HandlerFunc(an.TimelineHandler)).Methods("GET")
	apiCreate.Handle("/analytics/geodata", http.HandlerFunc(an.GeodataHandler)).Methods("GET")
	apiCreate.Handle("/analytics/summary", http.HandlerFunc(an.SummaryHandler)).Methods("GET")

	apiCreate.Handle("/victims", admin(http.HandlerFunc(v.CreateVictimHandler))).Methods("POST")
	apiCreate.Handle("/victims", admin(http.HandlerFunc(v.VictimsHandler))).Methods("GET")
	apiCreate.Handle("/victims/{victim_id}", admin(http.HandlerFunc(v.VictimByIDHandler))).Methods("GET")
	apiCreate.Handle("/victims/{victim_id}", admin(http.HandlerFunc(v.DeleteVictimHandler))).Methods("DELETE")
	apiCreate.Handle("/victims/{victim_id}/risk", admin(http.HandlerFunc(v.AssessRiskHandler))).Methods("PUT")
	apiCreate.Handle("/victims/{victim_id}/services", admin(http.HandlerFunc(v.AddSupportServiceHandler))).Methods("POST")

	return r
}

// Initialize is invoked by main to connect with the database, prepare the
// collections and evidence storage and create a router
func (a *App) Initialize() error {
	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.client = client
	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect()
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("human-rights-mis-api has connected to the database")

	ctx, cancel := api.WithQueryTimeout(context.Background())
	defer cancel()
	if err := databases.EnsureSchema(ctx, a.dbHelper); err != nil {
		zap.S().With(err).Error("failed to ensure indexes and views")
		return err
	}
	if err := databases.EnsureAdmin(ctx, a.dbHelper, a.Config.AdminUsername, a.Config.AdminPassword); err != nil {
		zap.S().With(err).Error("failed to bootstrap admin user")
		return err
	}

	if err := a.initializeStores(); err != nil {
		zap.S().With(err).Error("failed to set up evidence storage")
		return err
	}

	// initialize api router
	a.initializeRoutes()

	a.Scheduler = scheduler.NewScheduler(
		services.NewAnalyticsService(databases.NewCaseDatabase(a.dbHelper), databases.NewReportDatabase(a.dbHelper)),
		a.Config.StatsSchedule,
	)
	if err := a.Scheduler.Start(); err != nil {
		zap.S().With(err).Error("failed to start scheduler")
		return err
	}
	return nil
}

// Close stops the background jobs and disconnects from the database
func (a *App) Close(ctx context.Context) error {
	if a.Scheduler != nil {
		a.Scheduler.Stop()
	}
	if a.client == nil {
		return nil
	}
	return a.client.Disconnect(ctx)
}

func (a *App) initializeStores() error {
	if a.Config.EvidenceBackend == "cloudinary" {
		cs, err := evidence.NewCloudinaryStore(a.Config.CloudinaryURL, caseEvidenceDir)
		if err != nil {
			return err
		}
		rs, err := evidence.NewCloudinaryStore(a.Config.CloudinaryURL, reportEvidenceDir)
		if err != nil {
			return err
		}
		a.CaseStore, a.ReportStore = cs, rs
		zap.S().Info("storing evidence in cloudinary")
		return nil
	}

	cs, err := evidence.NewDiskStore(filepath.Join(a.Config.MediaDir, caseEvidenceDir), path.Join(mediaPrefix, caseEvidenceDir))
	if err != nil {
		return err
	}
	rs, err := evidence.NewDiskStore(filepath.Join(a.Config.MediaDir, reportEvidenceDir), path.Join(mediaPrefix, reportEvidenceDir))
	if err != nil {
		return err
	}
	a.CaseStore, a.ReportStore = cs, rs
	zap.S().Infow("storing evidence on disk", "dir", a.Config.MediaDir)
	return nil
}

// defaultStores falls back to disk storage under the media dir
func (a *App) defaultStores() {
	if a.Config.MediaDir == "" {
		a.Config.MediaDir = "media"
	}
	if a.CaseStore == nil {
		a.CaseStore = &evidence.DiskStore{
			Dir:       filepath.Join(a.Config.MediaDir, caseEvidenceDir),
			URLPrefix: path.Join(mediaPrefix, caseEvidenceDir),
		}
	}
	if a.ReportStore == nil {
		a.ReportStore = &evidence.DiskStore{
			Dir:       filepath.Join(a.Config.MediaDir, reportEvidenceDir),
			URLPrefix: path.Join(mediaPrefix, reportEvidenceDir),
		}
	}
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}
