package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/personal-color/internal/audit"
	"github.com/BruksfildServices01/personal-color/internal/config"
	"github.com/BruksfildServices01/personal-color/internal/domain/analysis"
	"github.com/BruksfildServices01/personal-color/internal/domain/user"
	"github.com/BruksfildServices01/personal-color/internal/handlers"
	"github.com/BruksfildServices01/personal-color/internal/middleware"
	"github.com/BruksfildServices01/personal-color/internal/session"
	"github.com/BruksfildServices01/personal-color/internal/storage"
	ucAnalysis "github.com/BruksfildServices01/personal-color/internal/usecase/analysis"
	ucAuth "github.com/BruksfildServices01/personal-color/internal/usecase/auth"
	"github.com/BruksfildServices01/personal-color/internal/web"
)

// Deps are the infrastructure singletons built by the entrypoint.
type Deps struct {
	Config     *config.Config
	Users      user.Repository
	Analyses   analysis.Repository
	Activity   handlers.ActivityReader
	Files      storage.FileStore
	Classifier analysis.Classifier
	Sessions   *session.Manager
	Audit      audit.Recorder
	Checks     map[string]handlers.HealthCheck
}

func RegisterRoutes(r *gin.Engine, d Deps) error {
	cfg := d.Config

	tmpl, err := web.Templates(cfg.DisplayTimezone)
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.RequestLog(),
		middleware.CORSMiddleware(cfg.CORSAllowedOrigins),
		middleware.SessionMiddleware(d.Sessions),
	)

	// ======================================================
	// USE CASES: ANALYSES
	// ======================================================
	policy := analysis.UploadPolicy{
		MaxBytes:     cfg.MaxUploadBytes,
		ContentTypes: cfg.AllowedContentTypes,
		MaxPixels:    cfg.MaxImagePixels,
	}

	createAnalysisUC := ucAnalysis.NewCreateAnalysis(
		d.Analyses,
		d.Files,
		d.Classifier,
		policy,
		cfg.ThumbnailSize,
		d.Audit,
	)
	getResultUC := ucAnalysis.NewGetResult(d.Analyses)
	getAnalysisUC := ucAnalysis.NewGetAnalysis(d.Analyses)
	listHistoryUC := ucAnalysis.NewListHistory(d.Analyses)
	deleteAnalysisUC := ucAnalysis.NewDeleteAnalysis(
		d.Analyses,
		d.Files,
		d.Audit,
	)
	getStatsUC := ucAnalysis.NewGetStats(d.Analyses)

	// ======================================================
	// USE CASES: USERS
	// ======================================================
	signupUC := ucAuth.NewSignup(d.Users, d.Audit, cfg.CheckEmailDomain)
	loginUC := ucAuth.NewLogin(d.Users, d.Audit)
	getUserUC := ucAuth.NewGetUser(d.Users)
	changePasswordUC := ucAuth.NewChangePassword(d.Users, d.Audit)
	deactivateUC := ucAuth.NewDeactivate(d.Users, d.Audit)

	// ======================================================
	// HANDLERS
	// ======================================================
	webHandler := handlers.NewWebHandler()
	authHandler := handlers.NewAuthHandler(signupUC, loginUC, d.Sessions, d.Audit)
	meHandler := handlers.NewMeHandler(getUserUC, changePasswordUC, deactivateUC, d.Sessions)
	analysisHandler := handlers.NewAnalysisHandler(
		createAnalysisUC,
		getResultUC,
		getAnalysisUC,
		listHistoryUC,
		deleteAnalysisUC,
		getStatsUC,
		getUserUC,
		d.Sessions,
		cfg.MaxUploadBytes,
	)
	fileHandler := handlers.NewFileHandler(d.Files)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.Activity)
	healthHandler := handlers.NewHealthHandler(d.Checks)

	requireAuth := middleware.RequireAuth()

	// ======================================================
	// WEB (HTML)
	// ======================================================
	r.GET("/", webHandler.Home)
	r.GET("/shop", webHandler.Shop)
	r.GET("/menu", webHandler.Menu)

	r.GET("/login", authHandler.LoginPage)
	r.POST("/login", authHandler.Login)
	r.GET("/signup", authHandler.SignupPage)
	r.POST("/signup", authHandler.Signup)
	r.POST("/logout", authHandler.Logout)

	pages := r.Group("/", middleware.RequirePageAuth("/login"))
	{
		pages.GET("/upload", analysisHandler.UploadPage)
		pages.GET("/results", analysisHandler.ResultsPage)
		pages.GET("/history", analysisHandler.HistoryPage)
	}

	r.POST("/upload", requireAuth, analysisHandler.Upload)
	r.DELETE("/analysis/:id", requireAuth, analysisHandler.Delete)
	r.GET("/uploads/:name", requireAuth, fileHandler.Serve)

	r.GET("/health", healthHandler.Check)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		api.GET("/health", healthHandler.Check)

		api.POST("/login", authHandler.APILogin)
		api.POST("/logout", authHandler.Logout)
		api.GET("/session", meHandler.Session)
		api.GET("/user/current", meHandler.Current)

		secured := api.Group("", requireAuth)
		{
			secured.GET("/analyses", analysisHandler.List)
			secured.GET("/analyses/stats", analysisHandler.Stats)
			secured.GET("/analyses/:id", analysisHandler.Get)
			secured.DELETE("/analyses/:id", analysisHandler.Delete)

			secured.POST("/user/password", meHandler.ChangePassword)
			secured.POST("/user/deactivate", meHandler.Deactivate)
			secured.GET("/user/activity", auditLogsHandler.List)
		}
	}

	return nil
}
