// Package api assembles the gateway's HTTP surface: public auth routes, the
// four role areas behind the auth and role guards, the assistant widget
// routes, and the operational endpoints.
package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/campusconnect/portal/internal/api/handler"
	"github.com/campusconnect/portal/internal/api/middleware"
	"github.com/campusconnect/portal/internal/core/domain"
	"github.com/campusconnect/portal/internal/core/ports"
)

// Deps carries everything the router needs wired in.
type Deps struct {
	Auth         ports.AuthService
	Student      ports.StudentDashboard
	Teacher      ports.TeacherDashboard
	Admin        ports.AdminDashboard
	Organization ports.OrganizationDashboard
	Assistant    ports.Assistant
	Prober       ports.Prober
	SessionStore ports.SessionStore
	JWTSecret    string
	Log          zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("portal"))

	auth := middleware.Auth(d.JWTSecret, d.SessionStore)

	// --- Auth routes (public) ---
	authHandler := handler.NewAuthHandler(d.Auth, d.JWTSecret)
	e.POST("/api/auth/login", authHandler.Login)
	e.POST("/api/auth/signup", authHandler.Signup)
	e.POST("/api/auth/logout", authHandler.Logout, auth)
	e.GET("/api/auth/remembered", authHandler.Remembered)
	e.GET("/api/auth/attempts", authHandler.Attempts)
	e.POST("/api/auth/password/strength", authHandler.PasswordStrength)

	// --- Role areas ---
	studentHandler := handler.NewStudentHandler(d.Student)
	student := e.Group("/api/student", auth, middleware.RoleGuard(domain.RoleStudent))
	student.GET("/opportunities", studentHandler.Opportunities)
	student.GET("/applications", studentHandler.Applications)
	student.POST("/applications", studentHandler.Apply)
	student.DELETE("/applications/:id", studentHandler.Withdraw)
	student.GET("/collaborations", studentHandler.Collaborations)
	student.PUT("/profile", studentHandler.UpdateProfile)

	teacherHandler := handler.NewTeacherHandler(d.Teacher)
	teacher := e.Group("/api/teacher", auth, middleware.RoleGuard(domain.RoleTeacher))
	teacher.GET("/opportunities", teacherHandler.Opportunities)
	teacher.POST("/opportunities", teacherHandler.PostOpportunity)
	teacher.GET("/applications", teacherHandler.Applications)
	teacher.PUT("/applications/:id/status", teacherHandler.Decide)
	teacher.GET("/collaborations", teacherHandler.Collaborations)
	teacher.POST("/collaborations", teacherHandler.PostCollaboration)
	teacher.PUT("/profile", teacherHandler.UpdateProfile)

	adminHandler := handler.NewAdminHandler(d.Admin)
	admin := e.Group("/api/admin", auth, middleware.RoleGuard(domain.RoleAdmin))
	admin.GET("/users", adminHandler.Users)
	admin.PUT("/users/:id/approve", adminHandler.Approve)
	admin.PUT("/users/:id/reject", adminHandler.Reject)
	admin.DELETE("/users/:id", adminHandler.Delete)
	admin.GET("/stats", adminHandler.Stats)
	admin.GET("/opportunities", adminHandler.Opportunities)
	admin.GET("/reports", adminHandler.Reports)
	admin.GET("/settings", adminHandler.Settings)
	admin.PUT("/settings", adminHandler.UpdateSettings)
	admin.GET("/analytics/lexie", adminHandler.AssistantAnalytics)

	orgHandler := handler.NewOrganizationHandler(d.Organization)
	org := e.Group("/api/org", auth, middleware.RoleGuard(domain.RoleOrganization))
	org.GET("/partnerships", orgHandler.Partnerships)
	org.GET("/events", orgHandler.Events)
	org.GET("/profile", orgHandler.Profile)

	// --- Assistant widget (all authenticated roles) ---
	assistantHandler := handler.NewAssistantHandler(d.Assistant)
	lexie := e.Group("/lexie", auth)
	lexie.GET("/conversation", assistantHandler.Conversation)
	lexie.DELETE("/conversation", assistantHandler.Clear)
	lexie.POST("/chat", assistantHandler.Chat)
	lexie.POST("/upload", assistantHandler.Upload)
	lexie.POST("/voice/stt", assistantHandler.Transcribe)
	lexie.POST("/voice/tts", assistantHandler.Synthesize)
	lexie.POST("/feedback", assistantHandler.Feedback)

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler(d.Prober)
	e.GET("/healthz", healthHandler.Liveness)
	e.GET("/healthz/upstream", healthHandler.Upstream)
	e.GET("/metrics", echoprometheus.NewHandler())

	// Unknown paths point lost clients home.
	e.RouteNotFound("/*", func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "page not found",
			"home":  "/",
		})
	})

	return e
}
