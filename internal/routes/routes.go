package routes

import (
	"net/http"

	"github.com/templui/goaltrack/internal/app"
	"github.com/templui/goaltrack/internal/flash"
	"github.com/templui/goaltrack/internal/handler"
	"github.com/templui/goaltrack/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	home := handler.NewHomeHandler()
	health := handler.NewHealthHandler(app.DB)
	auth := handler.NewAuthHandler(app.AuthService, app.Cfg.MinPasswordLength)
	dashboard := handler.NewDashboardHandler(app.GoalService)
	goal := handler.NewGoalHandler(app.GoalService)
	profile := handler.NewProfileHandler(app.UserService, app.GoalService, app.Cfg.MinPasswordLength)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /{$}", home.HomePage)
	mux.HandleFunc("GET /healthz", health.Health)

	// Auth (POSTs rate limited per IP)
	rateLimiter := middleware.RateLimitAuth(app.Cfg.AuthRateLimit, app.Cfg.AuthRateWindow)

	mux.HandleFunc("GET /register", middleware.RequireGuest(auth.RegisterPage))
	mux.HandleFunc("POST /register", rateLimiter(middleware.RequireGuest(auth.Register)))
	mux.HandleFunc("GET /login", middleware.RequireGuest(auth.LoginPage))
	mux.HandleFunc("POST /login", rateLimiter(middleware.RequireGuest(auth.Login)))
	mux.HandleFunc("GET /logout", auth.Logout)

	// ============================================================================
	// PROTECTED ROUTES
	// ============================================================================

	mux.HandleFunc("GET /dashboard", middleware.RequireAuth(dashboard.DashboardPage))

	// Goals
	mux.HandleFunc("GET /add_goal", middleware.RequireAuth(goal.AddGoalPage))
	mux.HandleFunc("POST /add_goal", middleware.RequireAuth(goal.AddGoal))
	mux.HandleFunc("GET /edit_goal/{id}", middleware.RequireAuth(goal.EditGoalPage))
	mux.HandleFunc("POST /edit_goal/{id}", middleware.RequireAuth(goal.EditGoal))
	mux.HandleFunc("GET /delete_goal/{id}", middleware.RequireAuth(goal.DeleteGoalPage))
	mux.HandleFunc("POST /delete_goal/{id}", middleware.RequireAuth(goal.DeleteGoal))
	mux.HandleFunc("POST /update_progress/{id}", middleware.RequireAuth(goal.UpdateProgress))

	// Profile & account
	mux.HandleFunc("GET /profile", middleware.RequireAuth(profile.ProfilePage))
	mux.HandleFunc("POST /update_profile", middleware.RequireAuth(profile.UpdateProfile))
	mux.HandleFunc("GET /change_password", middleware.RequireAuth(profile.ChangePasswordPage))
	mux.HandleFunc("POST /change_password", middleware.RequireAuth(profile.ChangePassword))
	mux.HandleFunc("GET /export_data", middleware.RequireAuth(profile.ExportData))
	mux.HandleFunc("GET /delete_account", middleware.RequireAuth(profile.DeleteAccount))

	// ============================================================================
	// FALLBACK
	// ============================================================================

	mux.HandleFunc("/{path...}", home.NotFoundPage)

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.Config(app.Cfg), // CSRF cookies and clientIP read it
		middleware.NonceMiddleware, // must run before SecurityHeaders
		middleware.SecurityHeaders,
		middleware.RequestLogging,
		middleware.CSRFProtection,
		middleware.AuthMiddleware(app.AuthService, app.UserService),
		middleware.Flash(flash.NewStore(app.Cfg.JWTSecret, app.Cfg.CookieSecure)),
		middleware.WithURLPath,
	)

	return handler
}
