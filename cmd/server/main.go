package main

import (
	"html/template"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/yourhelp9/tiffin-service/internal/api"
	"github.com/yourhelp9/tiffin-service/internal/config"
	"github.com/yourhelp9/tiffin-service/internal/handlers"
	"github.com/yourhelp9/tiffin-service/internal/middleware"
	"github.com/yourhelp9/tiffin-service/internal/services"
	"github.com/yourhelp9/tiffin-service/internal/session"
)

// TemplateRenderer is a custom html/template renderer for Echo.
// Uses per-page template cloning so each page can define its own blocks.
type TemplateRenderer struct {
	templates map[string]*template.Template
}

// NewTemplateRenderer creates a template renderer with per-page cloning.
func NewTemplateRenderer() *TemplateRenderer {
	templates := make(map[string]*template.Template)

	// Parse base layout and partials as the foundation
	baseTemplate := template.Must(template.ParseGlob("web/templates/layouts/*.html"))
	template.Must(baseTemplate.ParseGlob("web/templates/partials/*.html"))

	pages, err := filepath.Glob("web/templates/pages/*.html")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to glob page templates")
	}

	for _, page := range pages {
		pageName := filepath.Base(page)
		pageTemplate := template.Must(baseTemplate.Clone())
		template.Must(pageTemplate.ParseFiles(page))
		templates[pageName] = pageTemplate
	}

	// Standalone templates (like login) that don't use the base layout
	standalonePages, _ := filepath.Glob("web/templates/*.html")
	for _, page := range standalonePages {
		pageName := filepath.Base(page)
		if _, exists := templates[pageName]; !exists {
			templates[pageName] = template.Must(template.ParseFiles(page))
		}
	}

	return &TemplateRenderer{templates: templates}
}

// Render renders a template document.
func (t *TemplateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	tmpl, ok := t.templates[name]
	if !ok {
		return echo.NewHTTPError(http.StatusInternalServerError, "Template not found: "+name)
	}

	// Page templates render through the base layout; standalone
	// templates execute directly.
	if tmpl.Lookup("base") != nil {
		dataMap, ok := data.(map[string]interface{})
		if !ok {
			dataMap = map[string]interface{}{}
		}
		// Inject the signed-in user so the nav can render without
		// every handler repeating it.
		if sess, ok := middleware.CurrentSession(c); ok {
			dataMap["LoggedIn"] = true
			dataMap["UserName"] = sess.User.Name
			dataMap["UserEmail"] = sess.User.Email
			dataMap["IsAdmin"] = bool(sess.User.IsAdmin)
		} else {
			dataMap["LoggedIn"] = false
		}
		return tmpl.ExecuteTemplate(w, "base", dataMap)
	}
	return tmpl.Execute(w, data)
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, using system environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.Env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	store, err := session.NewRedisStore(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	sessions := session.NewManager(store, cfg.Env != "development")

	apiClient := api.NewClient(cfg.APIBaseURL)
	emailService := services.NewEmailService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.EmailFrom)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(middleware.WithSession(sessions))

	e.Renderer = NewTemplateRenderer()
	e.HTTPErrorHandler = middleware.ErrorHandler

	e.Static("/static", "web/static")

	// Initialize handlers
	publicHandler := handlers.NewPublicHandler(emailService, cfg.ContactEmail)
	authHandler := handlers.NewAuthHandler(apiClient, sessions)
	dashboardHandler := handlers.NewDashboardHandler(apiClient, sessions, cfg.AssetBaseURL)
	menuHandler := handlers.NewMenuHandler(apiClient, sessions, cfg.AssetBaseURL, cfg.CutoffHour)
	planHandler := handlers.NewPlanHandler(apiClient, sessions)
	reviewHandler := handlers.NewReviewHandler(apiClient, sessions)
	profileHandler := handlers.NewProfileHandler(apiClient, sessions, cfg.AssetBaseURL)
	adminUserHandler := handlers.NewAdminUserHandler(apiClient, sessions)
	adminMenuHandler := handlers.NewAdminMenuHandler(apiClient, sessions, cfg.AssetBaseURL)
	adminReportHandler := handlers.NewAdminReportHandler(apiClient, sessions)

	// Public routes
	e.GET("/", publicHandler.Home)
	e.GET("/about", publicHandler.About)
	e.GET("/contact", publicHandler.ContactPage)
	e.POST("/contact", publicHandler.HandleContact)
	e.GET("/login", authHandler.LoginPage)
	e.POST("/auth/login", authHandler.HandleLogin)
	e.POST("/auth/register", authHandler.HandleRegister)
	e.POST("/auth/logout", authHandler.HandleLogout)

	// Customer routes
	protected := e.Group("")
	protected.Use(middleware.RequireAuth(sessions))
	protected.GET("/dashboard", dashboardHandler.Dashboard)
	protected.POST("/subscription/toggle-pause", dashboardHandler.TogglePause)
	protected.GET("/menu", menuHandler.MenuPage)
	protected.POST("/menu/select", menuHandler.SaveSelection)
	protected.GET("/plans", planHandler.PlansPage)
	protected.GET("/reviews", reviewHandler.ReviewsPage)
	protected.POST("/reviews", reviewHandler.SubmitReview)
	protected.GET("/profile", profileHandler.ProfilePage)
	protected.POST("/profile", profileHandler.UpdateProfile)

	// Admin routes
	admin := e.Group("/admin")
	admin.Use(middleware.RequireAuth(sessions))
	admin.Use(middleware.RequireAdmin())
	admin.GET("", adminUserHandler.Dashboard)
	admin.GET("/users", adminUserHandler.UsersPage)
	admin.GET("/users/:id", adminUserHandler.UserDetails)
	admin.POST("/users/:id/subscription", adminUserHandler.ActivateSubscription)
	admin.POST("/users/:id/delete", adminUserHandler.DeleteUser)
	admin.GET("/menu-items", adminMenuHandler.MenuItemsPage)
	admin.POST("/menu-items", adminMenuHandler.CreateMenuItem)
	admin.POST("/menu-items/:id/update", adminMenuHandler.UpdateMenuItem)
	admin.POST("/menu-items/:id/delete", adminMenuHandler.DeleteMenuItem)
	admin.GET("/daily-menus", adminMenuHandler.DailyMenusPage)
	admin.POST("/daily-menus", adminMenuHandler.CreateDailyMenu)
	admin.POST("/daily-menus/:id/update", adminMenuHandler.UpdateDailyMenu)
	admin.POST("/daily-menus/:id/delete", adminMenuHandler.DeleteDailyMenu)
	admin.GET("/reports", adminReportHandler.ReportsPage)
	admin.GET("/reviews", adminReportHandler.ReviewsPage)

	log.Info().Str("port", cfg.Port).Msg("server starting")
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
