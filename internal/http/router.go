package http

import (
	"html/template"

	"github.com/gin-gonic/gin"

	"github.com/houseofplants/houseofplants/internal/auth"
	"github.com/houseofplants/houseofplants/internal/database/events"
	"github.com/houseofplants/houseofplants/internal/database/plants"
	"github.com/houseofplants/houseofplants/internal/database/users"
)

// RouterConfig carries all router dependencies, keeping NewRouter's
// signature stable as wiring grows.
type RouterConfig struct {
	Users  *users.Repository
	Plants *plants.Repository
	Events *events.Repository

	AuthService    *auth.Service
	SessionManager *auth.SessionManager
	Notifier       auth.Notifier

	TemplatesPath string
	StaticPath    string
	CSRFSecret    []byte
	SecureCookies bool
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(auth.SecurityHeadersMiddleware())

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}
	router.Use(cfg.SessionManager.SessionLoadSave())

	guards := auth.NewGuards(cfg.SessionManager)
	router.Use(guards.SessionContext())

	tmpl := template.Must(template.New("").ParseGlob(cfg.TemplatesPath + "/*.html"))
	router.SetHTMLTemplate(tmpl)
	router.Static("/static", cfg.StaticPath)

	authController := auth.NewController(cfg.AuthService, cfg.SessionManager, cfg.Notifier, cfg.TemplatesPath)
	authController.RegisterRoutes(router, guards)

	home := NewHomeController(cfg.Plants, cfg.Events)
	plantsController := NewPlantsController(cfg.Plants)
	eventsController := NewEventsController(cfg.Events)
	searchController := NewSearchController(cfg.Plants, cfg.Events)
	profileController := NewProfileController(cfg.Users, cfg.Plants, cfg.SessionManager)

	router.GET("/", home.HomePage)

	router.GET("/plants", plantsController.ListPage)
	router.GET("/plants/new", guards.RequireAuthenticated(), plantsController.NewPage)
	router.POST("/plants/new", guards.RequireAuthenticated(), plantsController.Create)
	router.GET("/plants/:id", plantsController.DetailPage)
	router.POST("/plants/:id/delete", guards.RequireAuthenticated(), plantsController.Delete)

	router.GET("/events", eventsController.ListPage)
	router.GET("/events/new", guards.RequireAuthenticated(), eventsController.NewPage)
	router.POST("/events/new", guards.RequireAuthenticated(), eventsController.Create)

	router.GET("/search", searchController.Search)

	router.GET("/profile", guards.RequireAuthenticated(), profileController.ProfilePage)
	router.POST("/profile", guards.RequireAuthenticated(), profileController.Update)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	return router
}
