package bootstrap

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/devfolio/portfolio-web/internal/api/http"
	"github.com/devfolio/portfolio-web/internal/api/http/middleware"
	"github.com/devfolio/portfolio-web/internal/auth"
	"github.com/devfolio/portfolio-web/internal/projects"
	"github.com/devfolio/portfolio-web/internal/session"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	DB             *pgxpool.Pool
	Redis          *redis.Client
	Projects       projects.Store
	Sessions       *session.Store
	Provider       auth.Provider
	SessionSecret  string
	TemplatesGlob  string
	AllowedOrigins []string
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())

	if len(dep.AllowedOrigins) > 0 {
		cc := cors.DefaultConfig()
		cc.AllowOrigins = dep.AllowedOrigins
		cc.AllowCredentials = true
		r.Use(cors.New(cc))
	}

	if dep.TemplatesGlob != "" {
		r.LoadHTMLGlob(dep.TemplatesGlob)
	}

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	r.Use(auth.LoadIdentity(dep.Sessions, dep.SessionSecret))

	projectHandler := projects.NewHandler(dep.Projects)
	r.GET("/", projectHandler.Home)

	authHandler := auth.NewHandler(dep.Provider, dep.Sessions, dep.SessionSecret)
	r.GET("/auth/google", middleware.RateLimit(1, 5), authHandler.Login)
	r.GET("/auth/google/callback", authHandler.Callback)
	r.GET("/logout", authHandler.Logout)
	r.GET("/dashboard", auth.RequireLogin(), authHandler.Dashboard)

	projectsGroup := r.Group("/projects")
	projectsGroup.Use(auth.RequireLogin())
	projects.Register(projectsGroup, dep.Projects)

	return r
}
