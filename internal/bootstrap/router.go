package bootstrap

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	httpapi "github.com/conexion-ipp/backend/internal/api/http"
	"github.com/conexion-ipp/backend/internal/api/http/middleware"
	"github.com/conexion-ipp/backend/internal/auth"
	"github.com/conexion-ipp/backend/internal/events"
	"github.com/conexion-ipp/backend/internal/sermons"
	"github.com/conexion-ipp/backend/internal/storage/postgres"
	"github.com/conexion-ipp/backend/internal/users"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	DB          *postgres.DB

	// SessionPool enables the per-request storage session middleware.
	// Nil in tests that run repositories against a mock pool.
	SessionPool *pgxpool.Pool

	// Verifier may be nil when Firebase credentials were unavailable at
	// startup; protected routes then reject every request.
	Verifier auth.TokenVerifier

	Logger *zap.Logger
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID(dep.Logger))

	// The mobile client may run from any origin; credentials require echoing
	// the caller's origin instead of a wildcard.
	r.Use(cors.New(cors.Config{
		AllowOriginFunc:  func(string) bool { return true },
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB)
	healthHandler.RegisterRoutes(r)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Bienvenido a la API de Conexión IPP"})
	})

	api := r.Group("")
	if dep.SessionPool != nil {
		api.Use(postgres.SessionMiddleware(dep.SessionPool, dep.Logger))
	}

	userRepo := users.NewRepo(dep.DB)
	auth.Register(api, dep.Verifier, userRepo, dep.Logger)

	requireUser := auth.RequireUser(dep.Verifier, userRepo)
	adminOnly := auth.RequireAdmin()

	sermonsGroup := api.Group("/sermons", requireUser)
	sermons.Register(sermonsGroup, adminOnly, sermons.NewRepo(dep.DB))

	eventsGroup := api.Group("/events", requireUser)
	events.Register(eventsGroup, adminOnly, events.NewRepo(dep.DB))

	return r
}
