package postgres

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/conexion-ipp/backend/internal/api/http/middleware"
)

type sessionKey struct{}

// SessionMiddleware acquires one storage session for the duration of the
// request and guarantees its release on every exit path, including panics
// unwinding through the recovery middleware.
func SessionMiddleware(pool *pgxpool.Pool, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := pool.Acquire(c.Request.Context())
		if err != nil {
			logger.Error("acquire storage session",
				zap.String("request_id", middleware.GetRequestID(c.Request.Context())),
				zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "storage unavailable"})
			return
		}
		defer conn.Release()

		ctx := context.WithValue(c.Request.Context(), sessionKey{}, Querier(conn))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// WithSession binds an explicit session to the context. Used by tests.
func WithSession(ctx context.Context, q Querier) context.Context {
	return context.WithValue(ctx, sessionKey{}, q)
}
