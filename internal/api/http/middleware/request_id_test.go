package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func ridRouter(captured *string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(zap.NewNop()))
	r.GET("/ping", func(c *gin.Context) {
		*captured = GetRequestID(c.Request.Context())
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestRequestID_EchoesIncomingHeader(t *testing.T) {
	var captured string
	r := ridRouter(&captured)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, "abc-123", rr.Header().Get("X-Request-Id"))
	assert.Equal(t, "abc-123", captured)
}

func TestRequestID_GeneratesWhenAbsent(t *testing.T) {
	var captured string
	r := ridRouter(&captured)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.NotEmpty(t, captured)
	assert.Equal(t, captured, rr.Header().Get("X-Request-Id"))
}
