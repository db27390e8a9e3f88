package events

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	httpapi "github.com/conexion-ipp/backend/internal/api/http"
	"github.com/conexion-ipp/backend/internal/errs"
)

type Handler struct {
	repo *Repo

	// now is swappable so the upcoming/past boundary is testable.
	now func() time.Time
}

// Register binds the event routes. The caller applies the authenticated-user
// middleware to the group; mutating routes additionally take adminOnly.
func Register(rg *gin.RouterGroup, adminOnly gin.HandlerFunc, repo *Repo) {
	h := &Handler{repo: repo, now: time.Now}
	h.register(rg, adminOnly)
}

func (h *Handler) register(rg *gin.RouterGroup, adminOnly gin.HandlerFunc) {
	rg.GET("", h.listAll)
	rg.GET("/upcoming", h.listUpcoming)
	rg.GET("/past", h.listPast)
	rg.POST("", adminOnly, h.create)
	rg.PUT("/:id", adminOnly, h.update)
	rg.DELETE("/:id", adminOnly, h.delete)
}

func (h *Handler) listAll(c *gin.Context) {
	skip, limit := httpapi.ListParams(c)
	events, err := h.repo.ListAll(c.Request.Context(), skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list events"})
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *Handler) listUpcoming(c *gin.Context) {
	skip, limit := httpapi.ListParams(c)
	events, err := h.repo.ListUpcoming(c.Request.Context(), h.now(), skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list events"})
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *Handler) listPast(c *gin.Context) {
	skip, limit := httpapi.ListParams(c)
	events, err := h.repo.ListPast(c.Request.Context(), h.now(), skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list events"})
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *Handler) create(c *gin.Context) {
	var in CreateInput
	if err := c.ShouldBindJSON(&in); err != nil || strings.TrimSpace(in.Title) == "" || in.EventDatetime.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	event, err := h.repo.Create(c.Request.Context(), in)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create event"})
		return
	}
	c.JSON(http.StatusCreated, event)
}

func (h *Handler) update(c *gin.Context) {
	id, ok := httpapi.IDParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var in UpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	event, err := h.repo.Update(c.Request.Context(), id, in)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update event"})
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := httpapi.IDParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	event, err := h.repo.Delete(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete event"})
		return
	}
	c.JSON(http.StatusOK, event)
}
