package sermons

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	httpapi "github.com/conexion-ipp/backend/internal/api/http"
	"github.com/conexion-ipp/backend/internal/errs"
)

type Handler struct {
	repo *Repo
}

// Register binds the sermon routes. The caller applies the authenticated-user
// middleware to the group; mutating routes additionally take adminOnly.
func Register(rg *gin.RouterGroup, adminOnly gin.HandlerFunc, repo *Repo) {
	h := &Handler{repo: repo}

	rg.GET("/latest", h.latest)
	rg.GET("", h.list)
	rg.POST("", adminOnly, h.create)
	rg.PUT("/:id", adminOnly, h.update)
	rg.DELETE("/:id", adminOnly, h.delete)
}

// latest serves the most recent sermon for the app's home screen.
func (h *Handler) latest(c *gin.Context) {
	sermon, err := h.repo.Latest(c.Request.Context())
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No sermons found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load sermon"})
		return
	}
	c.JSON(http.StatusOK, sermon)
}

func (h *Handler) list(c *gin.Context) {
	skip, limit := httpapi.ListParams(c)
	sermons, err := h.repo.List(c.Request.Context(), skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list sermons"})
		return
	}
	c.JSON(http.StatusOK, sermons)
}

func (h *Handler) create(c *gin.Context) {
	var in CreateInput
	if err := c.ShouldBindJSON(&in); err != nil || !validCreate(in) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	sermon, err := h.repo.Create(c.Request.Context(), in)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create sermon"})
		return
	}
	c.JSON(http.StatusCreated, sermon)
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

	sermon, err := h.repo.Update(c.Request.Context(), id, in)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "sermon not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update sermon"})
		return
	}
	c.JSON(http.StatusOK, sermon)
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := httpapi.IDParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	sermon, err := h.repo.Delete(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "sermon not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete sermon"})
		return
	}
	c.JSON(http.StatusOK, sermon)
}

func validCreate(in CreateInput) bool {
	return strings.TrimSpace(in.Title) != "" &&
		strings.TrimSpace(in.Pastor) != "" &&
		strings.TrimSpace(in.BibleVerse) != "" &&
		strings.TrimSpace(in.ImageURL) != "" &&
		!in.SermonDate.IsZero()
}
