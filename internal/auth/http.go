package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/conexion-ipp/backend/internal/errs"
	"github.com/conexion-ipp/backend/internal/users"
)

type Handler struct {
	verifier TokenVerifier
	store    UserStore
	logger   *zap.Logger
}

// Register binds the user sync endpoint. It authenticates inline rather than
// via RequireUser because the local user may not exist yet.
func Register(rg gin.IRouter, verifier TokenVerifier, store UserStore, logger *zap.Logger) {
	h := &Handler{verifier: verifier, store: store, logger: logger}
	rg.POST("/sync-user", h.syncUser)
}

// syncUser verifies the Firebase ID token and provisions a local user profile
// on first sight. Clients call it after every sign-in or sign-up. Repeat calls
// return the existing row untouched.
func (h *Handler) syncUser(c *gin.Context) {
	token := extractToken(c)
	if token == "" || h.verifier == nil {
		unauthorized(c)
		return
	}

	ident, err := h.verifier.Verify(c.Request.Context(), token)
	if err != nil {
		unauthorized(c)
		return
	}
	if ident.UID == "" || ident.Email == "" {
		unauthorized(c)
		return
	}

	in := users.SyncInput{
		FirebaseUID: ident.UID,
		Email:       ident.Email,
	}
	name := ident.Name
	if name == "" {
		name = "Usuario"
	}
	in.FullName = &name

	user, created, err := h.store.Sync(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, errs.ErrAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already exists"})
			return
		}
		h.logger.Error("user sync failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sync user"})
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, user)
}
