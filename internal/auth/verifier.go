package auth

import (
	"context"

	fbauth "firebase.google.com/go/v4/auth"
	"go.uber.org/zap"

	"github.com/conexion-ipp/backend/internal/errs"
)

// Identity is the verified external identity extracted from a bearer token.
type Identity struct {
	UID   string
	Email string
	Name  string
}

// TokenVerifier turns an opaque bearer token into a verified identity or
// errs.ErrUnauthenticated. Implementations must not leak verification
// internals to the caller.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

type firebaseVerifier struct {
	client *fbauth.Client
	logger *zap.Logger
}

// NewVerifier wraps a Firebase Auth client. Verification checks revocation.
func NewVerifier(client *fbauth.Client, logger *zap.Logger) TokenVerifier {
	return &firebaseVerifier{client: client, logger: logger}
}

func (v *firebaseVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	decoded, err := v.client.VerifyIDTokenAndCheckRevoked(ctx, token)
	if err != nil {
		// Every failure class collapses to unauthenticated; log the
		// unexpected ones so issuer outages are visible.
		switch {
		case fbauth.IsIDTokenRevoked(err):
			v.logger.Warn("rejected revoked id token")
		case fbauth.IsIDTokenExpired(err), fbauth.IsIDTokenInvalid(err):
			v.logger.Debug("rejected invalid id token", zap.Error(err))
		default:
			v.logger.Error("token verification failed", zap.Error(err))
		}
		return nil, errs.ErrUnauthenticated
	}

	ident := &Identity{UID: decoded.UID}
	if email, ok := decoded.Claims["email"].(string); ok {
		ident.Email = email
	}
	if name, ok := decoded.Claims["name"].(string); ok {
		ident.Name = name
	}
	return ident, nil
}
