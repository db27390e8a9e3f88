package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/conexion-ipp/backend/internal/errs"
	"github.com/conexion-ipp/backend/internal/users"
)

func syncRouter(verifier TokenVerifier, store UserStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	Register(r, verifier, store, zap.NewNop())
	return r
}

func postSync(t *testing.T, r *gin.Engine, token string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, "/sync-user", nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestSyncUser_MissingToken(t *testing.T) {
	r := syncRouter(&stubVerifier{}, &stubStore{})

	rr := postSync(t, r, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Bearer", rr.Header().Get("WWW-Authenticate"))
}

func TestSyncUser_VerificationFailure(t *testing.T) {
	r := syncRouter(&stubVerifier{err: errs.ErrUnauthenticated}, &stubStore{})

	rr := postSync(t, r, "bad")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestSyncUser_MissingEmailClaim(t *testing.T) {
	r := syncRouter(&stubVerifier{ident: &Identity{UID: "uid-1"}}, &stubStore{})

	rr := postSync(t, r, "valid")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestSyncUser_CreatesProfile(t *testing.T) {
	verifier := &stubVerifier{ident: &Identity{UID: "uid-1", Email: "ana@example.com", Name: "Ana"}}
	store := &stubStore{byUID: map[string]*users.User{}}
	r := syncRouter(verifier, store)

	rr := postSync(t, r, "valid")
	require.Equal(t, http.StatusCreated, rr.Code)

	var u users.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &u))
	assert.Equal(t, "uid-1", u.FirebaseUID)
	assert.Equal(t, "ana@example.com", u.Email)
	require.NotNil(t, u.FullName)
	assert.Equal(t, "Ana", *u.FullName)
}

func TestSyncUser_DefaultsDisplayName(t *testing.T) {
	verifier := &stubVerifier{ident: &Identity{UID: "uid-1", Email: "ana@example.com"}}
	store := &stubStore{byUID: map[string]*users.User{}}
	r := syncRouter(verifier, store)

	rr := postSync(t, r, "valid")
	require.Equal(t, http.StatusCreated, rr.Code)

	var u users.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &u))
	require.NotNil(t, u.FullName)
	assert.Equal(t, "Usuario", *u.FullName)
}

func TestSyncUser_IdempotentForExistingProfile(t *testing.T) {
	existing := &users.User{ID: 9, FirebaseUID: "uid-1", Email: "ana@example.com"}
	verifier := &stubVerifier{ident: &Identity{UID: "uid-1", Email: "new@example.com", Name: "New"}}
	store := &stubStore{byUID: map[string]*users.User{"uid-1": existing}}
	r := syncRouter(verifier, store)

	rr := postSync(t, r, "valid")
	require.Equal(t, http.StatusOK, rr.Code)

	var u users.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &u))
	assert.Equal(t, int64(9), u.ID)
	// Repeat syncs never reconcile email or name drift.
	assert.Equal(t, "ana@example.com", u.Email)
}

func TestSyncUser_EmailConflict(t *testing.T) {
	verifier := &stubVerifier{ident: &Identity{UID: "uid-2", Email: "ana@example.com"}}
	store := &stubStore{syncErr: errs.ErrAlreadyExists}
	r := syncRouter(verifier, store)

	rr := postSync(t, r, "valid")
	assert.Equal(t, http.StatusConflict, rr.Code)
}
