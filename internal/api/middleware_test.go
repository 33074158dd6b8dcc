// internal/api/middleware_test.go
package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshop/internal/token"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate(t *testing.T) {
	maker := token.NewMaker("test-secret-key", 15*time.Minute, 24*time.Hour)
	userID := uuid.New()

	var principal *Principal
	handler := Authenticate(maker)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, _ = PrincipalFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("valid access token", func(t *testing.T) {
		principal = nil
		access, err := maker.CreateToken(userID, "alice", true, token.TypeAccess)
		require.NoError(t, err)

		r := httptest.NewRequest("GET", "/books", nil)
		r.Header.Set("Authorization", "Bearer "+access)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, principal)
		assert.Equal(t, userID, principal.UserID)
		assert.True(t, principal.IsStaff)
	})

	t.Run("no header passes through anonymously", func(t *testing.T) {
		principal = nil
		r := httptest.NewRequest("GET", "/books", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Nil(t, principal)
	})

	t.Run("malformed header rejected", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/books", nil)
		r.Header.Set("Authorization", "Basic abc")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("refresh token rejected", func(t *testing.T) {
		refresh, err := maker.CreateToken(userID, "alice", false, token.TypeRefresh)
		require.NoError(t, err)

		r := httptest.NewRequest("GET", "/books", nil)
		r.Header.Set("Authorization", "Bearer "+refresh)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireUser(t *testing.T) {
	handler := RequireUser(okHandler())

	r := httptest.NewRequest("GET", "/orders", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	p := &Principal{UserID: uuid.New(), Username: "alice"}
	r = httptest.NewRequest("GET", "/orders", nil)
	r = r.WithContext(WithPrincipal(r.Context(), p))
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireStaff(t *testing.T) {
	handler := RequireStaff(okHandler())

	p := &Principal{UserID: uuid.New(), Username: "alice"}
	r := httptest.NewRequest("DELETE", "/books/x", nil)
	r = r.WithContext(WithPrincipal(r.Context(), p))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	assert.Equal(t, http.StatusForbidden, w.Code)

	staff := &Principal{UserID: uuid.New(), Username: "root", IsStaff: true}
	r = httptest.NewRequest("DELETE", "/books/x", nil)
	r = r.WithContext(WithPrincipal(r.Context(), staff))
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
}
