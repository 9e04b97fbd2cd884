package owner

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*chi.Mux, *mockRepo, *TokenIssuer) {
	t.Helper()
	repo := newMockRepo()
	issuer := NewTokenIssuer("test-secret")
	router := chi.NewRouter()
	NewHandler(NewService(repo, issuer), issuer).RegisterRoutes(router)
	return router, repo, issuer
}

func TestLoginEndpoint(t *testing.T) {
	router, repo, _ := newTestRouter(t)
	seedAccount(t, repo, "jane@shop.test", "s3cret-pw", true)

	t.Run("success returns token and profile", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/store-owner-auth/login",
			strings.NewReader(`{"email":"jane@shop.test","password":"s3cret-pw"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.NotEmpty(t, body["sessionToken"])
		assert.Equal(t, "Login successful", body["message"])
	})

	t.Run("wrong password and unknown email share one message", func(t *testing.T) {
		for _, payload := range []string{
			`{"email":"jane@shop.test","password":"wrong"}`,
			`{"email":"nobody@shop.test","password":"s3cret-pw"}`,
		} {
			req := httptest.NewRequest("POST", "/api/store-owner-auth/login",
				strings.NewReader(payload))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "Invalid email or password", body["error"])
		}
	})
}

func TestRegisterEndpointDuplicate(t *testing.T) {
	router, repo, _ := newTestRouter(t)
	seedAccount(t, repo, "jane@shop.test", "s3cret-pw", true)

	req := httptest.NewRequest("POST", "/api/store-owner-auth/register",
		strings.NewReader(`{"email":"jane@shop.test","password":"another-pw","firstName":"Jane","lastName":"Doe"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProfileEndpoint(t *testing.T) {
	router, repo, issuer := newTestRouter(t)
	seedAccount(t, repo, "jane@shop.test", "s3cret-pw", true)

	t.Run("via legacy header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/store-owner-auth/profile", nil)
		req.Header.Set(EmailHeader, "jane@shop.test")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("via bearer token", func(t *testing.T) {
		token, err := issuer.Issue("jane@shop.test")
		require.NoError(t, err)
		req := httptest.NewRequest("GET", "/api/store-owner-auth/profile", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unknown email is 404", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/store-owner-auth/profile", nil)
		req.Header.Set(EmailHeader, "nobody@shop.test")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("no identity is 400", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/store-owner-auth/profile", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
