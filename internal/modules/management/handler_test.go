package management

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopit-labs/shopit-backend/internal/modules/owner"
)

func newTestRouter(t *testing.T) (*chi.Mux, *fixture, *owner.TokenIssuer) {
	t.Helper()
	f := newFixture(t)
	issuer := owner.NewTokenIssuer("test-secret")
	router := chi.NewRouter()
	NewHandler(f.svc, issuer).RegisterRoutes(router)
	return router, f, issuer
}

func do(router *chi.Mux, method, target, email, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if email != "" {
		req.Header.Set(owner.EmailHeader, email)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestStatusCodeMapping(t *testing.T) {
	router, f, _ := newTestRouter(t)
	storeID := f.storeID.String()
	f.stock(10, 2.5)

	t.Run("non-owner gets 403", func(t *testing.T) {
		rec := do(router, "PUT", "/api/store-management/store/"+storeID,
			"stranger@shop.test", `{"name":"Hijacked"}`)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("duplicate add gets 409", func(t *testing.T) {
		rec := do(router, "POST", "/api/store-management/store/"+storeID+"/inventory",
			f.ownerEmail, `{"productId":"`+f.productID.String()+`","quantity":5,"price":1.5}`)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("missing inventory row gets 404", func(t *testing.T) {
		rec := do(router, "PUT", "/api/store-management/store/"+storeID+"/inventory",
			f.ownerEmail, `{"productId":"`+uuid.NewString()+`","quantity":5}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("missing identity gets 400", func(t *testing.T) {
		rec := do(router, "GET", "/api/store-management/store/"+storeID+"/inventory", "", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("ownership lookup failure gets 500", func(t *testing.T) {
		f.own.findErr = errors.New("pq: connection refused")
		defer func() { f.own.findErr = nil }()

		rec := do(router, "PUT", "/api/store-management/store/"+storeID,
			f.ownerEmail, `{"name":"Renamed Mart"}`)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("unregistered owner registering a store gets 403", func(t *testing.T) {
		rec := do(router, "POST", "/api/store-management/register", "",
			`{"ownerEmail":"stranger@shop.test","storeName":"Ghost Mart","latitude":0,"longitude":0}`)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestRegisterStoreEndpoint(t *testing.T) {
	router, f, issuer := newTestRouter(t)

	t.Run("body ownerEmail is honored without a token", func(t *testing.T) {
		rec := do(router, "POST", "/api/store-management/register", "",
			`{"ownerEmail":"`+f.ownerEmail+`","storeName":"New Mart","latitude":12.9,"longitude":77.5}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "New Mart", body["storeName"])
		assert.NotEmpty(t, body["storeId"])
	})

	t.Run("verified token overrides body ownerEmail", func(t *testing.T) {
		token, err := issuer.Issue(f.ownerEmail)
		require.NoError(t, err)

		req := httptest.NewRequest("POST", "/api/store-management/register",
			strings.NewReader(`{"ownerEmail":"spoofed@shop.test","storeName":"Token Mart","latitude":1,"longitude":1}`))
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		// The link belongs to the verified account, not the spoofed one.
		created := f.own.created[len(f.own.created)-1]
		assert.Equal(t, f.accounts.active[f.ownerEmail].ID, created.AccountID)
	})
}

func TestUpdateStoreEndpointIgnoresLocationFields(t *testing.T) {
	router, f, _ := newTestRouter(t)

	// The payload tries to move the store and change its country.
	rec := do(router, "PUT", "/api/store-management/store/"+f.storeID.String(), f.ownerEmail,
		`{"name":"Renamed Mart","latitude":0.0,"longitude":0.0,"country":"Nowhere"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Renamed Mart", updated["name"])
	assert.InDelta(t, 12.97, updated["latitude"], 0.0001)
	assert.InDelta(t, 77.59, updated["longitude"], 0.0001)
	assert.Equal(t, "India", updated["country"])
}

func TestDeleteInventoryEndpoint(t *testing.T) {
	router, f, _ := newTestRouter(t)
	f.stock(10, 2.5)
	target := "/api/store-management/store/" + f.storeID.String() + "/inventory/" + f.productID.String()

	rec := do(router, "DELETE", target, f.ownerEmail, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(router, "DELETE", target, f.ownerEmail, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
