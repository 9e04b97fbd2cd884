package store

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Handler exposes the public store-locator HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/api/health", h.health)
	r.Get("/api/search", h.search)
	r.Get("/api/stores/{storeID}", h.storeDetails)
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	respond(w, http.StatusOK, map[string]string{"status": "OK"})
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := strings.TrimSpace(q.Get("query"))
	latStr, lngStr := q.Get("lat"), q.Get("lng")
	if query == "" || latStr == "" || lngStr == "" {
		respond(w, http.StatusBadRequest, map[string]string{"error": "Missing parameters: query, lat, lng"})
		return
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "lat must be a number"})
		return
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "lng must be a number"})
		return
	}
	radius := 0.0
	if v := q.Get("radius"); v != "" {
		radius, err = strconv.ParseFloat(v, 64)
		if err != nil {
			respond(w, http.StatusBadRequest, map[string]string{"error": "radius must be a number"})
			return
		}
	}

	results, err := h.service.SearchNearbyStores(r.Context(), query, lat, lng, radius)
	if err != nil {
		if errors.Is(err, ErrInvalidCoordinates) {
			respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		log.Printf("store: search: %v", err)
		respond(w, http.StatusInternalServerError, map[string]string{"error": "Server Error"})
		return
	}
	if results == nil {
		results = []*SearchResult{}
	}
	respond(w, http.StatusOK, results)
}

func (h *Handler) storeDetails(w http.ResponseWriter, r *http.Request) {
	details, err := h.service.GetStoreDetails(r.Context(), chi.URLParam(r, "storeID"))
	if err != nil {
		if errors.Is(err, ErrStoreNotFound) {
			respond(w, http.StatusNotFound, map[string]string{"error": "Store not found"})
			return
		}
		log.Printf("store: details: %v", err)
		respond(w, http.StatusInternalServerError, map[string]string{"error": "Server Error"})
		return
	}
	respond(w, http.StatusOK, details)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
