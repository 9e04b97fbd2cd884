package customer

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// Handler exposes customer identity HTTP endpoints.
type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/api/users/register", h.registerUser)
	r.Get("/api/users/{id}", h.getUser)
}

func (h *Handler) registerUser(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	user, err := h.service.RegisterUser(r.Context(), req)
	if err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		log.Printf("customer: register: %v", err)
		respond(w, http.StatusInternalServerError, map[string]string{"error": "Server Error"})
		return
	}
	respond(w, http.StatusCreated, user)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
			return
		}
		log.Printf("customer: get: %v", err)
		respond(w, http.StatusInternalServerError, map[string]string{"error": "Server Error"})
		return
	}
	respond(w, http.StatusOK, user)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
