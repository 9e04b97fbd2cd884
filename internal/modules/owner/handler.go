package owner

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// Handler exposes store-owner credential HTTP endpoints.
type Handler struct {
	service Service
	tokens  *TokenIssuer
}

func NewHandler(service Service, tokens *TokenIssuer) *Handler {
	return &Handler{service: service, tokens: tokens}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/store-owner-auth", func(r chi.Router) {
		r.Post("/register", h.register)
		r.Post("/login", h.login)
		r.Get("/profile", h.profile)
	})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	account, err := h.service.Register(r.Context(), req)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"message": "Store owner registered successfully",
		"storeOwnerAuth": map[string]interface{}{
			"id":           account.ID,
			"email":        account.Email,
			"firstName":    account.FirstName,
			"lastName":     account.LastName,
			"businessName": account.BusinessName,
		},
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	account, token, err := h.service.Login(r.Context(), req)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"message":      "Login successful",
		"sessionToken": token,
		"storeOwner": map[string]interface{}{
			"id":           account.ID,
			"email":        account.Email,
			"firstName":    account.FirstName,
			"lastName":     account.LastName,
			"businessName": account.BusinessName,
		},
	})
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	email, err := h.tokens.CallerEmail(r)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	account, err := h.service.Profile(r.Context(), email)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"storeOwner": map[string]interface{}{
			"id":           account.ID,
			"email":        account.Email,
			"firstName":    account.FirstName,
			"lastName":     account.LastName,
			"phoneNumber":  account.PhoneNumber,
			"businessName": account.BusinessName,
		},
	})
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err, ErrEmailTaken), errors.Is(err, ErrInvalidCredentials):
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.As(err, &verrs):
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, ErrAccountNotFound):
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	default:
		log.Printf("owner: %v", err)
		respond(w, http.StatusInternalServerError, map[string]string{"error": "Server Error"})
	}
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
