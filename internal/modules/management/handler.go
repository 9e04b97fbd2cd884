package management

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/shopit-labs/shopit-backend/internal/modules/catalog"
	"github.com/shopit-labs/shopit-backend/internal/modules/owner"
	"github.com/shopit-labs/shopit-backend/internal/modules/store"
)

// Handler exposes store-management HTTP endpoints. Every mutating route
// resolves the caller's identity through the owner token issuer.
type Handler struct {
	service Service
	tokens  *owner.TokenIssuer
}

func NewHandler(service Service, tokens *owner.TokenIssuer) *Handler {
	return &Handler{service: service, tokens: tokens}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/store-management", func(r chi.Router) {
		r.Post("/register", h.registerStore)
		r.Get("/my-stores", h.myStores)
		r.Get("/products", h.listProducts)

		r.Route("/store/{storeID}", func(r chi.Router) {
			r.Get("/", h.getStore)
			r.Put("/", h.updateStore)
			r.Get("/inventory", h.listInventory)
			r.Post("/inventory", h.addInventoryItem)
			r.Put("/inventory", h.updateInventory)
			r.Delete("/inventory/{productID}", h.deleteInventoryItem)
			r.Put("/products/{productID}/dates", h.updateProductDates)
		})
	})
}

func (h *Handler) registerStore(w http.ResponseWriter, r *http.Request) {
	var req RegisterStoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	// A verified identity always wins over the ownerEmail body field.
	if email, err := h.tokens.CallerEmail(r); err == nil {
		req.OwnerEmail = email
	}

	st, err := h.service.RegisterStore(r.Context(), req)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"message":   "Store registered successfully",
		"storeId":   st.ID,
		"storeName": st.Name,
	})
}

func (h *Handler) myStores(w http.ResponseWriter, r *http.Request) {
	email, err := h.tokens.CallerEmail(r)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	ownerships, err := h.service.MyStores(r.Context(), email)
	if err != nil {
		h.respondError(w, err)
		return
	}
	if ownerships == nil {
		ownerships = []*StoreOwnership{}
	}
	respond(w, http.StatusOK, ownerships)
}

func (h *Handler) getStore(w http.ResponseWriter, r *http.Request) {
	email, err := h.tokens.CallerEmail(r)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	st, err := h.service.GetStore(r.Context(), chi.URLParam(r, "storeID"), email)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respond(w, http.StatusOK, st)
}

func (h *Handler) updateStore(w http.ResponseWriter, r *http.Request) {
	email, err := h.tokens.CallerEmail(r)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	var req UpdateStoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	st, err := h.service.UpdateStore(r.Context(), chi.URLParam(r, "storeID"), email, req)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respond(w, http.StatusOK, st)
}

func (h *Handler) listInventory(w http.ResponseWriter, r *http.Request) {
	email, err := h.tokens.CallerEmail(r)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	items, err := h.service.ListInventory(r.Context(), chi.URLParam(r, "storeID"), email)
	if err != nil {
		h.respondError(w, err)
		return
	}
	if items == nil {
		items = []*InventoryDetail{}
	}
	respond(w, http.StatusOK, items)
}

func (h *Handler) addInventoryItem(w http.ResponseWriter, r *http.Request) {
	email, err := h.tokens.CallerEmail(r)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	var req AddInventoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	inv, err := h.service.AddInventoryItem(r.Context(), chi.URLParam(r, "storeID"), email, req)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, inv)
}

func (h *Handler) updateInventory(w http.ResponseWriter, r *http.Request) {
	email, err := h.tokens.CallerEmail(r)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	var req UpdateInventoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	inv, err := h.service.UpdateInventory(r.Context(), chi.URLParam(r, "storeID"), email, req)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respond(w, http.StatusOK, inv)
}

func (h *Handler) deleteInventoryItem(w http.ResponseWriter, r *http.Request) {
	email, err := h.tokens.CallerEmail(r)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	err = h.service.DeleteInventoryItem(r.Context(),
		chi.URLParam(r, "storeID"), chi.URLParam(r, "productID"), email)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"message": "Inventory item deleted successfully"})
}

func (h *Handler) updateProductDates(w http.ResponseWriter, r *http.Request) {
	email, err := h.tokens.CallerEmail(r)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	var req ProductDatesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	err = h.service.UpdateProductDates(r.Context(),
		chi.URLParam(r, "storeID"), chi.URLParam(r, "productID"), email, req)
	if err != nil {
		h.respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"message": "Product dates updated successfully"})
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	if products == nil {
		products = []*catalog.Product{}
	}
	respond(w, http.StatusOK, products)
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err, ErrAccessDenied), errors.Is(err, ErrOwnerNotRegistered):
		respond(w, http.StatusForbidden, map[string]string{"error": err.Error()})
	case errors.Is(err, store.ErrStoreNotFound),
		errors.Is(err, catalog.ErrProductNotFound),
		errors.Is(err, ErrInventoryNotFound):
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, ErrInventoryExists):
		respond(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.As(err, &verrs), errors.Is(err, ErrNoDatesGiven):
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		log.Printf("management: %v", err)
		respond(w, http.StatusInternalServerError, map[string]string{"error": "Server Error"})
	}
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
