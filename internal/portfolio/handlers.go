package portfolio

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mariable/mariable-backend/internal/auth"
	"github.com/mariable/mariable-backend/internal/common/utils"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /portfolio for the authenticated provider.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	providerID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := h.service.Create(r.Context(), providerID, &req)
	if err != nil {
		if utils.IsValidationError(err) {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("portfolio: create for provider %d failed: %v", providerID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create portfolio item")
		return
	}

	utils.RespondWithData(w, http.StatusCreated, item)
}

// ListByProvider handles GET /providers/{id}/portfolio.
func (h *Handler) ListByProvider(w http.ResponseWriter, r *http.Request) {
	providerID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid provider ID")
		return
	}

	items, err := h.service.ListByProvider(r.Context(), providerID)
	if err != nil {
		log.Printf("portfolio: list for provider %d failed: %v", providerID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list portfolio")
		return
	}

	if items == nil {
		items = []*Item{}
	}
	utils.RespondWithData(w, http.StatusOK, items)
}

// Delete handles DELETE /portfolio/{id} for the authenticated provider.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	providerID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid item ID")
		return
	}

	if err := h.service.Delete(r.Context(), id, providerID); err != nil {
		if errors.Is(err, ErrNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Portfolio item not found")
			return
		}
		log.Printf("portfolio: delete %d for provider %d failed: %v", id, providerID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete portfolio item")
		return
	}

	utils.MessageResponse(w, "Portfolio item deleted", http.StatusOK)
}
