package reviews

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

// Create handles POST /reviews for the authenticated couple.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	coupleID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	review, err := h.service.Create(r.Context(), coupleID, &req)
	if err != nil {
		switch {
		case utils.IsValidationError(err):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrAlreadyRated):
			utils.RespondWithError(w, http.StatusConflict, "You have already reviewed this provider")
		default:
			log.Printf("reviews: create by couple %d failed: %v", coupleID, err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create review")
		}
		return
	}

	utils.RespondWithData(w, http.StatusCreated, review)
}

// ListByProvider handles GET /providers/{id}/reviews.
func (h *Handler) ListByProvider(w http.ResponseWriter, r *http.Request) {
	providerID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid provider ID")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	reviews, err := h.service.ListByProvider(r.Context(), providerID, limit, offset)
	if err != nil {
		log.Printf("reviews: list for provider %d failed: %v", providerID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list reviews")
		return
	}

	if reviews == nil {
		reviews = []*Review{}
	}
	utils.RespondWithData(w, http.StatusOK, reviews)
}
