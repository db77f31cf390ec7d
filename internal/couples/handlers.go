package couples

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

// Create handles POST /couples.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	profile, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if utils.IsValidationError(err) {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("couples: create failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create profile")
		return
	}

	utils.RespondWithData(w, http.StatusCreated, profile)
}

// Get handles GET /couples/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid couple ID")
		return
	}

	profile, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Couple not found")
			return
		}
		log.Printf("couples: get %d failed: %v", id, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load profile")
		return
	}

	utils.RespondWithData(w, http.StatusOK, profile)
}

// UpdateMe handles PUT /couples/me for the authenticated couple.
func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	profile, err := h.service.Update(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Couple not found")
		case utils.IsValidationError(err):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			log.Printf("couples: update %d failed: %v", userID, err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update profile")
		}
		return
	}

	utils.RespondWithData(w, http.StatusOK, profile)
}
