package providers

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

// Create handles POST /providers.
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
		log.Printf("providers: create failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create provider")
		return
	}

	utils.RespondWithData(w, http.StatusCreated, profile)
}

// Get handles GET /providers/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid provider ID")
		return
	}

	profile, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Provider not found")
			return
		}
		log.Printf("providers: get %d failed: %v", id, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load provider")
		return
	}

	utils.RespondWithData(w, http.StatusOK, profile)
}

// List handles GET /providers?service_type=...
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	serviceType := r.URL.Query().Get("service_type")
	if serviceType == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "service_type is required")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	profiles, err := h.service.ListByServiceType(r.Context(), serviceType, limit, offset)
	if err != nil {
		log.Printf("providers: list %q failed: %v", serviceType, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list providers")
		return
	}

	if profiles == nil {
		profiles = []*Profile{}
	}
	utils.RespondWithData(w, http.StatusOK, profiles)
}

// UpdateMe handles PUT /providers/me for the authenticated provider.
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
			utils.RespondWithError(w, http.StatusNotFound, "Provider not found")
		case utils.IsValidationError(err):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			log.Printf("providers: update %d failed: %v", userID, err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update provider")
		}
		return
	}

	utils.RespondWithData(w, http.StatusOK, profile)
}
