package invitations

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

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

// Create handles POST /invitations for the authenticated couple.
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

	invitation, err := h.service.Invite(r.Context(), coupleID, &req)
	if err != nil {
		if utils.IsValidationError(err) {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("invitations: create by couple %d failed: %v", coupleID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create invitation")
		return
	}

	utils.RespondWithData(w, http.StatusCreated, invitation)
}

// Accept handles POST /invitations/{token}/accept.
func (h *Handler) Accept(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	invitation, err := h.service.Accept(r.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Invitation not found")
		case errors.Is(err, ErrExpired):
			utils.RespondWithError(w, http.StatusGone, "Invitation expired")
		default:
			log.Printf("invitations: accept failed: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to accept invitation")
		}
		return
	}

	utils.RespondWithData(w, http.StatusOK, invitation)
}

// List handles GET /invitations for the authenticated couple.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	coupleID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	invitations, err := h.service.ListByCouple(r.Context(), coupleID)
	if err != nil {
		log.Printf("invitations: list for couple %d failed: %v", coupleID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list invitations")
		return
	}

	if invitations == nil {
		invitations = []*Invitation{}
	}
	utils.RespondWithData(w, http.StatusOK, invitations)
}
