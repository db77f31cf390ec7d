package matching

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/mariable/mariable-backend/internal/auth"
	"github.com/mariable/mariable-backend/internal/common/utils"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Match handles POST /matching.
func (h *Handler) Match(w http.ResponseWriter, r *http.Request) {
	var req MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.CoupleID == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "couple_id is required")
		return
	}
	if req.SearchCriteria.ServiceType == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "service_type is required")
		return
	}

	resp, err := h.service.Match(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingServiceType):
			utils.RespondWithError(w, http.StatusBadRequest, "service_type is required")
		case errors.Is(err, ErrCoupleNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Couple not found")
		default:
			log.Printf("matching: request for couple %d failed: %v", req.CoupleID, err)
			utils.RespondWithErrorDetails(w, http.StatusInternalServerError, "Matching failed", err)
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// History handles GET /matching/history. The couple is taken from the
// authenticated context, not from the query string.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	coupleID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	records, err := h.service.History(r.Context(), coupleID, limit)
	if err != nil {
		log.Printf("matching: history listing for couple %d failed: %v", coupleID, err)
		utils.RespondWithErrorDetails(w, http.StatusInternalServerError, "Failed to load matching history", err)
		return
	}

	if records == nil {
		records = []*HistoryRecord{}
	}
	utils.RespondWithData(w, http.StatusOK, records)
}
