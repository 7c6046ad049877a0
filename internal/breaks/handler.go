package breaks

import (
	"encoding/json"
	"net/http"

	"github.com/twofourteen/hr-portal/internal/auth"
	"github.com/twofourteen/hr-portal/internal/transport"
)

type ServiceAPI interface {
	StartBreak(userID, breakType string) (*Break, error)
	EndBreak(breakID, requestingUserID string) (*Break, error)
	Overview(userID string) (*OverviewResponse, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(nil),
		Service:     service,
	}
}

// GetBreaks returns today's breaks and the active one for the current user.
func (h *Handler) GetBreaks(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	overview, err := h.Service.Overview(user.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, overview)
}

// StartBreak opens a break for the current user.
func (h *Handler) StartBreak(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto StartBreakDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if dto.BreakType == "" {
		h.WriteError(w, http.StatusBadRequest, "break_type is required")
		return
	}

	record, err := h.Service.StartBreak(user.ID, dto.BreakType)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, record)
}

// EndBreak closes the break named in the request body.
func (h *Handler) EndBreak(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto EndBreakDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if dto.BreakID == "" {
		h.WriteError(w, http.StatusBadRequest, "break_id is required")
		return
	}

	record, err := h.Service.EndBreak(dto.BreakID, user.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, record)
}
