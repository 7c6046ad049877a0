package leave

import (
	"encoding/json"
	"net/http"

	"github.com/twofourteen/hr-portal/internal/auth"
	"github.com/twofourteen/hr-portal/internal/transport"
)

type ServiceAPI interface {
	CreateLeave(userID string, dto CreateLeaveDTO) (*Leave, error)
	Decide(deciderID string, dto DecideLeaveDTO) (*Leave, error)
	Cancel(leaveID, requestingUserID string) (*Leave, error)
	Overview(userID string) (*OverviewResponse, error)
	ListAll() ([]*WithEmployee, error)
	Delete(leaveID string) error
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

// GetLeaves returns the current user's requests and live balance.
func (h *Handler) GetLeaves(w http.ResponseWriter, r *http.Request) {
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

// CreateLeave files a new request for the current user.
func (h *Handler) CreateLeave(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateLeaveDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, err := h.Service.CreateLeave(user.ID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, record)
}

// CancelLeave withdraws one of the current user's pending requests.
func (h *Handler) CancelLeave(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CancelLeaveDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if dto.LeaveID == "" {
		h.WriteError(w, http.StatusBadRequest, "leave_id is required")
		return
	}
	if dto.Action != ActionCancel {
		h.WriteError(w, http.StatusBadRequest, "action must be cancel")
		return
	}

	record, err := h.Service.Cancel(dto.LeaveID, user.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, record)
}

// ListAllLeaves returns the HR review queue. Mounted behind RequireHR.
func (h *Handler) ListAllLeaves(w http.ResponseWriter, r *http.Request) {
	all, err := h.Service.ListAll()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, all)
}

// DecideLeave approves or rejects a pending request. Mounted behind
// RequireHR.
func (h *Handler) DecideLeave(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto DecideLeaveDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, err := h.Service.Decide(user.ID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, record)
}

// DeleteLeave removes a request outright. Mounted behind RequireHR.
func (h *Handler) DeleteLeave(w http.ResponseWriter, r *http.Request) {
	var dto DeleteLeaveDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if dto.LeaveID == "" {
		h.WriteError(w, http.StatusBadRequest, "leave_id is required")
		return
	}

	if err := h.Service.Delete(dto.LeaveID); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
