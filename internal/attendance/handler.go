package attendance

import (
	"encoding/json"
	"net/http"

	"github.com/twofourteen/hr-portal/internal/auth"
	"github.com/twofourteen/hr-portal/internal/transport"
)

type ServiceAPI interface {
	ClockIn(userID string) (*Attendance, error)
	ClockOut(attendanceID, requestingUserID string) (*Attendance, error)
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

// GetAttendance returns today's logs, the active session, and worked time.
func (h *Handler) GetAttendance(w http.ResponseWriter, r *http.Request) {
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

// ClockIn opens a session for the current user.
func (h *Handler) ClockIn(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	record, err := h.Service.ClockIn(user.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, record)
}

// ClockOut closes the session named in the request body.
func (h *Handler) ClockOut(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto ClockOutDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if dto.AttendanceID == "" {
		h.WriteError(w, http.StatusBadRequest, "attendance_id is required")
		return
	}

	record, err := h.Service.ClockOut(dto.AttendanceID, user.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, record)
}
