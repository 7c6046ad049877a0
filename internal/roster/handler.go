package roster

import (
	"net/http"

	"github.com/twofourteen/hr-portal/internal/transport"
)

type ServiceAPI interface {
	Roster() (*RosterResponse, error)
	TodayBreaks() (*BreaksComplianceResponse, error)
}

// Handler serves the HR views. Every route is mounted behind RequireHR.
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

// GetRoster returns the live presence of every employee plus summary
// counts.
func (h *Handler) GetRoster(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Service.Roster()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

// GetTodayBreaks returns today's breaks across all employees with summed
// seconds per employee.
func (h *Handler) GetTodayBreaks(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Service.TodayBreaks()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}
