package leave

import (
	"time"

	"github.com/twofourteen/hr-portal/internal"
)

const dateLayout = "2006-01-02"

type CreateLeaveDTO struct {
	LeaveType      string  `json:"leave_type"`
	LeaveDateFrom  string  `json:"leave_date_from"`
	LeaveDateTo    string  `json:"leave_date_to"`
	ReasonEmployee *string `json:"reason_employee"`

	// Parsed by Validate.
	dateFrom time.Time
	dateTo   time.Time
}

func (d *CreateLeaveDTO) Validate() error {
	if !ValidType(d.LeaveType) {
		return ErrInvalidType
	}
	from, err := time.Parse(dateLayout, d.LeaveDateFrom)
	if err != nil {
		return internal.NewValidationError("leave_date_from must be YYYY-MM-DD", internal.ErrCodeValidationFailed)
	}
	to, err := time.Parse(dateLayout, d.LeaveDateTo)
	if err != nil {
		return internal.NewValidationError("leave_date_to must be YYYY-MM-DD", internal.ErrCodeValidationFailed)
	}
	if from.After(to) {
		return ErrInvalidDateRange
	}
	d.dateFrom = from
	d.dateTo = to
	return nil
}

func (d *CreateLeaveDTO) DateFrom() time.Time { return d.dateFrom }
func (d *CreateLeaveDTO) DateTo() time.Time   { return d.dateTo }

const (
	ActionApprove = "approve"
	ActionReject  = "reject"
	ActionCancel  = "cancel"
)

type DecideLeaveDTO struct {
	LeaveID  string  `json:"leave_id"`
	Action   string  `json:"action"`
	ReasonHR *string `json:"reason_hr"`
}

func (d *DecideLeaveDTO) Validate() error {
	if d.LeaveID == "" {
		return internal.NewValidationError("leave_id is required", internal.ErrCodeValidationFailed)
	}
	if d.Action != ActionApprove && d.Action != ActionReject {
		return internal.NewValidationError("action must be approve or reject", internal.ErrCodeValidationFailed)
	}
	return nil
}

// TargetStatus maps the requested action onto the state machine.
func (d *DecideLeaveDTO) TargetStatus() string {
	if d.Action == ActionApprove {
		return StatusApproved
	}
	return StatusRejected
}

type CancelLeaveDTO struct {
	LeaveID string `json:"leave_id"`
	Action  string `json:"action"`
}

type DeleteLeaveDTO struct {
	LeaveID string `json:"leave_id"`
}

// WithEmployee decorates a request with the requester's name for the HR
// review queue.
type WithEmployee struct {
	Leave
	FirstName string `json:"first_name" gorm:"column:first_name"`
	LastName  string `json:"last_name" gorm:"column:last_name"`
}

type OverviewResponse struct {
	Leaves          []*Leave `json:"leaves"`
	RemainingLeaves float64  `json:"remainingLeaves"`
	UsedDays        int      `json:"usedDays"`
}
