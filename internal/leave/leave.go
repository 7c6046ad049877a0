package leave

import (
	"time"

	"github.com/twofourteen/hr-portal/internal"
)

const (
	StatusPending   = "Pending"
	StatusApproved  = "Approved"
	StatusRejected  = "Rejected"
	StatusCancelled = "Cancelled"
)

// Leave types form a closed set validated at the boundary.
const (
	TypeVacation  = "Vacation"
	TypeSick      = "Sick"
	TypeEmergency = "Emergency"
	TypePersonal  = "Personal"
)

func ValidType(leaveType string) bool {
	switch leaveType {
	case TypeVacation, TypeSick, TypeEmergency, TypePersonal:
		return true
	}
	return false
}

// Leave is a leave-of-absence request. The status is a strict state
// machine: Pending may move to Approved, Rejected, or Cancelled, and all
// three are terminal.
type Leave struct {
	ID                string     `json:"id" gorm:"column:id;primaryKey"`
	UserID            string     `json:"user_id" gorm:"column:user_id;not null;index"`
	LeaveType         string     `json:"leave_type" gorm:"column:leave_type;not null"`
	LeaveDateFrom     time.Time  `json:"leave_date_from" gorm:"column:leave_date_from;type:date;not null"`
	LeaveDateTo       time.Time  `json:"leave_date_to" gorm:"column:leave_date_to;type:date;not null"`
	ReasonEmployee    *string    `json:"reason_employee" gorm:"column:reason_employee"`
	ReasonHR          *string    `json:"reason_hr" gorm:"column:reason_hr"`
	Status            string     `json:"status" gorm:"column:status;default:Pending"`
	RemainingLeaves   float64    `json:"remaining_leaves" gorm:"column:remaining_leaves"`
	DecidedBy         *string    `json:"decided_by" gorm:"column:decided_by"`
	DecisionTimestamp *time.Time `json:"decision_timestamp" gorm:"column:decision_timestamp"`
	CreatedAt         time.Time  `json:"created_at" gorm:"column:created_at"`
}

func (Leave) TableName() string {
	return "leave_request"
}

func (l *Leave) IsPending() bool {
	return l.Status == StatusPending
}

// CanTransitionTo reports whether moving to the target status is legal.
func (l *Leave) CanTransitionTo(target string) bool {
	if !l.IsPending() {
		return false
	}
	switch target {
	case StatusApproved, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// DaysRequested is the inclusive day count of the requested range. Every
// call site uses this one function so displayed and stored counts never
// drift.
func DaysRequested(from, to time.Time) int {
	diff := to.Sub(from)
	days := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) > 0 {
		days++
	}
	return days + 1
}

var (
	ErrNotFound          = internal.NewNotFoundError("leave request not found", internal.ErrCodeLeaveNotFound)
	ErrInvalidTransition = internal.NewConflictError("leave request is no longer pending", internal.ErrCodeInvalidTransition)
	ErrInvalidType       = internal.NewValidationError("leave_type must be Vacation, Sick, Emergency or Personal", internal.ErrCodeInvalidLeaveType)
	ErrInvalidDateRange  = internal.NewValidationError("leave_date_from must not be after leave_date_to", internal.ErrCodeInvalidDateRange)
)
