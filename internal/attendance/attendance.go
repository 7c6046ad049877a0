package attendance

import (
	"time"

	"github.com/twofourteen/hr-portal/internal"
)

// Attendance is one clock-in/clock-out cycle. An open session has a nil
// TimeOut; at most one open session exists per user at any instant.
type Attendance struct {
	ID          string     `json:"id" gorm:"column:id;primaryKey"`
	UserID      string     `json:"user_id" gorm:"column:user_id;not null;index"`
	TimeIn      time.Time  `json:"time_in" gorm:"column:time_in;not null"`
	TimeOut     *time.Time `json:"time_out" gorm:"column:time_out"`
	TotalWorked *string    `json:"total_worked" gorm:"column:total_worked"`
}

func (Attendance) TableName() string {
	return "attendance_log"
}

// IsOpen reports whether the session is still running.
func (a *Attendance) IsOpen() bool {
	return a.TimeOut == nil
}

var (
	// ErrNotFound covers both an unresolved id and an ownership mismatch,
	// deliberately conflated so non-owners cannot probe for existence.
	ErrNotFound        = internal.NewNotFoundError("attendance not found", internal.ErrCodeAttendanceNotFound)
	ErrAlreadyClockedIn = internal.NewConflictError("you are already clocked in", internal.ErrCodeAlreadyClockedIn)
	ErrAlreadyClosed    = internal.NewConflictError("attendance is already clocked out", internal.ErrCodeAlreadyClosed)
)
