package breaks

import (
	"time"

	"github.com/twofourteen/hr-portal/internal"
)

// Break types form a closed set validated at the boundary; the schema enum
// is the source of truth, not caller-supplied strings.
const (
	TypeLunch = "Lunch"
	TypeShort = "Short Break"
)

func ValidType(breakType string) bool {
	return breakType == TypeLunch || breakType == TypeShort
}

// Break is one timed break. An active break has a nil BreakEnd; at most
// one active break exists per user. Breaks are tracked independently of
// the attendance session (see DESIGN.md).
type Break struct {
	ID            string     `json:"id" gorm:"column:id;primaryKey"`
	UserID        string     `json:"user_id" gorm:"column:user_id;not null;index"`
	BreakType     string     `json:"break_type" gorm:"column:break_type;not null"`
	BreakStart    time.Time  `json:"break_start" gorm:"column:break_start;not null"`
	BreakEnd      *time.Time `json:"break_end" gorm:"column:break_end"`
	BreakDuration *string    `json:"break_duration" gorm:"column:break_duration"`
}

func (Break) TableName() string {
	return "break_log"
}

// IsActive reports whether the break is still running.
func (b *Break) IsActive() bool {
	return b.BreakEnd == nil
}

var (
	// ErrNotFound covers both an unresolved id and an ownership mismatch.
	ErrNotFound       = internal.NewNotFoundError("break not found", internal.ErrCodeBreakNotFound)
	ErrAlreadyOnBreak = internal.NewConflictError("you already have an active break", internal.ErrCodeAlreadyOnBreak)
	ErrAlreadyEnded   = internal.NewConflictError("break has already ended", internal.ErrCodeAlreadyClosed)
	ErrInvalidType    = internal.NewValidationError("break_type must be Lunch or Short Break", internal.ErrCodeInvalidBreakType)
)
