package roster

import "time"

// Derived presence states. Nothing stores these; they are computed from
// the latest attendance record and the active break at read time.
const (
	StatusWorking    = "Working"
	StatusOnBreak    = "On Break"
	StatusClockedOut = "Clocked Out"
)

// Employee is the slice of the users table the roster needs.
type Employee struct {
	ID        string `json:"id" gorm:"column:id"`
	FirstName string `json:"first_name" gorm:"column:first_name"`
	LastName  string `json:"last_name" gorm:"column:last_name"`
	Email     string `json:"email" gorm:"column:email"`
	Role      string `json:"role" gorm:"column:role"`
}

// LatestSession is the newest attendance record for one employee.
type LatestSession struct {
	ID      string     `gorm:"column:id"`
	UserID  string     `gorm:"column:user_id"`
	TimeIn  time.Time  `gorm:"column:time_in"`
	TimeOut *time.Time `gorm:"column:time_out"`
}

func (s *LatestSession) IsOpen() bool {
	return s.TimeOut == nil
}

// ActiveBreak is an employee's currently open break, if any.
type ActiveBreak struct {
	BreakType  string    `gorm:"column:break_type"`
	BreakStart time.Time `gorm:"column:break_start"`
}

// EmployeeStatus is one roster row: who, their derived state, and the
// timestamps backing it.
type EmployeeStatus struct {
	Employee
	Status        string     `json:"status"`
	TimeIn        *time.Time `json:"time_in,omitempty"`
	TimeOut       *time.Time `json:"time_out,omitempty"`
	BreakType     *string    `json:"break_type,omitempty"`
	BreakStart    *time.Time `json:"break_start,omitempty"`
	WorkedSeconds int64      `json:"worked_seconds"`
}

// Summary counts employees per derived state.
type Summary struct {
	Total      int `json:"total"`
	Working    int `json:"working"`
	OnBreak    int `json:"on_break"`
	ClockedOut int `json:"clocked_out"`
}

type RosterResponse struct {
	Employees []*EmployeeStatus `json:"employees"`
	Summary   Summary           `json:"summary"`
}

// BreaksComplianceResponse is the HR break view: today's rows plus summed
// completed-break seconds per employee.
type BreaksComplianceResponse struct {
	Breaks       []*BreakWithEmployee `json:"breaks"`
	TotalsByUser map[string]int64     `json:"totals_by_user"`
}

// BreakWithEmployee is one row of the break compliance view.
type BreakWithEmployee struct {
	ID            string     `json:"id" gorm:"column:id"`
	UserID        string     `json:"user_id" gorm:"column:user_id"`
	FirstName     string     `json:"first_name" gorm:"column:first_name"`
	LastName      string     `json:"last_name" gorm:"column:last_name"`
	BreakType     string     `json:"break_type" gorm:"column:break_type"`
	BreakStart    time.Time  `json:"break_start" gorm:"column:break_start"`
	BreakEnd      *time.Time `json:"break_end" gorm:"column:break_end"`
	BreakDuration *string    `json:"break_duration" gorm:"column:break_duration"`
}
