package roster

import (
	"log/slog"
	"time"

	"github.com/twofourteen/hr-portal/internal"
	"github.com/twofourteen/hr-portal/internal/core/interval"
)

// RepositoryAPI defines the read-side queries backing the roster.
type RepositoryAPI interface {
	ListEmployees() ([]*Employee, error)
	// LatestSession returns the employee's newest attendance record by
	// time_in, ties broken by id, or nil when they have never clocked in.
	LatestSession(userID string) (*LatestSession, error)
	// ActiveBreak returns the open break, or nil when none.
	ActiveBreak(userID string) (*ActiveBreak, error)
	// ListBreaksBetween returns breaks across all employees with
	// break_start in [from, to), joined with names.
	ListBreaksBetween(from, to time.Time) ([]*BreakWithEmployee, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates the roster service. A nil clock defaults to time.Now;
// tests inject a fixed one.
func NewService(repo RepositoryAPI, logger *slog.Logger, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{repo: repo, logger: logger, now: now}
}

// Roster derives the live presence state of every employee. An open
// session with an open break is On Break, an open session alone is
// Working, anything else is Clocked Out.
func (s *Service) Roster() (*RosterResponse, error) {
	employees, err := s.repo.ListEmployees()
	if err != nil {
		s.logger.Error("failed to list employees", "error", err)
		return nil, internal.NewInternalError("failed to build roster", err)
	}

	now := s.now()
	rows := make([]*EmployeeStatus, 0, len(employees))
	var summary Summary
	summary.Total = len(employees)

	for _, emp := range employees {
		row, err := s.statusFor(emp, now)
		if err != nil {
			return nil, err
		}
		switch row.Status {
		case StatusWorking:
			summary.Working++
		case StatusOnBreak:
			summary.OnBreak++
		default:
			summary.ClockedOut++
		}
		rows = append(rows, row)
	}

	return &RosterResponse{Employees: rows, Summary: summary}, nil
}

func (s *Service) statusFor(emp *Employee, now time.Time) (*EmployeeStatus, error) {
	row := &EmployeeStatus{Employee: *emp, Status: StatusClockedOut}

	session, err := s.repo.LatestSession(emp.ID)
	if err != nil {
		s.logger.Error("failed to load latest session", "error", err, "user_id", emp.ID)
		return nil, internal.NewInternalError("failed to build roster", err)
	}
	if session == nil {
		return row, nil
	}

	row.TimeIn = &session.TimeIn
	row.TimeOut = session.TimeOut
	if !session.IsOpen() {
		return row, nil
	}

	workedSeconds := int64(now.Sub(session.TimeIn) / time.Second)
	if workedSeconds < 0 {
		workedSeconds = 0
	}
	row.WorkedSeconds = workedSeconds

	active, err := s.repo.ActiveBreak(emp.ID)
	if err != nil {
		s.logger.Error("failed to load active break", "error", err, "user_id", emp.ID)
		return nil, internal.NewInternalError("failed to build roster", err)
	}
	if active != nil {
		row.Status = StatusOnBreak
		row.BreakType = &active.BreakType
		row.BreakStart = &active.BreakStart
		return row, nil
	}

	row.Status = StatusWorking
	return row, nil
}

// TodayBreaks returns every employee's breaks from today plus summed
// completed-break seconds per employee, for the HR compliance view.
func (s *Service) TodayBreaks() (*BreaksComplianceResponse, error) {
	now := s.now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 0, 1)

	rows, err := s.repo.ListBreaksBetween(from, to)
	if err != nil {
		s.logger.Error("failed to list breaks", "error", err)
		return nil, internal.NewInternalError("failed to list breaks", err)
	}

	totals := make(map[string]int64)
	for _, row := range rows {
		if row.BreakEnd == nil {
			continue
		}
		totals[row.UserID] += interval.ParseSeconds(row.BreakDuration)
	}

	return &BreaksComplianceResponse{Breaks: rows, TotalsByUser: totals}, nil
}
