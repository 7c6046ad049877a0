package attendance

import (
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/twofourteen/hr-portal/internal"
	"github.com/twofourteen/hr-portal/internal/core/interval"
)

// RepositoryAPI defines the data access methods for attendance records.
type RepositoryAPI interface {
	Create(a *Attendance) error
	GetByID(id string) (*Attendance, error)
	// GetActive returns the open session for the user, or nil when none.
	GetActive(userID string) (*Attendance, error)
	// ListBetween returns records with time_in in [from, to), newest first.
	ListBetween(userID string, from, to time.Time) ([]*Attendance, error)
	Close(id string, timeOut time.Time, totalWorked string) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates the attendance service. A nil clock defaults to
// time.Now; tests inject a fixed one.
func NewService(repo RepositoryAPI, logger *slog.Logger, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{repo: repo, logger: logger, now: now}
}

// ClockIn opens a new session for the user. Fails if one is already open;
// the partial unique index backs the same invariant under concurrency.
func (s *Service) ClockIn(userID string) (*Attendance, error) {
	active, err := s.repo.GetActive(userID)
	if err != nil {
		s.logger.Error("failed to look up active session", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to look up active session", err)
	}
	if active != nil {
		return nil, ErrAlreadyClockedIn
	}

	record := &Attendance{
		UserID: userID,
		TimeIn: s.now(),
	}
	if err := s.repo.Create(record); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race against a concurrent clock-in.
			return nil, ErrAlreadyClockedIn
		}
		s.logger.Error("failed to create attendance", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to clock in", err)
	}

	s.logger.Info("clocked in", "attendance_id", record.ID, "user_id", userID)
	return record, nil
}

// ClockOut closes the session. Only the owner may close it, a closed
// session stays closed, and the worked duration is computed once and
// stored immutably.
func (s *Service) ClockOut(attendanceID, requestingUserID string) (*Attendance, error) {
	record, err := s.repo.GetByID(attendanceID)
	if err != nil || record == nil || record.UserID != requestingUserID {
		return nil, ErrNotFound
	}

	if !record.IsOpen() {
		return nil, ErrAlreadyClosed
	}

	now := s.now()
	workedSeconds := int64(now.Sub(record.TimeIn) / time.Second)
	if workedSeconds < 0 {
		workedSeconds = 0
	}
	worked := interval.FormatSeconds(workedSeconds)

	if err := s.repo.Close(record.ID, now, worked); err != nil {
		s.logger.Error("failed to close attendance", "error", err, "attendance_id", record.ID)
		return nil, internal.NewInternalError("failed to clock out", err)
	}

	record.TimeOut = &now
	record.TotalWorked = &worked

	s.logger.Info("clocked out",
		"attendance_id", record.ID,
		"user_id", requestingUserID,
		"worked_seconds", workedSeconds)

	return record, nil
}

// ActiveSession returns the user's open session, or nil. Other components
// use this as the "is this person currently clocked in" oracle.
func (s *Service) ActiveSession(userID string) (*Attendance, error) {
	active, err := s.repo.GetActive(userID)
	if err != nil {
		return nil, internal.NewInternalError("failed to look up active session", err)
	}
	return active, nil
}

// Overview assembles today's records, the open session, and the summed
// worked seconds over completed records only.
func (s *Service) Overview(userID string) (*OverviewResponse, error) {
	from, to := dayBounds(s.now())

	today, err := s.repo.ListBetween(userID, from, to)
	if err != nil {
		s.logger.Error("failed to list today's attendance", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to list attendance", err)
	}

	active, err := s.repo.GetActive(userID)
	if err != nil {
		return nil, internal.NewInternalError("failed to look up active session", err)
	}

	var total int64
	for _, rec := range today {
		if rec.IsOpen() {
			continue
		}
		total += interval.ParseSeconds(rec.TotalWorked)
	}

	return &OverviewResponse{
		TodayLogs:          today,
		ActiveLog:          active,
		TotalWorkedSeconds: total,
	}, nil
}

// TodayWorkedSeconds sums stored durations over today's completed records.
func (s *Service) TodayWorkedSeconds(userID string) (int64, error) {
	overview, err := s.Overview(userID)
	if err != nil {
		return 0, err
	}
	return overview.TotalWorkedSeconds, nil
}

func dayBounds(at time.Time) (time.Time, time.Time) {
	from := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location())
	return from, from.AddDate(0, 0, 1)
}
