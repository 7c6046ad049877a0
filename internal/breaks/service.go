package breaks

import (
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/twofourteen/hr-portal/internal"
	"github.com/twofourteen/hr-portal/internal/core/interval"
)

// RepositoryAPI defines the data access methods for break records.
type RepositoryAPI interface {
	Create(b *Break) error
	GetByID(id string) (*Break, error)
	// GetActive returns the user's running break, or nil when none.
	GetActive(userID string) (*Break, error)
	// ListBetween returns breaks with break_start in [from, to), newest first.
	ListBetween(userID string, from, to time.Time) ([]*Break, error)
	End(id string, breakEnd time.Time, duration string) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates the break service. A nil clock defaults to time.Now.
func NewService(repo RepositoryAPI, logger *slog.Logger, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{repo: repo, logger: logger, now: now}
}

// StartBreak opens a break of the given type. Only one break may run per
// user; the type must come from the closed set.
func (s *Service) StartBreak(userID, breakType string) (*Break, error) {
	if !ValidType(breakType) {
		return nil, ErrInvalidType
	}

	active, err := s.repo.GetActive(userID)
	if err != nil {
		s.logger.Error("failed to look up active break", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to look up active break", err)
	}
	if active != nil {
		return nil, ErrAlreadyOnBreak
	}

	record := &Break{
		UserID:     userID,
		BreakType:  breakType,
		BreakStart: s.now(),
	}
	if err := s.repo.Create(record); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyOnBreak
		}
		s.logger.Error("failed to create break", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to start break", err)
	}

	s.logger.Info("break started", "break_id", record.ID, "user_id", userID, "break_type", breakType)
	return record, nil
}

// EndBreak closes the break. Only the owner may end it, mirroring the
// clock-out ownership rule, and an ended break stays ended.
func (s *Service) EndBreak(breakID, requestingUserID string) (*Break, error) {
	record, err := s.repo.GetByID(breakID)
	if err != nil || record == nil || record.UserID != requestingUserID {
		return nil, ErrNotFound
	}

	if !record.IsActive() {
		return nil, ErrAlreadyEnded
	}

	now := s.now()
	elapsed := int64(now.Sub(record.BreakStart) / time.Second)
	if elapsed < 0 {
		elapsed = 0
	}
	duration := interval.FormatSeconds(elapsed)

	if err := s.repo.End(record.ID, now, duration); err != nil {
		s.logger.Error("failed to end break", "error", err, "break_id", record.ID)
		return nil, internal.NewInternalError("failed to end break", err)
	}

	record.BreakEnd = &now
	record.BreakDuration = &duration

	s.logger.Info("break ended",
		"break_id", record.ID,
		"user_id", requestingUserID,
		"duration_seconds", elapsed)

	return record, nil
}

// ActiveBreak returns the user's running break, or nil.
func (s *Service) ActiveBreak(userID string) (*Break, error) {
	active, err := s.repo.GetActive(userID)
	if err != nil {
		return nil, internal.NewInternalError("failed to look up active break", err)
	}
	return active, nil
}

// Overview assembles today's breaks plus completed-break aggregates for
// the dashboard. Aggregation is best-effort: a malformed stored duration
// counts as zero rather than failing the whole response.
func (s *Service) Overview(userID string) (*OverviewResponse, error) {
	from, to := dayBounds(s.now())

	today, err := s.repo.ListBetween(userID, from, to)
	if err != nil {
		s.logger.Error("failed to list today's breaks", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to list breaks", err)
	}

	resp := &OverviewResponse{TodayBreaks: today}
	for _, b := range today {
		if b.IsActive() {
			resp.ActiveBreak = b
			continue
		}
		resp.CompletedCount++
		resp.TotalBreakSeconds += interval.ParseSeconds(b.BreakDuration)
	}

	return resp, nil
}

func dayBounds(at time.Time) (time.Time, time.Time) {
	from := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location())
	return from, from.AddDate(0, 0, 1)
}
