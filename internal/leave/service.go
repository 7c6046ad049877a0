package leave

import (
	"log/slog"
	"time"

	"github.com/twofourteen/hr-portal/internal"
)

// RepositoryAPI defines the data access methods for leave requests.
type RepositoryAPI interface {
	Create(l *Leave) error
	GetByID(id string) (*Leave, error)
	// ListByUser returns the user's requests, newest range first.
	ListByUser(userID string) ([]*Leave, error)
	// ListAll returns every request joined with the requester's name,
	// pending first, for the HR review queue.
	ListAll() ([]*WithEmployee, error)
	// ListApprovedBetween returns approved requests whose start date falls
	// in [from, to).
	ListApprovedBetween(userID string, from, to time.Time) ([]*Leave, error)
	UpdateStatus(l *Leave) error
	Delete(id string) error
}

type Service struct {
	repo            RepositoryAPI
	logger          *slog.Logger
	annualAllotment int
	now             func() time.Time
}

// NewService creates the leave service. A nil clock defaults to time.Now;
// tests inject a fixed one.
func NewService(repo RepositoryAPI, logger *slog.Logger, annualAllotment int, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	if annualAllotment <= 0 {
		annualAllotment = internal.DefaultAnnualAllotment
	}
	return &Service{repo: repo, logger: logger, annualAllotment: annualAllotment, now: now}
}

// CreateLeave files a new request in the Pending state. The remaining
// balance is computed here from approved usage in the current calendar
// year; the client-supplied value, if any, is ignored.
func (s *Service) CreateLeave(userID string, dto CreateLeaveDTO) (*Leave, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	used, err := s.UsedDays(userID)
	if err != nil {
		return nil, err
	}

	record := &Leave{
		UserID:          userID,
		LeaveType:       dto.LeaveType,
		LeaveDateFrom:   dto.DateFrom(),
		LeaveDateTo:     dto.DateTo(),
		ReasonEmployee:  dto.ReasonEmployee,
		Status:          StatusPending,
		RemainingLeaves: float64(s.annualAllotment - used),
		CreatedAt:       s.now(),
	}
	if err := s.repo.Create(record); err != nil {
		s.logger.Error("failed to create leave request", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to create leave request", err)
	}

	s.logger.Info("leave requested",
		"leave_id", record.ID,
		"user_id", userID,
		"leave_type", record.LeaveType,
		"days", DaysRequested(record.LeaveDateFrom, record.LeaveDateTo))
	return record, nil
}

// Decide moves a pending request to Approved or Rejected, stamping the
// deciding HR user and the decision time. Any other starting state is an
// illegal transition.
func (s *Service) Decide(deciderID string, dto DecideLeaveDTO) (*Leave, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	target := dto.TargetStatus()
	record, err := s.repo.GetByID(dto.LeaveID)
	if err != nil || record == nil {
		return nil, ErrNotFound
	}
	if !record.CanTransitionTo(target) {
		return nil, ErrInvalidTransition
	}

	now := s.now()
	record.Status = target
	record.ReasonHR = dto.ReasonHR
	record.DecidedBy = &deciderID
	record.DecisionTimestamp = &now

	if err := s.repo.UpdateStatus(record); err != nil {
		s.logger.Error("failed to update leave status", "error", err, "leave_id", record.ID)
		return nil, internal.NewInternalError("failed to update leave request", err)
	}

	s.logger.Info("leave decided",
		"leave_id", record.ID,
		"status", record.Status,
		"decided_by", deciderID)
	return record, nil
}

// Cancel withdraws the requester's own pending request. Ownership and
// missing records are reported identically so callers cannot probe for
// other users' request ids.
func (s *Service) Cancel(leaveID, requestingUserID string) (*Leave, error) {
	record, err := s.repo.GetByID(leaveID)
	if err != nil || record == nil || record.UserID != requestingUserID {
		return nil, ErrNotFound
	}
	if !record.CanTransitionTo(StatusCancelled) {
		return nil, ErrInvalidTransition
	}

	now := s.now()
	record.Status = StatusCancelled
	record.DecisionTimestamp = &now

	if err := s.repo.UpdateStatus(record); err != nil {
		s.logger.Error("failed to cancel leave", "error", err, "leave_id", record.ID)
		return nil, internal.NewInternalError("failed to cancel leave request", err)
	}

	s.logger.Info("leave cancelled", "leave_id", record.ID, "user_id", requestingUserID)
	return record, nil
}

// UsedDays sums the inclusive day counts of the user's approved requests
// starting in the current calendar year.
func (s *Service) UsedDays(userID string) (int, error) {
	now := s.now()
	from := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	approved, err := s.repo.ListApprovedBetween(userID, from, to)
	if err != nil {
		s.logger.Error("failed to list approved leave", "error", err, "user_id", userID)
		return 0, internal.NewInternalError("failed to compute used leave days", err)
	}

	used := 0
	for _, rec := range approved {
		used += DaysRequested(rec.LeaveDateFrom, rec.LeaveDateTo)
	}
	return used, nil
}

// Overview assembles the user's requests plus the live balance.
func (s *Service) Overview(userID string) (*OverviewResponse, error) {
	leaves, err := s.repo.ListByUser(userID)
	if err != nil {
		s.logger.Error("failed to list leave requests", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to list leave requests", err)
	}

	used, err := s.UsedDays(userID)
	if err != nil {
		return nil, err
	}

	return &OverviewResponse{
		Leaves:          leaves,
		RemainingLeaves: float64(s.annualAllotment - used),
		UsedDays:        used,
	}, nil
}

// ListAll returns the HR review queue across all employees.
func (s *Service) ListAll() ([]*WithEmployee, error) {
	all, err := s.repo.ListAll()
	if err != nil {
		s.logger.Error("failed to list all leave requests", "error", err)
		return nil, internal.NewInternalError("failed to list leave requests", err)
	}
	return all, nil
}

// Delete removes a request outright. Administrative override only; the
// normal path is Cancel.
func (s *Service) Delete(leaveID string) error {
	record, err := s.repo.GetByID(leaveID)
	if err != nil || record == nil {
		return ErrNotFound
	}
	if err := s.repo.Delete(leaveID); err != nil {
		s.logger.Error("failed to delete leave", "error", err, "leave_id", leaveID)
		return internal.NewInternalError("failed to delete leave request", err)
	}
	s.logger.Info("leave deleted", "leave_id", leaveID)
	return nil
}
