package postgres

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/twofourteen/hr-portal/internal/leave"
)

// LeaveRepository implements leave.RepositoryAPI using GORM.
type LeaveRepository struct {
	db *gorm.DB
}

func NewLeaveRepository(db *gorm.DB) *LeaveRepository {
	return &LeaveRepository{db: db}
}

func (r *LeaveRepository) Create(l *leave.Leave) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return r.db.Create(l).Error
}

func (r *LeaveRepository) GetByID(id string) (*leave.Leave, error) {
	var rec leave.Leave
	err := r.db.Where("id = ?", id).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leave.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *LeaveRepository) ListByUser(userID string) ([]*leave.Leave, error) {
	var recs []*leave.Leave
	err := r.db.Where("user_id = ?", userID).
		Order("leave_date_from DESC").
		Find(&recs).Error
	return recs, err
}

// ListAll joins the requester's name onto each request for the HR review
// queue. Pending requests sort first, then newest ranges.
func (r *LeaveRepository) ListAll() ([]*leave.WithEmployee, error) {
	var recs []*leave.WithEmployee
	err := r.db.Table("leave_request").
		Select("leave_request.*, users.first_name, users.last_name").
		Joins("JOIN users ON users.id = leave_request.user_id").
		Order("CASE WHEN leave_request.status = 'Pending' THEN 0 ELSE 1 END").
		Order("leave_request.leave_date_from DESC").
		Find(&recs).Error
	return recs, err
}

func (r *LeaveRepository) ListApprovedBetween(userID string, from, to time.Time) ([]*leave.Leave, error) {
	var recs []*leave.Leave
	err := r.db.Where("user_id = ? AND status = ? AND leave_date_from >= ? AND leave_date_from < ?",
		userID, leave.StatusApproved, from, to).
		Find(&recs).Error
	return recs, err
}

// UpdateStatus persists a decided or cancelled request. Only the mutable
// decision columns are written.
func (r *LeaveRepository) UpdateStatus(l *leave.Leave) error {
	return r.db.Model(&leave.Leave{}).
		Where("id = ?", l.ID).
		Updates(map[string]interface{}{
			"status":             l.Status,
			"reason_hr":          l.ReasonHR,
			"decided_by":         l.DecidedBy,
			"decision_timestamp": l.DecisionTimestamp,
		}).Error
}

func (r *LeaveRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&leave.Leave{}).Error
}
