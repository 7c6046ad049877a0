package postgres

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/twofourteen/hr-portal/internal/attendance"
)

// AttendanceRepository implements attendance.RepositoryAPI using GORM.
type AttendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

func (r *AttendanceRepository) Create(a *attendance.Attendance) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return r.db.Create(a).Error
}

func (r *AttendanceRepository) GetByID(id string) (*attendance.Attendance, error) {
	var rec attendance.Attendance
	err := r.db.Where("id = ?", id).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, attendance.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *AttendanceRepository) GetActive(userID string) (*attendance.Attendance, error) {
	var rec attendance.Attendance
	err := r.db.Where("user_id = ? AND time_out IS NULL", userID).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (r *AttendanceRepository) ListBetween(userID string, from, to time.Time) ([]*attendance.Attendance, error) {
	var recs []*attendance.Attendance
	err := r.db.Where("user_id = ? AND time_in >= ? AND time_in < ?", userID, from, to).
		Order("time_in DESC").
		Find(&recs).Error
	return recs, err
}

// Close stamps time_out and the computed duration in one update. The
// service never recomputes a stored duration.
func (r *AttendanceRepository) Close(id string, timeOut time.Time, totalWorked string) error {
	return r.db.Model(&attendance.Attendance{}).
		Where("id = ? AND time_out IS NULL", id).
		Updates(map[string]interface{}{
			"time_out":     timeOut,
			"total_worked": totalWorked,
		}).Error
}

// Delete removes a record; administrative override only.
func (r *AttendanceRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&attendance.Attendance{}).Error
}
