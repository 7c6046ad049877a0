package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/twofourteen/hr-portal/internal/roster"
)

// RosterRepository implements roster.RepositoryAPI using GORM. It reads
// across the users, attendance_log and break_log tables; it never writes.
type RosterRepository struct {
	db *gorm.DB
}

func NewRosterRepository(db *gorm.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

func (r *RosterRepository) ListEmployees() ([]*roster.Employee, error) {
	var out []*roster.Employee
	err := r.db.Table("users").
		Select("id, first_name, last_name, email, role").
		Where("role = ?", "employee").
		Order("last_name ASC, first_name ASC").
		Find(&out).Error
	return out, err
}

func (r *RosterRepository) LatestSession(userID string) (*roster.LatestSession, error) {
	var rec roster.LatestSession
	err := r.db.Table("attendance_log").
		Where("user_id = ?", userID).
		Order("time_in DESC, id DESC").
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (r *RosterRepository) ActiveBreak(userID string) (*roster.ActiveBreak, error) {
	var rec roster.ActiveBreak
	err := r.db.Table("break_log").
		Select("break_type, break_start").
		Where("user_id = ? AND break_end IS NULL", userID).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (r *RosterRepository) ListBreaksBetween(from, to time.Time) ([]*roster.BreakWithEmployee, error) {
	var out []*roster.BreakWithEmployee
	err := r.db.Table("break_log").
		Select("break_log.id, break_log.user_id, users.first_name, users.last_name, break_log.break_type, break_log.break_start, break_log.break_end, break_log.break_duration").
		Joins("JOIN users ON users.id = break_log.user_id").
		Where("break_log.break_start >= ? AND break_log.break_start < ?", from, to).
		Order("break_log.break_start DESC").
		Find(&out).Error
	return out, err
}
