package postgres

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/twofourteen/hr-portal/internal/breaks"
)

// BreakRepository implements breaks.RepositoryAPI using GORM.
type BreakRepository struct {
	db *gorm.DB
}

func NewBreakRepository(db *gorm.DB) *BreakRepository {
	return &BreakRepository{db: db}
}

func (r *BreakRepository) Create(b *breaks.Break) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return r.db.Create(b).Error
}

func (r *BreakRepository) GetByID(id string) (*breaks.Break, error) {
	var rec breaks.Break
	err := r.db.Where("id = ?", id).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, breaks.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *BreakRepository) GetActive(userID string) (*breaks.Break, error) {
	var rec breaks.Break
	err := r.db.Where("user_id = ? AND break_end IS NULL", userID).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (r *BreakRepository) ListBetween(userID string, from, to time.Time) ([]*breaks.Break, error) {
	var recs []*breaks.Break
	err := r.db.Where("user_id = ? AND break_start >= ? AND break_start < ?", userID, from, to).
		Order("break_start DESC").
		Find(&recs).Error
	return recs, err
}

// End stamps break_end and the computed duration in one update.
func (r *BreakRepository) End(id string, breakEnd time.Time, duration string) error {
	return r.db.Model(&breaks.Break{}).
		Where("id = ? AND break_end IS NULL", id).
		Updates(map[string]interface{}{
			"break_end":      breakEnd,
			"break_duration": duration,
		}).Error
}

// Delete removes a record; administrative override only.
func (r *BreakRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&breaks.Break{}).Error
}
