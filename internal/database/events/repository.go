// Package events provides database operations for community events.
package events

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/houseofplants/houseofplants/internal/entities"
)

var ErrNotFound = errors.New("event not found")

// Repository handles all event database operations.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(event *entities.Event) error {
	return r.db.Create(event).Error
}

func (r *Repository) GetByID(id uint) (*entities.Event, error) {
	var event entities.Event
	err := r.db.Preload("Host").First(&event, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &event, nil
}

// GetUpcoming returns non-archived events starting at or after now, soonest
// first.
func (r *Repository) GetUpcoming(now time.Time) ([]entities.Event, error) {
	var events []entities.Event
	err := r.db.Preload("Host").
		Where("archived = ? AND starts_at >= ?", false, now).
		Order("starts_at ASC").
		Find(&events).Error
	return events, err
}

// Search does a case-insensitive substring match over non-archived event
// titles.
func (r *Repository) Search(query string) ([]entities.Event, error) {
	var events []entities.Event
	pattern := "%" + query + "%"
	err := r.db.Preload("Host").
		Where("archived = ? AND title LIKE ?", false, pattern).
		Order("starts_at ASC").
		Find(&events).Error
	return events, err
}

// ArchivePast flags events whose start time has passed. Returns the number
// of events archived.
func (r *Repository) ArchivePast(now time.Time) (int64, error) {
	result := r.db.Model(&entities.Event{}).
		Where("archived = ? AND starts_at < ?", false, now).
		Update("archived", true)
	return result.RowsAffected, result.Error
}
