// Package plants provides database operations for plant listings.
package plants

import (
	"errors"

	"gorm.io/gorm"

	"github.com/houseofplants/houseofplants/internal/entities"
)

var ErrNotFound = errors.New("plant not found")

// Repository handles all plant database operations.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(plant *entities.Plant) error {
	return r.db.Create(plant).Error
}

func (r *Repository) GetByID(id uint) (*entities.Plant, error) {
	var plant entities.Plant
	err := r.db.Preload("User").First(&plant, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &plant, nil
}

// GetAll returns plants newest first.
func (r *Repository) GetAll() ([]entities.Plant, error) {
	var plants []entities.Plant
	err := r.db.Preload("User").Order("created_at DESC").Find(&plants).Error
	return plants, err
}

// GetRecent returns up to limit plants, newest first.
func (r *Repository) GetRecent(limit int) ([]entities.Plant, error) {
	var plants []entities.Plant
	err := r.db.Preload("User").Order("created_at DESC").Limit(limit).Find(&plants).Error
	return plants, err
}

// GetByOwner returns the plants listed by a user, newest first.
func (r *Repository) GetByOwner(userID uint) ([]entities.Plant, error) {
	var plants []entities.Plant
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&plants).Error
	return plants, err
}

// Search does a case-insensitive substring match over name and species.
func (r *Repository) Search(query string) ([]entities.Plant, error) {
	var plants []entities.Plant
	pattern := "%" + query + "%"
	err := r.db.Preload("User").
		Where("name LIKE ? OR species LIKE ?", pattern, pattern).
		Order("created_at DESC").
		Find(&plants).Error
	return plants, err
}

// Delete soft-deletes a plant owned by userID. Returns ErrNotFound when the
// plant does not exist or belongs to someone else.
func (r *Repository) Delete(id, userID uint) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&entities.Plant{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
