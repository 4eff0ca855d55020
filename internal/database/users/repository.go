// Package users provides database operations for user accounts.
//
// # Usage
//
//	repo := users.NewRepository(db)
//	user, err := repo.GetByUsername("alice")
package users

import (
	"errors"

	"gorm.io/gorm"

	"github.com/houseofplants/houseofplants/internal/entities"
)

// ErrNotFound is returned when no user matches the lookup.
var ErrNotFound = errors.New("user not found")

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new user. The caller provides the password hash, never
// the plaintext. An empty picture URL falls back to the placeholder.
func (r *Repository) Create(user *entities.User) error {
	if user.PictureURL == "" {
		user.PictureURL = entities.DefaultPictureURL
	}
	return r.db.Create(user).Error
}

// GetByID retrieves a user by ID.
func (r *Repository) GetByID(id uint) (*entities.User, error) {
	var user entities.User
	err := r.db.First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByUsername retrieves a user by username.
func (r *Repository) GetByUsername(username string) (*entities.User, error) {
	var user entities.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByUsernameOrEmail retrieves a user matching either unique field.
// Used by the signup uniqueness pre-check.
func (r *Repository) GetByUsernameOrEmail(username, email string) (*entities.User, error) {
	var user entities.User
	err := r.db.Where("username = ? OR email = ?", username, email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateProfile updates the mutable profile fields. Username, email and the
// password hash are deliberately not touched here.
func (r *Repository) UpdateProfile(id uint, name, borough, pictureURL string, longitude, latitude *float64) (*entities.User, error) {
	updates := map[string]any{
		"name":      name,
		"borough":   borough,
		"longitude": longitude,
		"latitude":  latitude,
	}
	if pictureURL != "" {
		updates["picture_url"] = pictureURL
	}

	result := r.db.Model(&entities.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(id)
}

// Count returns the number of registered users.
func (r *Repository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entities.User{}).Count(&count).Error
	return count, err
}
