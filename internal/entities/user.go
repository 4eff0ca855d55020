package entities

import (
	"time"

	"gorm.io/gorm"
)

// DefaultPictureURL is used for accounts created without a profile picture.
const DefaultPictureURL = "/static/placeholder-avatar.svg"

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"uniqueIndex;size:100" json:"username"`
	Email        string `gorm:"uniqueIndex;size:255" json:"email"`
	PasswordHash string `gorm:"size:255" json:"-"`
	Name         string `gorm:"size:255" json:"name"`

	// Optional geography, captured from the signup map picker.
	Borough   string   `gorm:"size:100" json:"borough,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`

	PictureURL string `gorm:"size:2048" json:"picture_url"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}
