package entities

import (
	"time"

	"gorm.io/gorm"
)

type Plant struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	UserID      uint   `gorm:"index" json:"user_id"`
	Name        string `gorm:"index;size:255" json:"name"`
	Species     string `gorm:"index;size:255" json:"species,omitempty"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	PictureURL  string `gorm:"size:2048" json:"picture_url,omitempty"`

	User User `gorm:"foreignKey:UserID" json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}
