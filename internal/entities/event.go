package entities

import (
	"time"

	"gorm.io/gorm"
)

// Event is a meetup hosted by a user: plant swaps, repotting workshops and
// the like. Past events are flagged as archived by the scheduler rather
// than deleted, so hosts keep their history.
type Event struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	HostID      uint     `gorm:"index" json:"host_id"`
	Title       string   `gorm:"index;size:255" json:"title"`
	Description string   `gorm:"type:text" json:"description,omitempty"`
	Venue       string   `gorm:"size:255" json:"venue,omitempty"`
	Borough     string   `gorm:"size:100" json:"borough,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`

	StartsAt time.Time `gorm:"index" json:"starts_at"`
	Archived bool      `gorm:"default:false;index" json:"archived"`

	Host User `gorm:"foreignKey:HostID" json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}
