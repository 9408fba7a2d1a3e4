package models

import "time"

type Table struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(100);not null;index" json:"name"`
	Capacity    int       `gorm:"not null" json:"capacity"`
	Description string    `gorm:"type:varchar(500)" json:"description,omitempty"`
	IsAvailable bool      `gorm:"not null;default:true" json:"is_available"`
	IsDeleted   bool      `gorm:"not null;default:false" json:"-"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}
