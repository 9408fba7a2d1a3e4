package models

import "time"

type Employee struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	FullName     string    `gorm:"type:varchar(100);not null" json:"full_name"`
	Username     string    `gorm:"type:varchar(50);not null;index" json:"username"`
	PasswordHash string    `gorm:"type:varchar(100);not null" json:"-"`
	IsDeleted    bool      `gorm:"not null;default:false" json:"-"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}
