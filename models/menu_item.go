package models

import "time"

type ItemKind string

const (
	ItemKindMainCourse ItemKind = "main_course"
	ItemKindAppetizer  ItemKind = "appetizer"
	ItemKindDessert    ItemKind = "dessert"
	ItemKindBeverage   ItemKind = "beverage"
)

func (k ItemKind) Valid() bool {
	switch k {
	case ItemKindMainCourse, ItemKindAppetizer, ItemKindDessert, ItemKindBeverage:
		return true
	}
	return false
}

type MenuItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(100);not null;index" json:"name"`
	Kind        ItemKind  `gorm:"type:varchar(20);not null" json:"kind"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Description string    `gorm:"type:varchar(500)" json:"description,omitempty"`
	ImageUrl    string    `gorm:"type:varchar(200)" json:"image_url,omitempty"`
	IsAvailable bool      `gorm:"not null;default:true" json:"is_available"`
	IsDeleted   bool      `gorm:"not null;default:false" json:"-"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}
