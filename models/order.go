package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// validNext is the full transition table. Completed and cancelled are
// terminal; everything not listed here (self-transitions included) is
// rejected.
var validNext = map[OrderStatus]map[OrderStatus]bool{
	OrderStatusPending:    {OrderStatusInProgress: true, OrderStatusCancelled: true},
	OrderStatusInProgress: {OrderStatusCompleted: true, OrderStatusCancelled: true},
	OrderStatusCompleted:  {},
	OrderStatusCancelled:  {},
}

func (s OrderStatus) Valid() bool {
	_, ok := validNext[s]
	return ok
}

func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	return validNext[s][target]
}

// IsFinal reports whether the order can no longer change.
func (s OrderStatus) IsFinal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// ActiveStatuses are the statuses that keep a table occupied.
func ActiveStatuses() []OrderStatus {
	return []OrderStatus{OrderStatusPending, OrderStatusInProgress}
}

type Order struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Number      string      `gorm:"type:varchar(100);uniqueIndex;not null" json:"number"`
	TableID     uint        `gorm:"not null;index" json:"table_id"`
	Table       Table       `gorm:"foreignKey:TableID" json:"-"`
	EmployeeID  uint        `gorm:"not null;index" json:"employee_id"`
	Employee    Employee    `gorm:"foreignKey:EmployeeID" json:"-"`
	Status      OrderStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Note        string      `gorm:"type:varchar(500)" json:"note,omitempty"`
	TotalAmount float64     `gorm:"type:decimal(10,2);not null;default:0.00" json:"total_amount"`
	IsDeleted   bool        `gorm:"not null;default:false" json:"-"`
	CreatedAt   time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"not null" json:"updated_at"`
	Items       []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
}

// OrderItem is immutable once written. Price is the unit price captured
// at the time the line was added, not a lookup of the current menu price.
type OrderItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	OrderID    uint      `gorm:"not null;index" json:"order_id"`
	MenuItemID uint      `gorm:"not null" json:"menu_item_id"`
	MenuItem   MenuItem  `gorm:"foreignKey:MenuItemID" json:"-"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	Price      float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
}

func (oi OrderItem) TotalPrice() float64 {
	return float64(oi.Quantity) * oi.Price
}

// NewOrderNumber builds a human-readable order number like
// ORD-250831-1f2e3d4c. Collisions are only possible through the random
// component, so a duplicate means broken randomness, not bad luck.
func NewOrderNumber() string {
	return fmt.Sprintf("ORD-%s-%s", time.Now().UTC().Format("060102"), uuid.NewString()[:8])
}
