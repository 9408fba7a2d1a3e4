package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"restaurant-pos/models"
	"restaurant-pos/utils"
)

// Quantity bounds for a single order line.
const (
	MinLineQuantity = 1
	MaxLineQuantity = 100
)

// OrderService owns the order lifecycle: creation, item additions,
// status transitions and soft deletion. Every mutation runs as a single
// transaction so a cancelled request leaves no partial state.
type OrderService struct {
	DB *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{DB: db}
}

type OrderLineInput struct {
	MenuItemID uint `json:"menu_item_id" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required,min=1,max=100"`
}

type CreateOrderInput struct {
	TableID uint             `json:"table_id" binding:"required"`
	Note    string           `json:"note" binding:"max=500"`
	Items   []OrderLineInput `json:"items" binding:"required,min=1,dive"`
}

type OrderFilter struct {
	Status  models.OrderStatus
	TableID uint
	From    time.Time
	To      time.Time
}

// lockForUpdate adds a row lock where the dialect supports it. SQLite
// has a single writer, its transactions already serialize.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

func validateLines(lines []OrderLineInput) error {
	if len(lines) == 0 {
		return Validationf("order must contain at least one item")
	}
	for _, l := range lines {
		if l.Quantity < MinLineQuantity || l.Quantity > MaxLineQuantity {
			return Validationf("quantity must be between %d and %d", MinLineQuantity, MaxLineQuantity)
		}
	}
	return nil
}

// loadMenuItems fetches the non-deleted menu items for the given lines.
// Missing ids are reported by id, unavailable items by name, matching
// what a waiter needs to read back to the customer.
func loadMenuItems(tx *gorm.DB, lines []OrderLineInput) (map[uint]models.MenuItem, error) {
	ids := make([]uint, 0, len(lines))
	seen := make(map[uint]bool, len(lines))
	for _, l := range lines {
		if !seen[l.MenuItemID] {
			seen[l.MenuItemID] = true
			ids = append(ids, l.MenuItemID)
		}
	}

	var items []models.MenuItem
	if err := tx.Where("id IN ? AND is_deleted = ?", ids, false).Find(&items).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]models.MenuItem, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}

	var missing []string
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			missing = append(missing, fmt.Sprintf("%d", id))
		}
	}
	if len(missing) > 0 {
		return nil, Validationf("menu items not found: %s", strings.Join(missing, ", "))
	}

	var unavailable []string
	for _, id := range ids {
		if it := byID[id]; !it.IsAvailable {
			unavailable = append(unavailable, it.Name)
		}
	}
	if len(unavailable) > 0 {
		return nil, Validationf("menu items are not available: %s", strings.Join(unavailable, ", "))
	}
	return byID, nil
}

// Create opens a new pending order on a free table, snapshotting each
// item's current price into its line.
func (s *OrderService) Create(ctx context.Context, employeeID uint, input CreateOrderInput) (*models.Order, error) {
	if err := validateLines(input.Items); err != nil {
		return nil, err
	}

	var order *models.Order
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var employee models.Employee
		if err := tx.Where("id = ? AND is_deleted = ?", employeeID, false).First(&employee).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundf("employee %d not found", employeeID)
			}
			return err
		}

		// Table existence and availability come before menu item
		// validation so the caller hears about the table first.
		var table models.Table
		if err := lockForUpdate(tx).
			Where("id = ? AND is_deleted = ?", input.TableID, false).
			First(&table).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundf("table %d not found", input.TableID)
			}
			return err
		}
		if !table.IsAvailable {
			return Conflictf("table %q is not available", table.Name)
		}

		var active int64
		if err := tx.Model(&models.Order{}).
			Where("table_id = ? AND is_deleted = ? AND status IN ?", table.ID, false, models.ActiveStatuses()).
			Count(&active).Error; err != nil {
			return err
		}
		if active > 0 {
			return Conflictf("table %q already has an active order", table.Name)
		}

		menuItems, err := loadMenuItems(tx, input.Items)
		if err != nil {
			return err
		}

		order = &models.Order{
			Number:     models.NewOrderNumber(),
			TableID:    table.ID,
			EmployeeID: employee.ID,
			Status:     models.OrderStatusPending,
			Note:       input.Note,
		}
		for _, line := range input.Items {
			item := menuItems[line.MenuItemID]
			order.Items = append(order.Items, models.OrderItem{
				MenuItemID: item.ID,
				Quantity:   line.Quantity,
				Price:      item.Price,
			})
			order.TotalAmount += float64(line.Quantity) * item.Price
		}

		// The random component makes collisions practically impossible;
		// hitting one means the generator is broken, so abort.
		var dup int64
		if err := tx.Model(&models.Order{}).Where("number = ?", order.Number).Count(&dup).Error; err != nil {
			return err
		}
		if dup > 0 {
			return Integrityf("order number collision on %s", order.Number)
		}

		return tx.Create(order).Error
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Order %s created on table %d (total=%.2f)", order.Number, order.TableID, order.TotalAmount)
	return s.Get(ctx, order.ID)
}

// AddItems appends new lines to an open order. Lines are never merged:
// re-ordering the same menu item produces a new row.
func (s *OrderService) AddItems(ctx context.Context, orderID uint, lines []OrderLineInput) (*models.Order, error) {
	if err := validateLines(lines); err != nil {
		return nil, err
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := lockForUpdate(tx).
			Where("id = ? AND is_deleted = ?", orderID, false).
			First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundf("order %d not found", orderID)
			}
			return err
		}
		if order.Status.IsFinal() {
			return Validationf("cannot add items to a %s order", order.Status)
		}

		menuItems, err := loadMenuItems(tx, lines)
		if err != nil {
			return err
		}

		var added float64
		for _, line := range lines {
			item := menuItems[line.MenuItemID]
			orderItem := models.OrderItem{
				OrderID:    order.ID,
				MenuItemID: item.ID,
				Quantity:   line.Quantity,
				Price:      item.Price,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}
			added += orderItem.TotalPrice()
		}

		// Incremental update inside the same transaction keeps
		// TotalAmount equal to the sum of all lines under concurrency.
		return tx.Model(&models.Order{}).
			Where("id = ?", order.ID).
			Update("total_amount", gorm.Expr("total_amount + ?", added)).Error
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, orderID)
}

// UpdateStatus applies the state machine and returns the new status.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uint, next models.OrderStatus) (models.OrderStatus, error) {
	if !next.Valid() {
		return "", Validationf("unknown order status %q", next)
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := lockForUpdate(tx).
			Where("id = ? AND is_deleted = ?", orderID, false).
			First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundf("order %d not found", orderID)
			}
			return err
		}
		if !order.Status.CanTransitionTo(next) {
			return &InvalidTransitionError{Current: order.Status, Requested: next}
		}
		return tx.Model(&order).Update("status", next).Error
	})
	if err != nil {
		return "", err
	}

	utils.InfoLogger.Printf("Order %d moved to %s", orderID, next)
	return next, nil
}

// Cancel is UpdateStatus(id, cancelled) with friendlier rejections.
func (s *OrderService) Cancel(ctx context.Context, orderID uint) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := lockForUpdate(tx).
			Where("id = ? AND is_deleted = ?", orderID, false).
			First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundf("order %d not found", orderID)
			}
			return err
		}
		switch order.Status {
		case models.OrderStatusCompleted:
			return Validationf("cannot cancel a completed order")
		case models.OrderStatusCancelled:
			return Validationf("order is already cancelled")
		}
		return tx.Model(&order).Update("status", models.OrderStatusCancelled).Error
	})
	if err != nil {
		return err
	}

	utils.InfoLogger.Printf("Order %d cancelled", orderID)
	return nil
}

// Delete soft-deletes a pending order. Anything past pending is part of
// the kitchen's history and stays.
func (s *OrderService) Delete(ctx context.Context, orderID uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := lockForUpdate(tx).
			Where("id = ? AND is_deleted = ?", orderID, false).
			First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundf("order %d not found", orderID)
			}
			return err
		}
		if order.Status != models.OrderStatusPending {
			return Validationf("only pending orders can be deleted")
		}
		return tx.Model(&order).Update("is_deleted", true).Error
	})
}

func (s *OrderService) Get(ctx context.Context, orderID uint) (*models.Order, error) {
	var order models.Order
	err := s.DB.WithContext(ctx).
		Preload("Items.MenuItem").
		Preload("Table").
		Preload("Employee").
		Where("id = ? AND is_deleted = ?", orderID, false).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundf("order %d not found", orderID)
		}
		return nil, err
	}
	return &order, nil
}

func (s *OrderService) List(ctx context.Context, filter OrderFilter) ([]models.Order, error) {
	query := s.DB.WithContext(ctx).
		Preload("Items.MenuItem").
		Preload("Table").
		Preload("Employee").
		Where("is_deleted = ?", false)

	if filter.Status != "" {
		if !filter.Status.Valid() {
			return nil, Validationf("unknown order status %q", filter.Status)
		}
		query = query.Where("status = ?", filter.Status)
	}
	if filter.TableID != 0 {
		query = query.Where("table_id = ?", filter.TableID)
	}
	if !filter.From.IsZero() {
		query = query.Where("created_at >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		query = query.Where("created_at < ?", filter.To)
	}

	var orders []models.Order
	if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
