package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"restaurant-pos/config"
	"restaurant-pos/models"
	"restaurant-pos/utils"
)

// Table capacity bounds.
const (
	MinTableCapacity = 1
	MaxTableCapacity = 20
)

// CatalogService manages tables and menu items. A table's availability
// as seen by callers is a projection: the stored flag is a manual
// override ("taken out of service"), occupancy comes from active orders
// and is recomputed on every read.
type CatalogService struct {
	DB                   *gorm.DB
	caseInsensitiveNames bool
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{
		DB:                   db,
		caseInsensitiveNames: config.NamesCaseInsensitive(),
	}
}

// TableInfo is a table with its projected availability and, when
// occupied, the active order.
type TableInfo struct {
	Table        models.Table
	IsAvailable  bool
	CurrentOrder *models.Order
}

type CreateTableInput struct {
	Name        string `json:"name" binding:"required,max=100"`
	Capacity    int    `json:"capacity" binding:"required,min=1,max=20"`
	Description string `json:"description" binding:"max=500"`
}

type UpdateTableInput struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Capacity    *int    `json:"capacity" binding:"omitempty,min=1,max=20"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	IsAvailable *bool   `json:"is_available"`
}

type CreateMenuItemInput struct {
	Name        string          `json:"name" binding:"required,max=100"`
	Kind        models.ItemKind `json:"kind" binding:"required"`
	Price       float64         `json:"price" binding:"required,gt=0"`
	Description string          `json:"description" binding:"max=500"`
	ImageUrl    string          `json:"image_url" binding:"omitempty,url,max=200"`
}

type UpdateMenuItemInput struct {
	Name        *string          `json:"name" binding:"omitempty,max=100"`
	Kind        *models.ItemKind `json:"kind"`
	Price       *float64         `json:"price" binding:"omitempty,gt=0"`
	Description *string          `json:"description" binding:"omitempty,max=500"`
	ImageUrl    *string          `json:"image_url" binding:"omitempty,url,max=200"`
	IsAvailable *bool            `json:"is_available"`
}

// nameTaken probes name uniqueness among non-deleted rows of the given
// model, honoring the configured case sensitivity. excludeID skips the
// row being updated.
func (s *CatalogService) nameTaken(db *gorm.DB, model interface{}, name string, excludeID uint) (bool, error) {
	query := db.Model(model).Where("is_deleted = ?", false)
	if s.caseInsensitiveNames {
		query = query.Where("LOWER(name) = LOWER(?)", name)
	} else {
		query = query.Where("name = ?", name)
	}
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *CatalogService) activeOrderCount(db *gorm.DB, tableID uint) (int64, error) {
	var count int64
	err := db.Model(&models.Order{}).
		Where("table_id = ? AND is_deleted = ? AND status IN ?", tableID, false, models.ActiveStatuses()).
		Count(&count).Error
	return count, err
}

func (s *CatalogService) CreateTable(ctx context.Context, input CreateTableInput) (*models.Table, error) {
	if input.Capacity < MinTableCapacity || input.Capacity > MaxTableCapacity {
		return nil, Validationf("capacity must be between %d and %d", MinTableCapacity, MaxTableCapacity)
	}

	var table *models.Table
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := s.nameTaken(tx, &models.Table{}, input.Name, 0)
		if err != nil {
			return err
		}
		if taken {
			return Conflictf("table name %q already exists", input.Name)
		}

		table = &models.Table{
			Name:        input.Name,
			Capacity:    input.Capacity,
			Description: input.Description,
			IsAvailable: true,
		}
		return tx.Create(table).Error
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Table %q created (capacity=%d)", table.Name, table.Capacity)
	return table, nil
}

// GetTable returns a table with its projected availability.
func (s *CatalogService) GetTable(ctx context.Context, tableID uint) (*TableInfo, error) {
	var table models.Table
	err := s.DB.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", tableID, false).
		First(&table).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundf("table %d not found", tableID)
		}
		return nil, err
	}

	infos, err := s.project(ctx, []models.Table{table})
	if err != nil {
		return nil, err
	}
	return &infos[0], nil
}

// ListTables lists non-deleted tables with projected availability.
// includeUnavailable also returns tables whose stored flag is off.
func (s *CatalogService) ListTables(ctx context.Context, includeUnavailable bool) ([]TableInfo, error) {
	query := s.DB.WithContext(ctx).Where("is_deleted = ?", false)
	if !includeUnavailable {
		query = query.Where("is_available = ?", true)
	}

	var tables []models.Table
	if err := query.Order("name").Find(&tables).Error; err != nil {
		return nil, err
	}
	return s.project(ctx, tables)
}

// project computes effective availability for each table from its
// newest active order. Nothing is written back: occupancy lives in the
// orders, not on the table row.
func (s *CatalogService) project(ctx context.Context, tables []models.Table) ([]TableInfo, error) {
	ids := make([]uint, len(tables))
	for i, t := range tables {
		ids[i] = t.ID
	}

	var activeOrders []models.Order
	if len(ids) > 0 {
		err := s.DB.WithContext(ctx).
			Preload("Items.MenuItem").
			Preload("Employee").
			Where("table_id IN ? AND is_deleted = ? AND status IN ?", ids, false, models.ActiveStatuses()).
			Order("created_at DESC").
			Find(&activeOrders).Error
		if err != nil {
			return nil, err
		}
	}

	currentByTable := make(map[uint]*models.Order, len(activeOrders))
	for i := range activeOrders {
		order := &activeOrders[i]
		if _, ok := currentByTable[order.TableID]; !ok {
			currentByTable[order.TableID] = order
		}
	}

	infos := make([]TableInfo, len(tables))
	for i, t := range tables {
		current := currentByTable[t.ID]
		infos[i] = TableInfo{
			Table:        t,
			IsAvailable:  t.IsAvailable && current == nil,
			CurrentOrder: current,
		}
	}
	return infos, nil
}

func (s *CatalogService) UpdateTable(ctx context.Context, tableID uint, input UpdateTableInput) (*models.Table, error) {
	var table models.Table
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND is_deleted = ?", tableID, false).First(&table).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundf("table %d not found", tableID)
			}
			return err
		}

		if input.Name != nil && *input.Name != table.Name {
			taken, err := s.nameTaken(tx, &models.Table{}, *input.Name, table.ID)
			if err != nil {
				return err
			}
			if taken {
				return Conflictf("table name %q already exists", *input.Name)
			}
			table.Name = *input.Name
		}
		if input.Capacity != nil {
			if *input.Capacity < MinTableCapacity || *input.Capacity > MaxTableCapacity {
				return Validationf("capacity must be between %d and %d", MinTableCapacity, MaxTableCapacity)
			}
			table.Capacity = *input.Capacity
		}
		if input.Description != nil {
			table.Description = *input.Description
		}
		if input.IsAvailable != nil && *input.IsAvailable != table.IsAvailable {
			// Taking a table out of service is always allowed. Putting
			// it back requires the active order to be gone first.
			if *input.IsAvailable {
				active, err := s.activeOrderCount(tx, table.ID)
				if err != nil {
					return err
				}
				if active > 0 {
					return Validationf("cannot mark table as available with an active order")
				}
			}
			table.IsAvailable = *input.IsAvailable
		}

		return tx.Save(&table).Error
	})
	if err != nil {
		return nil, err
	}
	return &table, nil
}

func (s *CatalogService) DeleteTable(ctx context.Context, tableID uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var table models.Table
		if err := tx.Where("id = ? AND is_deleted = ?", tableID, false).First(&table).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundf("table %d not found", tableID)
			}
			return err
		}

		active, err := s.activeOrderCount(tx, table.ID)
		if err != nil {
			return err
		}
		if active > 0 {
			return Conflictf("cannot delete a table with an active order")
		}
		return tx.Model(&table).Update("is_deleted", true).Error
	})
}

func (s *CatalogService) CreateMenuItem(ctx context.Context, input CreateMenuItemInput) (*models.MenuItem, error) {
	if !input.Kind.Valid() {
		return nil, Validationf("unknown item kind %q", input.Kind)
	}
	if input.Price <= 0 {
		return nil, Validationf("price must be positive")
	}

	var item *models.MenuItem
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := s.nameTaken(tx, &models.MenuItem{}, input.Name, 0)
		if err != nil {
			return err
		}
		if taken {
			return Conflictf("menu item name %q already exists", input.Name)
		}

		item = &models.MenuItem{
			Name:        input.Name,
			Kind:        input.Kind,
			Price:       input.Price,
			Description: input.Description,
			ImageUrl:    input.ImageUrl,
			IsAvailable: true,
		}
		return tx.Create(item).Error
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Menu item %q created (%s, %.2f)", item.Name, item.Kind, item.Price)
	return item, nil
}

func (s *CatalogService) GetMenuItem(ctx context.Context, itemID uint) (*models.MenuItem, error) {
	var item models.MenuItem
	err := s.DB.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", itemID, false).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundf("menu item %d not found", itemID)
		}
		return nil, err
	}
	return &item, nil
}

func (s *CatalogService) ListMenuItems(ctx context.Context, kind models.ItemKind, availableOnly bool) ([]models.MenuItem, error) {
	query := s.DB.WithContext(ctx).Where("is_deleted = ?", false)
	if kind != "" {
		if !kind.Valid() {
			return nil, Validationf("unknown item kind %q", kind)
		}
		query = query.Where("kind = ?", kind)
	}
	if availableOnly {
		query = query.Where("is_available = ?", true)
	}

	var items []models.MenuItem
	if err := query.Order("name").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *CatalogService) UpdateMenuItem(ctx context.Context, itemID uint, input UpdateMenuItemInput) (*models.MenuItem, error) {
	var item models.MenuItem
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND is_deleted = ?", itemID, false).First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundf("menu item %d not found", itemID)
			}
			return err
		}

		if input.Name != nil && *input.Name != item.Name {
			taken, err := s.nameTaken(tx, &models.MenuItem{}, *input.Name, item.ID)
			if err != nil {
				return err
			}
			if taken {
				return Conflictf("menu item name %q already exists", *input.Name)
			}
			item.Name = *input.Name
		}
		if input.Kind != nil {
			if !input.Kind.Valid() {
				return Validationf("unknown item kind %q", *input.Kind)
			}
			item.Kind = *input.Kind
		}
		if input.Price != nil {
			if *input.Price <= 0 {
				return Validationf("price must be positive")
			}
			// Existing order lines keep their snapshot price.
			item.Price = *input.Price
		}
		if input.Description != nil {
			item.Description = *input.Description
		}
		if input.ImageUrl != nil {
			item.ImageUrl = *input.ImageUrl
		}
		if input.IsAvailable != nil {
			item.IsAvailable = *input.IsAvailable
		}

		return tx.Save(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *CatalogService) DeleteMenuItem(ctx context.Context, itemID uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.MenuItem
		if err := tx.Where("id = ? AND is_deleted = ?", itemID, false).First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundf("menu item %d not found", itemID)
			}
			return err
		}
		return tx.Model(&item).Update("is_deleted", true).Error
	})
}
