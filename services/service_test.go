package services

import (
	"context"
	"os"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"restaurant-pos/models"
	"restaurant-pos/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&models.Employee{},
		&models.Table{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func seedEmployee(t *testing.T, db *gorm.DB, username string) *models.Employee {
	t.Helper()
	employee := &models.Employee{
		FullName:     "Test Employee",
		Username:     username,
		PasswordHash: "x",
	}
	if err := db.Create(employee).Error; err != nil {
		t.Fatalf("failed to seed employee: %v", err)
	}
	return employee
}

func seedTable(t *testing.T, db *gorm.DB, name string) *models.Table {
	t.Helper()
	table := &models.Table{Name: name, Capacity: 4, IsAvailable: true}
	if err := db.Create(table).Error; err != nil {
		t.Fatalf("failed to seed table: %v", err)
	}
	return table
}

func seedMenuItem(t *testing.T, db *gorm.DB, name string, price float64) *models.MenuItem {
	t.Helper()
	item := &models.MenuItem{
		Name:        name,
		Kind:        models.ItemKindMainCourse,
		Price:       price,
		IsAvailable: true,
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("failed to seed menu item: %v", err)
	}
	return item
}

func ctx() context.Context {
	return context.Background()
}
