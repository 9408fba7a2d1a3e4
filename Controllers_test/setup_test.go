package Controllers_test

import (
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"restaurant-pos/models"
	"restaurant-pos/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
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

// authAs stands in for the JWT middleware on protected routes.
func authAs(employeeID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("employee_id", employeeID)
		c.Next()
	}
}

func seedEmployee(t *testing.T, db *gorm.DB, username string) *models.Employee {
	t.Helper()
	hash, err := utils.HashPassword("secret-password")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	employee := &models.Employee{
		FullName:     "Test Employee",
		Username:     username,
		PasswordHash: hash,
	}
	if err := db.Create(employee).Error; err != nil {
		t.Fatalf("seed employee: %v", err)
	}
	return employee
}

func seedTable(t *testing.T, db *gorm.DB, name string) *models.Table {
	t.Helper()
	table := &models.Table{Name: name, Capacity: 4, IsAvailable: true}
	if err := db.Create(table).Error; err != nil {
		t.Fatalf("seed table: %v", err)
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
		t.Fatalf("seed menu item: %v", err)
	}
	return item
}
