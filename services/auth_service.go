package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"restaurant-pos/models"
	"restaurant-pos/utils"
)

// AuthService is the identity gateway: employee registration, credential
// verification and token issuance.
type AuthService struct {
	DB *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{DB: db}
}

type RegisterInput struct {
	FullName string `json:"full_name" binding:"required,max=100"`
	Username string `json:"username" binding:"required,max=50"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Employee  models.Employee
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.Employee, error) {
	if len(input.Password) < 8 {
		return nil, Validationf("password must be at least 8 characters")
	}

	var employee *models.Employee
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Employee{}).
			Where("username = ? AND is_deleted = ?", input.Username, false).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return Conflictf("username %q already exists", input.Username)
		}

		digest, err := utils.HashPassword(input.Password)
		if err != nil {
			return err
		}

		employee = &models.Employee{
			FullName:     input.FullName,
			Username:     input.Username,
			PasswordHash: digest,
		}
		return tx.Create(employee).Error
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Employee registered: %s", employee.Username)
	return employee, nil
}

// Login verifies credentials and issues a token. Unknown username and
// wrong password produce the same error.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	var employee models.Employee
	err := s.DB.WithContext(ctx).
		Where("username = ? AND is_deleted = ?", input.Username, false).
		First(&employee).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, Validationf("invalid username or password")
		}
		return nil, err
	}

	if !utils.CheckPassword(input.Password, employee.PasswordHash) {
		return nil, Validationf("invalid username or password")
	}

	token, expiresAt, err := utils.GenerateToken(&employee)
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Employee %s logged in", employee.Username)
	return &LoginResult{Token: token, ExpiresAt: expiresAt, Employee: employee}, nil
}

func (s *AuthService) GetEmployee(ctx context.Context, employeeID uint) (*models.Employee, error) {
	var employee models.Employee
	err := s.DB.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", employeeID, false).
		First(&employee).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundf("employee %d not found", employeeID)
		}
		return nil, err
	}
	return &employee, nil
}
