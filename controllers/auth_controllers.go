package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"restaurant-pos/services"
	"restaurant-pos/utils"
)

type AuthController struct {
	Auth *services.AuthService
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{Auth: services.NewAuthService(db)}
}

// employeeIDFromContext reads the employee id set by the auth middleware.
func employeeIDFromContext(c *gin.Context) (uint, bool) {
	v, exists := c.Get("employee_id")
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

func (ac *AuthController) Register(c *gin.Context) {
	var input services.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	employee, err := ac.Auth.Register(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Employee registered", toEmployeeResponse(employee))
}

func (ac *AuthController) Login(c *gin.Context) {
	var input services.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	result, err := ac.Auth.Login(c.Request.Context(), input)
	if err != nil {
		if services.KindOf(err) == services.KindValidation {
			utils.RespondError(c, http.StatusUnauthorized, err)
			return
		}
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token":      result.Token,
		"expires_at": result.ExpiresAt,
		"employee":   toEmployeeResponse(&result.Employee),
	})
}

func (ac *AuthController) Profile(c *gin.Context) {
	employeeID, ok := employeeIDFromContext(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("employee id not found in context"))
		return
	}

	employee, err := ac.Auth.GetEmployee(c.Request.Context(), employeeID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Profile", toEmployeeResponse(employee))
}
