package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"

	"restaurant-pos/models"
	"restaurant-pos/services"
	"restaurant-pos/utils"
)

type EmployeeResponse struct {
	ID        uint      `json:"id"`
	FullName  string    `json:"full_name"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

type TableResponse struct {
	ID           uint           `json:"id"`
	Name         string         `json:"name"`
	Capacity     int            `json:"capacity"`
	Description  string         `json:"description,omitempty"`
	IsAvailable  bool           `json:"is_available"`
	CreatedAt    time.Time      `json:"created_at"`
	CurrentOrder *OrderResponse `json:"current_order,omitempty"`
}

type OrderItemResponse struct {
	ID           uint    `json:"id"`
	MenuItemID   uint    `json:"menu_item_id"`
	MenuItemName string  `json:"menu_item_name"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
	TotalPrice   float64 `json:"total_price"`
}

type OrderResponse struct {
	ID           uint                `json:"id"`
	Number       string              `json:"number"`
	TableID      uint                `json:"table_id"`
	TableName    string              `json:"table_name"`
	EmployeeID   uint                `json:"employee_id"`
	EmployeeName string              `json:"employee_name"`
	Status       models.OrderStatus  `json:"status"`
	Note         string              `json:"note,omitempty"`
	TotalAmount  float64             `json:"total_amount"`
	CreatedAt    time.Time           `json:"created_at"`
	Items        []OrderItemResponse `json:"items"`
}

func toEmployeeResponse(employee *models.Employee) EmployeeResponse {
	var resp EmployeeResponse
	copier.Copy(&resp, employee)
	return resp
}

func toTableResponse(info *services.TableInfo) TableResponse {
	var resp TableResponse
	copier.Copy(&resp, &info.Table)
	resp.IsAvailable = info.IsAvailable
	if info.CurrentOrder != nil {
		order := toOrderResponse(info.CurrentOrder)
		order.TableName = info.Table.Name
		resp.CurrentOrder = &order
	}
	return resp
}

func toOrderResponse(order *models.Order) OrderResponse {
	resp := OrderResponse{
		ID:           order.ID,
		Number:       order.Number,
		TableID:      order.TableID,
		TableName:    order.Table.Name,
		EmployeeID:   order.EmployeeID,
		EmployeeName: order.Employee.FullName,
		Status:       order.Status,
		Note:         order.Note,
		TotalAmount:  order.TotalAmount,
		CreatedAt:    order.CreatedAt,
		Items:        make([]OrderItemResponse, 0, len(order.Items)),
	}
	for _, item := range order.Items {
		resp.Items = append(resp.Items, OrderItemResponse{
			ID:           item.ID,
			MenuItemID:   item.MenuItemID,
			MenuItemName: item.MenuItem.Name,
			Quantity:     item.Quantity,
			Price:        item.Price,
			TotalPrice:   item.TotalPrice(),
		})
	}
	return resp
}

// respondServiceError maps the service error taxonomy onto HTTP codes.
// Anything unclassified is an infrastructure failure and stays opaque.
func respondServiceError(c *gin.Context, err error) {
	switch services.KindOf(err) {
	case services.KindNotFound:
		utils.RespondError(c, http.StatusNotFound, err)
	case services.KindConflict:
		utils.RespondError(c, http.StatusConflict, err)
	case services.KindValidation, services.KindInvalidTransition:
		utils.RespondError(c, http.StatusBadRequest, err)
	case services.KindIntegrity:
		utils.ErrorLogger.Printf("Integrity violation: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, err)
	default:
		utils.ErrorLogger.Printf("Unexpected error: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
	}
}
