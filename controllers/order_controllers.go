package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"restaurant-pos/models"
	"restaurant-pos/services"
	"restaurant-pos/utils"
)

type OrderController struct {
	Orders *services.OrderService
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{Orders: services.NewOrderService(db)}
}

func (oc *OrderController) CreateOrder(c *gin.Context) {
	employeeID, ok := employeeIDFromContext(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("employee id not found in context"))
		return
	}

	var input services.CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Orders.Create(c.Request.Context(), employeeID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Order created", toOrderResponse(order))
}

// GetAllOrders lists orders, filterable by ?status=, ?table_id=,
// ?from_date= and ?to_date= (RFC 3339).
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	filter := services.OrderFilter{
		Status: models.OrderStatus(c.Query("status")),
	}
	if v := c.Query("table_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid table_id"))
			return
		}
		filter.TableID = uint(id)
	}
	if v := c.Query("from_date"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid from_date"))
			return
		}
		filter.From = t
	}
	if v := c.Query("to_date"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid to_date"))
			return
		}
		filter.To = t
	}

	orders, err := oc.Orders.List(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		resp = append(resp, toOrderResponse(&orders[i]))
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", resp)
}

func (oc *OrderController) GetOrderByID(c *gin.Context) {
	orderID, ok := parseID(c, "order_id")
	if !ok {
		return
	}

	order, err := oc.Orders.Get(c.Request.Context(), orderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", toOrderResponse(order))
}

func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	orderID, ok := parseID(c, "order_id")
	if !ok {
		return
	}

	var body struct {
		Status models.OrderStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	status, err := oc.Orders.UpdateStatus(c.Request.Context(), orderID, body.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order status updated", gin.H{"status": status})
}

func (oc *OrderController) AddOrderItems(c *gin.Context) {
	orderID, ok := parseID(c, "order_id")
	if !ok {
		return
	}

	var body struct {
		Items []services.OrderLineInput `json:"items" binding:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Orders.AddItems(c.Request.Context(), orderID, body.Items)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Items added to order", toOrderResponse(order))
}

func (oc *OrderController) CancelOrder(c *gin.Context) {
	orderID, ok := parseID(c, "order_id")
	if !ok {
		return
	}

	if err := oc.Orders.Cancel(c.Request.Context(), orderID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order cancelled", gin.H{"status": models.OrderStatusCancelled})
}

func (oc *OrderController) DeleteOrder(c *gin.Context) {
	orderID, ok := parseID(c, "order_id")
	if !ok {
		return
	}

	if err := oc.Orders.Delete(c.Request.Context(), orderID); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order deleted", gin.H{"id": orderID})
}
