package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"restaurant-pos/controllers"
)

func setupOrderRouter(db *gorm.DB, employeeID uint) *gin.Engine {
	router := gin.New()
	orderCtrl := controllers.NewOrderController(db)
	authed := router.Group("/", authAs(employeeID))
	authed.POST("/orders", orderCtrl.CreateOrder)
	authed.GET("/orders", orderCtrl.GetAllOrders)
	authed.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	authed.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
	authed.POST("/orders/:order_id/items", orderCtrl.AddOrderItems)
	authed.PATCH("/orders/:order_id/cancel", orderCtrl.CancelOrder)
	authed.DELETE("/orders/:order_id", orderCtrl.DeleteOrder)
	return router
}

func TestCreateOrderEndpoint(t *testing.T) {
	db := setupTestDB(t)
	employee := seedEmployee(t, db, "waiter1")
	table := seedTable(t, db, "T1")
	stew := seedMenuItem(t, db, "Beef Stew", 12.50)
	tea := seedMenuItem(t, db, "Iced Tea", 3.00)

	router := setupOrderRouter(db, employee.ID)

	w := postJSON(t, router, "/orders", gin.H{
		"table_id": table.ID,
		"note":     "no onions",
		"items": []gin.H{
			{"menu_item_id": stew.ID, "quantity": 2},
			{"menu_item_id": tea.ID, "quantity": 1},
		},
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Order created", response["message"])
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "pending", data["status"])
	assert.Equal(t, 28.00, data["total_amount"])
	assert.Equal(t, "T1", data["table_name"])
	assert.Len(t, data["items"].([]interface{}), 2)

	// The table is now occupied, a second order is rejected.
	w = postJSON(t, router, "/orders", gin.H{
		"table_id": table.ID,
		"items":    []gin.H{{"menu_item_id": tea.ID, "quantity": 1}},
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Unknown menu item.
	w = postJSON(t, router, "/orders", gin.H{
		"table_id": seedTable(t, db, "T2").ID,
		"items":    []gin.H{{"menu_item_id": 999, "quantity": 1}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderStatusEndpoints(t *testing.T) {
	db := setupTestDB(t)
	employee := seedEmployee(t, db, "waiter1")
	table := seedTable(t, db, "T1")
	stew := seedMenuItem(t, db, "Beef Stew", 12.50)

	router := setupOrderRouter(db, employee.ID)

	w := postJSON(t, router, "/orders", gin.H{
		"table_id": table.ID,
		"items":    []gin.H{{"menu_item_id": stew.ID, "quantity": 1}},
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	orderID := uint(response["data"].(map[string]interface{})["id"].(float64))
	statusURL := fmt.Sprintf("/orders/%d/status", orderID)

	patchStatus := func(status string) *httptest.ResponseRecorder {
		payload, _ := json.Marshal(gin.H{"status": status})
		req, _ := http.NewRequest("PATCH", statusURL, bytes.NewBuffer(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	// Pending cannot jump straight to completed.
	assert.Equal(t, http.StatusBadRequest, patchStatus("completed").Code)
	assert.Equal(t, http.StatusOK, patchStatus("in_progress").Code)
	assert.Equal(t, http.StatusOK, patchStatus("completed").Code)

	// Completed orders cannot be cancelled.
	req, _ := http.NewRequest("PATCH", fmt.Sprintf("/orders/%d/cancel", orderID), nil)
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req)
	assert.Equal(t, http.StatusBadRequest, w2.Code)

	// Nor deleted.
	req, _ = http.NewRequest("DELETE", fmt.Sprintf("/orders/%d", orderID), nil)
	w2 = httptest.NewRecorder()
	router.ServeHTTP(w2, req)
	assert.Equal(t, http.StatusBadRequest, w2.Code)
}

func TestAddOrderItemsEndpoint(t *testing.T) {
	db := setupTestDB(t)
	employee := seedEmployee(t, db, "waiter1")
	table := seedTable(t, db, "T1")
	stew := seedMenuItem(t, db, "Beef Stew", 12.50)
	tea := seedMenuItem(t, db, "Iced Tea", 3.00)

	router := setupOrderRouter(db, employee.ID)

	w := postJSON(t, router, "/orders", gin.H{
		"table_id": table.ID,
		"items":    []gin.H{{"menu_item_id": stew.ID, "quantity": 1}},
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	orderID := uint(response["data"].(map[string]interface{})["id"].(float64))

	w = postJSON(t, router, fmt.Sprintf("/orders/%d/items", orderID), gin.H{
		"items": []gin.H{{"menu_item_id": tea.ID, "quantity": 2}},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, 18.50, data["total_amount"])
	assert.Len(t, data["items"].([]interface{}), 2)

	// Empty item list fails binding.
	w = postJSON(t, router, fmt.Sprintf("/orders/%d/items", orderID), gin.H{
		"items": []gin.H{},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetOrderEndpoints(t *testing.T) {
	db := setupTestDB(t)
	employee := seedEmployee(t, db, "waiter1")
	table := seedTable(t, db, "T1")
	stew := seedMenuItem(t, db, "Beef Stew", 12.50)

	router := setupOrderRouter(db, employee.ID)

	w := postJSON(t, router, "/orders", gin.H{
		"table_id": table.ID,
		"items":    []gin.H{{"menu_item_id": stew.ID, "quantity": 1}},
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	req, _ := http.NewRequest("GET", "/orders?status=pending", nil)
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req)
	assert.Equal(t, http.StatusOK, w2.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w2.Body.Bytes(), &response))
	assert.Len(t, response["data"].([]interface{}), 1)

	req, _ = http.NewRequest("GET", "/orders/999", nil)
	w2 = httptest.NewRecorder()
	router.ServeHTTP(w2, req)
	assert.Equal(t, http.StatusNotFound, w2.Code)

	req, _ = http.NewRequest("GET", "/orders/not-a-number", nil)
	w2 = httptest.NewRecorder()
	router.ServeHTTP(w2, req)
	assert.Equal(t, http.StatusBadRequest, w2.Code)
}
