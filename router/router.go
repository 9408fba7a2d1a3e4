package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"restaurant-pos/controllers"
	"restaurant-pos/middlewares"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	authCtrl := controllers.NewAuthController(db)
	tableCtrl := controllers.NewTableController(db)
	menuCtrl := controllers.NewMenuItemController(db)
	orderCtrl := controllers.NewOrderController(db)
	reportCtrl := controllers.NewReportController(db)

	api := r.Group("/api")

	api.POST("/auth/register", authCtrl.Register)
	api.POST("/auth/login", authCtrl.Login)

	protected := api.Group("")
	protected.Use(middlewares.AuthMiddleware())
	{
		protected.GET("/auth/profile", authCtrl.Profile)

		protected.GET("/tables", tableCtrl.GetAllTables)
		protected.POST("/tables", tableCtrl.CreateTable)
		protected.GET("/tables/:table_id", tableCtrl.GetTableByID)
		protected.PUT("/tables/:table_id", tableCtrl.UpdateTable)
		protected.DELETE("/tables/:table_id", tableCtrl.DeleteTable)

		protected.GET("/menu-items", menuCtrl.GetAllMenuItems)
		protected.POST("/menu-items", menuCtrl.CreateMenuItem)
		protected.GET("/menu-items/:item_id", menuCtrl.GetMenuItemByID)
		protected.PUT("/menu-items/:item_id", menuCtrl.UpdateMenuItem)
		protected.DELETE("/menu-items/:item_id", menuCtrl.DeleteMenuItem)

		protected.GET("/orders", orderCtrl.GetAllOrders)
		protected.POST("/orders", orderCtrl.CreateOrder)
		protected.GET("/orders/:order_id", orderCtrl.GetOrderByID)
		protected.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
		protected.POST("/orders/:order_id/items", orderCtrl.AddOrderItems)
		protected.PATCH("/orders/:order_id/cancel", orderCtrl.CancelOrder)
		protected.DELETE("/orders/:order_id", orderCtrl.DeleteOrder)

		protected.GET("/reports/sales", reportCtrl.EmployeeSales)
		protected.GET("/reports/sales/export", reportCtrl.ExportEmployeeSales)
		protected.GET("/reports/orders", reportCtrl.OrdersSummary)
	}

	return r
}
