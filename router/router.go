package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/canteen-app/controllers"
	"github.com/yeremiapane/canteen-app/middlewares"
	"github.com/yeremiapane/canteen-app/stores"
)

func SetupRouter(db *gorm.DB, inv *stores.InventoryStore, orderStore *stores.OrderStore) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	userCtrl := controllers.NewUserController(db)
	itemCtrl := controllers.NewItemController(inv)
	orderCtrl := controllers.NewOrderController(orderStore)
	notifCtrl := controllers.NewNotificationController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// Browsing needs no account
	r.GET("/items", itemCtrl.GetAllItems)
	r.GET("/items/:item_id", itemCtrl.GetItemByID)
	r.GET("/slots", orderCtrl.GetPickupSlots)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.GET("/ws", controllers.HubHandler)
		auth.GET("/profile", userCtrl.GetProfile)
		auth.GET("/notifications", notifCtrl.GetMyNotifications)

		auth.POST("/orders", orderCtrl.CreateOrder)
		auth.GET("/orders", orderCtrl.GetAllOrders)
		auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)
		auth.POST("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
	}

	// ----------------------------------------------------------------
	//                      SELLER ROUTES
	// ----------------------------------------------------------------
	seller := r.Group("/")
	seller.Use(middlewares.AuthMiddleware(), middlewares.RequireRole("seller"))
	{
		seller.POST("/items/:item_id/restock", itemCtrl.RestockItem)
		seller.POST("/items/:item_id/price", itemCtrl.UpdateItemPrice)
		seller.POST("/items/:item_id/availability", itemCtrl.ToggleItemAvailability)
		seller.GET("/inventory/low-stock", itemCtrl.GetLowStockItems)
		seller.GET("/inventory/out-of-stock", itemCtrl.GetOutOfStockItems)
		seller.GET("/dashboard/today", orderCtrl.GetTodaysOrders)
	}

	return r
}
