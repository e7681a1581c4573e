package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/yeremiapane/canteen-app/config"
	"github.com/yeremiapane/canteen-app/database"
	"github.com/yeremiapane/canteen-app/hub"
	"github.com/yeremiapane/canteen-app/middlewares"
	"github.com/yeremiapane/canteen-app/models"
	"github.com/yeremiapane/canteen-app/router"
	"github.com/yeremiapane/canteen-app/services"
	"github.com/yeremiapane/canteen-app/stores"
	"github.com/yeremiapane/canteen-app/utils"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()
}

func main() {
	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	if err := database.Seed(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to seed database: %v", err)
	}

	inv := stores.NewInventoryStore(db)
	orderStore := stores.NewOrderStore(db, inv)

	// Notification dispatch hangs off order events; the stores never call
	// the hub or the notifier directly.
	notifier := services.NewOrderNotifier(db)
	orderStore.Subscribe(notifier.HandleEvent)
	orderStore.Subscribe(func(ev stores.OrderEvent) {
		switch {
		case ev.From == "":
			hub.BroadcastOrderPlaced(ev.Order)
		case ev.To == stores.StatusReady:
			hub.BroadcastOrderReady(ev.Order)
		default:
			hub.BroadcastOrderUpdate(ev.Order)
		}
	})

	monitor := services.NewStockMonitor(inv)
	monitor.Start()
	defer monitor.Stop()

	rateLimiter := middlewares.NewRateLimiter(50, 1)

	r := router.SetupRouter(db, inv, orderStore)
	r.Use(rateLimiter.RateLimit())

	r.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.CatalogItem{},
		&models.PickupSlot{},
		&models.Order{},
		&models.Notification{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}
