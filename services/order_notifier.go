package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yeremiapane/canteen-app/models"
	"github.com/yeremiapane/canteen-app/stores"
	"github.com/yeremiapane/canteen-app/utils"
)

// OrderNotifier turns order events into persisted buyer notifications.
// It is a plain subscriber; the order state machine knows nothing about it.
type OrderNotifier struct {
	DB *gorm.DB
}

func NewOrderNotifier(db *gorm.DB) *OrderNotifier {
	return &OrderNotifier{DB: db}
}

// HandleEvent is registered with OrderStore.Subscribe.
func (n *OrderNotifier) HandleEvent(ev stores.OrderEvent) {
	var title, message string

	switch ev.To {
	case stores.StatusConfirmed:
		title = "Order Confirmed"
		message = fmt.Sprintf("Order %s has been confirmed and is now being prepared.", ev.Order.OrderCode)
	case stores.StatusReady:
		title = "Order Ready"
		message = fmt.Sprintf("Order %s is ready for pickup at the canteen counter. Please collect it within 15 minutes.", ev.Order.OrderCode)
	case stores.StatusCompleted:
		title = "Order Completed"
		message = fmt.Sprintf("Thank you for order %s. We hope you enjoyed your meal!", ev.Order.OrderCode)
	default:
		return
	}

	buyerID := ev.Order.BuyerID
	notif := models.Notification{
		UserID:  &buyerID,
		Title:   &title,
		Message: message,
	}
	if err := n.DB.Create(&notif).Error; err != nil {
		utils.ErrorLogger.Printf("Failed to write notification for order %d: %v", ev.Order.ID, err)
	}
}
