package hub

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/yeremiapane/canteen-app/models"
)

// Event types
const (
	EventOrderPlaced  = "order_placed"
	EventOrderUpdate  = "order_update"
	EventOrderReady   = "order_ready"
	EventStockUpdate  = "stock_update"
	EventSellerNotif  = "seller_notification"
	EventCatalogPatch = "catalog_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds every connected client (buyers tracking their orders, sellers
// watching the counter) keyed by role.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

var canteenHub = Hub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient adds a connection with its role.
func RegisterClient(conn *websocket.Conn, role string) {
	canteenHub.mutex.Lock()
	defer canteenHub.mutex.Unlock()
	canteenHub.clients[conn] = role
}

// UnregisterClient drops and closes a connection.
func UnregisterClient(conn *websocket.Conn) {
	canteenHub.mutex.Lock()
	defer canteenHub.mutex.Unlock()
	delete(canteenHub.clients, conn)
	conn.Close()
}

// BroadcastOrderPlaced announces a new pending order to seller screens.
func BroadcastOrderPlaced(order models.Order) {
	broadcast(Message{
		Event: EventOrderPlaced,
		Data:  order,
	})
}

// BroadcastOrderUpdate pushes any status change.
func BroadcastOrderUpdate(order models.Order) {
	broadcast(Message{
		Event: EventOrderUpdate,
		Data:  order,
	})
}

// BroadcastOrderReady is the distinct ready-for-pickup signal the buyer
// screens key their alert on.
func BroadcastOrderReady(order models.Order) {
	broadcast(Message{
		Event: EventOrderReady,
		Data:  order,
	})
}

// BroadcastStockUpdate pushes an item whose inventory or availability
// changed.
func BroadcastStockUpdate(item models.CatalogItem) {
	broadcast(Message{
		Event: EventStockUpdate,
		Data:  item,
	})
}

// BroadcastSellerNotification sends a plain text notice to seller screens.
func BroadcastSellerNotification(message string) {
	broadcast(Message{
		Event: EventSellerNotif,
		Data:  message,
	})
}

// BroadcastCatalogUpdate pushes a price or availability change to browsing
// clients.
func BroadcastCatalogUpdate(item models.CatalogItem) {
	broadcast(Message{
		Event: EventCatalogPatch,
		Data:  item,
	})
}

func broadcast(msg Message) {
	canteenHub.mutex.Lock()
	defer canteenHub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	for conn := range canteenHub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("Error sending message to client: %v", err)
			continue
		}
	}
}
