package services

import (
	"fmt"
	"time"

	"github.com/yeremiapane/canteen-app/hub"
	"github.com/yeremiapane/canteen-app/stores"
	"github.com/yeremiapane/canteen-app/utils"
)

// StockMonitor periodically sweeps the catalog and alerts seller screens
// when an item newly drops to low or zero stock.
type StockMonitor struct {
	Inv      *stores.InventoryStore
	StopChan chan struct{}
	Interval time.Duration

	alerted map[uint]string // item id -> "low" | "out"
}

func NewStockMonitor(inv *stores.InventoryStore) *StockMonitor {
	return &StockMonitor{
		Inv:      inv,
		StopChan: make(chan struct{}),
		Interval: 30 * time.Second,
		alerted:  make(map[uint]string),
	}
}

func (sm *StockMonitor) Start() {
	go func() {
		ticker := time.NewTicker(sm.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				sm.sweep()
			case <-sm.StopChan:
				return
			}
		}
	}()
}

func (sm *StockMonitor) Stop() {
	close(sm.StopChan)
}

func (sm *StockMonitor) sweep() {
	current := make(map[uint]string)

	low, err := sm.Inv.LowStockItems()
	if err != nil {
		utils.ErrorLogger.Printf("Stock sweep failed: %v", err)
		return
	}
	for _, item := range low {
		current[item.ID] = "low"
		if sm.alerted[item.ID] != "low" {
			hub.BroadcastStockUpdate(item)
			hub.BroadcastSellerNotification(
				fmt.Sprintf("%s is running low: %d of %d left", item.Name, item.Inventory, item.MaxInventory))
		}
	}

	out, err := sm.Inv.OutOfStockItems()
	if err != nil {
		utils.ErrorLogger.Printf("Stock sweep failed: %v", err)
		return
	}
	for _, item := range out {
		current[item.ID] = "out"
		if sm.alerted[item.ID] != "out" {
			hub.BroadcastStockUpdate(item)
			hub.BroadcastSellerNotification(
				fmt.Sprintf("%s is out of stock", item.Name))
		}
	}

	sm.alerted = current
}
