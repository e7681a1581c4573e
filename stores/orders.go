package stores

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yeremiapane/canteen-app/models"
)

// ServiceCharge is the flat per-order fee added to every total.
const ServiceCharge = 2.00

// MaxQuantityPerOrder caps a single order regardless of remaining stock.
const MaxQuantityPerOrder = 10

// OrderEvent describes an order entering a status. From is empty for the
// initial placement.
type OrderEvent struct {
	Order models.Order
	From  Status
	To    Status
}

// OrderStore owns the order ledger. Placement coordinates with the
// InventoryStore so the stock check and the decrement happen in one
// critical section and one transaction.
type OrderStore struct {
	db  *gorm.DB
	inv *InventoryStore
	mu  sync.Mutex

	subMu sync.RWMutex
	subs  []func(OrderEvent)
}

func NewOrderStore(db *gorm.DB, inv *InventoryStore) *OrderStore {
	return &OrderStore{db: db, inv: inv}
}

// Subscribe registers fn for every order event. Subscribers run
// synchronously on the mutating goroutine and must not call back into the
// store.
func (s *OrderStore) Subscribe(fn func(OrderEvent)) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *OrderStore) publish(ev OrderEvent) {
	s.subMu.RLock()
	defer s.subMu.RUnlock()
	for _, fn := range s.subs {
		fn(ev)
	}
}

type PlaceOrderInput struct {
	BuyerID    uint
	ItemID     uint
	Quantity   int
	PickupTime string
	Notes      string
}

// PlaceOrder validates quantity and pickup slot, then checks stock,
// decrements it and appends the order inside one transaction. On any
// failure nothing is mutated and no order exists.
func (s *OrderStore) PlaceOrder(in PlaceOrderInput) (*models.Order, error) {
	if in.Quantity < 1 || in.Quantity > MaxQuantityPerOrder {
		return nil, ErrInvalidQuantity
	}

	var slot models.PickupSlot
	if err := s.db.Where("time = ? AND available = ?", in.PickupTime, true).First(&slot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidPickupTime
		}
		return nil, err
	}

	// Lock order: inventory first, then orders. PlaceOrder is the only
	// path that takes both.
	s.inv.mu.Lock()
	defer s.inv.mu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()

	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var item models.CatalogItem
		if err := tx.First(&item, in.ItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemNotFound
			}
			return err
		}

		if in.Quantity > item.Inventory {
			return ErrInsufficientStock
		}

		if _, err := s.inv.applyDecrement(tx, &item, in.Quantity); err != nil {
			return err
		}

		now := time.Now()
		order = models.Order{
			Reference:   uuid.NewString(),
			OrderCode:   NewOrderCode(),
			BuyerID:     in.BuyerID,
			ItemID:      item.ID,
			ItemName:    item.Name,
			UnitPrice:   item.Price,
			Quantity:    in.Quantity,
			PickupTime:  in.PickupTime,
			Notes:       in.Notes,
			TotalAmount: item.Price*float64(in.Quantity) + ServiceCharge,
			Status:      string(StatusPending),
			OrderTime:   now,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		return tx.Create(&order).Error
	})
	if err != nil {
		return nil, err
	}

	s.publish(OrderEvent{Order: order, To: StatusPending})
	return &order, nil
}

// UpdateStatus applies a transition from the order's current status. Only
// the edges of the state machine in status.go are accepted; completed and
// cancelled are terminal.
func (s *OrderStore) UpdateStatus(orderID uint, next Status) (*models.Order, error) {
	if !IsValidStatus(next) {
		return nil, ErrInvalidTransition
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var order models.Order
	if err := s.db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	from := Status(order.Status)
	if !CanTransition(from, next) {
		return nil, ErrInvalidTransition
	}

	order.Status = string(next)
	order.UpdatedAt = time.Now()
	if err := s.db.Save(&order).Error; err != nil {
		return nil, err
	}

	s.publish(OrderEvent{Order: order, From: from, To: next})
	return &order, nil
}

func (s *OrderStore) GetOrder(orderID uint) (*models.Order, error) {
	var order models.Order
	if err := s.db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (s *OrderStore) ListOrders() ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.Order("order_time desc").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *OrderStore) OrdersByStatus(status Status) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.Where("status = ?", string(status)).
		Order("order_time desc").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *OrderStore) OrdersByBuyer(buyerID uint) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.Where("buyer_id = ?", buyerID).
		Order("order_time desc").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// TodaysOrders returns orders whose order time falls on the current
// calendar day.
func (s *OrderStore) TodaysOrders() ([]models.Order, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.Add(24 * time.Hour)

	var orders []models.Order
	if err := s.db.Where("order_time >= ? AND order_time < ?", start, end).
		Order("order_time desc").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *OrderStore) PickupSlots() ([]models.PickupSlot, error) {
	var slots []models.PickupSlot
	if err := s.db.Where("available = ?", true).Order("id asc").Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}
