package stores

import (
	"errors"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/yeremiapane/canteen-app/models"
)

// LowStockThreshold is the inventory/max_inventory ratio at or below which
// an item counts as low stock. Fully depleted items are out of stock, a
// separate category.
const LowStockThreshold = 0.20

// InventoryStore owns the catalog and every allowed mutation to stock,
// price and availability. A store mutex serializes mutations so a stock
// read and the write that follows it cannot interleave with another caller.
type InventoryStore struct {
	db *gorm.DB
	mu sync.Mutex
}

func NewInventoryStore(db *gorm.DB) *InventoryStore {
	return &InventoryStore{db: db}
}

func (s *InventoryStore) GetItem(itemID uint) (*models.CatalogItem, error) {
	var item models.CatalogItem
	if err := s.db.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (s *InventoryStore) ListItems() ([]models.CatalogItem, error) {
	var items []models.CatalogItem
	if err := s.db.Order("name asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *InventoryStore) ItemsByCategory(category string) ([]models.CatalogItem, error) {
	var items []models.CatalogItem
	if err := s.db.Where("category = ?", category).Order("name asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// DecrementStock lowers inventory by qty, floored at zero. Hitting zero
// forces available=false whatever the seller had set. Sufficiency is the
// caller's job; PlaceOrder checks it inside the same critical section.
func (s *InventoryStore) DecrementStock(itemID uint, qty int) (*models.CatalogItem, error) {
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.GetItem(itemID)
	if err != nil {
		return nil, err
	}
	return s.applyDecrement(s.db, item, qty)
}

// applyDecrement writes the decrement through tx. Callers must hold s.mu.
func (s *InventoryStore) applyDecrement(tx *gorm.DB, item *models.CatalogItem, qty int) (*models.CatalogItem, error) {
	newInventory := item.Inventory - qty
	if newInventory < 0 {
		newInventory = 0
	}
	item.Inventory = newInventory
	item.Available = newInventory > 0 && item.Available
	item.UpdatedAt = time.Now()

	if err := tx.Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// Restock raises inventory by qty, capped at MaxInventory. The second
// return value reports whether the cap clamped the result, so callers can
// tell the seller the real amount added instead of pretending qty landed.
func (s *InventoryStore) Restock(itemID uint, qty int) (*models.CatalogItem, bool, error) {
	if qty <= 0 {
		return nil, false, ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.GetItem(itemID)
	if err != nil {
		return nil, false, err
	}

	newInventory := item.Inventory + qty
	clamped := newInventory > item.MaxInventory
	if clamped {
		newInventory = item.MaxInventory
	}

	item.Inventory = newInventory
	item.Available = newInventory > 0
	item.UpdatedAt = time.Now()

	if err := s.db.Save(item).Error; err != nil {
		return nil, false, err
	}
	return item, clamped, nil
}

func (s *InventoryStore) SetPrice(itemID uint, price float64) (*models.CatalogItem, error) {
	if price <= 0 {
		return nil, ErrInvalidPrice
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.GetItem(itemID)
	if err != nil {
		return nil, err
	}

	item.Price = price
	item.UpdatedAt = time.Now()

	if err := s.db.Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// ToggleAvailability flips the available flag. An item with zero inventory
// stays unavailable no matter what the flag was.
func (s *InventoryStore) ToggleAvailability(itemID uint) (*models.CatalogItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.GetItem(itemID)
	if err != nil {
		return nil, err
	}

	if item.Inventory > 0 {
		item.Available = !item.Available
	} else {
		item.Available = false
	}
	item.UpdatedAt = time.Now()

	if err := s.db.Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// LowStockItems returns items at or below the low-stock ratio but not yet
// depleted.
func (s *InventoryStore) LowStockItems() ([]models.CatalogItem, error) {
	items, err := s.ListItems()
	if err != nil {
		return nil, err
	}

	low := make([]models.CatalogItem, 0)
	for _, item := range items {
		if item.Inventory == 0 || item.MaxInventory == 0 {
			continue
		}
		ratio := float64(item.Inventory) / float64(item.MaxInventory)
		if ratio <= LowStockThreshold {
			low = append(low, item)
		}
	}
	return low, nil
}

func (s *InventoryStore) OutOfStockItems() ([]models.CatalogItem, error) {
	var items []models.CatalogItem
	if err := s.db.Where("inventory = 0").Order("name asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
