package database

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yeremiapane/canteen-app/models"
)

// Seed loads the starter catalog and pickup slots. Safe to run on every
// start; it only writes into empty tables.
func Seed(db *gorm.DB) error {
	if err := seedSlots(db); err != nil {
		return err
	}
	return seedCatalog(db)
}

func seedSlots(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.PickupSlot{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	slots := []models.PickupSlot{
		{Time: "11:30-12:00", Available: true},
		{Time: "12:00-12:30", Available: true},
		{Time: "12:30-13:00", Available: true},
		{Time: "13:00-13:30", Available: true},
	}
	return db.Create(&slots).Error
}

func seedCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.CatalogItem{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	seller, err := seedSeller(db)
	if err != nil {
		return err
	}

	now := time.Now()
	items := []models.CatalogItem{
		{
			Name:            "Chicken Rice Bowl",
			Description:     "Steamed rice with roasted chicken and greens",
			Category:        "Mains",
			Price:           45.00,
			Rating:          4.6,
			PreparationTime: 10,
			Inventory:       20,
			MaxInventory:    30,
			Available:       true,
		},
		{
			Name:            "Beef Noodle Soup",
			Description:     "Slow-cooked beef broth with fresh noodles",
			Category:        "Mains",
			Price:           50.00,
			Rating:          4.8,
			PreparationTime: 12,
			Inventory:       15,
			MaxInventory:    25,
			Available:       true,
		},
		{
			Name:            "Veggie Wrap",
			Description:     "Grilled vegetables and hummus in a tortilla",
			Category:        "Light",
			Price:           32.00,
			Rating:          4.3,
			PreparationTime: 6,
			Inventory:       18,
			MaxInventory:    20,
			Available:       true,
		},
		{
			Name:            "Fruit Cup",
			Description:     "Seasonal fruit, cut fresh every morning",
			Category:        "Snacks",
			Price:           18.00,
			Rating:          4.5,
			PreparationTime: 2,
			Inventory:       25,
			MaxInventory:    40,
			Available:       true,
		},
		{
			Name:            "Iced Lemon Tea",
			Description:     "House-brewed tea with lemon",
			Category:        "Drinks",
			Price:           12.00,
			Rating:          4.2,
			PreparationTime: 3,
			Inventory:       30,
			MaxInventory:    50,
			Available:       true,
		},
	}

	for i := range items {
		items[i].SellerID = seller.ID
		items[i].SellerName = seller.Name
		items[i].CreatedAt = now
		items[i].UpdatedAt = now
	}
	return db.Create(&items).Error
}

func seedSeller(db *gorm.DB) (*models.User, error) {
	var seller models.User
	err := db.Where("role = ?", "seller").First(&seller).Error
	if err == nil {
		return &seller, nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("canteen123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	seller = models.User{
		Name:     "Canteen Kitchen",
		Email:    "kitchen@canteen.local",
		Password: string(hashed),
		Role:     "seller",
	}
	if err := db.Create(&seller).Error; err != nil {
		return nil, err
	}
	return &seller, nil
}
