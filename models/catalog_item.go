package models

import "time"

type CatalogItem struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"type:varchar(255);not null" json:"name"`
	Description     string    `gorm:"type:text" json:"description"`
	Category        string    `gorm:"type:varchar(100);index" json:"category"`
	Price           float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Rating          float64   `gorm:"type:decimal(3,1)" json:"rating"`
	PreparationTime int       `json:"preparation_time"`
	Inventory       int       `gorm:"not null;default:0" json:"inventory"`
	MaxInventory    int       `gorm:"not null" json:"max_inventory"`
	Available       bool      `gorm:"not null;default:false" json:"available"`
	SellerID        uint      `gorm:"index" json:"seller_id"`
	SellerName      string    `gorm:"type:varchar(255)" json:"seller_name"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null" json:"updated_at"`
}
