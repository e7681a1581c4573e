package models

import "time"

type Order struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Reference string `gorm:"type:varchar(36);uniqueIndex;not null" json:"reference"`
	// OrderCode is a short display label for the pickup counter. It is drawn
	// from a bounded range and may collide; never use it as a lookup key.
	OrderCode   string    `gorm:"type:varchar(10);not null" json:"order_code"`
	BuyerID     uint      `gorm:"index" json:"buyer_id"`
	Buyer       User      `gorm:"foreignKey:BuyerID" json:"-"`
	ItemID      uint      `gorm:"not null;index" json:"item_id"`
	ItemName    string    `gorm:"type:varchar(255);not null" json:"item_name"`
	UnitPrice   float64   `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	PickupTime  string    `gorm:"type:varchar(20);not null" json:"pickup_time"`
	Notes       string    `gorm:"type:text" json:"notes"`
	TotalAmount float64   `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	Status      string    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	OrderTime   time.Time `gorm:"not null;index" json:"order_time"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}
