package models

import "time"

type PickupSlot struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Time      string    `gorm:"type:varchar(20);unique;not null" json:"time"`
	Available bool      `gorm:"not null;default:true" json:"available"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
