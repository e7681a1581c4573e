package models

import "time"

type User struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"type:varchar(255); not null"`
	Email     string `gorm:"type:varchar(255); unique;not null"`
	Phone     string `gorm:"type:varchar(30)"`
	Password  string `gorm:"type:varchar(255); not null"`
	Role      string `gorm:"type:varchar(20); not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
