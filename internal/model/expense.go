package model

import "time"

type Expense struct {
	BaseModel
	Name     string    `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Category string    `gorm:"type:varchar(100)" json:"category"` // free text
	Amount   float64   `gorm:"type:decimal(10,2);not null" json:"amount" validate:"gte=0"`
	Date     time.Time `gorm:"type:date;not null;index" json:"date"`
}
