package model

import "time"

// RevenueEntry is confirmed income, kept separate from orders so manual and
// historical amounts can be charted. Revenue rollups read this table; per-order
// analytics read orders and items, and the two may diverge.
type RevenueEntry struct {
	BaseModel
	Amount float64   `gorm:"type:decimal(10,2);not null" json:"amount" validate:"gte=0"`
	Date   time.Time `gorm:"type:date;not null;index" json:"date"`
}
