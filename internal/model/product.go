package model

type Product struct {
	BaseModel
	Name        string  `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Category    string  `gorm:"type:varchar(100)" json:"category"` // free text, user-introduced values
	CostPrice   float64 `gorm:"type:decimal(10,2);default:0" json:"cost_price" validate:"gte=0"`
	SalePrice   float64 `gorm:"type:decimal(10,2);default:0" json:"sale_price" validate:"gte=0"`
	Stock       int     `gorm:"default:0" json:"stock"` // may go negative, sales are never blocked on stock
	Description string  `gorm:"type:text" json:"description"`
}
