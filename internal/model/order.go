package model

import "github.com/google/uuid"

// OrderStatus doubles as the kanban column label. The three values form the
// fixed board order; any-to-any moves are allowed.
type OrderStatus string

const (
	StatusPlaced    OrderStatus = "Placed"
	StatusInTransit OrderStatus = "InTransit"
	StatusPaid      OrderStatus = "Paid"
)

// OrderStatuses lists the statuses in board order.
var OrderStatuses = []OrderStatus{StatusPlaced, StatusInTransit, StatusPaid}

func IsOrderStatus(s OrderStatus) bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

type Order struct {
	BaseModel
	ClientID uuid.UUID   `gorm:"type:uuid;not null;index" json:"client_id"`
	Client   *Client     `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Total    float64     `gorm:"type:decimal(10,2);not null" json:"total"` // fixed at creation, never recomputed
	Status   OrderStatus `gorm:"type:varchar(20);not null" json:"status"`
	Items    []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// OrderItem snapshots product name and price at order time so historical
// orders stay accurate when products change later.
type OrderItem struct {
	BaseModel
	OrderID     uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null" json:"product_id"`
	ProductName string    `gorm:"type:varchar(255);not null" json:"product_name"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	UnitPrice   float64   `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Subtotal    float64   `gorm:"type:decimal(10,2);not null" json:"subtotal"` // quantity * unit price, stored
}
