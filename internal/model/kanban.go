package model

import "github.com/google/uuid"

// KanbanCard is the board token for one order. Column must match the linked
// order's status; the synchronizer owns that invariant, storage does not.
type KanbanCard struct {
	BaseModel
	OrderID uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex" json:"order_id"`
	Order   *Order      `gorm:"foreignKey:OrderID" json:"order,omitempty"`
	Column  OrderStatus `gorm:"column:board_column;type:varchar(20);not null" json:"column"`
}
