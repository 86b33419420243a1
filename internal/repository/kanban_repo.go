package repository

import (
	"go-resale-ops/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type KanbanRepository interface {
	Create(card *model.KanbanCard) error
	FindAll() ([]model.KanbanCard, error)
	FindByOrderID(orderID uuid.UUID) (*model.KanbanCard, error)
	UpdateColumn(id uuid.UUID, column model.OrderStatus) error
}

type kanbanRepo struct {
	db *gorm.DB
}

func NewKanbanRepo(db *gorm.DB) KanbanRepository {
	return &kanbanRepo{db}
}

func (r *kanbanRepo) Create(card *model.KanbanCard) error {
	return r.db.Create(card).Error
}

func (r *kanbanRepo) FindAll() ([]model.KanbanCard, error) {
	var cards []model.KanbanCard
	err := r.db.Preload("Order").Preload("Order.Client").Order("created_at DESC").Find(&cards).Error
	return cards, err
}

func (r *kanbanRepo) FindByOrderID(orderID uuid.UUID) (*model.KanbanCard, error) {
	var card model.KanbanCard
	err := r.db.First(&card, "order_id = ?", orderID).Error
	return &card, err
}

func (r *kanbanRepo) UpdateColumn(id uuid.UUID, column model.OrderStatus) error {
	return r.db.Model(&model.KanbanCard{}).
		Where("id = ?", id).
		Update("board_column", column).Error
}
