package repository

import (
	"go-resale-ops/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderRepository covers orders and their line items. Every method is a single
// store call: the workflow that drives order creation owes its whole contract
// to the fact that there is no multi-row transaction here.
type OrderRepository interface {
	Create(order *model.Order) error
	CreateItems(items []model.OrderItem) error
	FindItemsByOrder(orderID uuid.UUID) ([]model.OrderItem, error)
	FindAll() ([]model.Order, error)
	FindByID(id uuid.UUID) (*model.Order, error)
	UpdateStatus(id uuid.UUID, status model.OrderStatus) error
}

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepo(db *gorm.DB) OrderRepository {
	return &orderRepo{db}
}

// Create persists the order header only; items are inserted as their own step.
func (r *orderRepo) Create(order *model.Order) error {
	return r.db.Omit("Items").Create(order).Error
}

func (r *orderRepo) CreateItems(items []model.OrderItem) error {
	return r.db.Create(&items).Error
}

func (r *orderRepo) FindItemsByOrder(orderID uuid.UUID) ([]model.OrderItem, error) {
	var items []model.OrderItem
	err := r.db.Find(&items, "order_id = ?", orderID).Error
	return items, err
}

func (r *orderRepo) FindAll() ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Preload("Items").Preload("Client").Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepo) FindByID(id uuid.UUID) (*model.Order, error) {
	var order model.Order
	err := r.db.Preload("Items").Preload("Client").First(&order, "id = ?", id).Error
	return &order, err
}

func (r *orderRepo) UpdateStatus(id uuid.UUID, status model.OrderStatus) error {
	return r.db.Model(&model.Order{}).
		Where("id = ?", id).
		Update("status", status).Error
}
