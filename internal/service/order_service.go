package service

import (
	"errors"
	"fmt"
	"sync"

	"go-resale-ops/internal/model"
	"go-resale-ops/internal/repository"
	"go-resale-ops/internal/ws"
	"go-resale-ops/pkg/validator"

	"github.com/google/uuid"
)

// ErrNoPendingRepair means ResumeOrder was asked about an order with no
// recorded partial failure.
var ErrNoPendingRepair = errors.New("no pending repair for order")

type OrderItemInput struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

type CreateOrderInput struct {
	ClientID uuid.UUID         `json:"client_id" validate:"uuid_required"`
	Status   model.OrderStatus `json:"status"`
	Items    []OrderItemInput  `json:"items" validate:"required,min=1,dive"`
}

type OrderService interface {
	CreateOrder(input CreateOrderInput) (*model.Order, error)
	ResumeOrder(orderID uuid.UUID) (*model.Order, error)
	GetAllOrders() ([]model.Order, error)
	GetOrderByID(id uuid.UUID) (*model.Order, error)
}

// orderService runs the order-creation sequence: header, items, kanban card,
// stock decrements. The store offers no multi-row transaction, so the steps
// are issued one by one and a failure after the header leaves a partially
// created order, reported as *PartialOrderError and kept for ResumeOrder.
type orderService struct {
	orderRepo   repository.OrderRepository
	clientRepo  repository.ClientRepository
	productRepo repository.ProductRepository
	kanbanRepo  repository.KanbanRepository
	hub         *ws.Hub

	mu      sync.Mutex
	pending map[uuid.UUID]*PartialOrderError
}

func NewOrderService(
	oRepo repository.OrderRepository,
	cRepo repository.ClientRepository,
	pRepo repository.ProductRepository,
	kRepo repository.KanbanRepository,
	hub *ws.Hub,
) OrderService {
	return &orderService{
		orderRepo:   oRepo,
		clientRepo:  cRepo,
		productRepo: pRepo,
		kanbanRepo:  kRepo,
		hub:         hub,
		pending:     make(map[uuid.UUID]*PartialOrderError),
	}
}

func (s *orderService) CreateOrder(input CreateOrderInput) (*model.Order, error) {
	if input.Status == "" {
		input.Status = model.StatusPlaced
	}

	if errs := validator.ValidateStruct(&input); len(errs) > 0 {
		first := errs[0]
		return nil, &ValidationError{
			Field:  first.FailedField,
			Reason: fmt.Sprintf("failed on tag '%s'", first.Tag),
		}
	}
	if !model.IsOrderStatus(input.Status) {
		return nil, &ValidationError{Field: "status", Reason: "unknown status label"}
	}
	if _, err := s.clientRepo.FindByID(input.ClientID); err != nil {
		return nil, &ValidationError{Field: "client_id", Reason: "client not found"}
	}

	items, total, err := s.buildItems(mergeItems(input.Items))
	if err != nil {
		return nil, err
	}

	// Step 1: order header. Nothing exists yet, so a failure here has no
	// side effects.
	order := &model.Order{
		ClientID: input.ClientID,
		Total:    total,
		Status:   input.Status,
	}
	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	partial := &PartialOrderError{
		Order:        order,
		StockApplied: make(map[uuid.UUID]bool),
	}
	for i := range items {
		items[i].OrderID = order.ID
	}
	order.Items = items

	if err := s.runRemainingSteps(partial); err != nil {
		return nil, err
	}

	s.hub.Publish("order_created", order)
	return order, nil
}

// runRemainingSteps executes every step the partial record has not marked
// done. On failure it records the state under the order id and returns the
// typed error; CreateOrder and ResumeOrder share it.
func (s *orderService) runRemainingSteps(partial *PartialOrderError) error {
	order := partial.Order

	if !partial.ItemsDone {
		if err := s.orderRepo.CreateItems(order.Items); err != nil {
			return s.recordPartial(partial, StepItems, err)
		}
		partial.ItemsDone = true
	}

	if !partial.CardDone {
		card := &model.KanbanCard{OrderID: order.ID, Column: order.Status}
		if err := s.kanbanRepo.Create(card); err != nil {
			return s.recordPartial(partial, StepCard, err)
		}
		partial.CardDone = true
	}

	// Stock last: a decrement is permitted to drive stock negative, so there
	// is nothing to validate, only calls that can fail on the network.
	for _, item := range order.Items {
		if partial.StockApplied[item.ProductID] {
			continue
		}
		if err := s.productRepo.DecrementStock(item.ProductID, item.Quantity); err != nil {
			return s.recordPartial(partial, StepStock, err)
		}
		partial.StockApplied[item.ProductID] = true
	}

	s.mu.Lock()
	delete(s.pending, order.ID)
	s.mu.Unlock()
	return nil
}

func (s *orderService) recordPartial(partial *PartialOrderError, step OrderStep, err error) error {
	partial.FailedStep = step
	partial.Err = err
	s.mu.Lock()
	s.pending[partial.Order.ID] = partial
	s.mu.Unlock()
	return partial
}

// ResumeOrder retries the steps a recorded partial failure left undone.
// Item and card inserts are re-checked against the store first so a retry
// after an ambiguous failure does not duplicate rows.
func (s *orderService) ResumeOrder(orderID uuid.UUID) (*model.Order, error) {
	s.mu.Lock()
	partial, ok := s.pending[orderID]
	s.mu.Unlock()
	if !ok {
		return nil, ErrNoPendingRepair
	}

	if !partial.ItemsDone {
		existing, err := s.orderRepo.FindItemsByOrder(orderID)
		if err == nil && len(existing) > 0 {
			partial.ItemsDone = true
		}
	}
	if !partial.CardDone {
		if _, err := s.kanbanRepo.FindByOrderID(orderID); err == nil {
			partial.CardDone = true
		}
	}

	if err := s.runRemainingSteps(partial); err != nil {
		return nil, err
	}

	s.hub.Publish("order_created", partial.Order)
	return partial.Order, nil
}

func (s *orderService) GetAllOrders() ([]model.Order, error) {
	return s.orderRepo.FindAll()
}

func (s *orderService) GetOrderByID(id uuid.UUID) (*model.Order, error) {
	return s.orderRepo.FindByID(id)
}

// mergeItems folds repeated product ids into one line with summed quantity,
// keeping first-seen order. Mirrors the "already added" rule of the order form.
func mergeItems(items []OrderItemInput) []OrderItemInput {
	index := make(map[uuid.UUID]int)
	merged := make([]OrderItemInput, 0, len(items))
	for _, item := range items {
		if i, ok := index[item.ProductID]; ok {
			merged[i].Quantity += item.Quantity
			continue
		}
		index[item.ProductID] = len(merged)
		merged = append(merged, item)
	}
	return merged
}

// buildItems resolves products and snapshots name, price and subtotal.
func (s *orderService) buildItems(inputs []OrderItemInput) ([]model.OrderItem, float64, error) {
	items := make([]model.OrderItem, 0, len(inputs))
	var total float64
	for _, in := range inputs {
		product, err := s.productRepo.FindByID(in.ProductID)
		if err != nil {
			return nil, 0, &ValidationError{Field: "items", Reason: fmt.Sprintf("product %s not found", in.ProductID)}
		}
		subtotal := float64(in.Quantity) * product.SalePrice
		items = append(items, model.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    in.Quantity,
			UnitPrice:   product.SalePrice,
			Subtotal:    subtotal,
		})
		total += subtotal
	}
	return items, total, nil
}
