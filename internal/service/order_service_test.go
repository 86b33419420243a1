package service

import (
	"errors"
	"testing"

	"go-resale-ops/internal/model"
	"go-resale-ops/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Use a unique in-memory database per test to avoid cross-test collisions.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Client{}, &model.Product{}, &model.Order{}, &model.OrderItem{},
		&model.KanbanCard{}, &model.Expense{}, &model.RevenueEntry{},
	))
	return db
}

func seedClient(t *testing.T, db *gorm.DB, name string) *model.Client {
	t.Helper()
	client := &model.Client{Name: name}
	require.NoError(t, db.Create(client).Error)
	return client
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) *model.Product {
	t.Helper()
	product := &model.Product{Name: name, SalePrice: price, Stock: stock}
	require.NoError(t, db.Create(product).Error)
	return product
}

func productStock(t *testing.T, db *gorm.DB, id uuid.UUID) int {
	t.Helper()
	var product model.Product
	require.NoError(t, db.First(&product, "id = ?", id).Error)
	return product.Stock
}

// flakyOrderRepo injects a failure into the item-insert step.
type flakyOrderRepo struct {
	repository.OrderRepository
	failItems bool
}

func (f *flakyOrderRepo) CreateItems(items []model.OrderItem) error {
	if f.failItems {
		return errors.New("store unavailable")
	}
	return f.OrderRepository.CreateItems(items)
}

// flakyProductRepo fails the nth stock decrement (1-based). Zero disables it.
type flakyProductRepo struct {
	repository.ProductRepository
	failOn int
	calls  int
}

func (f *flakyProductRepo) DecrementStock(id uuid.UUID, qty int) error {
	f.calls++
	if f.failOn != 0 && f.calls == f.failOn {
		return errors.New("store unavailable")
	}
	return f.ProductRepository.DecrementStock(id, qty)
}

func newOrderService(db *gorm.DB, oRepo repository.OrderRepository, pRepo repository.ProductRepository) OrderService {
	return NewOrderService(oRepo, repository.NewClientRepo(db), pRepo, repository.NewKanbanRepo(db), nil)
}

func TestCreateOrder_Success(t *testing.T) {
	db := setupTestDB(t)
	client := seedClient(t, db, "Ana")
	coke := seedProduct(t, db, "Coke", 10.00, 5)
	water := seedProduct(t, db, "Water", 2.50, 3)
	svc := newOrderService(db, repository.NewOrderRepo(db), repository.NewProductRepo(db))

	order, err := svc.CreateOrder(CreateOrderInput{
		ClientID: client.ID,
		Status:   model.StatusPlaced,
		Items: []OrderItemInput{
			{ProductID: coke.ID, Quantity: 2},
			{ProductID: water.ID, Quantity: 4},
		},
	})
	require.NoError(t, err)

	assert.InDelta(t, 30.0, order.Total, 1e-9)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "Coke", order.Items[0].ProductName)
	assert.InDelta(t, 20.0, order.Items[0].Subtotal, 1e-9)

	var itemCount int64
	db.Model(&model.OrderItem{}).Where("order_id = ?", order.ID).Count(&itemCount)
	assert.EqualValues(t, 2, itemCount)

	var card model.KanbanCard
	require.NoError(t, db.First(&card, "order_id = ?", order.ID).Error)
	assert.Equal(t, model.StatusPlaced, card.Column)

	var stored model.Order
	require.NoError(t, db.First(&stored, "id = ?", order.ID).Error)
	assert.Equal(t, model.StatusPlaced, stored.Status, "card column and order status agree after creation")

	assert.Equal(t, 3, productStock(t, db, coke.ID))
	assert.Equal(t, -1, productStock(t, db, water.ID), "stock may go negative, sale is not blocked")
}

func TestCreateOrder_MergesDuplicateProducts(t *testing.T) {
	db := setupTestDB(t)
	client := seedClient(t, db, "Bruno")
	coke := seedProduct(t, db, "Coke", 10.00, 10)
	svc := newOrderService(db, repository.NewOrderRepo(db), repository.NewProductRepo(db))

	order, err := svc.CreateOrder(CreateOrderInput{
		ClientID: client.ID,
		Items: []OrderItemInput{
			{ProductID: coke.ID, Quantity: 1},
			{ProductID: coke.ID, Quantity: 2},
		},
	})
	require.NoError(t, err)

	require.Len(t, order.Items, 1, "repeated product collapses into one line item")
	assert.Equal(t, 3, order.Items[0].Quantity)
	assert.InDelta(t, 30.0, order.Items[0].Subtotal, 1e-9)
	assert.Equal(t, 7, productStock(t, db, coke.ID))
}

func TestCreateOrder_ValidationRejectsBeforePersisting(t *testing.T) {
	db := setupTestDB(t)
	client := seedClient(t, db, "Carla")
	coke := seedProduct(t, db, "Coke", 10.00, 5)
	svc := newOrderService(db, repository.NewOrderRepo(db), repository.NewProductRepo(db))

	cases := []struct {
		name  string
		input CreateOrderInput
	}{
		{"empty items", CreateOrderInput{ClientID: client.ID}},
		{"zero quantity", CreateOrderInput{ClientID: client.ID, Items: []OrderItemInput{{ProductID: coke.ID, Quantity: 0}}}},
		{"missing client", CreateOrderInput{ClientID: uuid.New(), Items: []OrderItemInput{{ProductID: coke.ID, Quantity: 1}}}},
		{"missing product", CreateOrderInput{ClientID: client.ID, Items: []OrderItemInput{{ProductID: uuid.New(), Quantity: 1}}}},
		{"bad status", CreateOrderInput{ClientID: client.ID, Status: "Shipped", Items: []OrderItemInput{{ProductID: coke.ID, Quantity: 1}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateOrder(tc.input)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
		})
	}

	var orderCount int64
	db.Model(&model.Order{}).Count(&orderCount)
	assert.Zero(t, orderCount, "validation failures leave no side effects")
	assert.Equal(t, 5, productStock(t, db, coke.ID))
}

func TestCreateOrder_PartialFailureAtItemsThenResume(t *testing.T) {
	db := setupTestDB(t)
	client := seedClient(t, db, "Diego")
	coke := seedProduct(t, db, "Coke", 10.00, 5)
	flaky := &flakyOrderRepo{OrderRepository: repository.NewOrderRepo(db), failItems: true}
	svc := newOrderService(db, flaky, repository.NewProductRepo(db))

	_, err := svc.CreateOrder(CreateOrderInput{
		ClientID: client.ID,
		Items:    []OrderItemInput{{ProductID: coke.ID, Quantity: 2}},
	})

	var perr *PartialOrderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, StepItems, perr.FailedStep)
	assert.False(t, perr.ItemsDone)
	assert.False(t, perr.CardDone)

	// The header exists, nothing after it does.
	var orderCount, itemCount, cardCount int64
	db.Model(&model.Order{}).Count(&orderCount)
	db.Model(&model.OrderItem{}).Count(&itemCount)
	db.Model(&model.KanbanCard{}).Count(&cardCount)
	assert.EqualValues(t, 1, orderCount)
	assert.Zero(t, itemCount)
	assert.Zero(t, cardCount)
	assert.Equal(t, 5, productStock(t, db, coke.ID))

	// The store recovers; the repair run finishes the remaining steps.
	flaky.failItems = false
	order, err := svc.ResumeOrder(perr.Order.ID)
	require.NoError(t, err)

	db.Model(&model.OrderItem{}).Where("order_id = ?", order.ID).Count(&itemCount)
	assert.EqualValues(t, 1, itemCount)
	var card model.KanbanCard
	require.NoError(t, db.First(&card, "order_id = ?", order.ID).Error)
	assert.Equal(t, model.StatusPlaced, card.Column)
	assert.Equal(t, 3, productStock(t, db, coke.ID))

	// The pending record is consumed.
	_, err = svc.ResumeOrder(order.ID)
	assert.ErrorIs(t, err, ErrNoPendingRepair)
}

func TestCreateOrder_PartialFailureAtStockSkipsAppliedDecrements(t *testing.T) {
	db := setupTestDB(t)
	client := seedClient(t, db, "Elisa")
	coke := seedProduct(t, db, "Coke", 10.00, 5)
	water := seedProduct(t, db, "Water", 2.50, 5)
	flaky := &flakyProductRepo{ProductRepository: repository.NewProductRepo(db), failOn: 2}
	svc := newOrderService(db, repository.NewOrderRepo(db), flaky)

	_, err := svc.CreateOrder(CreateOrderInput{
		ClientID: client.ID,
		Items: []OrderItemInput{
			{ProductID: coke.ID, Quantity: 2},
			{ProductID: water.ID, Quantity: 1},
		},
	})

	var perr *PartialOrderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, StepStock, perr.FailedStep)
	assert.True(t, perr.ItemsDone)
	assert.True(t, perr.CardDone)
	assert.True(t, perr.StockApplied[coke.ID])
	assert.False(t, perr.StockApplied[water.ID])
	assert.Equal(t, 3, productStock(t, db, coke.ID))
	assert.Equal(t, 5, productStock(t, db, water.ID))

	flaky.failOn = 0
	_, err = svc.ResumeOrder(perr.Order.ID)
	require.NoError(t, err)

	assert.Equal(t, 3, productStock(t, db, coke.ID), "already-applied decrement must not repeat")
	assert.Equal(t, 4, productStock(t, db, water.ID))
}

func TestResumeOrder_UnknownOrder(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(db, repository.NewOrderRepo(db), repository.NewProductRepo(db))

	_, err := svc.ResumeOrder(uuid.New())
	assert.ErrorIs(t, err, ErrNoPendingRepair)
}
