package service

import (
	"errors"
	"testing"

	"go-resale-ops/internal/model"
	"go-resale-ops/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedOrderWithCard(t *testing.T, db *gorm.DB, status model.OrderStatus) (*model.Order, *model.KanbanCard) {
	t.Helper()
	client := seedClient(t, db, "Ana")
	order := &model.Order{ClientID: client.ID, Total: 50, Status: status}
	require.NoError(t, db.Create(order).Error)
	card := &model.KanbanCard{OrderID: order.ID, Column: status}
	require.NoError(t, db.Create(card).Error)
	return order, card
}

// countingKanbanRepo records column updates so no-op moves can be proven to
// skip persistence entirely.
type countingKanbanRepo struct {
	repository.KanbanRepository
	updates int
	fail    bool
}

func (c *countingKanbanRepo) UpdateColumn(id uuid.UUID, column model.OrderStatus) error {
	c.updates++
	if c.fail {
		return errors.New("store unavailable")
	}
	return c.KanbanRepository.UpdateColumn(id, column)
}

type failingStatusOrderRepo struct {
	repository.OrderRepository
	fail bool
}

func (f *failingStatusOrderRepo) UpdateStatus(id uuid.UUID, status model.OrderStatus) error {
	if f.fail {
		return errors.New("store unavailable")
	}
	return f.OrderRepository.UpdateStatus(id, status)
}

func TestMoveCard_UpdatesCardAndOrder(t *testing.T) {
	db := setupTestDB(t)
	order, card := seedOrderWithCard(t, db, model.StatusPlaced)
	svc := NewKanbanService(repository.NewKanbanRepo(db), repository.NewOrderRepo(db), nil)

	moved, err := svc.MoveCard(card.ID, model.StatusPaid)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPaid, moved.Column)

	var storedCard model.KanbanCard
	require.NoError(t, db.First(&storedCard, "id = ?", card.ID).Error)
	assert.Equal(t, model.StatusPaid, storedCard.Column)

	var storedOrder model.Order
	require.NoError(t, db.First(&storedOrder, "id = ?", order.ID).Error)
	assert.Equal(t, model.StatusPaid, storedOrder.Status, "order status follows the card column")

	board, err := svc.Board()
	require.NoError(t, err)
	require.Len(t, board, 3)
	assert.Empty(t, board[0].Cards)
	require.Len(t, board[2].Cards, 1)
	assert.Equal(t, card.ID, board[2].Cards[0].ID)
}

func TestMoveCard_SameColumnIsNoOp(t *testing.T) {
	db := setupTestDB(t)
	_, card := seedOrderWithCard(t, db, model.StatusInTransit)
	counting := &countingKanbanRepo{KanbanRepository: repository.NewKanbanRepo(db)}
	svc := NewKanbanService(counting, repository.NewOrderRepo(db), nil)

	moved, err := svc.MoveCard(card.ID, model.StatusInTransit)
	require.NoError(t, err)
	assert.Equal(t, model.StatusInTransit, moved.Column)
	assert.Zero(t, counting.updates, "no persistence call for a same-column drop")
}

func TestMoveCard_UnknownColumn(t *testing.T) {
	db := setupTestDB(t)
	_, card := seedOrderWithCard(t, db, model.StatusPlaced)
	svc := NewKanbanService(repository.NewKanbanRepo(db), repository.NewOrderRepo(db), nil)

	_, err := svc.MoveCard(card.ID, "Shipped")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestMoveCard_UnknownCard(t *testing.T) {
	db := setupTestDB(t)
	svc := NewKanbanService(repository.NewKanbanRepo(db), repository.NewOrderRepo(db), nil)

	_, err := svc.MoveCard(uuid.New(), model.StatusPaid)
	assert.ErrorIs(t, err, ErrCardNotFound)
}

func TestMoveCard_CardWriteFailureDiscardsOptimisticState(t *testing.T) {
	db := setupTestDB(t)
	order, card := seedOrderWithCard(t, db, model.StatusPlaced)
	counting := &countingKanbanRepo{KanbanRepository: repository.NewKanbanRepo(db), fail: true}
	svc := NewKanbanService(counting, repository.NewOrderRepo(db), nil)

	_, err := svc.MoveCard(card.ID, model.StatusPaid)
	var serr *SyncConflictError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, card.ID, serr.CardID)

	// Nothing was persisted and the reloaded view shows the old column.
	var storedOrder model.Order
	require.NoError(t, db.First(&storedOrder, "id = ?", order.ID).Error)
	assert.Equal(t, model.StatusPlaced, storedOrder.Status)

	counting.fail = false
	board, err := svc.Board()
	require.NoError(t, err)
	require.Len(t, board[0].Cards, 1, "card is back in the Placed column after reconciliation")
	assert.Empty(t, board[2].Cards)
}

func TestMoveCard_OrderWriteFailureLeavesDocumentedDivergence(t *testing.T) {
	db := setupTestDB(t)
	order, card := seedOrderWithCard(t, db, model.StatusPlaced)
	failing := &failingStatusOrderRepo{OrderRepository: repository.NewOrderRepo(db), fail: true}
	svc := NewKanbanService(repository.NewKanbanRepo(db), failing, nil)

	_, err := svc.MoveCard(card.ID, model.StatusPaid)
	var serr *SyncConflictError
	require.ErrorAs(t, err, &serr)

	// Card write landed, order write did not: the two fields disagree in the
	// store until the next successful move. The view reflects the store.
	var storedCard model.KanbanCard
	require.NoError(t, db.First(&storedCard, "id = ?", card.ID).Error)
	assert.Equal(t, model.StatusPaid, storedCard.Column)
	var storedOrder model.Order
	require.NoError(t, db.First(&storedOrder, "id = ?", order.ID).Error)
	assert.Equal(t, model.StatusPlaced, storedOrder.Status)

	board, err := svc.Board()
	require.NoError(t, err)
	require.Len(t, board[2].Cards, 1)

	// The next successful move realigns both fields.
	failing.fail = false
	_, err = svc.MoveCard(card.ID, model.StatusInTransit)
	require.NoError(t, err)
	require.NoError(t, db.First(&storedOrder, "id = ?", order.ID).Error)
	assert.Equal(t, model.StatusInTransit, storedOrder.Status)
}
