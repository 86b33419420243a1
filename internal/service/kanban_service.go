package service

import (
	"errors"
	"sync"

	"go-resale-ops/internal/model"
	"go-resale-ops/internal/repository"
	"go-resale-ops/internal/ws"

	"github.com/google/uuid"
)

var ErrCardNotFound = errors.New("kanban card not found")

// BoardColumn is one column of the three-column board view.
type BoardColumn struct {
	Column model.OrderStatus  `json:"column"`
	Cards  []model.KanbanCard `json:"cards"`
}

type KanbanService interface {
	Board() ([]BoardColumn, error)
	MoveCard(cardID uuid.UUID, target model.OrderStatus) (*model.KanbanCard, error)
	Reload() error
}

// kanbanService keeps an in-memory view of the board and synchronizes a
// card's column with its order's status. A move applies to the local view
// first, then persists card and order sequentially; if either write fails the
// whole view is discarded and reloaded from the store. No per-card locking:
// concurrent moves on the same card are last-write-wins.
type kanbanService struct {
	kanbanRepo repository.KanbanRepository
	orderRepo  repository.OrderRepository
	hub        *ws.Hub

	mu     sync.Mutex
	cards  map[uuid.UUID]*model.KanbanCard
	loaded bool
}

func NewKanbanService(kRepo repository.KanbanRepository, oRepo repository.OrderRepository, hub *ws.Hub) KanbanService {
	return &kanbanService{
		kanbanRepo: kRepo,
		orderRepo:  oRepo,
		hub:        hub,
		cards:      make(map[uuid.UUID]*model.KanbanCard),
	}
}

func (s *kanbanService) Board() ([]BoardColumn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}

	columns := make([]BoardColumn, len(model.OrderStatuses))
	for i, status := range model.OrderStatuses {
		columns[i] = BoardColumn{Column: status, Cards: make([]model.KanbanCard, 0)}
	}
	for _, card := range s.cards {
		for i := range columns {
			if columns[i].Column == card.Column {
				columns[i].Cards = append(columns[i].Cards, *card)
				break
			}
		}
	}
	return columns, nil
}

func (s *kanbanService) MoveCard(cardID uuid.UUID, target model.OrderStatus) (*model.KanbanCard, error) {
	if !model.IsOrderStatus(target) {
		return nil, &ValidationError{Field: "column", Reason: "unknown column label"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}

	card, ok := s.cards[cardID]
	if !ok {
		return nil, ErrCardNotFound
	}

	// Dropping a card on its own column is a no-op: no persistence call, no
	// reconciliation.
	if card.Column == target {
		snapshot := *card
		return &snapshot, nil
	}

	// Optimistic local update, confirmed or discarded by the writes below.
	card.Column = target

	if err := s.kanbanRepo.UpdateColumn(card.ID, target); err != nil {
		return nil, s.reconcile(cardID, err)
	}
	if err := s.orderRepo.UpdateStatus(card.OrderID, target); err != nil {
		// The two fields now disagree in the store; a full reload is the
		// recovery, not a targeted rollback.
		return nil, s.reconcile(cardID, err)
	}

	snapshot := *card
	s.hub.Publish("card_moved", snapshot)
	return &snapshot, nil
}

// reconcile throws the optimistic state away and refetches every card.
// Called with the lock held.
func (s *kanbanService) reconcile(cardID uuid.UUID, cause error) error {
	s.loaded = false
	s.cards = make(map[uuid.UUID]*model.KanbanCard)
	// Best effort; if the reload fails too, the next Board call retries it.
	_ = s.ensureLoaded()
	return &SyncConflictError{CardID: cardID, Err: cause}
}

func (s *kanbanService) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = false
	s.cards = make(map[uuid.UUID]*model.KanbanCard)
	return s.ensureLoaded()
}

// ensureLoaded populates the view on first use. Called with the lock held.
func (s *kanbanService) ensureLoaded() error {
	if s.loaded {
		return nil
	}
	all, err := s.kanbanRepo.FindAll()
	if err != nil {
		return err
	}
	s.cards = make(map[uuid.UUID]*model.KanbanCard, len(all))
	for i := range all {
		card := all[i]
		s.cards[card.ID] = &card
	}
	s.loaded = true
	return nil
}
