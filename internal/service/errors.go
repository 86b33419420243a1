package service

import (
	"fmt"

	"go-resale-ops/internal/model"

	"github.com/google/uuid"
)

// ValidationError rejects a request before any persistence call is made.
// Fully recoverable by the caller.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Reason)
}

// OrderStep identifies a stage of the order-creation sequence.
type OrderStep int

const (
	StepHeader OrderStep = iota
	StepItems
	StepCard
	StepStock
)

func (s OrderStep) String() string {
	switch s {
	case StepHeader:
		return "header"
	case StepItems:
		return "items"
	case StepCard:
		return "card"
	case StepStock:
		return "stock"
	default:
		return "unknown"
	}
}

// PartialOrderError reports that the order header was persisted but a later
// step failed. It records exactly what succeeded so ResumeOrder can re-run
// only the missing steps. Never silently swallowed: the caller decides whether
// to retry or leave the record for manual repair.
type PartialOrderError struct {
	Order      *model.Order
	FailedStep OrderStep
	ItemsDone  bool
	CardDone   bool
	// StockApplied marks product ids whose decrement already went through, so
	// a resume does not decrement them twice.
	StockApplied map[uuid.UUID]bool
	Err          error
}

func (e *PartialOrderError) Error() string {
	return fmt.Sprintf("order %s partially created: step %s failed: %v",
		e.Order.ID, e.FailedStep, e.Err)
}

func (e *PartialOrderError) Unwrap() error { return e.Err }

// SyncConflictError reports that a kanban move could not be persisted after
// the optimistic local update. The board view has already been discarded and
// reloaded from the store by the time this is returned.
type SyncConflictError struct {
	CardID uuid.UUID
	Err    error
}

func (e *SyncConflictError) Error() string {
	return fmt.Sprintf("kanban move for card %s conflicted: %v", e.CardID, e.Err)
}

func (e *SyncConflictError) Unwrap() error { return e.Err }
