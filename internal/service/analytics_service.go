package service

import (
	"time"

	"go-resale-ops/internal/analytics"
	"go-resale-ops/internal/repository"
)

type AnalyticsService interface {
	DashboardStats() (*analytics.DashboardStats, error)
	Report(rng analytics.Range) (*analytics.Report, error)
}

// analyticsService fetches a fresh snapshot through the repositories and hands
// it to the pure analytics package. The read path never writes anything.
type analyticsService struct {
	orderRepo   repository.OrderRepository
	clientRepo  repository.ClientRepository
	expenseRepo repository.ExpenseRepository
	revenueRepo repository.RevenueRepository
}

func NewAnalyticsService(
	oRepo repository.OrderRepository,
	cRepo repository.ClientRepository,
	eRepo repository.ExpenseRepository,
	rRepo repository.RevenueRepository,
) AnalyticsService {
	return &analyticsService{
		orderRepo:   oRepo,
		clientRepo:  cRepo,
		expenseRepo: eRepo,
		revenueRepo: rRepo,
	}
}

func (s *analyticsService) snapshot() (analytics.Snapshot, error) {
	var snap analytics.Snapshot
	var err error
	if snap.Orders, err = s.orderRepo.FindAll(); err != nil {
		return snap, err
	}
	if snap.Clients, err = s.clientRepo.FindAll(); err != nil {
		return snap, err
	}
	if snap.Expenses, err = s.expenseRepo.FindAll(); err != nil {
		return snap, err
	}
	if snap.Revenue, err = s.revenueRepo.FindAll(); err != nil {
		return snap, err
	}
	return snap, nil
}

func (s *analyticsService) DashboardStats() (*analytics.DashboardStats, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	stats := analytics.ComputeDashboard(snap, time.Now())
	return &stats, nil
}

func (s *analyticsService) Report(rng analytics.Range) (*analytics.Report, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	report := analytics.ComputeReport(snap, rng, time.Now())
	return &report, nil
}
