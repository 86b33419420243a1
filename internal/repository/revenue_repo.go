package repository

import (
	"go-resale-ops/internal/model"

	"gorm.io/gorm"
)

type RevenueRepository interface {
	Create(entry *model.RevenueEntry) error
	FindAll() ([]model.RevenueEntry, error)
}

type revenueRepo struct {
	db *gorm.DB
}

func NewRevenueRepo(db *gorm.DB) RevenueRepository {
	return &revenueRepo{db}
}

func (r *revenueRepo) Create(entry *model.RevenueEntry) error {
	return r.db.Create(entry).Error
}

func (r *revenueRepo) FindAll() ([]model.RevenueEntry, error) {
	var entries []model.RevenueEntry
	err := r.db.Order("date ASC").Find(&entries).Error
	return entries, err
}
