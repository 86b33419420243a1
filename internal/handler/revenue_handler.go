package handler

import (
	"go-resale-ops/internal/model"
	"go-resale-ops/internal/repository"
	"go-resale-ops/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

// RevenueHandler records confirmed income entries, the source of the revenue
// charts. List and create only; entries are historical facts.
type RevenueHandler struct {
	repo repository.RevenueRepository
}

func NewRevenueHandler(repo repository.RevenueRepository) *RevenueHandler {
	return &RevenueHandler{repo: repo}
}

func (h *RevenueHandler) GetEntries(c *fiber.Ctx) error {
	entries, err := h.repo.FindAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(entries)
}

func (h *RevenueHandler) CreateEntry(c *fiber.Ctx) error {
	var entry model.RevenueEntry
	if err := c.BodyParser(&entry); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(&entry); len(errs) > 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "field": errs[0].FailedField})
	}
	if err := h.repo.Create(&entry); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(201).JSON(fiber.Map{"message": "Revenue entry created", "data": entry})
}
