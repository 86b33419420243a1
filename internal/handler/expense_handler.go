package handler

import (
	"go-resale-ops/internal/model"
	"go-resale-ops/internal/repository"
	"go-resale-ops/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

type ExpenseHandler struct {
	repo repository.ExpenseRepository
}

func NewExpenseHandler(repo repository.ExpenseRepository) *ExpenseHandler {
	return &ExpenseHandler{repo: repo}
}

func (h *ExpenseHandler) GetExpenses(c *fiber.Ctx) error {
	expenses, err := h.repo.FindAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(expenses)
}

func (h *ExpenseHandler) CreateExpense(c *fiber.Ctx) error {
	var expense model.Expense
	if err := c.BodyParser(&expense); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(&expense); len(errs) > 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "field": errs[0].FailedField})
	}
	if err := h.repo.Create(&expense); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(201).JSON(fiber.Map{"message": "Expense created", "data": expense})
}

func (h *ExpenseHandler) UpdateExpense(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid expense ID"})
	}
	existing, err := h.repo.FindByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Expense not found"})
	}

	var patch model.Expense
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	patch.BaseModel = existing.BaseModel
	if errs := validator.ValidateStruct(&patch); len(errs) > 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "field": errs[0].FailedField})
	}
	if err := h.repo.Update(&patch); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Expense updated", "data": patch})
}

func (h *ExpenseHandler) DeleteExpense(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid expense ID"})
	}
	if err := h.repo.Delete(id); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete expense"})
	}
	return c.JSON(fiber.Map{"message": "Expense deleted"})
}
