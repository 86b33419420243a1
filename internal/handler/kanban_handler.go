package handler

import (
	"errors"

	"go-resale-ops/internal/model"
	"go-resale-ops/internal/service"

	"github.com/gofiber/fiber/v2"
)

type KanbanHandler struct {
	service service.KanbanService
}

func NewKanbanHandler(s service.KanbanService) *KanbanHandler {
	return &KanbanHandler{service: s}
}

func (h *KanbanHandler) GetBoard(c *fiber.Ctx) error {
	board, err := h.service.Board()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load board"})
	}
	return c.JSON(board)
}

type moveCardRequest struct {
	Column model.OrderStatus `json:"column"`
}

func (h *KanbanHandler) MoveCard(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid card ID"})
	}

	var req moveCardRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	card, err := h.service.MoveCard(id, req.Column)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			return c.Status(400).JSON(fiber.Map{"error": verr.Error()})
		}
		if errors.Is(err, service.ErrCardNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Card not found"})
		}
		var serr *service.SyncConflictError
		if errors.As(err, &serr) {
			// The view has been reloaded from the store; the client should
			// refetch the board.
			return c.Status(409).JSON(fiber.Map{"error": serr.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Card moved", "data": card})
}
