package handler

import (
	"go-resale-ops/internal/model"
	"go-resale-ops/internal/repository"
	"go-resale-ops/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

// ClientHandler is a thin record editor: straight through the repository,
// no workflow behind it.
type ClientHandler struct {
	repo repository.ClientRepository
}

func NewClientHandler(repo repository.ClientRepository) *ClientHandler {
	return &ClientHandler{repo: repo}
}

func (h *ClientHandler) GetClients(c *fiber.Ctx) error {
	clients, err := h.repo.FindAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(clients)
}

func (h *ClientHandler) CreateClient(c *fiber.Ctx) error {
	var client model.Client
	if err := c.BodyParser(&client); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(&client); len(errs) > 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "field": errs[0].FailedField})
	}
	if err := h.repo.Create(&client); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(201).JSON(fiber.Map{"message": "Client created", "data": client})
}

func (h *ClientHandler) UpdateClient(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid client ID"})
	}
	existing, err := h.repo.FindByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Client not found"})
	}

	var patch model.Client
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
	return c.JSON(fiber.Map{"message": "Client updated", "data": patch})
}

func (h *ClientHandler) DeleteClient(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid client ID"})
	}
	if err := h.repo.Delete(id); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete client"})
	}
	return c.JSON(fiber.Map{"message": "Client deleted"})
}
