package handler

import (
	"errors"

	"go-resale-ops/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type OrderHandler struct {
	service service.OrderService
}

func NewOrderHandler(s service.OrderService) *OrderHandler {
	return &OrderHandler{service: s}
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

func (h *OrderHandler) GetOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetAllOrders()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(orders)
}

func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}
	order, err := h.service.GetOrderByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Order not found"})
	}
	return c.JSON(order)
}

func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	var input service.CreateOrderInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	order, err := h.service.CreateOrder(input)
	if err != nil {
		return orderErrorResponse(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Order created", "data": order})
}

// ResumeOrder retries the remaining steps of a partially created order.
func (h *OrderHandler) ResumeOrder(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	order, err := h.service.ResumeOrder(id)
	if err != nil {
		if errors.Is(err, service.ErrNoPendingRepair) {
			return c.Status(404).JSON(fiber.Map{"error": "No pending repair for this order"})
		}
		return orderErrorResponse(c, err)
	}
	return c.JSON(fiber.Map{"message": "Order repaired", "data": order})
}

// orderErrorResponse maps the workflow's error kinds onto status codes. A
// partial failure carries the step state so the caller can decide between
// retry and manual repair.
func orderErrorResponse(c *fiber.Ctx, err error) error {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		return c.Status(400).JSON(fiber.Map{"error": verr.Error()})
	}
	var perr *service.PartialOrderError
	if errors.As(err, &perr) {
		return c.Status(502).JSON(fiber.Map{
			"error":       "Order partially created",
			"order_id":    perr.Order.ID,
			"failed_step": perr.FailedStep.String(),
			"items_done":  perr.ItemsDone,
			"card_done":   perr.CardDone,
		})
	}
	return c.Status(500).JSON(fiber.Map{"error": err.Error()})
}
