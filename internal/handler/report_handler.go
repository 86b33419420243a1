package handler

import (
	"go-resale-ops/internal/analytics"
	"go-resale-ops/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	service service.AnalyticsService
}

func NewReportHandler(s service.AnalyticsService) *ReportHandler {
	return &ReportHandler{service: s}
}

// GetDashboardStats returns the landing-page overview figures.
func (h *ReportHandler) GetDashboardStats(c *fiber.Ctx) error {
	stats, err := h.service.DashboardStats()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch dashboard stats"})
	}
	return c.JSON(stats)
}

// GetReport returns the in-range aggregates.
// Query params: range (today|week|month|all, default month)
func (h *ReportHandler) GetReport(c *fiber.Ctx) error {
	rng := analytics.ParseRange(c.Query("range", "month"))

	report, err := h.service.Report(rng)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to build report"})
	}
	return c.JSON(report)
}
