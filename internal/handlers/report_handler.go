package handlers

import (
	"context"

	"github.com/Jai-S-Rathore/healthcheck/internal/models"
	"github.com/Jai-S-Rathore/healthcheck/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	service reportApplicationService
}

type reportApplicationService interface {
	MonthlySummary(ctx context.Context, userID int64) (*models.MonthlySummary, error)
	SendReport(ctx context.Context, userID int64, email string) (*services.ReportResult, error)
}

func NewReportHandler(service *services.StatsService) *ReportHandler {
	return &ReportHandler{service: service}
}

func (h *ReportHandler) Send(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return invalidToken(c)
	}

	result, err := h.service.SendReport(c.UserContext(), userID, currentUserEmail(c))
	if err != nil {
		return respondError(c, err, "Error generating report")
	}

	return c.JSON(fiber.Map{
		"message": "Report generated successfully",
		"report":  result.Report,
		"emailed": result.Emailed,
	})
}

func (h *ReportHandler) MonthlySummary(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return invalidToken(c)
	}

	summary, err := h.service.MonthlySummary(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err, "Error fetching monthly summary")
	}
	return c.JSON(summary)
}
