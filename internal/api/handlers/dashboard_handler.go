package handlers

import (
	"fittrack/domain"
	"fittrack/internal/api/presenters"
	"fittrack/pkg/dashboard"

	"github.com/gofiber/fiber/v2"
)

type (
	DashboardHandler interface {
		GetDashboard(c *fiber.Ctx) error
	}

	dashboardHandler struct {
		dashboardService dashboard.DashboardService
	}
)

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandler{dashboardService: dashboardService}
}

func (h *dashboardHandler) GetDashboard(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.dashboardService.GetDashboard(c.Context(), userID, c.Query("date"))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetDashboard, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDashboard)
}
