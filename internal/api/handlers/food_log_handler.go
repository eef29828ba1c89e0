package handlers

import (
	"fittrack/domain"
	"fittrack/internal/api/presenters"
	"fittrack/internal/metrics"
	"fittrack/internal/utils"
	"fittrack/pkg/foodlog"

	"github.com/gofiber/fiber/v2"
)

type (
	FoodLogHandler interface {
		CreateFoodLog(c *fiber.Ctx) error
		GetFoodLogs(c *fiber.Ctx) error
		DeleteFoodLog(c *fiber.Ctx) error
	}

	foodLogHandler struct {
		foodLogService foodlog.FoodLogService
	}
)

func NewFoodLogHandler(foodLogService foodlog.FoodLogService) FoodLogHandler {
	return &foodLogHandler{foodLogService: foodLogService}
}

func (h *foodLogHandler) CreateFoodLog(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.CreateFoodLogRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := utils.ValidateFoodDraft(req.Data); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
	}

	res, err := h.foodLogService.CreateFoodLog(c.Context(), req.Data, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedAddFoodLog, err)
	}

	metrics.IncEntryCreated("food")
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessAddFoodLog)
}

func (h *foodLogHandler) GetFoodLogs(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.foodLogService.GetFoodLogs(c.Context(), userID, c.Query("date"))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetFoodLogs, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetFoodLogs)
}

func (h *foodLogHandler) DeleteFoodLog(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.foodLogService.DeleteFoodLog(c.Context(), c.Params("id"), userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedDeleteFoodLog, err)
	}

	metrics.IncEntryDeleted("food")
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessDeleteFoodLog)
}
