package handlers

import (
	"fittrack/domain"
	"fittrack/internal/api/presenters"
	"fittrack/internal/metrics"
	"fittrack/internal/utils"
	"fittrack/pkg/activitylog"

	"github.com/gofiber/fiber/v2"
)

type (
	ActivityLogHandler interface {
		CreateActivityLog(c *fiber.Ctx) error
		GetActivityLogs(c *fiber.Ctx) error
		DeleteActivityLog(c *fiber.Ctx) error
	}

	activityLogHandler struct {
		activityLogService activitylog.ActivityLogService
	}
)

func NewActivityLogHandler(activityLogService activitylog.ActivityLogService) ActivityLogHandler {
	return &activityLogHandler{activityLogService: activityLogService}
}

func (h *activityLogHandler) CreateActivityLog(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.CreateActivityLogRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := utils.ValidateActivityDraft(req.Data); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
	}

	res, err := h.activityLogService.CreateActivityLog(c.Context(), req.Data, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedAddActivityLog, err)
	}

	metrics.IncEntryCreated("activity")
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessAddActivityLog)
}

func (h *activityLogHandler) GetActivityLogs(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.activityLogService.GetActivityLogs(c.Context(), userID, c.Query("date"))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetActivityLogs, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetActivityLogs)
}

func (h *activityLogHandler) DeleteActivityLog(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.activityLogService.DeleteActivityLog(c.Context(), c.Params("id"), userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedDeleteActivityLog, err)
	}

	metrics.IncEntryDeleted("activity")
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessDeleteActivityLog)
}
