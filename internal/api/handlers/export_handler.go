package handlers

import (
	"fmt"
	"time"

	"fittrack/domain"
	"fittrack/internal/api/presenters"
	"fittrack/pkg/export"

	"github.com/gofiber/fiber/v2"
)

type (
	ExportHandler interface {
		ExportLogs(c *fiber.Ctx) error
	}

	exportHandler struct {
		exportService export.ExportService
	}
)

func NewExportHandler(exportService export.ExportService) ExportHandler {
	return &exportHandler{exportService: exportService}
}

func (h *exportHandler) ExportLogs(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	buf, err := h.exportService.ExportLogs(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedExport, err)
	}

	filename := fmt.Sprintf("fittrack-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, export.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Status(fiber.StatusOK).Send(buf.Bytes())
}
