package handlers

import (
	"errors"

	"fittrack/domain"
	"fittrack/internal/api/presenters"
	"fittrack/internal/metrics"
	"fittrack/pkg/analysis"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type (
	ImageAnalysisHandler interface {
		AnalyzeImage(c *fiber.Ctx) error
	}

	imageAnalysisHandler struct {
		imageAnalysisService analysis.ImageAnalysisService
	}
)

func NewImageAnalysisHandler(imageAnalysisService analysis.ImageAnalysisService) ImageAnalysisHandler {
	return &imageAnalysisHandler{imageAnalysisService: imageAnalysisService}
}

// AnalyzeImage answers {success, data:{name, calories}}. An empty name or
// zero calories means no food was detected; that is still a 200.
func (h *imageAnalysisHandler) AnalyzeImage(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	image, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageNoImageProvided, domain.ErrNoImageProvided)
	}

	res, err := h.imageAnalysisService.AnalyzeImage(c.Context(), image, userID)
	if err != nil {
		metrics.IncImageAnalysis("failed")
		switch {
		case errors.Is(err, domain.ErrInvalidImageFormat), errors.Is(err, domain.ErrImageTooLarge),
			errors.Is(err, domain.ErrAnalyzerNotConfigured):
			return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedAnalyzeImage, err)
		}
		log.Errorf("analyze image for %s: %v", userID, err)
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedAnalyzeImage, err)
	}

	if res.Empty() {
		metrics.IncImageAnalysis("empty")
	} else {
		metrics.IncImageAnalysis("detected")
	}
	return c.Status(fiber.StatusOK).JSON(domain.ImageAnalysisResponse{Success: true, Data: res})
}
