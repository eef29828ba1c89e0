package domain

import (
	"errors"
	"strings"
)

var (
	MessageSuccessAnalyzeImage = "image analyzed successfully"
	MessageFailedAnalyzeImage  = "Failed to analyze image"
	MessageNoImageProvided     = "No image file provided"
	MessageNoFoodDetected      = "Could not detect food in image"

	ErrNoImageProvided        = errors.New("no image file provided")
	ErrInvalidImageFormat     = errors.New("invalid image format")
	ErrImageTooLarge          = errors.New("image exceeds the upload limit")
	ErrGeminiProcessingFailed = errors.New("gemini processing failed")
	ErrAnalyzerNotConfigured  = errors.New("image analyzer is not configured")
)

type (
	ImageAnalysis struct {
		Name     string `json:"name"`
		Calories int    `json:"calories"`
		ImageURL string `json:"imageUrl,omitempty"`
	}

	ImageAnalysisResponse struct {
		Success bool          `json:"success"`
		Data    ImageAnalysis `json:"data"`
	}
)

// Empty reports whether the analysis identified no food.
func (a ImageAnalysis) Empty() bool {
	return strings.TrimSpace(a.Name) == "" || a.Calories <= 0
}
