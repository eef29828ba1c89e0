package analysis

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"

	"fittrack/domain"
	"fittrack/internal/utils/storage"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

// MaxImageSize bounds uploads accepted for analysis.
const MaxImageSize = 10 << 20

type (
	ImageAnalysisService interface {
		AnalyzeImage(ctx context.Context, image *multipart.FileHeader, userID string) (domain.ImageAnalysis, error)
	}

	imageAnalysisService struct {
		analyzer Analyzer
		s3       storage.AwsS3
	}
)

// NewImageAnalysisService wires the analyzer and an optional photo archive.
func NewImageAnalysisService(analyzer Analyzer, s3 storage.AwsS3) ImageAnalysisService {
	return &imageAnalysisService{analyzer: analyzer, s3: s3}
}

func (s *imageAnalysisService) AnalyzeImage(ctx context.Context, image *multipart.FileHeader, userID string) (domain.ImageAnalysis, error) {
	if image == nil {
		return domain.ImageAnalysis{}, domain.ErrNoImageProvided
	}
	if s.analyzer == nil {
		return domain.ImageAnalysis{}, domain.ErrAnalyzerNotConfigured
	}
	if image.Size > MaxImageSize {
		return domain.ImageAnalysis{}, domain.ErrImageTooLarge
	}

	contentType := storage.ContentType(image)
	if !storage.IsAllowed(contentType, storage.AllowImage...) {
		return domain.ImageAnalysis{}, domain.ErrInvalidImageFormat
	}

	file, err := image.Open()
	if err != nil {
		return domain.ImageAnalysis{}, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return domain.ImageAnalysis{}, err
	}

	result, err := s.analyzer.Analyze(ctx, data, contentType)
	if err != nil {
		return domain.ImageAnalysis{}, err
	}

	if s.s3 != nil && !result.Empty() {
		fileName := fmt.Sprintf("food-photo-%s", uuid.NewString())
		objectKey, err := s.s3.UploadFile(ctx, fileName, image, storage.PhotoFolder(userID), storage.AllowImage...)
		if err != nil {
			log.Warnf("archive food photo for %s: %v", userID, err)
		} else {
			result.ImageURL = s.s3.GetPublicLinkKey(objectKey)
		}
	}

	return result, nil
}
