package analysis

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fittrack/domain"
)

type stubAnalyzer struct {
	result   domain.ImageAnalysis
	mimeType string
	size     int
}

func (s *stubAnalyzer) Analyze(_ context.Context, image []byte, mimeType string) (domain.ImageAnalysis, error) {
	s.mimeType = mimeType
	s.size = len(image)
	return s.result, nil
}

// fileHeader builds a real multipart.FileHeader by parsing an encoded form.
func fileHeader(t *testing.T, filename, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()
	body := new(bytes.Buffer)
	w := multipart.NewWriter(body)
	header := make(map[string][]string)
	header["Content-Disposition"] = []string{`form-data; name="image"; filename="` + filename + `"`}
	header["Content-Type"] = []string{contentType}
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req, err := http.NewRequest(http.MethodPost, "/", body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["image"][0]
}

func TestAnalyzeImage(t *testing.T) {
	stub := &stubAnalyzer{result: domain.ImageAnalysis{Name: "Burger", Calories: 650}}
	svc := NewImageAnalysisService(stub, nil)

	res, err := svc.AnalyzeImage(context.Background(), fileHeader(t, "lunch.png", "image/png", []byte("png-bytes")), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Burger", res.Name)
	assert.Equal(t, 650, res.Calories)
	assert.Empty(t, res.ImageURL)
	assert.Equal(t, "image/png", stub.mimeType)
	assert.Equal(t, len("png-bytes"), stub.size)
}

func TestAnalyzeImageRejectsInput(t *testing.T) {
	svc := NewImageAnalysisService(&stubAnalyzer{}, nil)

	_, err := svc.AnalyzeImage(context.Background(), nil, "user-1")
	assert.ErrorIs(t, err, domain.ErrNoImageProvided)

	_, err = svc.AnalyzeImage(context.Background(), fileHeader(t, "notes.txt", "text/plain", []byte("hi")), "user-1")
	assert.ErrorIs(t, err, domain.ErrInvalidImageFormat)

	_, err = NewImageAnalysisService(nil, nil).AnalyzeImage(context.Background(), fileHeader(t, "a.jpg", "image/jpeg", []byte("x")), "user-1")
	assert.ErrorIs(t, err, domain.ErrAnalyzerNotConfigured)
}
