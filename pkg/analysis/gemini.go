package analysis

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"fittrack/domain"

	"github.com/gofiber/fiber/v2/log"
)

const foodPrompt = "Identify the food in this image and estimate its total calories. " +
	"Respond ONLY with a valid JSON object containing exactly these fields: " +
	"'name' (string, a short dish name) and 'calories' (number, kcal for the whole portion). " +
	"If no food is visible respond with {\"name\": \"\", \"calories\": 0}. " +
	"Do not include any explanations, markdown formatting, or extra text."

var jsonPattern = regexp.MustCompile(`(?s)\{.*\}`)

type (
	// Analyzer turns a food photo into a dish name and calorie estimate.
	Analyzer interface {
		Analyze(ctx context.Context, image []byte, mimeType string) (domain.ImageAnalysis, error)
	}

	geminiAnalyzer struct {
		apiKey     string
		model      string
		baseURL    string
		httpClient *http.Client
	}

	geminiResponse struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
)

// NewGeminiAnalyzer returns nil when no API key is configured.
func NewGeminiAnalyzer(apiKey, model, baseURL string) Analyzer {
	if apiKey == "" {
		return nil
	}
	return &geminiAnalyzer{
		apiKey:     apiKey,
		model:      model,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (g *geminiAnalyzer) Analyze(ctx context.Context, image []byte, mimeType string) (domain.ImageAnalysis, error) {
	if len(image) == 0 {
		return domain.ImageAnalysis{}, domain.ErrNoImageProvided
	}

	requestBody := map[string]any{
		"contents": []map[string]any{
			{
				"parts": []map[string]any{
					{"text": foodPrompt},
					{
						"inline_data": map[string]any{
							"mime_type": mimeType,
							"data":      base64.StdEncoding.EncodeToString(image),
						},
					},
				},
			},
		},
		"generationConfig": map[string]any{
			"temperature": 0.1,
			"topP":        0.8,
			"topK":        40,
		},
	}

	requestJSON, err := json.Marshal(requestBody)
	if err != nil {
		return domain.ImageAnalysis{}, err
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, g.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(requestJSON))
	if err != nil {
		return domain.ImageAnalysis{}, fmt.Errorf("%w: build request", domain.ErrGeminiProcessingFailed)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return domain.ImageAnalysis{}, transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return domain.ImageAnalysis{}, fmt.Errorf("gemini API error: %s - %s", resp.Status, string(body))
	}

	var geminiResp geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return domain.ImageAnalysis{}, err
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return domain.ImageAnalysis{}, domain.ErrGeminiProcessingFailed
	}

	text := geminiResp.Candidates[0].Content.Parts[0].Text
	log.Debugf("gemini raw response: %s", text)

	return ParseAnalysis(text)
}

// transportError strips the request URL, which names the endpoint, from err.
func transportError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = urlErr.Err
	}
	return fmt.Errorf("%w: %v", domain.ErrGeminiProcessingFailed, err)
}

// ParseAnalysis extracts the JSON object from a model reply, tolerating
// surrounding prose and markdown code fences.
func ParseAnalysis(text string) (domain.ImageAnalysis, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimSuffix(strings.TrimPrefix(text, "```json"), "```")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimSuffix(strings.TrimPrefix(text, "```"), "```")
	}
	if match := jsonPattern.FindString(text); match != "" {
		text = match
	}
	text = strings.TrimSpace(text)

	var raw struct {
		Name     string  `json:"name"`
		Calories float64 `json:"calories"`
	}
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return domain.ImageAnalysis{}, fmt.Errorf("%w: %v", domain.ErrGeminiProcessingFailed, err)
	}

	calories := int(math.Floor(raw.Calories + 0.5))
	if calories < 0 {
		calories = 0
	}
	return domain.ImageAnalysis{
		Name:     strings.TrimSpace(raw.Name),
		Calories: calories,
	}, nil
}
