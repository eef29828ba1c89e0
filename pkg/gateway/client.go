package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"fittrack/domain"
)

const DefaultTimeout = 30 * time.Second

type (
	Client struct {
		baseURL    string
		httpClient *http.Client

		mu    sync.RWMutex
		token string
	}

	Option func(*Client)

	envelope[T any] struct {
		Data T `json:"data"`
	}
)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = timeout }
}

func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New builds a client for the API rooted at baseURL, e.g. http://localhost:1337.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) Register(ctx context.Context, req domain.RegisterRequest) (domain.AuthResponse, error) {
	var res domain.AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/local/register", false, req, &res); err != nil {
		return domain.AuthResponse{}, err
	}
	c.SetToken(res.JWT)
	return res, nil
}

func (c *Client) Login(ctx context.Context, identifier, password string) (domain.AuthResponse, error) {
	var res domain.AuthResponse
	req := domain.LoginRequest{Identifier: identifier, Password: password}
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/local", false, req, &res); err != nil {
		return domain.AuthResponse{}, err
	}
	c.SetToken(res.JWT)
	return res, nil
}

// Logout revokes the token server-side and forgets it locally, even when the
// server call fails.
func (c *Client) Logout(ctx context.Context) error {
	if c.Token() == "" {
		return nil
	}
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/logout", true, nil, nil)
	c.SetToken("")
	return err
}

func (c *Client) Me(ctx context.Context) (domain.User, error) {
	var user domain.User
	err := c.doJSON(ctx, http.MethodGet, "/api/users/me", true, nil, &user)
	return user, err
}

func (c *Client) UpdateUser(ctx context.Context, id string, form domain.ProfileForm) (domain.User, error) {
	var user domain.User
	err := c.doJSON(ctx, http.MethodPut, "/api/users/"+url.PathEscape(id), true, form, &user)
	return user, err
}

func (c *Client) ListFoodLogs(ctx context.Context) ([]domain.FoodLog, error) {
	var res envelope[[]domain.FoodLog]
	if err := c.doJSON(ctx, http.MethodGet, "/api/food-logs", true, nil, &res); err != nil {
		return nil, err
	}
	return res.Data, nil
}

func (c *Client) CreateFoodLog(ctx context.Context, draft domain.FoodLogDraft) (domain.FoodLog, error) {
	var res envelope[domain.FoodLog]
	err := c.doJSON(ctx, http.MethodPost, "/api/food-logs", true, domain.CreateFoodLogRequest{Data: draft}, &res)
	return res.Data, err
}

func (c *Client) DeleteFoodLog(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/food-logs/"+url.PathEscape(id), true, nil, nil)
}

func (c *Client) ListActivityLogs(ctx context.Context) ([]domain.ActivityLog, error) {
	var res envelope[[]domain.ActivityLog]
	if err := c.doJSON(ctx, http.MethodGet, "/api/activity-logs", true, nil, &res); err != nil {
		return nil, err
	}
	return res.Data, nil
}

func (c *Client) CreateActivityLog(ctx context.Context, draft domain.ActivityLogDraft) (domain.ActivityLog, error) {
	var res envelope[domain.ActivityLog]
	err := c.doJSON(ctx, http.MethodPost, "/api/activity-logs", true, domain.CreateActivityLogRequest{Data: draft}, &res)
	return res.Data, err
}

func (c *Client) DeleteActivityLog(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/activity-logs/"+url.PathEscape(id), true, nil, nil)
}

// AnalyzeImage uploads a meal photo. A reply without a dish name or with
// non-positive calories yields ErrAnalysisEmpty.
func (c *Client) AnalyzeImage(ctx context.Context, filename string, image io.Reader) (domain.ImageAnalysis, error) {
	body := new(bytes.Buffer)
	form := multipart.NewWriter(body)
	part, err := form.CreateFormFile("image", filename)
	if err != nil {
		return domain.ImageAnalysis{}, remote(0, "", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return domain.ImageAnalysis{}, remote(0, "", fmt.Errorf("read image: %w", err))
	}
	if err := form.Close(); err != nil {
		return domain.ImageAnalysis{}, remote(0, "", err)
	}

	var res domain.ImageAnalysisResponse
	if err := c.do(ctx, http.MethodPost, "/api/image-analysis", true, body, form.FormDataContentType(), &res); err != nil {
		return domain.ImageAnalysis{}, err
	}
	if !res.Success || res.Data.Empty() {
		return domain.ImageAnalysis{}, &Error{Kind: ErrAnalysisEmpty, Status: http.StatusOK, Message: domain.MessageNoFoodDetected}
	}
	return res.Data, nil
}

func (c *Client) Dashboard(ctx context.Context, date string) (domain.DashboardResponse, error) {
	path := "/api/dashboard"
	if date != "" {
		path += "?date=" + url.QueryEscape(date)
	}
	var res envelope[domain.DashboardResponse]
	err := c.doJSON(ctx, http.MethodGet, path, true, nil, &res)
	return res.Data, err
}

// Export streams the xlsx workbook into w.
func (c *Client) Export(ctx context.Context, w io.Writer) error {
	resp, err := c.send(ctx, http.MethodGet, "/api/export", true, nil, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if _, err := io.Copy(w, resp.Body); err != nil {
		return remote(0, "", err)
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, auth bool, in any, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return remote(0, "", fmt.Errorf("encode request: %w", err))
		}
		body = bytes.NewReader(payload)
		contentType = "application/json"
	}
	return c.do(ctx, method, path, auth, body, contentType, out)
}

func (c *Client) do(ctx context.Context, method, path string, auth bool, body io.Reader, contentType string, out any) error {
	resp, err := c.send(ctx, method, path, auth, body, contentType)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return remote(resp.StatusCode, "", fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// send performs the request and converts every failure, transport or
// non-2xx, into an *Error. The caller owns a successful response body.
func (c *Client) send(ctx context.Context, method, path string, auth bool, body io.Reader, contentType string) (*http.Response, error) {
	token := c.Token()
	if auth && token == "" {
		return nil, &Error{Kind: ErrAuth, Status: http.StatusUnauthorized, Message: "Please log in"}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, remote(0, "", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if auth {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, remote(0, "", err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()
	return nil, decodeError(resp)
}

func decodeError(resp *http.Response) *Error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	var envelope domain.ErrorResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return remote(resp.StatusCode, "", errors.New(resp.Status))
	}

	var cause error
	if envelope.Error.Details != "" {
		cause = errors.New(envelope.Error.Details)
	}
	return remote(resp.StatusCode, envelope.Error.Message, cause)
}
