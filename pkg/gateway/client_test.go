package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fittrack/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestLoginStoresTokenForLaterCalls(t *testing.T) {
	var authHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/local":
			var req domain.LoginRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			if req.Identifier != "alice" {
				writeJSON(w, http.StatusBadRequest, domain.ErrorResponse{Error: domain.ErrorBody{Status: 400, Message: "Invalid identifier or password"}})
				return
			}
			writeJSON(w, http.StatusOK, domain.AuthResponse{JWT: "tok-1", User: domain.User{ID: "u1", Username: "alice"}})
		case "/api/food-logs":
			authHeader = r.Header.Get("Authorization")
			writeJSON(w, http.StatusOK, map[string]any{"data": []domain.FoodLog{{ID: "f1", Name: "Eggs", Calories: 300}}})
		}
	}))
	defer srv.Close()

	client := New(srv.URL)
	res, err := client.Login(context.Background(), "alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", res.JWT)
	assert.Equal(t, "tok-1", client.Token())

	logs, err := client.ListFoodLogs(context.Background())
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "Bearer tok-1", authHeader)

	_, err = New(srv.URL).Login(context.Background(), "bob", "pw")
	assert.ErrorIs(t, err, ErrRemote)
	assert.Equal(t, "Invalid identifier or password", Message(err))
}

func TestErrorMapping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/users/me":
			writeJSON(w, http.StatusUnauthorized, domain.ErrorResponse{Error: domain.ErrorBody{Status: 401, Message: "token expired"}})
		case "/api/food-logs":
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": map[string]any{}})
		default:
			w.WriteHeader(http.StatusBadGateway)
			_, _ = io.WriteString(w, "<html>bad gateway</html>")
		}
	}))
	defer srv.Close()

	client := New(srv.URL, WithToken("tok"))

	_, err := client.Me(context.Background())
	assert.ErrorIs(t, err, ErrAuth)
	var gwErr *Error
	require.True(t, errors.As(err, &gwErr))
	assert.Equal(t, http.StatusUnauthorized, gwErr.Status)

	_, err = client.ListFoodLogs(context.Background())
	assert.ErrorIs(t, err, ErrRemote)
	assert.Equal(t, "Something went wrong", Message(err))

	err = client.DeleteActivityLog(context.Background(), "a1")
	assert.ErrorIs(t, err, ErrRemote)
	assert.Equal(t, "Something went wrong", Message(err))
}

func TestTransportFailureIsRemote(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url, WithToken("tok")).ListActivityLogs(context.Background())
	assert.ErrorIs(t, err, ErrRemote)
	assert.NotErrorIs(t, err, ErrAuth)
}

func TestAuthenticatedCallWithoutToken(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	_, err := New(srv.URL).Me(context.Background())
	assert.ErrorIs(t, err, ErrAuth)
	assert.False(t, called)
}

func TestCreateFoodLogWrapsDraftInData(t *testing.T) {
	var body map[string]domain.FoodLogDraft
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		writeJSON(w, http.StatusOK, map[string]any{"data": domain.FoodLog{ID: "f1", Name: body["data"].Name, Calories: body["data"].Calories}})
	}))
	defer srv.Close()

	entry, err := New(srv.URL, WithToken("tok")).CreateFoodLog(context.Background(), domain.FoodLogDraft{Name: "Eggs", Calories: 300, MealType: domain.MealBreakfast})
	require.NoError(t, err)
	assert.Equal(t, "f1", entry.ID)
	assert.Equal(t, domain.MealBreakfast, body["data"].MealType)
}

func TestAnalyzeImage(t *testing.T) {
	reply := domain.ImageAnalysisResponse{Success: true, Data: domain.ImageAnalysis{Name: "Sushi", Calories: 450}}
	var field, filename string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("image")
		if err == nil {
			field = "image"
			filename = header.Filename
			file.Close()
		}
		writeJSON(w, http.StatusOK, reply)
	}))
	defer srv.Close()

	client := New(srv.URL, WithToken("tok"))
	res, err := client.AnalyzeImage(context.Background(), "dinner.jpg", strings.NewReader("jpeg"))
	require.NoError(t, err)
	assert.Equal(t, "Sushi", res.Name)
	assert.Equal(t, "image", field)
	assert.Equal(t, "dinner.jpg", filename)

	reply = domain.ImageAnalysisResponse{Success: true, Data: domain.ImageAnalysis{Name: "", Calories: 0}}
	_, err = client.AnalyzeImage(context.Background(), "wall.jpg", strings.NewReader("jpeg"))
	assert.ErrorIs(t, err, ErrAnalysisEmpty)
	assert.Equal(t, "Could not detect food in image", Message(err))
}

func TestExportStreamsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		_, _ = w.Write([]byte("PK-xlsx"))
	}))
	defer srv.Close()

	var out bytes.Buffer
	require.NoError(t, New(srv.URL, WithToken("tok")).Export(context.Background(), &out))
	assert.Equal(t, "PK-xlsx", out.String())
}

func TestLogoutForgetsTokenEvenOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := New(srv.URL, WithToken("tok"))
	assert.Error(t, client.Logout(context.Background()))
	assert.Empty(t, client.Token())
	assert.NoError(t, client.Logout(context.Background()))
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk gone") }

func TestLocalFailuresAreRemoteErrors(t *testing.T) {
	c := New("http://bad host", WithToken("jwt"))
	_, err := c.ListFoodLogs(context.Background())
	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	assert.ErrorIs(t, err, ErrRemote)
	assert.Equal(t, domain.MessageSomethingWentWrong, gerr.Message)

	ok := New("http://127.0.0.1:1", WithToken("jwt"))
	err = ok.doJSON(context.Background(), http.MethodPost, "/api/food-logs", true, map[string]any{"bad": make(chan int)}, nil)
	assert.ErrorIs(t, err, ErrRemote)

	_, err = ok.AnalyzeImage(context.Background(), "plate.jpg", failingReader{})
	require.ErrorAs(t, err, &gerr)
	assert.ErrorIs(t, err, ErrRemote)
	assert.ErrorContains(t, gerr.Err, "disk gone")
}
