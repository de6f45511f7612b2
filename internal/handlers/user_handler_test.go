package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/services"
	"fintrack/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

// --- shared helpers ---

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func parseJSONArray(t *testing.T, rec *httptest.ResponseRecorder) []interface{} {
	t.Helper()
	var result []interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON array response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

// --- mock user service ---

type mockUserService struct {
	upsertUserFn  func(id, email, name string) (*models.User, error)
	getUserByIDFn func(id string) (*models.User, error)
}

func (m *mockUserService) UpsertUser(_ context.Context, id, email, name string) (*models.User, error) {
	if m.upsertUserFn != nil {
		return m.upsertUserFn(id, email, name)
	}
	return &models.User{ID: id, Email: email, Name: name}, nil
}

func (m *mockUserService) GetUserByID(_ context.Context, id string) (*models.User, error) {
	if m.getUserByIDFn != nil {
		return m.getUserByIDFn(id)
	}
	return &models.User{ID: id}, nil
}

var _ services.UserServicer = (*mockUserService)(nil)

func setupUserRouter(handler *UserHandler) *gin.Engine {
	r := gin.New()
	r.POST("/users", handler.UpsertUser)
	return r
}

// --- tests ---

func TestUserHandler_UpsertUser(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		userSvc := &mockUserService{
			upsertUserFn: func(id, email, name string) (*models.User, error) {
				return &models.User{ID: id, Email: email, Name: name}, nil
			},
		}
		handler := NewUserHandler(userSvc)
		r := setupUserRouter(handler)

		rec := doRequest(r, "POST", "/users",
			`{"id":"auth0|123","email":"alice@example.com","name":"Alice"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["id"] != "auth0|123" {
			t.Errorf("expected auth0|123, got %v", result["id"])
		}
		if result["email"] != "alice@example.com" {
			t.Errorf("expected alice@example.com, got %v", result["email"])
		}
	})

	t.Run("returns 400 on missing id", func(t *testing.T) {
		handler := NewUserHandler(&mockUserService{})
		r := setupUserRouter(handler)

		rec := doRequest(r, "POST", "/users", `{"email":"alice@example.com"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "VALIDATION_ERROR")
	})

	t.Run("returns 400 on missing email", func(t *testing.T) {
		handler := NewUserHandler(&mockUserService{})
		r := setupUserRouter(handler)

		rec := doRequest(r, "POST", "/users", `{"id":"auth0|123"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on malformed email", func(t *testing.T) {
		handler := NewUserHandler(&mockUserService{})
		r := setupUserRouter(handler)

		rec := doRequest(r, "POST", "/users", `{"id":"auth0|123","email":"not-an-email"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 500 on service failure", func(t *testing.T) {
		userSvc := &mockUserService{
			upsertUserFn: func(_, _, _ string) (*models.User, error) {
				return nil, apperrors.ErrInternalServer
			},
		}
		handler := NewUserHandler(userSvc)
		r := setupUserRouter(handler)

		rec := doRequest(r, "POST", "/users",
			`{"id":"auth0|123","email":"alice@example.com"}`)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
	})
}
