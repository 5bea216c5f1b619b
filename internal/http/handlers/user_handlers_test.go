package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/you/usermgmt/domain"
	"github.com/you/usermgmt/internal/mocks"
)

func newUserRouter(userSvc *mocks.MockUserService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewUserHandlers(userSvc)
	r := gin.New()
	users := r.Group("/users")
	users.GET("", h.List)
	users.GET("/search", h.Search)
	users.GET("/:id", h.Get)
	users.POST("", h.Create)
	users.PUT("/:id", h.Update)
	users.DELETE("/:id", h.Delete)
	return r
}

func johnDoe() *domain.User {
	return &domain.User{
		ID:        1,
		Username:  "john_doe",
		Email:     "john@example.com",
		Age:       30,
		Phone:     "+1234567890",
		IsActive:  true,
		CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestUserHandlers_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMocks     func(*mocks.MockUserService)
		expectedStatus int
		expectedDetail string
	}{
		{
			name:           "successful creation",
			body:           `{"username": "john_doe", "email": "john@example.com", "password": "secret1", "age": 30}`,
			setupMocks:     func(userSvc *mocks.MockUserService) {},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "validation failure",
			body: `{"username": "bad name", "email": "nope", "password": "123", "age": 12}`,
			setupMocks: func(userSvc *mocks.MockUserService) {
				userSvc.CreateFunc = func(ctx context.Context, input domain.CreateUserInput) (*domain.User, error) {
					ve := &domain.ValidationError{}
					ve.Add("username", "must contain only letters, digits and underscores")
					return nil, ve
				}
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedDetail: "username: must contain only letters, digits and underscores",
		},
		{
			name: "duplicate username",
			body: `{"username": "john_doe", "email": "x@example.com", "password": "secret1", "age": 30}`,
			setupMocks: func(userSvc *mocks.MockUserService) {
				userSvc.CreateFunc = func(ctx context.Context, input domain.CreateUserInput) (*domain.User, error) {
					return nil, domain.ErrUsernameTaken
				}
			},
			expectedStatus: http.StatusBadRequest,
			expectedDetail: "Username already exists",
		},
		{
			name:           "malformed json",
			body:           `{"username": `,
			setupMocks:     func(userSvc *mocks.MockUserService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedDetail: "Invalid request body",
		},
		{
			name:           "type mismatch",
			body:           `{"username": "john_doe", "email": "x@example.com", "password": "secret1", "age": "thirty"}`,
			setupMocks:     func(userSvc *mocks.MockUserService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedDetail: "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userSvc := mocks.NewMockUserService()
			tt.setupMocks(userSvc)
			r := newUserRouter(userSvc)

			req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d (%s)", tt.expectedStatus, w.Code, w.Body.String())
			}
			body := decodeBody(t, w)
			if tt.expectedDetail != "" {
				if body["detail"] != tt.expectedDetail {
					t.Errorf("expected detail %q, got %q", tt.expectedDetail, body["detail"])
				}
				return
			}
			if body["username"] != "john_doe" || body["is_active"] != true {
				t.Errorf("unexpected body: %v", body)
			}
			if _, leaked := body["password"]; leaked {
				t.Error("password must never be in the response")
			}
		})
	}
}

func TestUserHandlers_Get(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		setupMocks     func(*mocks.MockUserService)
		expectedStatus int
		expectedDetail string
	}{
		{
			name: "found",
			path: "/users/1",
			setupMocks: func(userSvc *mocks.MockUserService) {
				userSvc.GetFunc = func(ctx context.Context, id uint) (*domain.User, error) {
					return johnDoe(), nil
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unknown id",
			path:           "/users/99999",
			setupMocks:     func(userSvc *mocks.MockUserService) {},
			expectedStatus: http.StatusNotFound,
			expectedDetail: "User not found",
		},
		{
			name:           "non-numeric id",
			path:           "/users/abc",
			setupMocks:     func(userSvc *mocks.MockUserService) {},
			expectedStatus: http.StatusBadRequest,
			expectedDetail: "Invalid user ID format",
		},
		{
			name:           "negative id",
			path:           "/users/-1",
			setupMocks:     func(userSvc *mocks.MockUserService) {},
			expectedStatus: http.StatusBadRequest,
			expectedDetail: "Invalid user ID format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userSvc := mocks.NewMockUserService()
			tt.setupMocks(userSvc)
			r := newUserRouter(userSvc)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d (%s)", tt.expectedStatus, w.Code, w.Body.String())
			}
			body := decodeBody(t, w)
			if tt.expectedDetail != "" {
				if body["detail"] != tt.expectedDetail {
					t.Errorf("expected detail %q, got %q", tt.expectedDetail, body["detail"])
				}
				return
			}
			if body["id"] != float64(1) || body["username"] != "john_doe" {
				t.Errorf("unexpected body: %v", body)
			}
			if body["created_at"] != "2024-03-01T12:00:00Z" {
				t.Errorf("expected RFC3339 created_at, got %v", body["created_at"])
			}
		})
	}
}

func TestUserHandlers_List(t *testing.T) {
	userSvc := mocks.NewMockUserService()
	var got domain.ListParams
	userSvc.ListFunc = func(ctx context.Context, params domain.ListParams) ([]*domain.User, error) {
		got = params
		return []*domain.User{johnDoe()}, nil
	}
	r := newUserRouter(userSvc)

	tests := []struct {
		name     string
		query    string
		expected domain.ListParams
	}{
		{"defaults", "", domain.ListParams{SortBy: domain.SortByID}},
		{"window", "?limit=5&offset=10", domain.ListParams{Limit: 5, Offset: 10, SortBy: domain.SortByID}},
		{"sorting", "?sort_by=username&order=desc", domain.ListParams{SortBy: domain.SortByUsername, Descending: true}},
		{"garbage paging falls back", "?limit=abc&offset=xyz", domain.ListParams{SortBy: domain.SortByID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users"+tt.query, nil))

			if w.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
			}
			if got != tt.expected {
				t.Errorf("expected params %+v, got %+v", tt.expected, got)
			}

			var list []map[string]interface{}
			if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
				t.Fatalf("expected a json array: %v", err)
			}
			if len(list) != 1 {
				t.Errorf("expected 1 user, got %d", len(list))
			}
		})
	}
}

func TestUserHandlers_Update(t *testing.T) {
	t.Run("partial update", func(t *testing.T) {
		userSvc := mocks.NewMockUserService()
		var gotInput domain.UpdateUserInput
		userSvc.UpdateFunc = func(ctx context.Context, id uint, input domain.UpdateUserInput) (*domain.User, error) {
			gotInput = input
			u := johnDoe()
			u.Email = *input.Email
			return u, nil
		}
		r := newUserRouter(userSvc)

		req := httptest.NewRequest(http.MethodPut, "/users/1", strings.NewReader(`{"email": "new@example.com"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
		}
		if gotInput.Email == nil || *gotInput.Email != "new@example.com" {
			t.Error("expected email to be forwarded")
		}
		if gotInput.Username != nil || gotInput.Age != nil || gotInput.IsActive != nil {
			t.Error("absent fields must stay nil")
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		r := newUserRouter(mocks.NewMockUserService())

		req := httptest.NewRequest(http.MethodPut, "/users/99999", strings.NewReader(`{"email": "x@example.com"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
		if body := decodeBody(t, w); body["detail"] != "User not found" {
			t.Errorf("unexpected body: %v", body)
		}
	})

	t.Run("invalid id", func(t *testing.T) {
		r := newUserRouter(mocks.NewMockUserService())

		req := httptest.NewRequest(http.MethodPut, "/users/abc", strings.NewReader(`{"email": "x@example.com"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("username collision", func(t *testing.T) {
		userSvc := mocks.NewMockUserService()
		userSvc.UpdateFunc = func(ctx context.Context, id uint, input domain.UpdateUserInput) (*domain.User, error) {
			return nil, domain.ErrUsernameTaken
		}
		r := newUserRouter(userSvc)

		req := httptest.NewRequest(http.MethodPut, "/users/1", strings.NewReader(`{"username": "taken"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if body := decodeBody(t, w); body["detail"] != "Username already exists" {
			t.Errorf("unexpected body: %v", body)
		}
	})
}

func TestUserHandlers_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		userSvc := mocks.NewMockUserService()
		userSvc.DeleteFunc = func(ctx context.Context, id uint) error {
			return nil
		}
		r := newUserRouter(userSvc)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/users/1", nil))

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if body := decodeBody(t, w); body["message"] != "User deleted successfully" {
			t.Errorf("unexpected body: %v", body)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		r := newUserRouter(mocks.NewMockUserService())

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/users/99999", nil))

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}

func TestUserHandlers_Search(t *testing.T) {
	t.Run("query forwarding", func(t *testing.T) {
		userSvc := mocks.NewMockUserService()
		var got domain.SearchParams
		userSvc.SearchFunc = func(ctx context.Context, params domain.SearchParams) ([]*domain.User, error) {
			got = params
			return []*domain.User{johnDoe()}, nil
		}
		r := newUserRouter(userSvc)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/search?q=john&field=email&exact=true", nil))

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
		}
		expected := domain.SearchParams{Query: "john", Field: domain.SearchByEmail, Exact: true}
		if got != expected {
			t.Errorf("expected params %+v, got %+v", expected, got)
		}
	})

	t.Run("missing query", func(t *testing.T) {
		userSvc := mocks.NewMockUserService()
		userSvc.SearchFunc = func(ctx context.Context, params domain.SearchParams) ([]*domain.User, error) {
			ve := &domain.ValidationError{}
			ve.Add("q", "must not be empty")
			return nil, ve
		}
		r := newUserRouter(userSvc)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/search", nil))

		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
		if body := decodeBody(t, w); body["detail"] != "q: must not be empty" {
			t.Errorf("unexpected body: %v", body)
		}
	})

	t.Run("search route is not shadowed by the id route", func(t *testing.T) {
		userSvc := mocks.NewMockUserService()
		called := false
		userSvc.SearchFunc = func(ctx context.Context, params domain.SearchParams) ([]*domain.User, error) {
			called = true
			return []*domain.User{}, nil
		}
		userSvc.GetFunc = func(ctx context.Context, id uint) (*domain.User, error) {
			t.Error("the id handler must not see /users/search")
			return nil, domain.ErrUserNotFound
		}
		r := newUserRouter(userSvc)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/search?q=john", nil))

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if !called {
			t.Error("expected the search handler to run")
		}
	})
}
