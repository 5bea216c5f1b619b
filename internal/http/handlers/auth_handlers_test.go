package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/you/usermgmt/domain"
	"github.com/you/usermgmt/internal/mocks"
)

func newAuthRouter(authSvc *mocks.MockAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandlers(authSvc)
	r := gin.New()
	r.POST("/login", h.Login)
	r.POST("/logout", h.Logout)
	return r
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json response %q: %v", w.Body.String(), err)
	}
	return body
}

func TestAuthHandlers_Login(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMocks     func(*mocks.MockAuthService)
		expectedStatus int
		expectedDetail string
	}{
		{
			name: "successful login",
			body: `{"username": "john_doe", "password": "password123"}`,
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.LoginFunc = func(ctx context.Context, username, password string) (*domain.AuthResult, error) {
					return &domain.AuthResult{
						User:      &domain.User{ID: 1, Username: username},
						Token:     "signed-token",
						SessionID: "sess-1",
						ExpiresIn: 1800,
					}, nil
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "wrong credentials",
			body:           `{"username": "john_doe", "password": "wrongpass"}`,
			setupMocks:     func(authSvc *mocks.MockAuthService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedDetail: "Invalid username or password",
		},
		{
			name:           "empty credentials are an auth failure, not a binding failure",
			body:           `{"username": "", "password": ""}`,
			setupMocks:     func(authSvc *mocks.MockAuthService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedDetail: "Invalid username or password",
		},
		{
			name:           "missing fields",
			body:           `{}`,
			setupMocks:     func(authSvc *mocks.MockAuthService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedDetail: "Invalid username or password",
		},
		{
			name:           "malformed json",
			body:           `{"username": `,
			setupMocks:     func(authSvc *mocks.MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
			expectedDetail: "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := mocks.NewMockAuthService()
			tt.setupMocks(authSvc)
			r := newAuthRouter(authSvc)

			req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(tt.body))
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
			if body["token"] != "signed-token" {
				t.Errorf("expected token in response, got %v", body)
			}
			if body["expires_in"] != float64(1800) {
				t.Errorf("expected expires_in 1800, got %v", body["expires_in"])
			}
			if body["user_id"] != float64(1) {
				t.Errorf("expected user_id 1, got %v", body["user_id"])
			}
		})
	}
}

func TestAuthHandlers_Logout(t *testing.T) {
	tests := []struct {
		name            string
		authHeader      string
		setupMocks      func(*mocks.MockAuthService)
		expectedStatus  int
		expectedKey     string
		expectedMessage string
	}{
		{
			name:            "missing header",
			authHeader:      "",
			setupMocks:      func(authSvc *mocks.MockAuthService) {},
			expectedStatus:  http.StatusUnauthorized,
			expectedKey:     "detail",
			expectedMessage: "Invalid authorization header",
		},
		{
			name:            "malformed header",
			authHeader:      "Basic abc",
			setupMocks:      func(authSvc *mocks.MockAuthService) {},
			expectedStatus:  http.StatusUnauthorized,
			expectedKey:     "detail",
			expectedMessage: "Invalid authorization header",
		},
		{
			name:       "live session revoked",
			authHeader: "Bearer good-token",
			setupMocks: func(authSvc *mocks.MockAuthService) {
				authSvc.LogoutFunc = func(ctx context.Context, token string) (bool, error) {
					return true, nil
				}
			},
			expectedStatus:  http.StatusOK,
			expectedKey:     "message",
			expectedMessage: "Logged out successfully",
		},
		{
			name:            "well formed token with no session",
			authHeader:      "Bearer stale-token",
			setupMocks:      func(authSvc *mocks.MockAuthService) {},
			expectedStatus:  http.StatusOK,
			expectedKey:     "message",
			expectedMessage: "No active session",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := mocks.NewMockAuthService()
			tt.setupMocks(authSvc)
			r := newAuthRouter(authSvc)

			req := httptest.NewRequest(http.MethodPost, "/logout", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d (%s)", tt.expectedStatus, w.Code, w.Body.String())
			}
			body := decodeBody(t, w)
			if body[tt.expectedKey] != tt.expectedMessage {
				t.Errorf("expected %s=%q, got %v", tt.expectedKey, tt.expectedMessage, body)
			}
		})
	}
}
