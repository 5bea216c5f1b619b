package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/you/usermgmt/internal/config"
	httpx "github.com/you/usermgmt/internal/http"
	"github.com/you/usermgmt/internal/http/handlers"
	"github.com/you/usermgmt/internal/http/middleware"
	"github.com/you/usermgmt/internal/infrastructure/auth"
	"github.com/you/usermgmt/internal/infrastructure/database"
	"github.com/you/usermgmt/internal/infrastructure/repositories"
	"github.com/you/usermgmt/internal/services"
)

// TestServer runs the full HTTP stack against an in-memory SQLite database
// and a miniredis instance, so every test sees an isolated, real deployment.
type TestServer struct {
	Server *httptest.Server
	Config *config.Config
	DB     *gorm.DB
	Redis  *redis.Client
	Mini   *miniredis.Miniredis
	Client *http.Client
}

var dbSequence atomic.Int64

// NewTestServer boots the whole stack for one test. The generous write quota
// keeps ordinary tests clear of the limiter.
func NewTestServer(t *testing.T) *TestServer {
	return NewTestServerWithWriteQuota(t, 1000)
}

// NewTestServerWithWriteQuota boots the stack with a specific rate limit.
func NewTestServerWithWriteQuota(t *testing.T, requests int) *TestServer {
	t.Helper()

	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		APIVersion:        "1.0.0",
		JWTSecret:         "e2e-test-secret",
		JWTIssuer:         "usermgmt-test",
		SessionTTL:        30 * time.Minute,
		RateLimitRequests: requests,
		RateLimitWindow:   time.Minute,
	}

	// A named shared-memory database keeps all pooled connections on the
	// same store while isolating parallel test servers from each other.
	dsn := fmt.Sprintf("file:e2e_%d?mode=memory&cache=shared", dbSequence.Add(1))
	db, err := database.Open("sqlite", dsn)
	require.NoError(t, err, "open database")
	require.NoError(t, repositories.AutoMigrate(db), "migrate database")

	mr, err := miniredis.Run()
	require.NoError(t, err, "start miniredis")
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	router := buildTestRouter(cfg, db, redisClient)
	server := httptest.NewServer(router)

	t.Cleanup(func() {
		server.Close()
		redisClient.Close()
		mr.Close()
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return &TestServer{
		Server: server,
		Config: cfg,
		DB:     db,
		Redis:  redisClient,
		Mini:   mr,
		Client: server.Client(),
	}
}

func buildTestRouter(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *gin.Engine {
	userRepo := repositories.NewUserRepository(db)
	sessionRepo := repositories.NewSessionRepository(redisClient, cfg.SessionTTL)

	passwordSvc := auth.NewPasswordService()
	tokenSvc := auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.SessionTTL)

	authSvc := services.NewAuthService(userRepo, sessionRepo, passwordSvc, tokenSvc)
	userSvc := services.NewUserService(userRepo, passwordSvc)
	statsSvc := services.NewStatsService(userRepo, sessionRepo)
	limiter := services.NewRateLimiter(redisClient, cfg.RateLimitRequests, cfg.RateLimitWindow)

	return httpx.BuildRouter(
		handlers.NewSystemHandlers(statsSvc, cfg.APIVersion),
		handlers.NewAuthHandlers(authSvc),
		handlers.NewUserHandlers(userSvc),
		middleware.NewAuthMW(authSvc),
		middleware.NewRateLimitMW(limiter),
	)
}

// DoJSON performs a request with an optional JSON body and bearer token and
// decodes the JSON response.
func (ts *TestServer) DoJSON(t *testing.T, method, path string, payload interface{}, token string) (int, map[string]interface{}) {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err, "marshal request body")
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, body)
	require.NoError(t, err, "build request")
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err, "execute request")
	defer resp.Body.Close()

	var decoded map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		decoded = nil
	}
	return resp.StatusCode, decoded
}

// DoJSONList is DoJSON for endpoints returning a JSON array.
func (ts *TestServer) DoJSONList(t *testing.T, method, path string) (int, []map[string]interface{}) {
	t.Helper()

	req, err := http.NewRequest(method, ts.Server.URL+path, nil)
	require.NoError(t, err, "build request")

	resp, err := ts.Client.Do(req)
	require.NoError(t, err, "execute request")
	defer resp.Body.Close()

	var decoded []map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		decoded = nil
	}
	return resp.StatusCode, decoded
}

// CreateUser registers a user through the API and fails the test on anything
// but 201.
func (ts *TestServer) CreateUser(t *testing.T, username, email, password string, age int) uint {
	t.Helper()

	status, body := ts.DoJSON(t, http.MethodPost, "/users", map[string]interface{}{
		"username": username,
		"email":    email,
		"password": password,
		"age":      age,
	}, "")
	require.Equal(t, http.StatusCreated, status, "create user %s: %v", username, body)
	return uint(body["id"].(float64))
}

// Login authenticates through the API and returns the bearer token.
func (ts *TestServer) Login(t *testing.T, username, password string) string {
	t.Helper()

	status, body := ts.DoJSON(t, http.MethodPost, "/login", map[string]interface{}{
		"username": username,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, status, "login %s: %v", username, body)
	return body["token"].(string)
}
