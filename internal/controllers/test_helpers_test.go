package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"todos-be/internal/entities"
	"todos-be/internal/jwt"
	"todos-be/internal/middleware"
	"todos-be/internal/repository"
	"todos-be/internal/service"
)

const testJWTSecret = "todos_test_jwt_secret_key_1234567890"

type testEnv struct {
	router *gin.Engine
	users  repository.UserRepository
	todos  repository.TodoRepository
	jwtSvc *jwt.JWTService
}

// setupEnv wires the full route tree over the in-memory store, the
// same way main does for a real backend.
func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := repository.NewMemoryUserRepository()
	todos := repository.NewMemoryTodoRepository()
	jwtSvc := jwt.NewJWTService(testJWTSecret, time.Hour)

	authService := service.NewAuthService(users, jwtSvc, nil)
	todoService := service.NewTodoService(todos, nil)
	userService := service.NewUserService(users, todos, nil)

	authController := NewAuthController(authService)
	todoController := NewTodoController(todoService)
	userController := NewUserController(userService)

	router := gin.New()
	api := router.Group("/api/v1")
	api.POST("/auth/register", authController.Register)
	api.POST("/auth/login", authController.Login)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(jwtSvc, users, nil))
	protected.GET("/auth/me", authController.Me)
	protected.PATCH("/auth/me", authController.UpdateMe)
	protected.GET("/todos", todoController.List)
	protected.POST("/todos", todoController.Create)
	protected.GET("/todos/stats", todoController.Stats)
	protected.GET("/todos/:id", todoController.Get)
	protected.PATCH("/todos/:id", todoController.Update)
	protected.DELETE("/todos/:id", todoController.Delete)

	admin := protected.Group("/users")
	admin.Use(middleware.AdminOnly())
	admin.GET("", userController.List)
	admin.GET("/:id", userController.Get)
	admin.PATCH("/:id", userController.Update)
	admin.DELETE("/:id", userController.Delete)

	return &testEnv{router: router, users: users, todos: todos, jwtSvc: jwtSvc}
}

// seedUser creates an account directly in the store and returns it
// with a valid bearer token.
func (e *testEnv) seedUser(t *testing.T, email, role string) (*entities.User, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	user := &entities.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}
	if err := e.users.Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	token, err := e.jwtSvc.GenerateToken(user.ID, user.Role)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	return user, token
}

// doJSON performs a request with an optional body and bearer token.
func (e *testEnv) doJSON(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json.Marshal: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp := httptest.NewRecorder()
	e.router.ServeHTTP(resp, req)
	return resp
}

// decodeEnvelope unmarshals the {success, data|error} envelope.
func decodeEnvelope(t *testing.T, resp *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("json.Unmarshal: %v (body: %s)", err, resp.Body.String())
	}
	return out
}

func mustStatus(t *testing.T, resp *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if resp.Code != expected {
		t.Fatalf("expected status %d, got %d (body: %s)", expected, resp.Code, resp.Body.String())
	}
}

func dataField(t *testing.T, out map[string]any) map[string]any {
	t.Helper()
	data, ok := out["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %v", out)
	}
	return data
}
