package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpapi "gaia_backend/internal/http"
	"gaia_backend/internal/http/handlers"
	"gaia_backend/internal/notify"
	"gaia_backend/internal/repository"
	"gaia_backend/internal/service"
	"gaia_backend/internal/ws"

	"github.com/gin-gonic/gin"
)

// captureSender records the last issued code instead of delivering it.
type captureSender struct {
	email string
	code  string
}

func (s *captureSender) SendResetCode(email, code string) error {
	s.email = email
	s.code = code
	return nil
}

var _ notify.Sender = (*captureSender)(nil)

func newTestRouter(t *testing.T) (*gin.Engine, *captureSender) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")
	service.InitJWT()

	sender := &captureSender{}
	h := handlers.NewHandler(
		repository.NewUserRepository(),
		repository.NewTaskRepository(),
		repository.NewResetRepository(),
		sender,
		ws.NewHub(),
		10*time.Minute,
	)

	r := gin.New()
	httpapi.RegisterRoutes(r, h, "test")
	return r, sender
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var res map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
			t.Fatalf("decode response %q: %v", w.Body.String(), err)
		}
	}
	return w.Code, res
}

func TestRegisterLoginFlow(t *testing.T) {
	r, _ := newTestRouter(t)

	code, res := doJSON(t, r, http.MethodPost, "/api/register", "", map[string]string{
		"username": "Ana", "email": "ana@x.com", "password": "abc123", "confirmPassword": "abc123",
	})
	if code != http.StatusCreated || res["success"] != true {
		t.Fatalf("register: code=%d res=%v", code, res)
	}
	user := res["user"].(map[string]any)
	if user["id"].(float64) != 1 || user["username"] != "Ana" {
		t.Fatalf("user payload: %v", user)
	}

	// duplicate email always fails, whatever the other fields are
	code, res = doJSON(t, r, http.MethodPost, "/api/register", "", map[string]string{
		"username": "Someone", "email": "ana@x.com", "password": "xyz789", "confirmPassword": "xyz789",
	})
	if code != http.StatusBadRequest || res["success"] != false {
		t.Fatalf("duplicate register: code=%d res=%v", code, res)
	}

	code, res = doJSON(t, r, http.MethodPost, "/api/login", "", map[string]string{
		"email": "ana@x.com", "password": "abc123",
	})
	if code != http.StatusOK || res["token"] == nil {
		t.Fatalf("login: code=%d res=%v", code, res)
	}

	// token decodes back to the same user
	claims, err := service.ParseJWT(res["token"].(string))
	if err != nil {
		t.Fatalf("parse issued token: %v", err)
	}
	if claims.UserID != 1 || claims.Email != "ana@x.com" {
		t.Fatalf("claims = %+v", claims)
	}

	code, res = doJSON(t, r, http.MethodPost, "/api/login", "", map[string]string{
		"email": "ana@x.com", "password": "wrong",
	})
	if code != http.StatusUnauthorized {
		t.Fatalf("bad login: code=%d res=%v", code, res)
	}
}

func TestPasswordRecoveryFlow(t *testing.T) {
	r, sender := newTestRouter(t)

	doJSON(t, r, http.MethodPost, "/api/register", "", map[string]string{
		"username": "Ana", "email": "ana@x.com", "password": "abc123", "confirmPassword": "abc123",
	})

	code, res := doJSON(t, r, http.MethodPost, "/api/forgot-password", "", map[string]string{"email": "ana@x.com"})
	if code != http.StatusOK || res["email"] != "ana@x.com" {
		t.Fatalf("forgot: code=%d res=%v", code, res)
	}
	if sender.code == "" || len(sender.code) != 6 {
		t.Fatalf("no code issued: %q", sender.code)
	}

	// unknown email
	code, _ = doJSON(t, r, http.MethodPost, "/api/forgot-password", "", map[string]string{"email": "who@x.com"})
	if code != http.StatusNotFound {
		t.Fatalf("unknown email: code=%d", code)
	}

	// wrong code fails and keeps the request pending
	code, _ = doJSON(t, r, http.MethodPost, "/api/verify-code", "", map[string]string{"email": "ana@x.com", "code": "000000"})
	if code != http.StatusBadRequest {
		t.Fatalf("wrong code: code=%d", code)
	}
	code, _ = doJSON(t, r, http.MethodPost, "/api/verify-code", "", map[string]string{"email": "ana@x.com", "code": sender.code})
	if code != http.StatusOK {
		t.Fatalf("right code after wrong attempt: code=%d", code)
	}

	// too-short new password is rejected before the code is consumed
	code, _ = doJSON(t, r, http.MethodPost, "/api/reset-password", "", map[string]string{
		"email": "ana@x.com", "code": sender.code, "newPassword": "abcd", "confirmPassword": "abcd",
	})
	if code != http.StatusBadRequest {
		t.Fatalf("short password: code=%d", code)
	}

	code, _ = doJSON(t, r, http.MethodPost, "/api/reset-password", "", map[string]string{
		"email": "ana@x.com", "code": sender.code, "newPassword": "newpass1", "confirmPassword": "newpass1",
	})
	if code != http.StatusOK {
		t.Fatalf("reset: code=%d", code)
	}

	// code is single-use
	code, _ = doJSON(t, r, http.MethodPost, "/api/reset-password", "", map[string]string{
		"email": "ana@x.com", "code": sender.code, "newPassword": "another1", "confirmPassword": "another1",
	})
	if code != http.StatusBadRequest {
		t.Fatalf("reused code: code=%d", code)
	}

	// old password dead, new one works
	code, _ = doJSON(t, r, http.MethodPost, "/api/login", "", map[string]string{"email": "ana@x.com", "password": "abc123"})
	if code != http.StatusUnauthorized {
		t.Fatalf("old password still works: code=%d", code)
	}
	code, _ = doJSON(t, r, http.MethodPost, "/api/login", "", map[string]string{"email": "ana@x.com", "password": "newpass1"})
	if code != http.StatusOK {
		t.Fatalf("new password rejected: code=%d", code)
	}
}

func TestMeAndUsersEndpoints(t *testing.T) {
	r, _ := newTestRouter(t)

	doJSON(t, r, http.MethodPost, "/api/register", "", map[string]string{
		"username": "Ana", "email": "ana@x.com", "password": "abc123", "confirmPassword": "abc123",
	})
	_, login := doJSON(t, r, http.MethodPost, "/api/login", "", map[string]string{"email": "ana@x.com", "password": "abc123"})
	token := login["token"].(string)

	code, res := doJSON(t, r, http.MethodGet, "/api/me", token, nil)
	if code != http.StatusOK {
		t.Fatalf("me: code=%d res=%v", code, res)
	}
	me := res["user"].(map[string]any)
	if me["email"] != "ana@x.com" {
		t.Fatalf("me payload: %v", me)
	}

	code, res = doJSON(t, r, http.MethodGet, "/api/users", "", nil)
	if code != http.StatusOK {
		t.Fatalf("users: code=%d", code)
	}
	users := res["users"].([]any)
	if len(users) != 1 {
		t.Fatalf("users len = %d; want 1", len(users))
	}
	// password must not be serialized anywhere
	if _, leaked := users[0].(map[string]any)["password"]; leaked {
		t.Fatalf("password leaked in users list")
	}
}

func TestHealthAndUnknownRoute(t *testing.T) {
	r, _ := newTestRouter(t)

	code, res := doJSON(t, r, http.MethodGet, "/api/health", "", nil)
	if code != http.StatusOK || res["timestamp"] == nil {
		t.Fatalf("health: code=%d res=%v", code, res)
	}

	code, res = doJSON(t, r, http.MethodGet, "/api/nope", "", nil)
	if code != http.StatusNotFound || res["success"] != false {
		t.Fatalf("unknown route: code=%d res=%v", code, res)
	}
}
