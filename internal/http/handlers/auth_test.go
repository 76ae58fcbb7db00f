package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	intconfig "backend/internal/config"
	"backend/internal/http/middleware"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "unit-test-secret"

func newAuthRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	SetJWTSecret(testSecret)

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
		intconfig.DB = nil
	})
	intconfig.DB = db

	r := gin.New()
	r.POST("/api/auth/login", Login)
	r.POST("/api/auth/register", Register)
	r.GET("/api/auth/me", middleware.RequireAuth([]byte(testSecret)), Me)
	return r, mock
}

func bearerFor(t *testing.T, passengerID int64) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"passenger_id": passengerID,
		"exp":          time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("token signing error: %v", err)
	}
	return "Bearer " + signed
}

func doPost(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestLoginSuccess(t *testing.T) {
	r, mock := newAuthRouter(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt error: %v", err)
	}
	mock.ExpectQuery("FROM passenger").
		WithArgs("ada@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "email_address", "password"}).
			AddRow(7, "Ada", "Lovelace", "ada@example.com", string(hash)))

	w := doPost(r, "/api/auth/login", `{"email_address":"ada@example.com","password":"secret123"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid login payload: %v", err)
	}
	if tok, _ := body["access_token"].(string); tok == "" {
		t.Fatalf("expected access token in response")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	r, mock := newAuthRouter(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt error: %v", err)
	}
	mock.ExpectQuery("FROM passenger").
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "email_address", "password"}).
			AddRow(7, "Ada", "Lovelace", "ada@example.com", string(hash)))

	w := doPost(r, "/api/auth/login", `{"email_address":"ada@example.com","password":"nope"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	r, mock := newAuthRouter(t)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("ada@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	w := doPost(r, "/api/auth/register",
		`{"first_name":"Ada","last_name":"Lovelace","email_address":"ada@example.com","password":"secret123"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error payload: %v", err)
	}
	if body["code"] != "conflict" {
		t.Fatalf("expected conflict code, got %v", body["code"])
	}
}

func TestMeReturnsProfile(t *testing.T) {
	r, mock := newAuthRouter(t)

	mock.ExpectQuery("FROM passenger").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "email_address"}).
			AddRow(7, "Ada", "Lovelace", "ada@example.com"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", bearerFor(t, 7))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var body struct {
		Passenger struct {
			ID    int64  `json:"id"`
			Email string `json:"email_address"`
		} `json:"passenger"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid profile payload: %v", err)
	}
	if body.Passenger.ID != 7 || body.Passenger.Email != "ada@example.com" {
		t.Fatalf("profile wrong: %+v", body.Passenger)
	}
}

func TestMeDeletedPassenger(t *testing.T) {
	r, mock := newAuthRouter(t)

	mock.ExpectQuery("FROM passenger").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "email_address"}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", bearerFor(t, 7))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error payload: %v", err)
	}
	if body["code"] != "not_found" {
		t.Fatalf("expected not_found code, got %v", body["code"])
	}
}

func TestRegisterShortPassword(t *testing.T) {
	r, _ := newAuthRouter(t)

	w := doPost(r, "/api/auth/register",
		`{"first_name":"Ada","last_name":"Lovelace","email_address":"ada@example.com","password":"123"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}
