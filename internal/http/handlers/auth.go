package handlers

import (
	"database/sql"
	"net/http"
	"strings"
	"time"

	intconfig "backend/internal/config"
	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/http/middleware"
	"backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// jwtSecret is set once at router setup from config; there is no built-in
// fallback so the default lives in one place.
var jwtSecret []byte

func SetJWTSecret(secret string) {
	if s := strings.TrimSpace(secret); s != "" {
		jwtSecret = []byte(s)
	}
}

type loginRequest struct {
	Email    string `json:"email_address"`
	Password string `json:"password"`
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	var (
		p            models.Passenger
		passwordHash string
	)

	err := intconfig.DB.QueryRow(`
        SELECT id, first_name, last_name, email_address, password
        FROM passenger
        WHERE email_address = ?
    `, strings.TrimSpace(req.Email)).Scan(
		&p.ID,
		&p.FirstName,
		&p.LastName,
		&p.Email,
		&passwordHash,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			RespondDomainError(c, domain.AuthError{Msg: "wrong email or password"})
		} else {
			RespondDomainError(c, domain.StorageUnavailableError{Op: "passenger lookup", Err: err})
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(req.Password)); err != nil {
		RespondDomainError(c, domain.AuthError{Msg: "wrong email or password"})
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"passenger_id": p.ID,
		"email":        p.Email,
		"exp":          time.Now().Add(24 * time.Hour).Unix(),
	})

	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal_error", "failed to sign token")
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "auth", "login", "passenger logged in")
	c.JSON(http.StatusOK, gin.H{
		"access_token": tokenString,
		"token_type":   "bearer",
		"passenger":    p,
	})
}

type registerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email_address"`
	Password  string `json:"password"`
}

// POST /api/auth/register
func Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if strings.TrimSpace(req.Email) == "" || len(req.Password) < 6 {
		respondError(c, http.StatusBadRequest, "validation_error", "email required and password must be at least 6 characters")
		return
	}

	var exists int
	err := intconfig.DB.QueryRow(`
        SELECT COUNT(*)
        FROM passenger
        WHERE email_address = ?
    `, strings.TrimSpace(req.Email)).Scan(&exists)
	if err != nil {
		RespondDomainError(c, domain.StorageUnavailableError{Op: "passenger lookup", Err: err})
		return
	}
	if exists > 0 {
		RespondDomainError(c, domain.ConflictError{Resource: "passenger", Msg: "email already registered"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal_error", "failed to hash password")
		return
	}

	res, err := intconfig.DB.Exec(`
        INSERT INTO passenger (first_name, last_name, email_address, password)
        VALUES (?, ?, ?, ?)
    `, strings.TrimSpace(req.FirstName), strings.TrimSpace(req.LastName), strings.TrimSpace(req.Email), string(hash))
	if err != nil {
		RespondDomainError(c, domain.StorageUnavailableError{Op: "passenger insert", Err: err})
		return
	}

	id, _ := res.LastInsertId()

	utils.LogEvent(middleware.GetRequestID(c), "auth", "register", "passenger registered")
	c.JSON(http.StatusCreated, gin.H{
		"passenger": models.Passenger{
			ID:        id,
			FirstName: strings.TrimSpace(req.FirstName),
			LastName:  strings.TrimSpace(req.LastName),
			Email:     strings.TrimSpace(req.Email),
		},
	})
}

// GET /api/auth/me
func Me(c *gin.Context) {
	id := middleware.GetPassengerID(c)
	if id == 0 {
		RespondDomainError(c, domain.AuthError{Msg: "missing passenger identity"})
		return
	}

	var p models.Passenger
	err := intconfig.DB.QueryRow(`
        SELECT id, first_name, last_name, email_address
        FROM passenger
        WHERE id = ?
    `, id).Scan(&p.ID, &p.FirstName, &p.LastName, &p.Email)

	if err != nil {
		if err == sql.ErrNoRows {
			RespondDomainError(c, domain.NotFoundError{Resource: "passenger"})
		} else {
			RespondDomainError(c, domain.StorageUnavailableError{Op: "passenger lookup", Err: err})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"passenger": p})
}
