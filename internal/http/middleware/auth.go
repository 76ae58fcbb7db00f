package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const passengerIDKey = "passenger_id"

// RequireAuth validates the bearer token on protected routes. An expired
// token answers with code "auth_expired"; the dashboard client treats that
// 401 as the signal to clear its session.
func RequireAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			abortUnauthorized(c, "auth_missing", "missing bearer token")
			return
		}

		raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secret, nil
		})
		if err != nil {
			code := "auth_invalid"
			if errors.Is(err, jwt.ErrTokenExpired) {
				code = "auth_expired"
			}
			abortUnauthorized(c, code, "invalid or expired token")
			return
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if id, ok := claims[passengerIDKey].(float64); ok {
				c.Set(passengerIDKey, int64(id))
			}
		}
		c.Next()
	}
}

// GetPassengerID returns the authenticated passenger id, 0 when absent.
func GetPassengerID(c *gin.Context) int64 {
	if v, ok := c.Get(passengerIDKey); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}

func abortUnauthorized(c *gin.Context, code, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":      msg,
		"code":       code,
		"request_id": GetRequestID(c),
	})
}
