package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/iliketocde/Finance-Tracker/models"
)

// AuthMiddleware verifies the Supabase-issued JWT on each request. A missing
// or invalid token is a 401 — the ordinary "no session" state, not a server
// fault.
func AuthMiddleware(c *gin.Context) {
	tokenString := ExtractToken(c.Request)
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid token"})
		c.Abort()
		return
	}

	claims, err := ParseClaims(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: " + err.Error()})
		c.Abort()
		return
	}

	c.Set("user", claims)
	c.Next()
}

// ParseClaims validates a token string and returns its claims. Shared by the
// header-based middleware and the query-token SSE/WebSocket handshakes.
func ParseClaims(tokenString string) (*models.SupabaseClaims, error) {
	claims := &models.SupabaseClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Verify the signing method is HS256
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		secret := os.Getenv("SUPABASE_JWT_SECRET")
		if secret == "" {
			return nil, fmt.Errorf("SUPABASE_JWT_SECRET environment variable not set")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	if issuer := os.Getenv("SUPABASE_URL") + "/auth/v1"; claims.Issuer != issuer {
		return nil, fmt.Errorf("invalid token issuer")
	}

	return claims, nil
}

// CurrentUser pulls the verified claims out of the request context.
func CurrentUser(c *gin.Context) (*models.SupabaseClaims, bool) {
	user, exists := c.Get("user")
	if !exists {
		return nil, false
	}
	claims, ok := user.(*models.SupabaseClaims)
	return claims, ok
}

func ExtractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}

	return parts[1]
}
