package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-jwt-secret"
const testIssuerBase = "https://project.supabase.co"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatal(err)
	}
	return signed
}

func authEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SUPABASE_JWT_SECRET", testSecret)
	t.Setenv("SUPABASE_URL", testIssuerBase)
}

func validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"sub":   "user-123",
		"email": "user@example.com",
		"iss":   testIssuerBase + "/auth/v1",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
}

func TestParseClaimsValidToken(t *testing.T) {
	authEnv(t)

	claims, err := ParseClaims(signToken(t, validClaims()))
	if err != nil {
		t.Fatalf("ParseClaims: %v", err)
	}
	if claims.Sub != "user-123" || claims.Email != "user@example.com" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestParseClaimsWrongIssuer(t *testing.T) {
	authEnv(t)

	c := validClaims()
	c["iss"] = "https://evil.example.com/auth/v1"
	if _, err := ParseClaims(signToken(t, c)); err == nil {
		t.Error("token with wrong issuer accepted")
	}
}

func TestParseClaimsWrongSecret(t *testing.T) {
	authEnv(t)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, validClaims())
	signed, err := token.SignedString([]byte("other-secret"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseClaims(signed); err == nil {
		t.Error("token signed with wrong secret accepted")
	}
}

func TestParseClaimsExpired(t *testing.T) {
	authEnv(t)

	c := validClaims()
	c["exp"] = time.Now().Add(-time.Hour).Unix()
	if _, err := ParseClaims(signToken(t, c)); err == nil {
		t.Error("expired token accepted")
	}
}

func TestAuthMiddleware(t *testing.T) {
	authEnv(t)
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/protected", AuthMiddleware, func(c *gin.Context) {
		claims, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no claims"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": claims.Sub})
	})

	t.Run("no token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		router.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("valid token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, validClaims()))
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200; body %s", w.Code, w.Body.String())
		}
	})

	t.Run("malformed header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Token abc")
		router.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})
}
