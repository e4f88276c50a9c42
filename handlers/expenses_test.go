package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/iliketocde/Finance-Tracker/models"
)

// asUser injects verified claims the way the auth middleware does, so handler
// validation can be exercised without a real token.
func asUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := &models.SupabaseClaims{Sub: userID}
		c.Set("user", claims)
		c.Next()
	}
}

func TestHandleCreateExpenseRejectsBeforeStore(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/expenses", asUser("user-123"), HandleCreateExpense)

	// Every payload here fails binding, so the handler returns before any
	// store call is made.
	cases := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"zero amount", `{"amount": 0, "category": "Food"}`},
		{"negative amount", `{"amount": -5, "category": "Food"}`},
		{"missing category", `{"amount": 12.50}`},
		{"non-numeric amount", `{"amount": "abc", "category": "Food"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/expenses", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400; body %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestHandleCreateExpenseUnauthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/expenses", HandleCreateExpense)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/expenses", strings.NewReader(`{"amount": 10, "category": "Food"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestHandleCompleteChallengeUnknownID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/challenges/complete", asUser("user-123"), HandleCompleteChallenge)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/challenges/complete", strings.NewReader(`{"challenge_id": "not_a_challenge"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404; body %s", w.Code, w.Body.String())
	}
}
