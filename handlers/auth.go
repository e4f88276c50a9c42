package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iliketocde/Finance-Tracker/db"
	"github.com/iliketocde/Finance-Tracker/logger"
	"github.com/iliketocde/Finance-Tracker/models"
	"go.uber.org/zap"
)

type SignupRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	DisplayName     string `json:"display_name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// friendlyAuthError maps the identity provider's error codes to the messages
// shown in the sign-in and sign-up forms.
func friendlyAuthError(code string) string {
	switch code {
	case "user_not_found":
		return "No account found with this email address."
	case "invalid_credentials", "wrong_password":
		return "Incorrect password. Please try again."
	case "validation_failed", "invalid_email":
		return "Invalid email address format."
	case "over_request_rate_limit", "too_many_requests":
		return "Too many failed attempts. Please try again later."
	case "email_exists", "user_already_exists":
		return "An account with this email already exists."
	case "weak_password":
		return "Password is too weak. Use at least 6 characters."
	}
	return "An error occurred during sign-in"
}

// validateSignup runs before any network call; a bad form never reaches the
// provider.
func validateSignup(req *SignupRequest) string {
	if strings.TrimSpace(req.Email) == "" {
		return "Please enter your email address"
	}
	if req.Password == "" {
		return "Please enter a password"
	}
	if len(req.Password) < 6 {
		return "Password must be at least 6 characters"
	}
	if req.Password != req.ConfirmPassword {
		return "Passwords do not match"
	}
	return ""
}

func validateLogin(req *LoginRequest) string {
	if strings.TrimSpace(req.Email) == "" {
		return "Please enter your email address"
	}
	if req.Password == "" {
		return "Please enter your password"
	}
	return ""
}

type supabaseAuthResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
	ErrorCode string `json:"error_code"`
	Msg       string `json:"msg"`
}

func postAuth(path string, body map[string]any) (*supabaseAuthResponse, int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, 0, err
	}

	url := fmt.Sprintf("%s/auth/v1/%s", os.Getenv("SUPABASE_URL"), path)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(payload))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", os.Getenv("SUPABASE_ANON_KEY"))

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	var authResp supabaseAuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		return nil, resp.StatusCode, err
	}
	return &authResp, resp.StatusCode, nil
}

// HandleSignup proxies account creation to the identity provider and seeds
// the profile row with its defaults (balance 0, free plan).
func HandleSignup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if msg := validateSignup(&req); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	authResp, status, err := postAuth("signup", map[string]any{
		"email":    req.Email,
		"password": req.Password,
		"data":     map[string]any{"display_name": req.DisplayName},
	})
	if err != nil {
		logger.Get().Error("signup request failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Sign-up is temporarily unavailable. Please try again."})
		return
	}
	if status != http.StatusOK {
		c.JSON(http.StatusBadRequest, gin.H{"error": friendlyAuthError(authResp.ErrorCode)})
		return
	}

	profile := &models.Profile{
		UserID:      authResp.User.ID,
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Plan:        models.PlanFree,
		Preferences: models.DefaultPreferences(),
	}
	if err := db.CreateProfile(profile); err != nil {
		logger.Get().Error("error creating profile at signup",
			zap.String("user_id", authResp.User.ID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Account created but profile setup failed."})
		return
	}

	logger.Get().Info("user signed up", zap.String("user_id", authResp.User.ID))
	c.JSON(http.StatusOK, gin.H{
		"access_token":  authResp.AccessToken,
		"refresh_token": authResp.RefreshToken,
		"user_id":       authResp.User.ID,
	})
}

// HandleLogin proxies password sign-in to the identity provider, translating
// its error codes to the friendly messages the form shows.
func HandleLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if msg := validateLogin(&req); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	authResp, status, err := postAuth("token?grant_type=password", map[string]any{
		"email":    req.Email,
		"password": req.Password,
	})
	if err != nil {
		logger.Get().Error("login request failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Sign-in is temporarily unavailable. Please try again."})
		return
	}
	if status != http.StatusOK {
		c.JSON(http.StatusUnauthorized, gin.H{"error": friendlyAuthError(authResp.ErrorCode)})
		return
	}

	logger.Get().Info("user signed in", zap.String("user_id", authResp.User.ID))
	c.JSON(http.StatusOK, gin.H{
		"access_token":  authResp.AccessToken,
		"refresh_token": authResp.RefreshToken,
		"user_id":       authResp.User.ID,
	})
}
