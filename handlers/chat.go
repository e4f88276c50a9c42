package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/iliketocde/Finance-Tracker/db"
	"github.com/iliketocde/Finance-Tracker/llm"
	"github.com/iliketocde/Finance-Tracker/logger"
	"github.com/iliketocde/Finance-Tracker/middleware"
	"github.com/iliketocde/Finance-Tracker/models"
	"go.uber.org/zap"
)

type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

type TitleRequest struct {
	Message string `json:"message" binding:"required"`
}

// HandleChat answers a single assistant message. Conversation state lives on
// the client; the server holds nothing between calls. The reply is always a
// usable string — on AI failure the fallback text comes back with a 200, so
// the conversation keeps flowing.
func HandleChat(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter a message."})
		return
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter a message."})
		return
	}

	prompt := chatPrompt(claims.Sub, message)
	reply := llm.Complete(c.Request.Context(), prompt)

	logger.Get().Debug("chat reply produced",
		zap.String("user_id", claims.Sub),
		zap.Int("reply_len", len(reply)))
	c.JSON(http.StatusOK, models.ChatMessage{
		Text:   reply,
		Sender: models.SenderBot,
	})
}

// chatPrompt frames the user's message with a brief profile summary so the
// assistant can answer in terms of their actual numbers. A missing profile
// degrades to the bare message.
func chatPrompt(userID, message string) string {
	profile, err := db.GetProfileByID(userID)
	if err != nil || profile == nil {
		if err != nil {
			logger.Get().Warn("chat context unavailable",
				zap.String("user_id", userID),
				zap.Error(err))
		}
		return fmt.Sprintf("You are a personal finance assistant. Answer briefly and practically.\n\nUser: %s", message)
	}

	return fmt.Sprintf(
		"You are a personal finance assistant. Answer briefly and practically.\nThe user's current balance is $%.2f and they are on the %s plan.\n\nUser: %s",
		profile.Balance, profile.Plan, message,
	)
}

// HandleChatTitle generates a short header title for the assistant window
// from the opening message. Failures fall back to "New Chat" rather than an
// error.
func HandleChatTitle(c *gin.Context) {
	if _, ok := middleware.CurrentUser(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req TitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter a message."})
		return
	}

	title, err := llm.GenerateChatTitle(c.Request.Context(), req.Message)
	if err != nil {
		logger.Get().Warn("title generation failed", zap.Error(err))
		title = "New Chat"
	}
	if strings.TrimSpace(title) == "" {
		title = "New Chat"
	}

	c.JSON(http.StatusOK, gin.H{"title": title})
}
