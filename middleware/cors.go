package middleware

import (
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

func frontendOrigin() string {
	if origin := os.Getenv("FRONTEND_ORIGIN"); origin != "" {
		return origin
	}
	return "http://localhost:3000"
}

func CorsMiddleware(c *gin.Context) {
	switch {
	case strings.HasPrefix(c.Request.URL.Path, "/webhook"):
		// Public webhook: allow any origin, no credentials
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
	case strings.HasPrefix(c.Request.URL.Path, "/sse"):
		c.Writer.Header().Set("Access-Control-Allow-Origin", frontendOrigin())
	default:
		// Protected endpoints: restrict origin & allow credentials
		c.Writer.Header().Set("Access-Control-Allow-Origin", frontendOrigin())
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
	}

	c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS, PUT, DELETE")
	c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

	if c.Request.Method == "OPTIONS" {
		c.AbortWithStatus(204)
		return
	}

	c.Next()
}
