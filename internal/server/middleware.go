package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"souq-market/services/helpers"
	"souq-market/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "requestID"
)

// RequestIDMiddleware tags every request with an ID, reusing the caller's when it is a UUID
func RequestIDMiddleware(c *gin.Context) {
	id := c.GetHeader(requestIDHeader)
	if _, err := uuid.Parse(id); err != nil {
		id = utils.GenerateID()
	}
	c.Set(requestIDKey, id)
	c.Header(requestIDHeader, id)
	c.Next()
}

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	utils.Info("HTTP Request", map[string]any{
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"status":     c.Writer.Status(),
		"latency":    time.Since(start).String(),
		"request_id": c.GetString(requestIDKey),
	})
}

// AuthMiddleware validates the Bearer token and stores the caller's user ID
func AuthMiddleware(jwtService *utils.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.AbortJSONError(c, http.StatusUnauthorized, errors.New("missing authorization header"), "authentication required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.AbortJSONError(c, http.StatusUnauthorized, errors.New("invalid authorization header format"), "authentication required")
			return
		}

		userID, err := jwtService.ExtractUserID(parts[1])
		if err != nil {
			utils.Warn("AuthMiddleware: rejected token", map[string]any{
				"error":      err.Error(),
				"request_id": c.GetString(requestIDKey),
			})
			utils.AbortJSONError(c, http.StatusUnauthorized, err, "authentication required")
			return
		}

		c.Set(helpers.CallerKey, userID)
		c.Next()
	}
}
