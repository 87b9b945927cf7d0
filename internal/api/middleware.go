package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"alcyxob/fitplan/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

// Constants for context keys
const (
	ContextSessionKey = "session"
)

// SessionMiddleware resolves the bearer token to its session.
func SessionMiddleware(tokens *TokenIssuer, sessions service.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header is missing")
			return
		}

		// Expecting "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
			return
		}

		sessionID, err := tokens.Parse(parts[1])
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortWithError(c, http.StatusUnauthorized, "Token has expired")
			} else {
				abortWithError(c, http.StatusUnauthorized, fmt.Sprintf("Invalid token: %v", err))
			}
			return
		}

		session, err := sessions.Open(c.Request.Context(), sessionID)
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, "Unknown session")
			return
		}

		c.Set(ContextSessionKey, session)
		c.Next()
	}
}

// GatedMiddleware rejects requests while plans and progress are locked.
// Must run AFTER SessionMiddleware.
func GatedMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := getSessionFromContext(c)
		if err != nil {
			abortWithError(c, http.StatusInternalServerError, err.Error())
			return
		}
		if !session.View().CanAccessGated {
			abortWithError(c, http.StatusForbidden, service.ErrAccessDenied.Error())
			return
		}
		c.Next()
	}
}

// RequestLogger logs one line per request with zap.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if session, err := getSessionFromContext(c); err == nil {
			fields = append(fields, zap.String("sessionId", session.ID()))
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			logger.Error("request", fields...)
			return
		}
		logger.Debug("request", fields...)
	}
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// Helper function to get the session from context (used by handlers)
func getSessionFromContext(c *gin.Context) (*service.Session, error) {
	raw, exists := c.Get(ContextSessionKey)
	if !exists {
		return nil, errors.New("session not found in context")
	}
	session, ok := raw.(*service.Session)
	if !ok {
		return nil, errors.New("invalid session type in context")
	}
	return session, nil
}
