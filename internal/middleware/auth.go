package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// workspaceClaims is the expected token payload: standard registered claims
// plus the workspace the caller acts under. The core treats the workspace ID
// as opaque.
type workspaceClaims struct {
	WorkspaceID string `json:"workspace_id"`
	jwt.RegisteredClaims
}

// AuthMiddleware creates a Gin middleware handler that validates JWT tokens
// and resolves the caller's workspace. When jwtIssuer is non-empty the token
// issuer is verified as well.
func AuthMiddleware(jwtSecret, jwtIssuer string) gin.HandlerFunc {
	parserOptions := []jwt.ParserOption{}
	if jwtIssuer != "" {
		parserOptions = append(parserOptions, jwt.WithIssuer(jwtIssuer))
	}
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		token, err := jwt.ParseWithClaims(parts[1], &workspaceClaims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(jwtSecret), nil
		}, parserOptions...)

		if err != nil {
			logger.Warn("Invalid token", slog.String("error", err.Error()))
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			} else if errors.Is(err, jwt.ErrTokenNotValidYet) {
				msg = "Token not valid yet"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		claims, ok := token.Claims.(*workspaceClaims)
		if !ok || !token.Valid {
			logger.Warn("Invalid token claims or token is not valid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		workspaceID := claims.WorkspaceID
		if workspaceID == "" {
			// Fall back to the subject so simple tokens still work.
			workspaceID = claims.Subject
		}
		if workspaceID == "" {
			logger.Error("Workspace ID missing from valid token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		ctxWithWorkspace := context.WithValue(c.Request.Context(), workspaceIDKey, workspaceID)

		enrichedLogger := logger.With(slog.String("workspace_id", workspaceID))
		ctxWithLoggerAndWorkspace := context.WithValue(ctxWithWorkspace, loggerCtxKey, enrichedLogger)

		c.Request = c.Request.WithContext(ctxWithLoggerAndWorkspace)

		c.Next()
	}
}
