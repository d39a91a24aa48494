// internal/middleware/auth.go
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/draft-backend/internal/i18n"
	"github.com/javajoker/draft-backend/internal/utils"
)

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}

	// Extract token from "Bearer <token>"
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// OptionalAuth resolves the caller from a bearer token when one is sent.
// Requests without a token pass through anonymously; a token that is sent
// but invalid is rejected so a caller never silently loses their identity.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}

		token, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c)
			return
		}

		claims, err := utils.ValidateJWT(token)
		if err != nil {
			logrus.WithError(err).WithField("path", c.Request.URL.Path).Debug("Rejected bearer token")
			abortUnauthorized(c)
			return
		}

		// Set user info in context if token is valid
		c.Set("user_id", claims.UserID)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	c.JSON(http.StatusUnauthorized, gin.H{
		"error": i18n.T(lang, i18n.KeyAuthInvalidToken),
	})
	c.Abort()
}
