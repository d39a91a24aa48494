// internal/middleware/i18n.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/draft-backend/internal/i18n"
)

func I18nMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("lang", resolveLanguage(c.GetHeader("Accept-Language")))
		c.Next()
	}
}

// resolveLanguage maps the first Accept-Language entry to a catalog name,
// e.g. "zh-TW,zh;q=0.9,en;q=0.8" becomes zh_TW.
func resolveLanguage(header string) string {
	if header == "" {
		return i18n.DefaultLanguage()
	}

	first := strings.TrimSpace(strings.Split(strings.Split(header, ",")[0], ";")[0])
	switch first {
	case "zh-TW", "zh-Hant", "zh_TW":
		return "zh_TW"
	case "zh-CN", "zh-Hans", "zh_CN", "zh":
		return "zh_CN"
	case "en", "en-US", "en-GB":
		return "en"
	default:
		return i18n.DefaultLanguage()
	}
}
