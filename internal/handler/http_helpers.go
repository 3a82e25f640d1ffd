package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

// viewportWidth 依次读取客户端提示头、?w= 参数和默认宽度。
func viewportWidth(c *gin.Context, fallback int) int {
	candidates := []string{
		c.GetHeader("Sec-CH-Viewport-Width"),
		c.GetHeader("Viewport-Width"),
		c.Query("w"),
	}
	for _, raw := range candidates {
		if width := parsePositiveInt(raw, 0); width > 0 {
			return width
		}
	}
	return fallback
}

func parsePositiveInt(value string, fallback int) int {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}
