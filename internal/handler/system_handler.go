package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthCheck 提供健康检查端点，报告偏好数据库是否可用。
func (a *API) HealthCheck(c *gin.Context) {
	if a.db == nil {
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"database": "disabled",
		})
		return
	}

	sqlDB, err := a.db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "database handle unavailable",
		})
		return
	}

	if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "error",
			"message": "database unreachable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"database": "up",
	})
}

// Ping 用于存活检查
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
