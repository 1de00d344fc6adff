package handler

import (
	"github.com/gin-gonic/gin"

	"hdwallet-core/internal/handler/response"
)

// HealthCheck 存活检查
func HealthCheck(c *gin.Context) {
	response.Success(c, gin.H{
		"status":  "UP",
		"version": "1.0.0",
		"service": "wallet-server",
	})
}
