package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Healthcheck keeps the legacy probe contract of the original API.
func Healthcheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339Nano),
	})
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "case-service",
		"time":    time.Now().Unix(),
	})
}

func Ready(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
