package tools

import (
	"cloud.google.com/go/logging"
	"github.com/gin-gonic/gin"
)

func LogError(logger Logger, c *gin.Context, status int, err error) {
	logger.Log(logging.Entry{
		Severity: logging.Error,
		Payload:  err.Error(),
		Labels:   map[string]string{"status": "error", "path": c.FullPath()},
	})

	c.JSON(status, gin.H{
		"error": err.Error(),
	})
}
