package handlers

import (
	"net/http"

	"autoslot/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the latest sampled status of external services.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Hi, I'm Autoslot",
		"checks":  status,
	})
}
