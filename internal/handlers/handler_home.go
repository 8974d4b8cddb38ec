package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// getHome reports server liveness.
func getHome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "fincore backend API v1"})
}
