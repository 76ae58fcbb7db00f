package handlers

import (
	"net/http"

	intconfig "backend/internal/config"

	"github.com/gin-gonic/gin"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "train booking analytics backend running"})
}

func DBCheck(c *gin.Context) {
	if intconfig.DB == nil {
		respondError(c, http.StatusServiceUnavailable, "storage_unavailable", "database not connected")
		return
	}
	var count int
	err := intconfig.DB.QueryRow("SELECT COUNT(*) FROM booking").Scan(&count)
	if err != nil {
		respondError(c, http.StatusServiceUnavailable, "storage_unavailable", "database query failed: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "database connection OK", "bookings_in_db": count})
}
