package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetCompanyName extracts the session's company name from the Gin context
func GetCompanyName(c *gin.Context) string {
	name, exists := c.Get("company_name")
	if !exists {
		return ""
	}
	return name.(string)
}

// GetDatabaseNumber extracts the session's ledger database number
func GetDatabaseNumber(c *gin.Context) int {
	number, exists := c.Get("database_number")
	if !exists {
		return 0
	}
	return number.(int)
}
