package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/snackshop/internal/domain/model"
	"github.com/polkiloo/snackshop/internal/server/http/middleware"
)

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

// IsAdmin reports whether the authenticated caller has the admin role.
func IsAdmin(c *gin.Context) bool {
	val, ok := c.Get(middleware.RoleContextKey)
	if !ok {
		return false
	}
	role, _ := val.(string)
	return role == string(model.RoleAdmin)
}
