package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coursehive/coursehive-backend/internal/response"
	"github.com/coursehive/coursehive-backend/internal/service"
)

// UserManagementHandler serves admin-facing views of registered users.
type UserManagementHandler struct {
	userService *service.UserService
}

// NewUserManagementHandler creates a new UserManagementHandler.
func NewUserManagementHandler(userService *service.UserService) *UserManagementHandler {
	return &UserManagementHandler{userService: userService}
}

// ListUsers godoc
// GET /api/v1/admin/users
// Lists all registered users. Password hashes never serialize (json:"-").
func (h *UserManagementHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"users": users})
}
