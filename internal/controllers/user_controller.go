package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"todos-be/internal/middleware"
	"todos-be/internal/models"
	"todos-be/internal/service"
)

// UserController exposes the admin-only user management endpoints.
type UserController struct {
	userService service.UserService
}

func NewUserController(userService service.UserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

// List handles GET /api/v1/users
func (uc *UserController) List(c *gin.Context) {
	limit, offset := parsePagination(c)

	users, total, err := uc.userService.ListUsers(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	if users == nil {
		users = []*models.ProfileResponse{}
	}

	c.JSON(http.StatusOK, models.OK(models.ListData{
		Items:  users,
		Count:  total,
		Limit:  limit,
		Offset: offset,
	}))
}

// Get handles GET /api/v1/users/:id
func (uc *UserController) Get(c *gin.Context) {
	user, err := uc.userService.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.OK(user))
}

// Update handles PATCH /api/v1/users/:id (role and active flag)
func (uc *UserController) Update(c *gin.Context) {
	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := uc.userService.UpdateUser(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.OK(user))
}

// Delete handles DELETE /api/v1/users/:id and cascades to the user's todos.
func (uc *UserController) Delete(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)

	if err := uc.userService.DeleteUser(c.Request.Context(), actor.ID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.OK(gin.H{"deleted": true}))
}
