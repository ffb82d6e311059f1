package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"todos-be/internal/entities"
	"todos-be/internal/middleware"
	"todos-be/internal/models"
	"todos-be/internal/repository"
	"todos-be/internal/service"
)

type TodoController struct {
	todoService service.TodoService
}

func NewTodoController(todoService service.TodoService) *TodoController {
	return &TodoController{
		todoService: todoService,
	}
}

// Create handles POST /api/v1/todos
func (tc *TodoController) Create(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req models.CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	todo, err := tc.todoService.Create(c.Request.Context(), user.ID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.OK(todo))
}

// List handles GET /api/v1/todos with completed/priority/tag filters
// and limit/offset pagination.
func (tc *TodoController) List(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	limit, offset := parsePagination(c)

	filter := repository.TodoFilter{
		UserID:   user.ID,
		Priority: strings.TrimSpace(c.Query("priority")),
		Tag:      strings.TrimSpace(c.Query("tag")),
		Limit:    limit,
		Offset:   offset,
	}
	if filter.Priority != "" && !entities.ValidPriority(filter.Priority) {
		c.JSON(http.StatusBadRequest, models.Fail("priority must be low, medium or high"))
		return
	}
	if raw := c.Query("completed"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.Fail("completed must be true or false"))
			return
		}
		filter.Completed = &completed
	}

	todos, total, err := tc.todoService.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	if todos == nil {
		todos = []*entities.Todo{} // keep items as [] instead of null
	}

	c.JSON(http.StatusOK, models.OK(models.ListData{
		Items:  todos,
		Count:  total,
		Limit:  limit,
		Offset: offset,
	}))
}

// Get handles GET /api/v1/todos/:id
func (tc *TodoController) Get(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	todo, err := tc.todoService.Get(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.OK(todo))
}

// Update handles PATCH /api/v1/todos/:id
func (tc *TodoController) Update(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req models.UpdateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	todo, err := tc.todoService.Update(c.Request.Context(), user, c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.OK(todo))
}

// Delete handles DELETE /api/v1/todos/:id
func (tc *TodoController) Delete(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	if err := tc.todoService.Delete(c.Request.Context(), user, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.OK(gin.H{"deleted": true}))
}

// Stats handles GET /api/v1/todos/stats
func (tc *TodoController) Stats(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	stats, err := tc.todoService.Stats(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.OK(stats))
}
