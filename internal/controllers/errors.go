package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"todos-be/internal/models"
	"todos-be/internal/repository"
	"todos-be/internal/service"
)

// respondError maps service and repository errors to HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, models.Fail("Resource not found"))
	case errors.Is(err, repository.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, models.Fail(err.Error()))
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrAccountDisabled):
		c.JSON(http.StatusUnauthorized, models.Fail(err.Error()))
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, models.Fail(err.Error()))
	case errors.Is(err, service.ErrSelfDelete):
		c.JSON(http.StatusBadRequest, models.Fail(err.Error()))
	default:
		log.Printf("ERROR: %v", err)
		c.JSON(http.StatusInternalServerError, models.Fail("Internal server error"))
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.Fail("Invalid request body: "+err.Error()))
}
