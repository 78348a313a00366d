package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/Domenick1991/skyline/internal/domain"
	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		status = http.StatusForbidden
	}

	message := "Internal server error."
	var domainErr *domain.Error
	if errors.As(err, &domainErr) {
		message = domainErr.Message
	}
	if status == http.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}

	c.JSON(status, errorResponse{Status: "error", Message: message})
}
