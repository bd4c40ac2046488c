// Package handler maps the operator commands onto the workflow and plan
// services. Every error is converted to a user-visible JSON message here;
// nothing propagates silently.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/goodman-rb/ai-content-studio/internal/pkg/llm"
	"github.com/goodman-rb/ai-content-studio/internal/repository"
	"github.com/goodman-rb/ai-content-studio/internal/service"
)

func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrRegenerationLimit),
		errors.Is(err, repository.ErrDuplicateID):
		return http.StatusConflict
	case errors.Is(err, service.ErrTemplateNotFound):
		return http.StatusUnprocessableEntity
	case errors.Is(err, llm.ErrGenerationFailed):
		return http.StatusBadGateway
	case errors.Is(err, service.ErrNoSuggestions),
		errors.Is(err, service.ErrUnknownPostType),
		errors.Is(err, service.ErrNoContent):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	c.JSON(statusForError(err), gin.H{"error": err.Error()})
}
