package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"martial-service/pkg/apperrors"
)

// statusOf maps a domain error kind to its HTTP status code.
func statusOf(kind apperrors.Kind) int {
	switch kind {
	case apperrors.Validation, apperrors.AlreadyVoted:
		return http.StatusBadRequest
	case apperrors.Unauthorized:
		return http.StatusUnauthorized
	case apperrors.Forbidden:
		return http.StatusForbidden
	case apperrors.NotFound:
		return http.StatusNotFound
	case apperrors.Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// OK writes a 200 response with success:true merged into the payload.
func OK(c *gin.Context, payload gin.H) {
	write(c, http.StatusOK, payload)
}

// Created writes a 201 response with success:true merged into the payload.
func Created(c *gin.Context, payload gin.H) {
	write(c, http.StatusCreated, payload)
}

func write(c *gin.Context, status int, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

// Error converts a domain error into the {success,message,error} envelope.
func Error(c *gin.Context, err error) {
	body := gin.H{
		"success": false,
		"message": apperrors.MessageOf(err),
	}

	var appErr *apperrors.Error
	if errors.As(err, &appErr) && appErr.Err != nil {
		body["error"] = appErr.Err.Error()
	} else if apperrors.KindOf(err) == apperrors.Internal {
		body["error"] = err.Error()
	}

	c.JSON(statusOf(apperrors.KindOf(err)), body)
}

// AbortError writes the error envelope and stops the handler chain.
func AbortError(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}
