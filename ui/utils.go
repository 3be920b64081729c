package ui

import (
	"net/http"

	"esglens/internal"
	"esglens/internal/errors"

	"github.com/gin-gonic/gin"
)

// httpStatus maps an application error code to a response status
func httpStatus(err error) int {
	switch errors.GetCode(err) {
	case errors.CodeNotFound:
		return http.StatusNotFound
	case errors.CodeMalformedInput, errors.CodeInvalidInput, errors.CodeInvalidSelection:
		return http.StatusBadRequest
	case errors.CodeUnsupportedFormat:
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as a JSON error body
func respondError(c *gin.Context, err error) {
	status := httpStatus(err)
	if status >= http.StatusInternalServerError {
		internal.DefaultLogger.Error("[API] %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	} else {
		internal.DefaultLogger.Debug("[API] %s %s rejected: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{
		"error": err.Error(),
		"code":  errors.GetCode(err),
	})
}
