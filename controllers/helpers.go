package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Qwerty-Alisha/ShopEase/apperror"
)

// respondError writes a JSON error response. 4xx messages go to the caller
// verbatim; 5xx details are logged and replaced with a generic message.
func respondError(c *gin.Context, err error) {
	appErr := apperror.As(err)
	if appErr.Code >= http.StatusInternalServerError {
		zap.L().Error("Request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(appErr),
		)
		c.JSON(appErr.Code, gin.H{"error": appErr.Message})
		return
	}
	c.JSON(appErr.Code, gin.H{"error": appErr.Message})
}

// paginationParams parses page/perPage query parameters with defaults.
func paginationParams(c *gin.Context, defaultPerPage int) (page, perPage int) {
	page = intQuery(c, "_page", 1)
	if page < 1 {
		page = 1
	}
	perPage = intQuery(c, "_limit", defaultPerPage)
	if perPage < 1 || perPage > 100 {
		perPage = defaultPerPage
	}
	return page, perPage
}

func intQuery(c *gin.Context, key string, fallback int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return fallback
	}
	return n
}
