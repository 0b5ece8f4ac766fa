package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/baha1115/restau-suria-frontend/internal/upstream"
	"github.com/baha1115/restau-suria-frontend/pkg/logger"
	"github.com/baha1115/restau-suria-frontend/pkg/response"
)

// respondUpstream translates an upstream failure into the console envelope.
// API errors keep their status and message so the browser sees what the
// upstream said; transport failures become a 502.
func respondUpstream(c *gin.Context, err error) {
	var apiErr *upstream.APIError
	if !errors.As(err, &apiErr) {
		logger.WithContext(c.Request.Context()).Error("upstream request failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, response.UpstreamUnavailable("Upstream service unavailable"))
		return
	}

	code := codeForStatus(apiErr.Status)
	if len(apiErr.Details) > 0 {
		c.JSON(apiErr.Status, response.ErrorWithDetails(code, apiErr.Message, apiErr.Details))
		return
	}
	c.JSON(apiErr.Status, response.Error(code, apiErr.Message))
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return response.ErrCodeBadRequest
	case http.StatusUnauthorized:
		return response.ErrCodeUnauthorized
	case http.StatusForbidden:
		return response.ErrCodeForbidden
	case http.StatusNotFound:
		return response.ErrCodeNotFound
	case http.StatusConflict:
		return response.ErrCodeConflict
	case http.StatusUnprocessableEntity:
		return response.ErrCodeValidationFailed
	default:
		return response.ErrCodeInternalError
	}
}
