package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/webtoon-api/errors"
	"github.com/kbukum/webtoon-api/logger"
)

// MessageResponse is the body of operations that only report an outcome.
type MessageResponse struct {
	Message string `json:"message"`
}

// RespondWithError writes err as a structured error body and aborts the
// chain. Non-AppErrors become INTERNAL_ERROR. Causes of server-side
// errors are logged, never sent.
func RespondWithError(c *gin.Context, err error) {
	appErr := apperrors.From(err)
	if apperrors.IsServerSideCode(appErr.Code) {
		fields := map[string]interface{}{
			"code":   string(appErr.Code),
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}
		if appErr.Cause != nil {
			fields[logger.FieldError] = appErr.Cause.Error()
		}
		logger.GetGlobalLogger().WithContext(c.Request.Context()).Error("Request failed", fields)
	}
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
}

// RespondOK sends a 200 response with data as the body.
func RespondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// RespondCreated sends a 201 response with data as the body.
func RespondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// RespondMessage sends a 200 response with {"message": msg}.
func RespondMessage(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, MessageResponse{Message: msg})
}

func errNoRoute(c *gin.Context) *apperrors.AppError {
	return apperrors.NotFound("route", c.Request.Method+" "+c.Request.URL.Path)
}
