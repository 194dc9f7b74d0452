package middleware

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/webtoon-api/errors"
)

// abortWithError stops the chain and writes err as the error body.
func abortWithError(c *gin.Context, err *apperrors.AppError) {
	c.AbortWithStatusJSON(err.HTTPStatus, err.ToResponse())
}
