package validation

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/webtoon-api/errors"
)

// BindJSON decodes the request body into dst and validates it. A missing
// or malformed body is reported as a validation error.
func BindJSON(c *gin.Context, dst any) error {
	if c.Request.Body == nil {
		return apperrors.Validation("request body is required")
	}
	if err := json.NewDecoder(c.Request.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.Validation("request body is required")
		}
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return apperrors.Validation("request body too large")
		}
		return apperrors.Validation("request body must be valid JSON")
	}
	return Validate(dst)
}
