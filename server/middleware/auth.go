package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/kbukum/webtoon-api/auth"
	"github.com/kbukum/webtoon-api/auth/authctx"
	apperrors "github.com/kbukum/webtoon-api/errors"
	"github.com/kbukum/webtoon-api/logger"
)

// ContextKeySubject is the gin context key holding the authenticated subject.
const ContextKeySubject = "subject"

// Auth admits requests carrying "Authorization: Bearer <token>" with a
// token the verifier accepts. A missing or misshapen header is rejected
// with MALFORMED_CREDENTIAL; a token that fails verification with
// INVALID_TOKEN. On success the principal is attached to the request
// context and the subject to the gin context.
func Auth(verifier auth.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok, err := auth.ParseBearer(c.GetHeader("Authorization"))
		if err != nil {
			abortWithError(c, apperrors.MalformedCredential())
			return
		}

		claims, err := verifier.Verify(tok)
		if err != nil {
			abortWithError(c, apperrors.InvalidToken())
			return
		}

		ctx := authctx.WithPrincipal(c.Request.Context(), authctx.Principal{Subject: claims.Subject})
		ctx = logger.ContextWithSubject(ctx, claims.Subject)
		c.Request = c.Request.WithContext(ctx)
		c.Set(ContextKeySubject, claims.Subject)
		c.Next()
	}
}
