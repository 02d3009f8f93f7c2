package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/allisson/accounts/internal/account/usecase"
	"github.com/allisson/accounts/internal/httputil"
)

// SessionMiddleware authenticates the caller through the session cookie or a Bearer token.
//
// The token is resolved with AccountUseCase.CheckSession, so a missing token, an invalid or
// expired token and a token for a deleted account are all answered with 401. On success the
// current profile is stored in the request context and is available through GetAccount.
//
// Usage:
//
//	router.GET("/auth/check-auth", SessionMiddleware(accountUseCase, cookie, logger), handler.CheckAuthHandler)
func SessionMiddleware(
	accountUseCase usecase.AccountUseCase,
	cookie CookieConfig,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, err := accountUseCase.CheckSession(c.Request.Context(), cookie.sessionToken(c))
		if err != nil {
			logger.Debug("session check failed", slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(WithAccount(c.Request.Context(), profile))
		c.Next()
	}
}
