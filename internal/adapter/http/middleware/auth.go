package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gregsyu/task-manager/internal/core/domain"
	"github.com/gregsyu/task-manager/internal/core/ports"
	"github.com/gregsyu/task-manager/pkg/apierrors"
)

const currentUserKey = "currentUser"

// AuthMiddleware resolves the Authorization bearer token to a user and
// aborts with a uniform 401 on any failure, so callers cannot probe whether
// a token was missing, malformed or expired.
func AuthMiddleware(authService ports.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := GetLang(c)

		token := extractBearerToken(c.GetHeader("Authorization"))
		if token == "" {
			abortUnauthorized(c, lang)
			return
		}

		user, err := authService.Authenticate(c.Request.Context(), token)
		if err != nil {
			abortUnauthorized(c, lang)
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user stored by AuthMiddleware.
func CurrentUser(c *gin.Context) (domain.User, bool) {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return domain.User{}, false
	}
	user, ok := value.(domain.User)
	return user, ok
}

func extractBearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func abortUnauthorized(c *gin.Context, lang string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(
		http.StatusUnauthorized,
		apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgUnauthorized, lang),
	)
}
