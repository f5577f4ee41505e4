// api/middleware/auth.go
package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	intervene_errors "github.com/dev-mohitbeniwal/intervene/api/errors"
	logger "github.com/dev-mohitbeniwal/intervene/api/logging"
	"github.com/dev-mohitbeniwal/intervene/api/model"
	"github.com/dev-mohitbeniwal/intervene/api/util"
)

// Authenticator resolves an access token to the caller it was issued to.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*model.Actor, error)
}

// BearerAuth rejects requests without a valid "Authorization: Bearer" access token
// and stores the resolved actor on the request.
func BearerAuth(authenticator Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			logger.Debug("No bearer token provided", zap.String("path", c.Request.URL.Path))
			util.RespondWithError(c, intervene_errors.ErrUnauthorized)
			return
		}

		actor, err := authenticator.Authenticate(c, strings.TrimSpace(token))
		if err != nil {
			util.RespondWithError(c, err)
			return
		}

		actor.Origin = util.RequestOrigin(c)
		util.SetActor(c, actor)
		c.Next()
	}
}
