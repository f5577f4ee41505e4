// api/util/http_util.go
package util

import (
	"math"
	"strconv"
	"sync/atomic"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	intervene_errors "github.com/dev-mohitbeniwal/intervene/api/errors"
	logger "github.com/dev-mohitbeniwal/intervene/api/logging"
	"github.com/dev-mohitbeniwal/intervene/api/model"
)

const actorContextKey = "actor"

var debugErrors atomic.Bool

// SetDebugErrors controls whether error details reach the client.
func SetDebugErrors(enabled bool) {
	debugErrors.Store(enabled)
}

// RespondWithError writes the error body for err and aborts the request.
func RespondWithError(c *gin.Context, err error) {
	appErr := intervene_errors.AsAppError(err)
	status := appErr.Kind.Status()

	fields := []zap.Field{
		zap.Error(err),
		zap.String("code", appErr.Code),
		zap.Int("status", status),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
	}
	if intervene_errors.IsClientError(appErr) {
		logger.Warn(appErr.Message, fields...)
	} else {
		logger.Error(appErr.Message, fields...)
	}

	body := gin.H{
		"error":   appErr.Code,
		"message": appErr.Message,
		"status":  status,
	}
	if appErr.RetryAfter > 0 {
		seconds := int(math.Ceil(appErr.RetryAfter.Seconds()))
		c.Header("Retry-After", strconv.Itoa(seconds))
		body["retryAfter"] = seconds
	}
	if debugErrors.Load() {
		details := map[string]interface{}{}
		for k, v := range appErr.Details {
			details[k] = v
		}
		if appErr.Cause != nil {
			details["cause"] = appErr.Cause.Error()
		}
		if len(details) > 0 {
			body["details"] = details
		}
	} else if appErr.Kind == intervene_errors.KindValidation && len(appErr.Details) > 0 {
		body["details"] = appErr.Details
	}
	c.AbortWithStatusJSON(status, body)
}

// SetActor stores the authenticated caller on the request.
func SetActor(c *gin.Context, actor *model.Actor) {
	c.Set(actorContextKey, actor)
}

// GetActorFromContext returns the authenticated caller, if any.
func GetActorFromContext(c *gin.Context) (*model.Actor, error) {
	v, exists := c.Get(actorContextKey)
	if !exists {
		return nil, intervene_errors.ErrUnauthorized
	}
	actor, ok := v.(*model.Actor)
	if !ok || actor == nil {
		return nil, intervene_errors.ErrUnauthorized
	}
	return actor, nil
}

// RequestOrigin describes the client of the current request.
func RequestOrigin(c *gin.Context) model.Origin {
	return model.Origin{IP: c.ClientIP(), UserAgent: c.Request.UserAgent()}
}
