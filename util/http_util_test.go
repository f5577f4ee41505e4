// api/util/http_util_test.go
package util_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	intervene_errors "github.com/dev-mohitbeniwal/intervene/api/errors"
	"github.com/dev-mohitbeniwal/intervene/api/model"
	"github.com/dev-mohitbeniwal/intervene/api/util"
)

func respond(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/students", nil)
	util.RespondWithError(c, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestRespondWithError(t *testing.T) {
	t.Run("KindToStatus", func(t *testing.T) {
		w, body := respond(t, intervene_errors.ErrStudentNotFound)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "STUDENT_NOT_FOUND", body["error"])
		assert.Equal(t, float64(http.StatusNotFound), body["status"])
		assert.NotContains(t, body, "details")
	})

	t.Run("RetryAfter", func(t *testing.T) {
		w, body := respond(t, intervene_errors.ErrAccountLocked.WithRetryAfter(90*time.Second+time.Millisecond))
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "91", w.Header().Get("Retry-After"))
		assert.Equal(t, float64(91), body["retryAfter"])
	})

	t.Run("UnknownErrorIsInternal", func(t *testing.T) {
		w, body := respond(t, errors.New("boom"))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "INTERNAL_ERROR", body["error"])
		assert.NotContains(t, body, "details")
	})

	t.Run("DebugDetails", func(t *testing.T) {
		util.SetDebugErrors(true)
		defer util.SetDebugErrors(false)

		_, body := respond(t, intervene_errors.ErrDatabaseOperation.WithCause(errors.New("disk full")))
		details, ok := body["details"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "disk full", details["cause"])
	})

	t.Run("ValidationDetailsAlwaysShown", func(t *testing.T) {
		_, body := respond(t, intervene_errors.ErrInvalidStudentData.WithDetails(map[string]interface{}{"rut": "is required"}))
		assert.Equal(t, map[string]interface{}{"rut": "is required"}, body["details"])
	})
}

func TestActorContext(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, err := util.GetActorFromContext(c)
	assert.ErrorIs(t, err, intervene_errors.ErrUnauthorized)

	util.SetActor(c, &model.Actor{UserID: "u-1", Role: model.RoleViewer})
	actor, err := util.GetActorFromContext(c)
	require.NoError(t, err)
	assert.Equal(t, "u-1", actor.UserID)
}
