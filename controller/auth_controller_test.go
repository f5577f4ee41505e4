// api/controller/auth_controller_test.go
package controller_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/dev-mohitbeniwal/intervene/api/auth"
	"github.com/dev-mohitbeniwal/intervene/api/controller"
	intervene_errors "github.com/dev-mohitbeniwal/intervene/api/errors"
	"github.com/dev-mohitbeniwal/intervene/api/model"
	"github.com/dev-mohitbeniwal/intervene/api/service"
	mock_service "github.com/dev-mohitbeniwal/intervene/api/test/service_mock"
)

func TestAuthController(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuthService := mock_service.NewMockIAuthService(ctrl)
	authController := controller.NewAuthController(mockAuthService)

	public, publicGroup := setupRouter(nil)
	authController.RegisterPublicRoutes(publicGroup)
	protected, protectedGroup := setupRouter(teacherActor)
	authController.RegisterRoutes(protectedGroup)

	pair := auth.TokenPair{AccessToken: "access", RefreshToken: "refresh", TokenType: "Bearer", ExpiresIn: 900}

	t.Run("Login_Success", func(t *testing.T) {
		mockAuthService.EXPECT().
			Login(gomock.Any(), service.LoginRequest{Email: "teacher@school.cl", Password: "Str0ng!Pass"}, gomock.Any()).
			Return(&service.LoginResult{User: model.UserView{ID: "user-1", Email: "teacher@school.cl"}, Tokens: pair}, nil)

		w := serve(public, "POST", "/auth/login", strings.NewReader(`{"email":"teacher@school.cl","password":"Str0ng!Pass"}`))

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		tokens := body["tokens"].(map[string]interface{})
		assert.Equal(t, "access", tokens["accessToken"])
		assert.NotContains(t, w.Body.String(), "password")
	})

	t.Run("Login_Failure_InvalidCredentials", func(t *testing.T) {
		mockAuthService.EXPECT().
			Login(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, intervene_errors.ErrInvalidCredentials)

		w := serve(public, "POST", "/auth/login", strings.NewReader(`{"email":"teacher@school.cl","password":"wrong"}`))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "INVALID_CREDENTIALS", decodeBody(t, w)["error"])
	})

	t.Run("Login_Failure_MalformedBody", func(t *testing.T) {
		w := serve(public, "POST", "/auth/login", strings.NewReader(`{"email":`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_USER_DATA", decodeBody(t, w)["error"])
	})

	t.Run("Login_Failure_Locked", func(t *testing.T) {
		mockAuthService.EXPECT().
			Login(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, intervene_errors.ErrAccountLocked.WithRetryAfter(90*time.Second))

		w := serve(public, "POST", "/auth/login", strings.NewReader(`{"email":"teacher@school.cl","password":"wrong"}`))

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "90", w.Header().Get("Retry-After"))
	})

	t.Run("RefreshToken_Success", func(t *testing.T) {
		mockAuthService.EXPECT().
			Refresh(gomock.Any(), "refresh", gomock.Any()).
			Return(&pair, nil)

		w := serve(public, "POST", "/auth/refresh-token", strings.NewReader(`{"refreshToken":"refresh"}`))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, decodeBody(t, w), "tokens")
	})

	t.Run("RefreshToken_Failure_MissingToken", func(t *testing.T) {
		w := serve(public, "POST", "/auth/refresh-token", strings.NewReader(`{}`))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "INVALID_REFRESH_TOKEN", decodeBody(t, w)["error"])
	})

	t.Run("Logout_Success", func(t *testing.T) {
		mockAuthService.EXPECT().
			Logout(gomock.Any(), teacherActor, "refresh").
			Return(nil)

		w := serve(protected, "POST", "/auth/logout", strings.NewReader(`{"refreshToken":"refresh"}`))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Me_Success", func(t *testing.T) {
		mockAuthService.EXPECT().
			CurrentUser(gomock.Any(), teacherActor).
			Return(&model.UserView{ID: "user-1", Email: "teacher@school.cl"}, nil)

		w := serve(protected, "GET", "/auth/me", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "user-1", decodeBody(t, w)["id"])
	})

	t.Run("ResetPassword_Failure_Forbidden", func(t *testing.T) {
		mockAuthService.EXPECT().
			ResetPassword(gomock.Any(), teacherActor, "user-2", "N3w!Password").
			Return(intervene_errors.ErrForbidden)

		w := serve(protected, "POST", "/auth/reset-password/user-2", strings.NewReader(`{"password":"N3w!Password"}`))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
