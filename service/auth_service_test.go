// api/service/auth_service_test.go
package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dev-mohitbeniwal/intervene/api/audit"
	intervene_errors "github.com/dev-mohitbeniwal/intervene/api/errors"
	"github.com/dev-mohitbeniwal/intervene/api/model"
	"github.com/dev-mohitbeniwal/intervene/api/service"
	"github.com/dev-mohitbeniwal/intervene/api/util"
)

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	origin := model.Origin{IP: "10.0.0.1", UserAgent: "test"}

	t.Run("Success_CachesAccount", func(t *testing.T) {
		f := newFixture(t)
		user, _ := f.seedUser(t, "admin@school.cl", "12345678-5", model.RoleAdmin)

		result, err := f.svc.Auth.Login(ctx, service.LoginRequest{Email: " Admin@School.cl ", Password: testPassword}, origin)
		require.NoError(t, err)
		assert.Equal(t, user.ID, result.User.ID)
		assert.NotEmpty(t, result.Tokens.AccessToken)
		assert.NotEmpty(t, result.Tokens.RefreshToken)
		assert.NotNil(t, result.User.LastLogin)

		assert.True(t, f.mr.Exists(util.LoginKeyByEmail(user.Email)))
		assert.True(t, f.mr.Exists(util.DetailKey(util.CacheUser, user.ID)))
		assert.Contains(t, f.audit.Actions(), audit.ActionLogin)

		stored, err := f.users.FindOne(ctx, user.ID)
		require.NoError(t, err)
		assert.Len(t, stored.RefreshTokens, 1)
	})

	t.Run("UnknownAndInactive_LookLikeWrongPassword", func(t *testing.T) {
		f := newFixture(t)
		user, _ := f.seedUser(t, "former@school.cl", "12345678-5", model.RoleUser)
		_, err := f.users.Mutate(ctx, user.ID, func(u *model.User) error {
			u.IsActive = false
			return nil
		})
		require.NoError(t, err)

		_, unknownErr := f.svc.Auth.Login(ctx, service.LoginRequest{Email: "nobody@school.cl", Password: testPassword}, origin)
		_, inactiveErr := f.svc.Auth.Login(ctx, service.LoginRequest{Email: user.Email, Password: testPassword}, origin)
		_, wrongErr := f.svc.Auth.Login(ctx, service.LoginRequest{Email: user.Email, Password: "Wr0ng!Pass"}, origin)

		for _, err := range []error{unknownErr, inactiveErr, wrongErr} {
			assert.ErrorIs(t, err, intervene_errors.ErrInvalidCredentials)
			assert.Equal(t, intervene_errors.ErrInvalidCredentials.Message, intervene_errors.AsAppError(err).Message)
		}
		assert.Equal(t, []audit.Action{audit.ActionLoginFailed, audit.ActionLoginFailed, audit.ActionLoginFailed}, f.audit.Actions())
	})

	t.Run("Lockout_AfterRepeatedFailures", func(t *testing.T) {
		f := newFixture(t)
		user, _ := f.seedUser(t, "teacher@school.cl", "11111111-1", model.RoleUser)

		for i := 0; i < 5; i++ {
			_, err := f.svc.Auth.Login(ctx, service.LoginRequest{Email: user.Email, Password: "Wr0ng!Pass"}, origin)
			require.ErrorIs(t, err, intervene_errors.ErrInvalidCredentials)
		}
		assert.False(t, f.mr.Exists(util.LoginKeyByEmail(user.Email)))

		_, err := f.svc.Auth.Login(ctx, service.LoginRequest{Email: user.Email, Password: testPassword}, origin)
		require.ErrorIs(t, err, intervene_errors.ErrAccountLocked)
		var appErr *intervene_errors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Greater(t, appErr.RetryAfter.Seconds(), float64(0))
		assert.Equal(t, 429, intervene_errors.StatusOf(err))
		assert.Contains(t, f.audit.Actions(), audit.ActionLoginBlocked)

		stored, err := f.users.FindOne(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, 5, stored.LoginAttempts)
		assert.Empty(t, stored.RefreshTokens)
	})

	t.Run("InvalidRequest", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Auth.Login(ctx, service.LoginRequest{Email: "not-an-email"}, origin)
		assert.Equal(t, intervene_errors.KindValidation, intervene_errors.KindOf(err))
	})
}

func TestAuthService_LoginThenFindOneServedFromCache(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	user, actor := f.seedUser(t, "admin@school.cl", "12345678-5", model.RoleAdmin)

	_, err := f.svc.Auth.Login(ctx, service.LoginRequest{Email: user.Email, Password: testPassword}, model.Origin{})
	require.NoError(t, err)

	// The row is gone; only the cache still knows the account.
	require.NoError(t, f.db.Delete(&model.User{}, "id = ?", user.ID).Error)

	view, err := f.svc.User.GetUser(ctx, actor, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, view.Email)
	assert.Equal(t, model.RoleAdmin, view.Role)
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	user, _ := f.seedUser(t, "teacher@school.cl", "11111111-1", model.RoleUser)

	login, err := f.svc.Auth.Login(ctx, service.LoginRequest{Email: user.Email, Password: testPassword}, model.Origin{})
	require.NoError(t, err)

	rotated, err := f.svc.Auth.Refresh(ctx, login.Tokens.RefreshToken, model.Origin{})
	require.NoError(t, err)
	assert.NotEqual(t, login.Tokens.RefreshToken, rotated.RefreshToken)
	assert.Contains(t, f.audit.Actions(), audit.ActionTokenRefresh)

	_, err = f.svc.Auth.Refresh(ctx, login.Tokens.RefreshToken, model.Origin{})
	assert.ErrorIs(t, err, intervene_errors.ErrInvalidRefreshToken)

	origin := model.Origin{IP: "10.0.0.9", UserAgent: "curl/8.0"}
	_, err = f.svc.Auth.Refresh(ctx, "garbage", origin)
	assert.ErrorIs(t, err, intervene_errors.ErrInvalidRefreshToken)

	entries := f.audit.Entries()
	rejected := entries[len(entries)-1]
	assert.Equal(t, audit.ActionRefreshFailed, rejected.Action)
	assert.Nil(t, rejected.Actor)
	assert.Equal(t, origin, rejected.Origin)
	assert.NotContains(t, rejected.Details, "token is malformed")

	_, err = f.svc.Auth.Refresh(ctx, rotated.RefreshToken, model.Origin{})
	assert.NoError(t, err)
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	user, actor := f.seedUser(t, "teacher@school.cl", "11111111-1", model.RoleUser)

	login, err := f.svc.Auth.Login(ctx, service.LoginRequest{Email: user.Email, Password: testPassword}, model.Origin{})
	require.NoError(t, err)

	require.NoError(t, f.svc.Auth.Logout(ctx, actor, login.Tokens.RefreshToken))
	assert.False(t, f.mr.Exists(util.LoginKeyByEmail(user.Email)))
	assert.Contains(t, f.audit.Actions(), audit.ActionLogout)

	_, err = f.svc.Auth.Refresh(ctx, login.Tokens.RefreshToken, model.Origin{})
	assert.ErrorIs(t, err, intervene_errors.ErrInvalidRefreshToken)

	assert.ErrorIs(t, f.svc.Auth.Logout(ctx, nil, login.Tokens.RefreshToken), intervene_errors.ErrUnauthorized)
}

func TestAuthService_Authenticate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin, user, _ := f.seedStaff(t)

	login, err := f.svc.Auth.Login(ctx, service.LoginRequest{Email: user.Email, Password: testPassword}, model.Origin{})
	require.NoError(t, err)

	actor, err := f.svc.Auth.Authenticate(ctx, login.Tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.UserID, actor.UserID)
	assert.Equal(t, model.RoleUser, actor.Role)
	assert.True(t, f.mr.Exists(util.LoginKeyByID(user.UserID)))

	_, err = f.svc.Auth.Authenticate(ctx, login.Tokens.RefreshToken)
	assert.ErrorIs(t, err, intervene_errors.ErrInvalidAccessToken)

	_, err = f.svc.User.ChangeStatus(ctx, admin, user.UserID, false)
	require.NoError(t, err)

	_, err = f.svc.Auth.Authenticate(ctx, login.Tokens.AccessToken)
	assert.ErrorIs(t, err, intervene_errors.ErrInvalidAccessToken)
	_, err = f.svc.Auth.Refresh(ctx, login.Tokens.RefreshToken, model.Origin{})
	assert.ErrorIs(t, err, intervene_errors.ErrInvalidRefreshToken)
}

func TestAuthService_CurrentUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, user, _ := f.seedStaff(t)

	view, err := f.svc.Auth.CurrentUser(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, user.Email, view.Email)

	_, err = f.svc.Auth.CurrentUser(ctx, nil)
	assert.ErrorIs(t, err, intervene_errors.ErrUnauthorized)
}

func TestAuthService_ResetPassword(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin, user, _ := f.seedStaff(t)

	login, err := f.svc.Auth.Login(ctx, service.LoginRequest{Email: user.Email, Password: testPassword}, model.Origin{})
	require.NoError(t, err)

	err = f.svc.Auth.ResetPassword(ctx, user, user.UserID, "N3w!Password")
	assert.ErrorIs(t, err, intervene_errors.ErrForbidden)

	err = f.svc.Auth.ResetPassword(ctx, admin, user.UserID, "weak")
	assert.ErrorIs(t, err, intervene_errors.ErrWeakPassword)

	require.NoError(t, f.svc.Auth.ResetPassword(ctx, admin, user.UserID, "N3w!Password"))
	assert.Contains(t, f.audit.Actions(), audit.ActionResetPassword)

	_, err = f.svc.Auth.Refresh(ctx, login.Tokens.RefreshToken, model.Origin{})
	assert.ErrorIs(t, err, intervene_errors.ErrInvalidRefreshToken)

	_, err = f.svc.Auth.Login(ctx, service.LoginRequest{Email: user.Email, Password: testPassword}, model.Origin{})
	assert.ErrorIs(t, err, intervene_errors.ErrInvalidCredentials)
	_, err = f.svc.Auth.Login(ctx, service.LoginRequest{Email: user.Email, Password: "N3w!Password"}, model.Origin{})
	assert.NoError(t, err)
}
