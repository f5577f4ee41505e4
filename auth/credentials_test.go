// api/auth/credentials_test.go
package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dev-mohitbeniwal/intervene/api/auth"
	"github.com/dev-mohitbeniwal/intervene/api/dao"
	intervene_errors "github.com/dev-mohitbeniwal/intervene/api/errors"
	"github.com/dev-mohitbeniwal/intervene/api/model"
	"github.com/dev-mohitbeniwal/intervene/api/test/testdb"
)

const testPassword = "Secret#123"

func createAccount(t *testing.T, userDAO *dao.UserDAO, email string) *model.User {
	t.Helper()
	hash, err := auth.HashPassword(testPassword, bcrypt.MinCost)
	require.NoError(t, err)
	user := &model.User{
		FirstName:    "Marta",
		LastName:     "Soto",
		Email:        email,
		RUT:          email,
		PasswordHash: hash,
		Role:         model.RoleUser,
		IsActive:     true,
	}
	require.NoError(t, userDAO.Save(context.Background(), user))
	return user
}

func TestLockoutPolicy(t *testing.T) {
	policy := auth.DefaultLockoutPolicy()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	recent := now.Add(-time.Minute)
	old := now.Add(-16 * time.Minute)

	tests := []struct {
		name     string
		attempts int
		last     *time.Time
		locked   bool
		next     int
	}{
		{"no attempts", 0, nil, false, 1},
		{"below limit", 4, &recent, false, 5},
		{"at limit inside window", 5, &recent, true, 6},
		{"at limit outside window", 5, &old, false, 1},
		{"stale counter restarts", 3, &old, false, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.locked, policy.Locked(tt.attempts, tt.last, now))
			assert.Equal(t, tt.next, policy.NextAttempts(tt.attempts, tt.last, now))
		})
	}

	assert.Equal(t, 14*time.Minute, policy.RetryAfter(&recent, now))
	assert.Zero(t, policy.RetryAfter(&old, now))
	assert.Zero(t, policy.RetryAfter(nil, now))
}

func TestCredentialVerifier(t *testing.T) {
	ctx := context.Background()
	userDAO := dao.NewUserDAO(testdb.New(t))
	start := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	now := start
	verifier := auth.NewCredentialVerifier(auth.DefaultLockoutPolicy(), userDAO).
		WithClock(func() time.Time { return now })

	reload := func(id string) *model.User {
		u, err := userDAO.FindOne(ctx, id)
		require.NoError(t, err)
		return u
	}

	t.Run("LockoutAfterFiveFailures", func(t *testing.T) {
		user := createAccount(t, userDAO, "lock@school.cl")

		for i := 1; i <= 5; i++ {
			now = start.Add(time.Duration(i-1) * time.Minute)
			res, err := verifier.Verify(ctx, reload(user.ID), "wrong")
			require.NoError(t, err)
			assert.Equal(t, auth.VerifyInvalidPassword, res.Outcome)
			assert.Equal(t, i, res.Attempts)
			assert.ErrorIs(t, res.Err(), intervene_errors.ErrInvalidCredentials)
		}

		now = start.Add(5 * time.Minute)
		res, err := verifier.Verify(ctx, reload(user.ID), testPassword)
		require.NoError(t, err)
		assert.Equal(t, auth.VerifyLocked, res.Outcome)
		assert.Equal(t, 14*time.Minute, res.RetryAfter)
		lockErr := intervene_errors.AsAppError(res.Err())
		require.NotNil(t, lockErr)
		assert.Equal(t, intervene_errors.KindRateLimit, lockErr.Kind)
		assert.Equal(t, 14*time.Minute, lockErr.RetryAfter)
		assert.Equal(t, 5, reload(user.ID).LoginAttempts)

		now = start.Add(4*time.Minute + auth.DefaultLockoutWindow)
		res, err = verifier.Verify(ctx, reload(user.ID), testPassword)
		require.NoError(t, err)
		assert.Equal(t, auth.VerifyOK, res.Outcome)
		assert.NoError(t, res.Err())

		stored := reload(user.ID)
		assert.Zero(t, stored.LoginAttempts)
		assert.Nil(t, stored.LastLoginAttempt)
		require.NotNil(t, stored.LastLogin)
		assert.True(t, stored.LastLogin.Equal(now))
	})

	t.Run("SuccessResetsCounter", func(t *testing.T) {
		now = start
		user := createAccount(t, userDAO, "reset@school.cl")
		_, err := verifier.Verify(ctx, reload(user.ID), "wrong")
		require.NoError(t, err)
		assert.Equal(t, 1, reload(user.ID).LoginAttempts)

		res, err := verifier.Verify(ctx, reload(user.ID), testPassword)
		require.NoError(t, err)
		assert.Equal(t, auth.VerifyOK, res.Outcome)
		assert.Zero(t, reload(user.ID).LoginAttempts)
	})

	t.Run("UnknownAccount", func(t *testing.T) {
		res, err := verifier.Verify(ctx, nil, testPassword)
		require.NoError(t, err)
		assert.Equal(t, auth.VerifyNotFound, res.Outcome)
		assert.ErrorIs(t, res.Err(), intervene_errors.ErrInvalidCredentials)
	})

	t.Run("InactiveAccount", func(t *testing.T) {
		user := createAccount(t, userDAO, "inactive@school.cl")
		user.IsActive = false
		require.NoError(t, userDAO.Save(ctx, user))

		res, err := verifier.Verify(ctx, reload(user.ID), testPassword)
		require.NoError(t, err)
		assert.Equal(t, auth.VerifyInactive, res.Outcome)
		assert.ErrorIs(t, res.Err(), intervene_errors.ErrInvalidCredentials)
	})
}

func TestValidatePasswordComplexity(t *testing.T) {
	tests := []struct {
		password string
		valid    bool
	}{
		{"Secret#123", true},
		{"Sh0rt!", false},
		{"alllowercase1!", false},
		{"ALLUPPERCASE1!", false},
		{"NoDigitsHere!", false},
		{"NoSymbols123", false},
	}
	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			err := auth.ValidatePasswordComplexity(tt.password)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, intervene_errors.ErrWeakPassword)
			}
		})
	}
}

func TestHashPassword(t *testing.T) {
	hash, err := auth.HashPassword(testPassword, bcrypt.MinCost)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte(testPassword)))
	assert.NotEqual(t, testPassword, hash)
}
