// api/auth/token_test.go
package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dev-mohitbeniwal/intervene/api/auth"
	"github.com/dev-mohitbeniwal/intervene/api/cache"
	"github.com/dev-mohitbeniwal/intervene/api/dao"
	intervene_errors "github.com/dev-mohitbeniwal/intervene/api/errors"
	"github.com/dev-mohitbeniwal/intervene/api/model"
	"github.com/dev-mohitbeniwal/intervene/api/test/testdb"
)

func newBlacklist(t *testing.T) (*auth.CacheBlacklist, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	store, err := cache.NewStore(cache.NewRedisBackend(client), cache.Options{})
	require.NoError(t, err)
	return auth.NewCacheBlacklist(store), mr
}

func newIssuer(t *testing.T, userDAO *dao.UserDAO, blacklist auth.Blacklist, now *time.Time) *auth.TokenIssuer {
	t.Helper()
	issuer, err := auth.NewTokenIssuer(auth.TokenOptions{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		MaxSessions:   5,
	}, userDAO, blacklist)
	require.NoError(t, err)
	return issuer.WithClock(func() time.Time { return *now })
}

func TestNewTokenIssuer_RequiresDistinctSecrets(t *testing.T) {
	_, err := auth.NewTokenIssuer(auth.TokenOptions{AccessSecret: "same", RefreshSecret: "same"}, nil, nil)
	assert.Error(t, err)

	_, err = auth.NewTokenIssuer(auth.TokenOptions{AccessSecret: "only"}, nil, nil)
	assert.Error(t, err)
}

func TestTokenIssuer_Parse(t *testing.T) {
	now := time.Now()
	blacklist, _ := newBlacklist(t)
	issuer := newIssuer(t, nil, blacklist, &now)

	pair, err := issuer.IssuePair("u-1", model.RoleViewer, "viewer@school.cl")
	require.NoError(t, err)
	assert.Equal(t, auth.TokenTypeBearer, pair.TokenType)
	assert.Equal(t, int64(3600), pair.ExpiresIn)

	t.Run("AccessClaims", func(t *testing.T) {
		claims, err := issuer.ParseAccess(pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "u-1", claims.UserID)
		assert.Equal(t, model.RoleViewer, claims.Role)
		assert.Equal(t, "viewer@school.cl", claims.Email)
		assert.Len(t, claims.Salt, 32)
		assert.NotEmpty(t, claims.ID)
	})

	t.Run("SecretsAreNotInterchangeable", func(t *testing.T) {
		_, err := issuer.ParseAccess(pair.RefreshToken)
		assert.ErrorIs(t, err, intervene_errors.ErrInvalidAccessToken)

		_, err = issuer.ParseRefresh(pair.AccessToken)
		assert.ErrorIs(t, err, intervene_errors.ErrInvalidRefreshToken)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := issuer.ParseRefresh("not-a-token")
		assert.ErrorIs(t, err, intervene_errors.ErrInvalidRefreshToken)
	})

	t.Run("Expiry", func(t *testing.T) {
		saved := now
		defer func() { now = saved }()

		now = saved.Add(2 * time.Hour)
		_, err := issuer.ParseAccess(pair.AccessToken)
		assert.ErrorIs(t, err, intervene_errors.ErrInvalidAccessToken)
		_, err = issuer.ParseRefresh(pair.RefreshToken)
		assert.NoError(t, err)

		now = saved.Add(8 * 24 * time.Hour)
		_, err = issuer.ParseRefresh(pair.RefreshToken)
		assert.ErrorIs(t, err, intervene_errors.ErrExpiredRefreshToken)
	})

	t.Run("PairsAreUnique", func(t *testing.T) {
		other, err := issuer.IssuePair("u-1", model.RoleViewer, "viewer@school.cl")
		require.NoError(t, err)
		assert.NotEqual(t, pair.RefreshToken, other.RefreshToken)
		assert.NotEqual(t, auth.HashToken(pair.RefreshToken), auth.HashToken(other.RefreshToken))
	})
}

func TestTokenIssuer_Rotate(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	userDAO := dao.NewUserDAO(testdb.New(t))
	blacklist, mr := newBlacklist(t)
	issuer := newIssuer(t, userDAO, blacklist, &now)

	t.Run("SingleUse", func(t *testing.T) {
		user := createAccount(t, userDAO, "rotate@school.cl")
		pair, err := issuer.Issue(ctx, user)
		require.NoError(t, err)

		rotated, owner, err := issuer.Rotate(ctx, pair.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, user.ID, owner.ID)
		assert.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

		oldHash := auth.HashToken(pair.RefreshToken)
		assert.True(t, blacklist.Contains(ctx, oldHash))
		ttl := mr.TTL(cache.EntityKey(auth.BlacklistPrefix, oldHash))
		assert.InDelta(t, auth.DefaultRefreshTTL.Seconds(), ttl.Seconds(), 5)

		_, _, err = issuer.Rotate(ctx, pair.RefreshToken)
		assert.ErrorIs(t, err, intervene_errors.ErrInvalidRefreshToken)

		stored, err := userDAO.FindOne(ctx, user.ID)
		require.NoError(t, err)
		assert.False(t, stored.HasRefreshToken(oldHash))
		assert.True(t, stored.HasRefreshToken(auth.HashToken(rotated.RefreshToken)))

		_, _, err = issuer.Rotate(ctx, rotated.RefreshToken)
		assert.NoError(t, err)
	})

	t.Run("ValidSetIsAuthoritative", func(t *testing.T) {
		user := createAccount(t, userDAO, "flushed@school.cl")
		pair, err := issuer.Issue(ctx, user)
		require.NoError(t, err)

		_, _, err = issuer.Rotate(ctx, pair.RefreshToken)
		require.NoError(t, err)
		mr.FlushAll()

		_, _, err = issuer.Rotate(ctx, pair.RefreshToken)
		assert.ErrorIs(t, err, intervene_errors.ErrInvalidRefreshToken)
	})

	t.Run("InactiveAccount", func(t *testing.T) {
		user := createAccount(t, userDAO, "gone@school.cl")
		pair, err := issuer.Issue(ctx, user)
		require.NoError(t, err)
		_, err = userDAO.Mutate(ctx, user.ID, func(u *model.User) error {
			u.IsActive = false
			return nil
		})
		require.NoError(t, err)

		_, _, err = issuer.Rotate(ctx, pair.RefreshToken)
		assert.ErrorIs(t, err, intervene_errors.ErrInvalidRefreshToken)
	})

	t.Run("UnknownAccount", func(t *testing.T) {
		pair, err := issuer.IssuePair("no-such-user", model.RoleUser, "x@school.cl")
		require.NoError(t, err)
		_, _, err = issuer.Rotate(ctx, pair.RefreshToken)
		assert.ErrorIs(t, err, intervene_errors.ErrInvalidRefreshToken)
	})

	t.Run("Revoke", func(t *testing.T) {
		user := createAccount(t, userDAO, "logout@school.cl")
		pair, err := issuer.Issue(ctx, user)
		require.NoError(t, err)

		assert.ErrorIs(t, issuer.Revoke(ctx, "someone-else", pair.RefreshToken), intervene_errors.ErrInvalidRefreshToken)
		require.NoError(t, issuer.Revoke(ctx, user.ID, pair.RefreshToken))

		assert.True(t, blacklist.Contains(ctx, auth.HashToken(pair.RefreshToken)))
		_, _, err = issuer.Rotate(ctx, pair.RefreshToken)
		assert.ErrorIs(t, err, intervene_errors.ErrInvalidRefreshToken)
	})
}
