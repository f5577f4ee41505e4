// api/dao/user_dao.go
package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	intervene_errors "github.com/dev-mohitbeniwal/intervene/api/errors"
	logger "github.com/dev-mohitbeniwal/intervene/api/logging"
	"github.com/dev-mohitbeniwal/intervene/api/model"
)

const maxUpdateRetries = 3

type UserDAO struct {
	*GormRepository[model.User]
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{
		GormRepository: NewGormRepository[model.User](db, "user",
			intervene_errors.ErrUserNotFound, intervene_errors.ErrUserConflict),
	}
}

func (dao *UserDAO) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return dao.FindBy(ctx, map[string]any{"email": strings.ToLower(strings.TrimSpace(email))})
}

// IdentityTaken reports whether another user already uses email or rut.
func (dao *UserDAO) IdentityTaken(ctx context.Context, email, rut, excludeID string) (bool, error) {
	return dao.Exists(ctx, "(email = ? OR rut = ?) AND id <> ?", strings.ToLower(email), rut, excludeID)
}

func (dao *UserDAO) CountActiveAdmins(ctx context.Context) (int64, error) {
	active := true
	role := model.RoleAdmin
	return dao.Count(ctx, model.UserFilter{Role: &role, IsActive: &active})
}

// Mutate applies update to a fresh copy of the user and writes it back only
// if nobody changed the row in between. Conflicting writers are retried.
func (dao *UserDAO) Mutate(ctx context.Context, userID string, update func(u *model.User) error) (*model.User, error) {
	start := time.Now()
	for attempt := 0; attempt < maxUpdateRetries; attempt++ {
		user, err := dao.FindOne(ctx, userID)
		if err != nil {
			return nil, err
		}
		if err := update(user); err != nil {
			return nil, err
		}

		version := user.Version
		user.Version++
		res := dao.DB(ctx).Model(user).
			Where("version = ?", version).
			Select("*").
			Updates(user)
		if res.Error != nil {
			return nil, dao.mapError("mutate", res.Error)
		}
		if res.RowsAffected == 1 {
			logger.Debug("User updated",
				zap.String("userID", userID),
				zap.Int("attempt", attempt+1),
				zap.Duration("duration", time.Since(start)))
			return user, nil
		}
		logger.Debug("Concurrent user update, retrying", zap.String("userID", userID), zap.Int("attempt", attempt+1))
	}
	return nil, intervene_errors.ErrStaleRecord
}

// UpdateLoginState persists changes to the login attempt counters.
func (dao *UserDAO) UpdateLoginState(ctx context.Context, userID string, update func(u *model.User)) (*model.User, error) {
	return dao.Mutate(ctx, userID, func(u *model.User) error {
		update(u)
		return nil
	})
}

// AddRefreshToken puts hash in the valid set, dropping the oldest hashes
// beyond maxSessions.
func (dao *UserDAO) AddRefreshToken(ctx context.Context, userID, hash string, maxSessions int) error {
	_, err := dao.Mutate(ctx, userID, func(u *model.User) error {
		tokens := append(u.RefreshTokens, hash)
		if maxSessions > 0 && len(tokens) > maxSessions {
			tokens = tokens[len(tokens)-maxSessions:]
		}
		u.RefreshTokens = tokens
		return nil
	})
	return err
}

var errTokenNotOwned = errors.New("refresh token is not in the valid set")

// ReplaceRefreshToken swaps oldHash for newHash in one write. It fails with
// ErrInvalidRefreshToken when oldHash was already used or the account is inactive.
func (dao *UserDAO) ReplaceRefreshToken(ctx context.Context, userID, oldHash, newHash string) error {
	_, err := dao.Mutate(ctx, userID, func(u *model.User) error {
		if !u.IsActive || !u.HasRefreshToken(oldHash) {
			return errTokenNotOwned
		}
		tokens := make([]string, 0, len(u.RefreshTokens))
		for _, h := range u.RefreshTokens {
			if h != oldHash {
				tokens = append(tokens, h)
			}
		}
		u.RefreshTokens = append(tokens, newHash)
		return nil
	})
	if errors.Is(err, errTokenNotOwned) {
		return intervene_errors.ErrInvalidRefreshToken
	}
	return err
}

// RemoveRefreshToken drops hash from the valid set. Unknown hashes are ignored.
func (dao *UserDAO) RemoveRefreshToken(ctx context.Context, userID, hash string) error {
	_, err := dao.Mutate(ctx, userID, func(u *model.User) error {
		tokens := make([]string, 0, len(u.RefreshTokens))
		for _, h := range u.RefreshTokens {
			if h != hash {
				tokens = append(tokens, h)
			}
		}
		u.RefreshTokens = tokens
		return nil
	})
	return err
}

// ClearRefreshTokens empties the valid set, ending every session.
func (dao *UserDAO) ClearRefreshTokens(ctx context.Context, userID string) error {
	_, err := dao.Mutate(ctx, userID, func(u *model.User) error {
		u.RefreshTokens = []string{}
		return nil
	})
	return err
}
