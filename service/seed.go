// api/service/seed.go
package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/dev-mohitbeniwal/intervene/api/auth"
	"github.com/dev-mohitbeniwal/intervene/api/dao"
	"github.com/dev-mohitbeniwal/intervene/api/db"
	logger "github.com/dev-mohitbeniwal/intervene/api/logging"
	"github.com/dev-mohitbeniwal/intervene/api/model"
)

const seedLock = "seed_admin"

type SeedAdmin struct {
	Email      string
	Password   string
	RUT        string
	BcryptCost int
}

// SeedAdministrator creates the first administrator when the user table is
// empty. With a Redis client, only one replica seeds at a time.
func SeedAdministrator(ctx context.Context, userDAO *dao.UserDAO, locker redis.UniversalClient, seed SeedAdmin) error {
	if seed.Email == "" || seed.Password == "" {
		logger.Debug("No administrator seed configured")
		return nil
	}

	if locker != nil {
		locked, err := db.LockResource(ctx, locker, seedLock, 30*time.Second)
		if err != nil {
			logger.Warn("Seeding without lock", zap.Error(err))
		} else if !locked {
			logger.Info("Another instance is seeding the administrator")
			return nil
		} else {
			defer func() {
				if err := db.UnlockResource(ctx, locker, seedLock); err != nil {
					logger.Warn("Failed to release seed lock", zap.Error(err))
				}
			}()
		}
	}

	users, err := userDAO.Count(ctx, model.UserFilter{})
	if err != nil {
		return err
	}
	if users > 0 {
		return nil
	}

	if err := auth.ValidatePasswordComplexity(seed.Password); err != nil {
		return err
	}
	hash, err := auth.HashPassword(seed.Password, seed.BcryptCost)
	if err != nil {
		return err
	}
	admin := model.User{
		FirstName:    "System",
		LastName:     "Administrator",
		Email:        normalizeEmail(seed.Email),
		RUT:          seed.RUT,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
		IsActive:     true,
	}
	if err := userDAO.Save(ctx, &admin); err != nil {
		logger.Error("Failed to seed administrator", zap.Error(err))
		return err
	}
	logger.Info("Administrator seeded", zap.String("userID", admin.ID), zap.String("email", admin.Email))
	return nil
}
