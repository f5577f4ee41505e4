// api/service/fixture_test.go
package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/dev-mohitbeniwal/intervene/api/auth"
	"github.com/dev-mohitbeniwal/intervene/api/cache"
	"github.com/dev-mohitbeniwal/intervene/api/config"
	"github.com/dev-mohitbeniwal/intervene/api/dao"
	"github.com/dev-mohitbeniwal/intervene/api/model"
	"github.com/dev-mohitbeniwal/intervene/api/service"
	"github.com/dev-mohitbeniwal/intervene/api/test/mock"
	"github.com/dev-mohitbeniwal/intervene/api/test/testdb"
	"github.com/dev-mohitbeniwal/intervene/api/util"
)

const testPassword = "Str0ng!Pass"

type fixture struct {
	db     *gorm.DB
	mr     *miniredis.Miniredis
	client *redis.Client
	cache  *util.CacheService
	audit  *mock.RecordingAuditService
	graph  *mock.MockGraphRunner
	users  *dao.UserDAO
	svc    *service.Services
}

func testAuthConfig() config.AuthConfiguration {
	return config.AuthConfiguration{
		AccessSecret:  "test-access-secret",
		RefreshSecret: "test-refresh-secret",
		AccessTTL:     time.Hour,
		RefreshTTL:    24 * time.Hour,
		MaxAttempts:   5,
		LockoutWindow: 15 * time.Minute,
		BcryptCost:    bcrypt.MinCost,
		MaxSessions:   5,
	}
}

// newFixture wires every service over an in-memory database, a miniredis
// cache and a mocked graph store.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	gdb := testdb.New(t)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	store, err := cache.NewStore(cache.NewRedisBackend(client), cache.Options{})
	require.NoError(t, err)

	f := &fixture{
		db:     gdb,
		mr:     mr,
		client: client,
		cache:  util.NewCacheService(store, util.DefaultCacheTTLs()),
		audit:  &mock.RecordingAuditService{},
		graph:  new(mock.MockGraphRunner),
		users:  dao.NewUserDAO(gdb),
	}
	f.svc, err = service.InitializeServices(gdb, f.graph, f.audit, util.NewValidationUtil(), f.cache, nil, testAuthConfig())
	require.NoError(t, err)
	return f
}

// seedUser stores an active account whose password is testPassword.
func (f *fixture) seedUser(t *testing.T, email, rut string, role model.Role) (*model.User, *model.Actor) {
	t.Helper()
	hash, err := auth.HashPassword(testPassword, bcrypt.MinCost)
	require.NoError(t, err)

	user := &model.User{
		FirstName:    "Test",
		LastName:     string(role),
		Email:        email,
		RUT:          rut,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, f.users.Save(context.Background(), user))
	return user, &model.Actor{UserID: user.ID, Email: user.Email, Role: user.Role}
}

func (f *fixture) seedStaff(t *testing.T) (admin, user, viewer *model.Actor) {
	t.Helper()
	_, admin = f.seedUser(t, "admin@school.cl", "12345678-5", model.RoleAdmin)
	_, user = f.seedUser(t, "teacher@school.cl", "11111111-1", model.RoleUser)
	_, viewer = f.seedUser(t, "viewer@school.cl", "22222222-2", model.RoleViewer)
	return admin, user, viewer
}

func newStudent(rut, enrollment string) model.Student {
	return model.Student{
		FirstName:        "Ana",
		LastName:         "Rojas",
		RUT:              rut,
		EnrollmentNumber: enrollment,
		Grade:            "5A",
		Section:          "A",
		AcademicYear:     2024,
	}
}
