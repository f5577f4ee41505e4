// api/util/cache_service.go

package util

import (
	"context"
	"strings"
	"time"

	"github.com/dev-mohitbeniwal/intervene/api/cache"
	"github.com/dev-mohitbeniwal/intervene/api/model"
)

const (
	CacheStudent      = "student"
	CacheIntervention = "intervention"
	CacheComment      = "comment"
	CacheUser         = "user"

	commentListPrefix     = "intervention_comments"
	loginByEmailPrefix    = "user_login:email"
	loginByIDPrefix       = "user_login:id"
	studentAssignPrefix   = "student_assignments"
	userAssignmentsPrefix = "user_students"
)

// CacheTTLs are the lifetimes of the three kinds of cached data.
type CacheTTLs struct {
	// Default applies to list and detail reads.
	Default time.Duration
	// Auth applies to lookups that gate authentication.
	Auth time.Duration
	// Trusted applies to the account resolved by a successful login.
	Trusted time.Duration
}

func DefaultCacheTTLs() CacheTTLs {
	return CacheTTLs{Default: cache.DefaultTTL, Auth: cache.AuthTTL, Trusted: cache.DefaultTTL}
}

// CacheService owns the key layout of every cached entity and the patterns
// each kind of write must purge.
type CacheService struct {
	store       *cache.Store
	invalidator *cache.Invalidator
	ttl         CacheTTLs
}

func NewCacheService(store *cache.Store, ttl CacheTTLs) *CacheService {
	defaults := DefaultCacheTTLs()
	if ttl.Default <= 0 {
		ttl.Default = defaults.Default
	}
	if ttl.Auth <= 0 {
		ttl.Auth = defaults.Auth
	}
	if ttl.Trusted <= 0 {
		ttl.Trusted = defaults.Trusted
	}
	return &CacheService{store: store, invalidator: cache.NewInvalidator(store), ttl: ttl}
}

func (c *CacheService) Store() *cache.Store {
	return c.store
}

func (c *CacheService) TTL() CacheTTLs {
	return c.ttl
}

func (c *CacheService) Get(ctx context.Context, key string, dest any) bool {
	return c.store.Get(ctx, key, dest)
}

func (c *CacheService) Set(ctx context.Context, key string, value any, ttl time.Duration) bool {
	return c.store.Set(ctx, key, value, ttl)
}

// Invalidate purges patterns and reports the ones that failed.
func (c *CacheService) Invalidate(ctx context.Context, patterns ...string) []string {
	return c.invalidator.Invalidate(ctx, patterns...)
}

// DetailKey is the key of one record of entity.
func DetailKey(entity, id string) string {
	return cache.EntityKey(entity, id)
}

// ListKey is the key of one list query of entity.
func ListKey(entity string, filter model.Filter, page model.Page) string {
	return cache.BuildKey(cache.ListPrefix(entity), listParams(filter, page))
}

// CommentListKey is the key of one page of an intervention's comments.
func CommentListKey(interventionID string, filter model.Filter, page model.Page) string {
	return cache.BuildKey(commentListPrefix+":"+interventionID, listParams(filter, page))
}

func listParams(filter model.Filter, page model.Page) map[string]any {
	params := map[string]any{}
	if filter != nil {
		for k, v := range filter.Params() {
			params[k] = v
		}
	}
	params["page"] = page.Page
	params["limit"] = page.Limit
	return params
}

func LoginKeyByEmail(email string) string {
	return loginByEmailPrefix + ":" + strings.ToLower(strings.TrimSpace(email))
}

func LoginKeyByID(id string) string {
	return loginByIDPrefix + ":" + id
}

func StudentAssignmentsKey(studentID string) string {
	return studentAssignPrefix + ":" + studentID
}

func UserStudentsKey(userID string) string {
	return userAssignmentsPrefix + ":" + userID
}

// StudentPatterns are purged after a student write. id is empty on create.
func StudentPatterns(id string) []string {
	return withDetail(cache.ListPattern(CacheStudent), CacheStudent, id)
}

// InterventionPatterns are purged after an intervention write.
func InterventionPatterns(id string) []string {
	return withDetail(cache.ListPattern(CacheIntervention), CacheIntervention, id)
}

// CommentPatterns are purged after a comment write, the parent intervention
// detail included.
func CommentPatterns(interventionID, commentID string) []string {
	patterns := []string{
		commentListPrefix + ":" + interventionID + "*",
		DetailKey(CacheIntervention, interventionID),
	}
	if commentID != "" {
		patterns = append(patterns, DetailKey(CacheComment, commentID))
	}
	return patterns
}

// UserPatterns are purged after a user write, login caches included.
func UserPatterns(id, email string) []string {
	patterns := withDetail(cache.ListPattern(CacheUser), CacheUser, id)
	if id != "" {
		patterns = append(patterns, LoginKeyByID(id))
	}
	if email != "" {
		patterns = append(patterns, LoginKeyByEmail(email))
	}
	return patterns
}

// AssignmentPatterns are purged after an assignment changes.
func AssignmentPatterns(studentID, userID string) []string {
	return []string{StudentAssignmentsKey(studentID), UserStudentsKey(userID)}
}

func withDetail(listPattern, entity, id string) []string {
	if id == "" {
		return []string{listPattern}
	}
	return []string{listPattern, DetailKey(entity, id)}
}

// CacheLoginUser caches the account found by a successful login under both
// the login lookup key and the user detail key.
func (c *CacheService) CacheLoginUser(ctx context.Context, user *model.User) {
	c.store.Set(ctx, LoginKeyByEmail(user.Email), user, c.ttl.Trusted)
	c.store.Set(ctx, DetailKey(CacheUser, user.ID), user, c.ttl.Trusted)
}

// ForgetLogin drops the login lookups of an account.
func (c *CacheService) ForgetLogin(ctx context.Context, id, email string) {
	patterns := []string{LoginKeyByID(id)}
	if email != "" {
		patterns = append(patterns, LoginKeyByEmail(email))
	}
	c.Invalidate(ctx, patterns...)
}
