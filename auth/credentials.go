// api/auth/credentials.go
package auth

import (
	"context"
	"sync"
	"time"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	intervene_errors "github.com/dev-mohitbeniwal/intervene/api/errors"
	logger "github.com/dev-mohitbeniwal/intervene/api/logging"
	"github.com/dev-mohitbeniwal/intervene/api/model"
)

const (
	DefaultMaxAttempts   = 5
	DefaultLockoutWindow = 15 * time.Minute
	MinPasswordLength    = 8
)

// LockoutPolicy decides when repeated login failures block an account.
type LockoutPolicy struct {
	MaxAttempts int
	Window      time.Duration
}

func DefaultLockoutPolicy() LockoutPolicy {
	return LockoutPolicy{MaxAttempts: DefaultMaxAttempts, Window: DefaultLockoutWindow}
}

// Locked reports whether an account with the given counter is blocked at now.
func (p LockoutPolicy) Locked(attempts int, lastAttempt *time.Time, now time.Time) bool {
	if lastAttempt == nil || attempts < p.MaxAttempts {
		return false
	}
	return now.Sub(*lastAttempt) < p.Window
}

// RetryAfter is the time left until a locked account may try again.
func (p LockoutPolicy) RetryAfter(lastAttempt *time.Time, now time.Time) time.Duration {
	if lastAttempt == nil {
		return 0
	}
	if d := lastAttempt.Add(p.Window).Sub(now); d > 0 {
		return d
	}
	return 0
}

// NextAttempts is the counter value after one more failure at now. A failure
// more than Window after the previous one starts a new count.
func (p LockoutPolicy) NextAttempts(attempts int, lastAttempt *time.Time, now time.Time) int {
	if lastAttempt == nil || now.Sub(*lastAttempt) >= p.Window {
		return 1
	}
	return attempts + 1
}

// AttemptRecorder persists login attempt counters. update runs against a
// fresh copy of the stored account.
type AttemptRecorder interface {
	UpdateLoginState(ctx context.Context, userID string, update func(u *model.User)) (*model.User, error)
}

type VerifyOutcome int

const (
	VerifyOK VerifyOutcome = iota
	VerifyLocked
	VerifyNotFound
	VerifyInactive
	VerifyInvalidPassword
)

func (o VerifyOutcome) String() string {
	switch o {
	case VerifyOK:
		return "ok"
	case VerifyLocked:
		return "locked"
	case VerifyNotFound:
		return "not_found"
	case VerifyInactive:
		return "inactive"
	case VerifyInvalidPassword:
		return "invalid_password"
	}
	return "unknown"
}

// VerifyResult is the outcome of a credential check. User holds the persisted
// account state after the attempt was recorded.
type VerifyResult struct {
	Outcome    VerifyOutcome
	User       *model.User
	Attempts   int
	RetryAfter time.Duration
}

// Err maps the outcome to the error returned to the caller. Unknown and
// inactive accounts share the invalid credentials error.
func (r VerifyResult) Err() error {
	switch r.Outcome {
	case VerifyOK:
		return nil
	case VerifyLocked:
		return intervene_errors.ErrAccountLocked.WithRetryAfter(r.RetryAfter)
	default:
		return intervene_errors.ErrInvalidCredentials
	}
}

// CredentialVerifier checks passwords and maintains the login throttle.
type CredentialVerifier struct {
	policy   LockoutPolicy
	recorder AttemptRecorder
	now      func() time.Time
}

func NewCredentialVerifier(policy LockoutPolicy, recorder AttemptRecorder) *CredentialVerifier {
	if policy.MaxAttempts <= 0 {
		policy.MaxAttempts = DefaultMaxAttempts
	}
	if policy.Window <= 0 {
		policy.Window = DefaultLockoutWindow
	}
	return &CredentialVerifier{policy: policy, recorder: recorder, now: time.Now}
}

// WithClock replaces the time source.
func (v *CredentialVerifier) WithClock(now func() time.Time) *CredentialVerifier {
	v.now = now
	return v
}

func (v *CredentialVerifier) Policy() LockoutPolicy {
	return v.policy
}

// Verify checks password against user, a nil user meaning no account matched
// the login. The lock is evaluated before the password is compared.
func (v *CredentialVerifier) Verify(ctx context.Context, user *model.User, password string) (VerifyResult, error) {
	now := v.now().UTC()

	if user == nil {
		burnCompare(password)
		return VerifyResult{Outcome: VerifyNotFound}, nil
	}

	if v.policy.Locked(user.LoginAttempts, user.LastLoginAttempt, now) {
		return VerifyResult{
			Outcome:    VerifyLocked,
			User:       user,
			Attempts:   user.LoginAttempts,
			RetryAfter: v.policy.RetryAfter(user.LastLoginAttempt, now),
		}, nil
	}

	if !user.IsActive {
		burnCompare(password)
		return VerifyResult{Outcome: VerifyInactive, User: user, Attempts: user.LoginAttempts}, nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		updated, recErr := v.recorder.UpdateLoginState(ctx, user.ID, func(u *model.User) {
			u.LoginAttempts = v.policy.NextAttempts(u.LoginAttempts, u.LastLoginAttempt, now)
			u.LastLoginAttempt = &now
		})
		if recErr != nil {
			logger.Error("Failed to record login failure", zap.String("userID", user.ID), zap.Error(recErr))
			return VerifyResult{}, recErr
		}
		return VerifyResult{Outcome: VerifyInvalidPassword, User: updated, Attempts: updated.LoginAttempts}, nil
	}

	updated, err := v.recorder.UpdateLoginState(ctx, user.ID, func(u *model.User) {
		u.LoginAttempts = 0
		u.LastLoginAttempt = nil
		u.LastLogin = &now
	})
	if err != nil {
		logger.Error("Failed to record login success", zap.String("userID", user.ID), zap.Error(err))
		return VerifyResult{}, err
	}
	return VerifyResult{Outcome: VerifyOK, User: updated}, nil
}

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// burnCompare spends one bcrypt comparison so unknown accounts answer in
// about the same time as known ones.
func burnCompare(password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("intervene-dummy-password"), bcrypt.DefaultCost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", intervene_errors.ErrInternalServer.WithCause(err)
	}
	return string(hash), nil
}

// ValidatePasswordComplexity requires at least eight characters with upper
// and lower case letters, a digit and a symbol.
func ValidatePasswordComplexity(password string) error {
	if len(password) < MinPasswordLength {
		return intervene_errors.ErrWeakPassword
	}
	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special = true
		}
	}
	if !upper || !lower || !digit || !special {
		return intervene_errors.ErrWeakPassword
	}
	return nil
}
