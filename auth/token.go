// api/auth/token.go
package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	intervene_errors "github.com/dev-mohitbeniwal/intervene/api/errors"
	logger "github.com/dev-mohitbeniwal/intervene/api/logging"
	"github.com/dev-mohitbeniwal/intervene/api/model"
)

const (
	DefaultAccessTTL  = time.Hour
	DefaultRefreshTTL = 7 * 24 * time.Hour
	TokenTypeBearer   = "Bearer"
	saltBytes         = 16
)

var errMissingSecret = errors.New("access and refresh secrets are required and must differ")

// AccessClaims are carried by access tokens.
type AccessClaims struct {
	UserID string     `json:"id"`
	Email  string     `json:"email"`
	Role   model.Role `json:"role"`
	Salt   string     `json:"salt"`
	jwt.RegisteredClaims
}

// RefreshClaims are carried by refresh tokens.
type RefreshClaims struct {
	UserID string `json:"id"`
	Salt   string `json:"salt"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
	ExpiresIn    int64  `json:"expiresIn"`
}

// AccountStore owns each account's set of valid refresh token hashes.
type AccountStore interface {
	FindOne(ctx context.Context, id string) (*model.User, error)
	AddRefreshToken(ctx context.Context, userID, hash string, maxSessions int) error
	ReplaceRefreshToken(ctx context.Context, userID, oldHash, newHash string) error
	RemoveRefreshToken(ctx context.Context, userID, hash string) error
}

type TokenOptions struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	MaxSessions   int
}

// TokenIssuer signs, verifies and rotates session tokens.
type TokenIssuer struct {
	opts      TokenOptions
	accounts  AccountStore
	blacklist Blacklist
	now       func() time.Time
}

func NewTokenIssuer(opts TokenOptions, accounts AccountStore, blacklist Blacklist) (*TokenIssuer, error) {
	if opts.AccessSecret == "" || opts.RefreshSecret == "" || opts.AccessSecret == opts.RefreshSecret {
		return nil, errMissingSecret
	}
	if opts.AccessTTL <= 0 {
		opts.AccessTTL = DefaultAccessTTL
	}
	if opts.RefreshTTL <= 0 {
		opts.RefreshTTL = DefaultRefreshTTL
	}
	return &TokenIssuer{opts: opts, accounts: accounts, blacklist: blacklist, now: time.Now}, nil
}

// WithClock replaces the time source used to sign and validate tokens.
func (t *TokenIssuer) WithClock(now func() time.Time) *TokenIssuer {
	t.now = now
	return t
}

// HashToken returns the hex SHA-256 digest under which a refresh token is stored.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func newSalt() (string, error) {
	b := make([]byte, saltBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// IssuePair signs a new access and refresh token for the account.
func (t *TokenIssuer) IssuePair(userID string, role model.Role, email string) (TokenPair, error) {
	now := t.now()
	salt, err := newSalt()
	if err != nil {
		return TokenPair{}, intervene_errors.ErrInternalServer.WithCause(err)
	}

	access := jwt.NewWithClaims(jwt.SigningMethodHS256, AccessClaims{
		UserID: userID,
		Email:  email,
		Role:   role,
		Salt:   salt,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.opts.AccessTTL)),
		},
	})
	accessToken, err := access.SignedString([]byte(t.opts.AccessSecret))
	if err != nil {
		return TokenPair{}, intervene_errors.ErrInternalServer.WithCause(err)
	}

	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, RefreshClaims{
		UserID: userID,
		Salt:   salt,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.opts.RefreshTTL)),
		},
	})
	refreshToken, err := refresh.SignedString([]byte(t.opts.RefreshSecret))
	if err != nil {
		return TokenPair{}, intervene_errors.ErrInternalServer.WithCause(err)
	}

	return TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    TokenTypeBearer,
		ExpiresIn:    int64(t.opts.AccessTTL / time.Second),
	}, nil
}

// Issue signs a pair for user and records the refresh token in its valid set.
func (t *TokenIssuer) Issue(ctx context.Context, user *model.User) (TokenPair, error) {
	pair, err := t.IssuePair(user.ID, user.Role, user.Email)
	if err != nil {
		return TokenPair{}, err
	}
	if err := t.accounts.AddRefreshToken(ctx, user.ID, HashToken(pair.RefreshToken), t.opts.MaxSessions); err != nil {
		return TokenPair{}, err
	}
	return pair, nil
}

func (t *TokenIssuer) parser(opts ...jwt.ParserOption) *jwt.Parser {
	base := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
	}
	return jwt.NewParser(append(base, opts...)...)
}

func keyFunc(secret string) jwt.Keyfunc {
	return func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}
}

// ParseAccess validates an access token.
func (t *TokenIssuer) ParseAccess(token string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if _, err := t.parser(jwt.WithExpirationRequired()).ParseWithClaims(token, claims, keyFunc(t.opts.AccessSecret)); err != nil {
		return nil, intervene_errors.ErrInvalidAccessToken.WithCause(err)
	}
	if claims.UserID == "" {
		return nil, intervene_errors.ErrInvalidAccessToken
	}
	return claims, nil
}

// ParseRefresh validates a refresh token, telling expired tokens apart from
// otherwise invalid ones.
func (t *TokenIssuer) ParseRefresh(token string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if _, err := t.parser(jwt.WithExpirationRequired()).ParseWithClaims(token, claims, keyFunc(t.opts.RefreshSecret)); err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, intervene_errors.ErrExpiredRefreshToken.WithCause(err)
		}
		return nil, intervene_errors.ErrInvalidRefreshToken.WithCause(err)
	}
	if claims.UserID == "" {
		return nil, intervene_errors.ErrInvalidRefreshToken
	}
	return claims, nil
}

// Rotate exchanges a refresh token for a new pair. The presented token is
// consumed: its hash leaves the valid set and joins the blacklist.
func (t *TokenIssuer) Rotate(ctx context.Context, presented string) (TokenPair, *model.User, error) {
	hash := HashToken(presented)
	if t.blacklist.Contains(ctx, hash) {
		logger.Warn("Blacklisted refresh token presented")
		return TokenPair{}, nil, intervene_errors.ErrInvalidRefreshToken
	}

	claims, err := t.ParseRefresh(presented)
	if err != nil {
		return TokenPair{}, nil, err
	}

	user, err := t.accounts.FindOne(ctx, claims.UserID)
	if err != nil {
		if intervene_errors.KindOf(err) == intervene_errors.KindNotFound {
			return TokenPair{}, nil, intervene_errors.ErrInvalidRefreshToken
		}
		return TokenPair{}, nil, err
	}
	if !user.IsActive || !user.HasRefreshToken(hash) {
		return TokenPair{}, nil, intervene_errors.ErrInvalidRefreshToken
	}

	pair, err := t.IssuePair(user.ID, user.Role, user.Email)
	if err != nil {
		return TokenPair{}, nil, err
	}
	if err := t.accounts.ReplaceRefreshToken(ctx, user.ID, hash, HashToken(pair.RefreshToken)); err != nil {
		return TokenPair{}, nil, err
	}
	t.blacklistUntilExpiry(ctx, hash, claims.RegisteredClaims)
	return pair, user, nil
}

// Revoke ends the session of userID that presented belongs to. Expired
// tokens are accepted so a stale client can still log out.
func (t *TokenIssuer) Revoke(ctx context.Context, userID, presented string) error {
	claims := &RefreshClaims{}
	if _, err := t.parser(jwt.WithoutClaimsValidation()).ParseWithClaims(presented, claims, keyFunc(t.opts.RefreshSecret)); err != nil {
		return intervene_errors.ErrInvalidRefreshToken.WithCause(err)
	}
	if claims.UserID != userID {
		return intervene_errors.ErrInvalidRefreshToken
	}

	hash := HashToken(presented)
	if err := t.accounts.RemoveRefreshToken(ctx, userID, hash); err != nil {
		return err
	}
	t.blacklistUntilExpiry(ctx, hash, claims.RegisteredClaims)
	return nil
}

func (t *TokenIssuer) blacklistUntilExpiry(ctx context.Context, hash string, claims jwt.RegisteredClaims) {
	if claims.ExpiresAt == nil {
		return
	}
	ttl := claims.ExpiresAt.Sub(t.now())
	if err := t.blacklist.Add(ctx, hash, ttl); err != nil {
		// The hash already left the valid set, so the token stays unusable.
		logger.Warn("Failed to blacklist refresh token", zap.Error(err))
	}
}
