// api/service/auth_service.go
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/dev-mohitbeniwal/intervene/api/audit"
	"github.com/dev-mohitbeniwal/intervene/api/auth"
	"github.com/dev-mohitbeniwal/intervene/api/cache"
	"github.com/dev-mohitbeniwal/intervene/api/dao"
	intervene_errors "github.com/dev-mohitbeniwal/intervene/api/errors"
	logger "github.com/dev-mohitbeniwal/intervene/api/logging"
	"github.com/dev-mohitbeniwal/intervene/api/model"
	pdp_model "github.com/dev-mohitbeniwal/intervene/api/pdp/model"
	"github.com/dev-mohitbeniwal/intervene/api/util"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	User   model.UserView `json:"user"`
	Tokens auth.TokenPair `json:"tokens"`
}

// IAuthService defines the interface for session operations
type IAuthService interface {
	Login(ctx context.Context, req LoginRequest, origin model.Origin) (*LoginResult, error)
	Refresh(ctx context.Context, refreshToken string, origin model.Origin) (*auth.TokenPair, error)
	Logout(ctx context.Context, actor *model.Actor, refreshToken string) error
	Authenticate(ctx context.Context, accessToken string) (*model.Actor, error)
	CurrentUser(ctx context.Context, actor *model.Actor) (*model.UserView, error)
	ResetPassword(ctx context.Context, actor *model.Actor, userID, password string) error
}

// AuthService ties credential checks, token issuance and the login caches
// together.
type AuthService struct {
	userDAO        *dao.UserDAO
	tokens         *auth.TokenIssuer
	verifier       *auth.CredentialVerifier
	validationUtil *util.ValidationUtil
	cacheService   *util.CacheService
	auditService   audit.Service
	eventBus       *util.EventBus
	bcryptCost     int
}

var _ IAuthService = &AuthService{}

func NewAuthService(userDAO *dao.UserDAO, tokens *auth.TokenIssuer, verifier *auth.CredentialVerifier, validationUtil *util.ValidationUtil, cacheService *util.CacheService, auditService audit.Service, eventBus *util.EventBus, bcryptCost int) *AuthService {
	return &AuthService{
		userDAO:        userDAO,
		tokens:         tokens,
		verifier:       verifier,
		validationUtil: validationUtil,
		cacheService:   cacheService,
		auditService:   auditService,
		eventBus:       eventBus,
		bcryptCost:     bcryptCost,
	}
}

// Login checks credentials and opens a session. Unknown and inactive
// accounts get the same answer as a wrong password.
func (s *AuthService) Login(ctx context.Context, req LoginRequest, origin model.Origin) (*LoginResult, error) {
	req.Email = normalizeEmail(req.Email)
	if err := s.validationUtil.Struct(&req, intervene_errors.ErrInvalidUserData); err != nil {
		return nil, err
	}
	email := req.Email

	user, err := s.lookupByEmail(ctx, email)
	if err != nil {
		logger.Error("Error looking up account for login", zap.Error(err))
		return nil, err
	}

	result, err := s.verifier.Verify(ctx, user, req.Password)
	if err != nil {
		return nil, err
	}

	switch result.Outcome {
	case auth.VerifyLocked:
		logger.Warn("Login blocked for locked account", zap.String("userID", user.ID), zap.String("ip", origin.IP))
		s.recordAuth(ctx, user, origin, audit.ActionLoginBlocked, "account locked")
		s.publishLocked(ctx, result, origin)
		return nil, result.Err()

	case auth.VerifyNotFound:
		logger.Info("Login failed", zap.String("reason", "unknown account"), zap.String("ip", origin.IP))
		s.recordAuth(ctx, nil, origin, audit.ActionLoginFailed, "unknown account: "+email)
		return nil, result.Err()

	case auth.VerifyInactive:
		logger.Info("Login failed", zap.String("reason", "inactive account"), zap.String("userID", user.ID))
		s.recordAuth(ctx, user, origin, audit.ActionLoginFailed, "inactive account")
		return nil, result.Err()

	case auth.VerifyInvalidPassword:
		s.cacheService.ForgetLogin(ctx, user.ID, user.Email)
		logger.Info("Login failed", zap.String("reason", "invalid password"), zap.String("userID", user.ID), zap.Int("attempts", result.Attempts))
		s.recordAuth(ctx, user, origin, audit.ActionLoginFailed, "invalid password")
		if result.Attempts >= s.verifier.Policy().MaxAttempts {
			result.RetryAfter = s.verifier.Policy().Window
			s.publishLocked(ctx, result, origin)
		}
		return nil, result.Err()
	}

	pair, err := s.tokens.Issue(ctx, result.User)
	if err != nil {
		logger.Error("Failed to issue tokens", zap.Error(err), zap.String("userID", user.ID))
		return nil, err
	}
	fresh, err := s.userDAO.FindOne(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	s.cacheService.CacheLoginUser(ctx, fresh)
	s.recordAuth(ctx, fresh, origin, audit.ActionLogin, "")

	logger.Info("User logged in", zap.String("userID", fresh.ID))
	return &LoginResult{User: fresh.View(), Tokens: pair}, nil
}

// lookupByEmail returns nil without error when no account has email.
func (s *AuthService) lookupByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := cache.GetOrFetch(ctx, s.cacheService.Store(), util.LoginKeyByEmail(email), s.cacheService.TTL().Auth, func(ctx context.Context) (*model.User, error) {
		return s.userDAO.FindByEmail(ctx, email)
	})
	if err != nil {
		if intervene_errors.KindOf(err) == intervene_errors.KindNotFound {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// Refresh rotates a refresh token. Every failure looks the same to the caller.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string, origin model.Origin) (*auth.TokenPair, error) {
	pair, user, err := s.tokens.Rotate(ctx, refreshToken)
	if err != nil {
		if intervene_errors.IsClientError(err) {
			logger.Info("Refresh token rejected", zap.Error(err), zap.String("ip", origin.IP))
		} else {
			logger.Error("Error rotating refresh token", zap.Error(err))
		}
		s.recordAuth(ctx, nil, origin, audit.ActionRefreshFailed, "refresh token rejected")
		return nil, intervene_errors.ErrInvalidRefreshToken
	}
	s.recordAuth(ctx, user, origin, audit.ActionTokenRefresh, "")
	return &pair, nil
}

// Logout ends the session the refresh token belongs to.
func (s *AuthService) Logout(ctx context.Context, actor *model.Actor, refreshToken string) error {
	if actor == nil {
		return intervene_errors.ErrUnauthorized
	}
	if err := s.tokens.Revoke(ctx, actor.UserID, refreshToken); err != nil {
		return err
	}
	s.cacheService.ForgetLogin(ctx, actor.UserID, actor.Email)
	s.auditService.Record(ctx, audit.Entry{
		EntityName: util.CacheUser,
		EntityID:   actor.UserID,
		Action:     audit.ActionLogout,
		Actor:      actor,
		Origin:     actor.Origin,
	})
	logger.Info("User logged out", zap.String("userID", actor.UserID))
	return nil
}

// Authenticate resolves an access token to the caller. The role comes from
// the stored account, not from the token.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*model.Actor, error) {
	claims, err := s.tokens.ParseAccess(accessToken)
	if err != nil {
		return nil, err
	}
	user, err := cache.GetOrFetch(ctx, s.cacheService.Store(), util.LoginKeyByID(claims.UserID), s.cacheService.TTL().Auth, func(ctx context.Context) (*model.User, error) {
		return s.userDAO.FindOne(ctx, claims.UserID)
	})
	if err != nil {
		if intervene_errors.KindOf(err) == intervene_errors.KindNotFound {
			return nil, intervene_errors.ErrInvalidAccessToken
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, intervene_errors.ErrInvalidAccessToken
	}
	return &model.Actor{UserID: user.ID, Email: user.Email, Role: user.Role}, nil
}

// CurrentUser returns the profile of the caller.
func (s *AuthService) CurrentUser(ctx context.Context, actor *model.Actor) (*model.UserView, error) {
	if actor == nil {
		return nil, intervene_errors.ErrUnauthorized
	}
	user, err := cache.GetOrFetch(ctx, s.cacheService.Store(), util.DetailKey(util.CacheUser, actor.UserID), s.cacheService.TTL().Default, func(ctx context.Context) (*model.User, error) {
		return s.userDAO.FindOne(ctx, actor.UserID)
	})
	if err != nil {
		return nil, err
	}
	view := user.View()
	return &view, nil
}

// ResetPassword sets a new password for userID and ends all of its sessions.
func (s *AuthService) ResetPassword(ctx context.Context, actor *model.Actor, userID, password string) error {
	if err := authorizeAction(actor, pdp_model.ActionResetPassword); err != nil {
		return err
	}
	if err := auth.ValidatePasswordComplexity(password); err != nil {
		return err
	}
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return err
	}

	user, err := s.userDAO.Mutate(ctx, userID, func(u *model.User) error {
		u.PasswordHash = hash
		u.RefreshTokens = []string{}
		u.LoginAttempts = 0
		u.LastLoginAttempt = nil
		return nil
	})
	if err != nil {
		if !intervene_errors.IsClientError(err) {
			logger.Error("Failed to reset password", zap.Error(err), zap.String("userID", userID))
		}
		return err
	}

	s.cacheService.Invalidate(ctx, util.UserPatterns(user.ID, user.Email)...)
	s.auditService.Record(ctx, audit.Entry{
		EntityName: util.CacheUser,
		EntityID:   user.ID,
		Action:     audit.ActionResetPassword,
		Actor:      actor,
		Origin:     actor.Origin,
	})
	logger.Info("Password reset", zap.String("userID", user.ID), zap.String("actorID", actor.UserID))
	return nil
}

func (s *AuthService) recordAuth(ctx context.Context, user *model.User, origin model.Origin, action audit.Action, details string) {
	entry := audit.Entry{
		EntityName: util.CacheUser,
		Action:     action,
		Origin:     origin,
		Details:    details,
	}
	if user != nil {
		entry.EntityID = user.ID
		entry.Actor = &model.Actor{UserID: user.ID, Email: user.Email, Role: user.Role, Origin: origin}
	}
	s.auditService.Record(ctx, entry)
}

func (s *AuthService) publishLocked(ctx context.Context, result auth.VerifyResult, origin model.Origin) {
	if s.eventBus == nil || result.User == nil {
		return
	}
	s.eventBus.Publish(ctx, util.EventAccountLocked, util.AccountLockedEvent{
		UserID:     result.User.ID,
		Email:      result.User.Email,
		Attempts:   result.Attempts,
		RetryAfter: result.RetryAfter,
		IP:         origin.IP,
	})
}
