// api/controller/auth_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	intervene_errors "github.com/dev-mohitbeniwal/intervene/api/errors"
	"github.com/dev-mohitbeniwal/intervene/api/service"
	"github.com/dev-mohitbeniwal/intervene/api/util"
)

type refreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type resetPasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

type AuthController struct {
	authService service.IAuthService
}

func NewAuthController(authService service.IAuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// RegisterPublicRoutes registers the routes reachable without a token
func (ac *AuthController) RegisterPublicRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", ac.Login)
		auth.POST("/refresh-token", ac.RefreshToken)
	}
}

// RegisterRoutes registers the routes that need an authenticated caller
func (ac *AuthController) RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/logout", ac.Logout)
		auth.GET("/me", ac.Me)
		auth.POST("/reset-password/:userId", ac.ResetPassword)
	}
}

// Login endpoint
func (ac *AuthController) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, intervene_errors.ErrInvalidUserData.WithCause(err))
		return
	}

	result, err := ac.authService.Login(c, req, util.RequestOrigin(c))
	if err != nil {
		util.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// RefreshToken endpoint
func (ac *AuthController) RefreshToken(c *gin.Context) {
	var req refreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, intervene_errors.ErrInvalidRefreshToken.WithCause(err))
		return
	}

	tokens, err := ac.authService.Refresh(c, req.RefreshToken, util.RequestOrigin(c))
	if err != nil {
		util.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tokens": tokens})
}

// Logout endpoint
func (ac *AuthController) Logout(c *gin.Context) {
	actor, err := util.GetActorFromContext(c)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}
	var req refreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, intervene_errors.ErrInvalidRefreshToken.WithCause(err))
		return
	}

	if err := ac.authService.Logout(c, actor, req.RefreshToken); err != nil {
		util.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me endpoint
func (ac *AuthController) Me(c *gin.Context) {
	actor, err := util.GetActorFromContext(c)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}

	user, err := ac.authService.CurrentUser(c, actor)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// ResetPassword endpoint
func (ac *AuthController) ResetPassword(c *gin.Context) {
	actor, err := util.GetActorFromContext(c)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, intervene_errors.ErrWeakPassword.WithCause(err))
		return
	}

	if err := ac.authService.ResetPassword(c, actor, c.Param("userId"), req.Password); err != nil {
		util.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password reset"})
}
