// api/controller/user_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	intervene_errors "github.com/dev-mohitbeniwal/intervene/api/errors"
	"github.com/dev-mohitbeniwal/intervene/api/model"
	"github.com/dev-mohitbeniwal/intervene/api/service"
	"github.com/dev-mohitbeniwal/intervene/api/util"
	helper_util "github.com/dev-mohitbeniwal/intervene/api/util/helper"
)

type changeStatusRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

type assignRoleRequest struct {
	Role model.Role `json:"role" binding:"required"`
}

type UserController struct {
	userService service.IUserService
}

func NewUserController(userService service.IUserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

// RegisterRoutes registers the API routes
func (uc *UserController) RegisterRoutes(r *gin.RouterGroup) {
	users := r.Group("/users")
	{
		users.POST("", uc.CreateUser)
		users.PUT("/me/profile", uc.UpdateProfile)
		users.PUT("/:id", uc.UpdateUser)
		users.DELETE("/:id", uc.DeleteUser)
		users.GET("/:id", uc.GetUser)
		users.GET("", uc.ListUsers)
		users.PATCH("/:id/status", uc.ChangeStatus)
		users.PATCH("/:id/role", uc.AssignRole)
	}
}

// CreateUser endpoint
func (uc *UserController) CreateUser(c *gin.Context) {
	actor, err := util.GetActorFromContext(c)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}
	var input model.UserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.RespondWithError(c, intervene_errors.ErrInvalidUserData.WithCause(err))
		return
	}

	createdUser, err := uc.userService.CreateUser(c, actor, input)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, createdUser)
}

// UpdateUser endpoint
func (uc *UserController) UpdateUser(c *gin.Context) {
	actor, err := util.GetActorFromContext(c)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}
	var input model.UserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.RespondWithError(c, intervene_errors.ErrInvalidUserData.WithCause(err))
		return
	}

	updatedUser, err := uc.userService.UpdateUser(c, actor, c.Param("id"), input)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, updatedUser)
}

// DeleteUser endpoint
func (uc *UserController) DeleteUser(c *gin.Context) {
	actor, err := util.GetActorFromContext(c)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}

	if err := uc.userService.DeleteUser(c, actor, c.Param("id")); err != nil {
		util.RespondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetUser endpoint
func (uc *UserController) GetUser(c *gin.Context) {
	actor, err := util.GetActorFromContext(c)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}

	user, err := uc.userService.GetUser(c, actor, c.Param("id"))
	if err != nil {
		util.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// ListUsers endpoint
func (uc *UserController) ListUsers(c *gin.Context) {
	actor, err := util.GetActorFromContext(c)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}
	page, err := helper_util.GetPaginationParams(c)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}
	var filter model.UserFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		util.RespondWithError(c, intervene_errors.ErrInvalidFilter.WithCause(err))
		return
	}

	users, err := uc.userService.ListUsers(c, actor, filter, page)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// ChangeStatus endpoint
func (uc *UserController) ChangeStatus(c *gin.Context) {
	actor, err := util.GetActorFromContext(c)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}
	var req changeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, intervene_errors.ErrInvalidUserData.WithCause(err))
		return
	}

	user, err := uc.userService.ChangeStatus(c, actor, c.Param("id"), *req.IsActive)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// AssignRole endpoint
func (uc *UserController) AssignRole(c *gin.Context) {
	actor, err := util.GetActorFromContext(c)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}
	var req assignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, intervene_errors.ErrInvalidUserData.WithCause(err))
		return
	}

	user, err := uc.userService.AssignRole(c, actor, c.Param("id"), req.Role)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateProfile endpoint
func (uc *UserController) UpdateProfile(c *gin.Context) {
	actor, err := util.GetActorFromContext(c)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}
	var input model.ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.RespondWithError(c, intervene_errors.ErrInvalidUserData.WithCause(err))
		return
	}

	user, err := uc.userService.UpdateProfile(c, actor, input)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
