// api/controller/comment_controller.go
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

type CommentController struct {
	commentService service.ICommentService
}

func NewCommentController(commentService service.ICommentService) *CommentController {
	return &CommentController{
		commentService: commentService,
	}
}

// RegisterRoutes registers the API routes
func (cc *CommentController) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/interventions/:id/comments", cc.ListComments)
	r.POST("/interventions/:id/comments", cc.AddComment)

	comments := r.Group("/intervention-comments")
	{
		comments.PUT("/:id", cc.UpdateComment)
		comments.DELETE("/:id", cc.DeleteComment)
	}
}

// ListComments endpoint
func (cc *CommentController) ListComments(c *gin.Context) {
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
	var filter model.CommentFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		util.RespondWithError(c, intervene_errors.ErrInvalidFilter.WithCause(err))
		return
	}

	comments, err := cc.commentService.ListComments(c, actor, c.Param("id"), filter, page)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}

// AddComment endpoint
func (cc *CommentController) AddComment(c *gin.Context) {
	actor, err := util.GetActorFromContext(c)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}
	var comment model.InterventionComment
	if err := c.ShouldBindJSON(&comment); err != nil {
		util.RespondWithError(c, intervene_errors.ErrInvalidCommentData.WithCause(err))
		return
	}

	created, err := cc.commentService.AddComment(c, actor, c.Param("id"), comment)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// UpdateComment endpoint
func (cc *CommentController) UpdateComment(c *gin.Context) {
	actor, err := util.GetActorFromContext(c)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}
	var comment model.InterventionComment
	if err := c.ShouldBindJSON(&comment); err != nil {
		util.RespondWithError(c, intervene_errors.ErrInvalidCommentData.WithCause(err))
		return
	}

	updated, err := cc.commentService.UpdateComment(c, actor, c.Param("id"), comment)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteComment endpoint
func (cc *CommentController) DeleteComment(c *gin.Context) {
	actor, err := util.GetActorFromContext(c)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}

	if err := cc.commentService.DeleteComment(c, actor, c.Param("id")); err != nil {
		util.RespondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
