// api/controller/assignment_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	intervene_errors "github.com/dev-mohitbeniwal/intervene/api/errors"
	"github.com/dev-mohitbeniwal/intervene/api/service"
	"github.com/dev-mohitbeniwal/intervene/api/util"
)

type assignRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

type AssignmentController struct {
	assignmentService service.IAssignmentService
}

func NewAssignmentController(assignmentService service.IAssignmentService) *AssignmentController {
	return &AssignmentController{
		assignmentService: assignmentService,
	}
}

// RegisterRoutes registers the API routes
func (ac *AssignmentController) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/students/:id/assignments", ac.ListStudentAssignments)
	r.POST("/students/:id/assignments", ac.AssignUser)
	r.DELETE("/students/:id/assignments/:userId", ac.UnassignUser)
	r.GET("/users/:id/students", ac.ListUserStudents)
}

// ListStudentAssignments endpoint
func (ac *AssignmentController) ListStudentAssignments(c *gin.Context) {
	actor, err := util.GetActorFromContext(c)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}

	assignments, err := ac.assignmentService.ListStudentAssignments(c, actor, c.Param("id"))
	if err != nil {
		util.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, assignments)
}

// ListUserStudents endpoint
func (ac *AssignmentController) ListUserStudents(c *gin.Context) {
	actor, err := util.GetActorFromContext(c)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}

	assignments, err := ac.assignmentService.ListUserStudents(c, actor, c.Param("id"))
	if err != nil {
		util.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, assignments)
}

// AssignUser endpoint
func (ac *AssignmentController) AssignUser(c *gin.Context) {
	actor, err := util.GetActorFromContext(c)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, intervene_errors.ErrInvalidUserData.WithCause(err))
		return
	}

	assignment, err := ac.assignmentService.AssignUser(c, actor, c.Param("id"), req.UserID)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, assignment)
}

// UnassignUser endpoint
func (ac *AssignmentController) UnassignUser(c *gin.Context) {
	actor, err := util.GetActorFromContext(c)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}

	if err := ac.assignmentService.UnassignUser(c, actor, c.Param("id"), c.Param("userId")); err != nil {
		util.RespondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
