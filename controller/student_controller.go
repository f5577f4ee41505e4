// api/controller/student_controller.go
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

type StudentController struct {
	studentService service.IStudentService
}

func NewStudentController(studentService service.IStudentService) *StudentController {
	return &StudentController{
		studentService: studentService,
	}
}

// RegisterRoutes registers the API routes
func (sc *StudentController) RegisterRoutes(r *gin.RouterGroup) {
	students := r.Group("/students")
	{
		students.POST("", sc.CreateStudent)
		students.PUT("/:id", sc.UpdateStudent)
		students.DELETE("/:id", sc.DeleteStudent)
		students.GET("/:id", sc.GetStudent)
		students.GET("", sc.ListStudents)
	}
}

// CreateStudent endpoint
func (sc *StudentController) CreateStudent(c *gin.Context) {
	actor, err := util.GetActorFromContext(c)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}
	var student model.Student
	if err := c.ShouldBindJSON(&student); err != nil {
		util.RespondWithError(c, intervene_errors.ErrInvalidStudentData.WithCause(err))
		return
	}

	created, err := sc.studentService.CreateStudent(c, actor, student)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// UpdateStudent endpoint
func (sc *StudentController) UpdateStudent(c *gin.Context) {
	actor, err := util.GetActorFromContext(c)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}
	var student model.Student
	if err := c.ShouldBindJSON(&student); err != nil {
		util.RespondWithError(c, intervene_errors.ErrInvalidStudentData.WithCause(err))
		return
	}

	updated, err := sc.studentService.UpdateStudent(c, actor, c.Param("id"), student)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteStudent endpoint
func (sc *StudentController) DeleteStudent(c *gin.Context) {
	actor, err := util.GetActorFromContext(c)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}

	if err := sc.studentService.DeleteStudent(c, actor, c.Param("id")); err != nil {
		util.RespondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetStudent endpoint
func (sc *StudentController) GetStudent(c *gin.Context) {
	actor, err := util.GetActorFromContext(c)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}

	student, err := sc.studentService.GetStudent(c, actor, c.Param("id"))
	if err != nil {
		util.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, student)
}

// ListStudents endpoint
func (sc *StudentController) ListStudents(c *gin.Context) {
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
	var filter model.StudentFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		util.RespondWithError(c, intervene_errors.ErrInvalidFilter.WithCause(err))
		return
	}

	students, err := sc.studentService.ListStudents(c, actor, filter, page)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, students)
}
