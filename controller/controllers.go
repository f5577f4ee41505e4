// api/controller/controllers.go
package controller

import "github.com/dev-mohitbeniwal/intervene/api/service"

type Controllers struct {
	Auth         *AuthController
	User         *UserController
	Student      *StudentController
	Intervention *InterventionController
	Comment      *CommentController
	Audit        *AuditController
	Assignment   *AssignmentController
}

func InitializeControllers(services *service.Services) *Controllers {
	controllers := &Controllers{
		Auth:         NewAuthController(services.Auth),
		User:         NewUserController(services.User),
		Student:      NewStudentController(services.Student),
		Intervention: NewInterventionController(services.Intervention),
		Comment:      NewCommentController(services.Comment),
		Audit:        NewAuditController(services.Audit),
	}
	if services.Assignment != nil {
		controllers.Assignment = NewAssignmentController(services.Assignment)
	}
	return controllers
}
