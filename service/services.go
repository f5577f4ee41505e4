// api/service/services.go
package service

import (
	"gorm.io/gorm"

	"github.com/dev-mohitbeniwal/intervene/api/audit"
	"github.com/dev-mohitbeniwal/intervene/api/auth"
	"github.com/dev-mohitbeniwal/intervene/api/config"
	"github.com/dev-mohitbeniwal/intervene/api/dao"
	"github.com/dev-mohitbeniwal/intervene/api/util"
)

type Services struct {
	Auth         IAuthService
	User         IUserService
	Student      IStudentService
	Intervention IInterventionService
	Comment      ICommentService
	Audit        IAuditQueryService
	// Assignment is nil when no graph store is configured.
	Assignment IAssignmentService
}

// InitializeServices wires the DAOs and services. graph may be nil.
func InitializeServices(
	database *gorm.DB,
	graph dao.GraphRunner,
	auditService audit.Service,
	validationUtil *util.ValidationUtil,
	cacheService *util.CacheService,
	eventBus *util.EventBus,
	authCfg config.AuthConfiguration,
) (*Services, error) {
	userDAO := dao.NewUserDAO(database)
	studentDAO := dao.NewStudentDAO(database)
	interventionDAO := dao.NewInterventionDAO(database)
	commentDAO := dao.NewCommentDAO(database)

	tokens, err := auth.NewTokenIssuer(auth.TokenOptions{
		AccessSecret:  authCfg.AccessSecret,
		RefreshSecret: authCfg.RefreshSecret,
		AccessTTL:     authCfg.AccessTTL,
		RefreshTTL:    authCfg.RefreshTTL,
		MaxSessions:   authCfg.MaxSessions,
	}, userDAO, auth.NewCacheBlacklist(cacheService.Store()))
	if err != nil {
		return nil, err
	}
	policy := auth.DefaultLockoutPolicy()
	if authCfg.MaxAttempts > 0 {
		policy.MaxAttempts = authCfg.MaxAttempts
	}
	if authCfg.LockoutWindow > 0 {
		policy.Window = authCfg.LockoutWindow
	}
	verifier := auth.NewCredentialVerifier(policy, userDAO)

	var assignmentDAO *dao.AssignmentDAO
	if graph != nil {
		assignmentDAO = dao.NewAssignmentDAO(graph)
	}

	services := &Services{
		Auth:         NewAuthService(userDAO, tokens, verifier, validationUtil, cacheService, auditService, eventBus, authCfg.BcryptCost),
		User:         NewUserService(userDAO, validationUtil, cacheService, auditService, eventBus, authCfg.BcryptCost),
		Student:      NewStudentService(studentDAO, assignmentDAO, validationUtil, cacheService, auditService, eventBus),
		Intervention: NewInterventionService(interventionDAO, studentDAO, validationUtil, cacheService, auditService, eventBus),
		Comment:      NewCommentService(commentDAO, interventionDAO, validationUtil, cacheService, auditService, eventBus),
		Audit:        NewAuditQueryService(auditService),
	}
	if assignmentDAO != nil {
		services.Assignment = NewAssignmentService(assignmentDAO, studentDAO, userDAO, cacheService, auditService)
	}
	return services, nil
}
