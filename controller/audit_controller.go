// api/controller/audit_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dev-mohitbeniwal/intervene/api/audit"
	intervene_errors "github.com/dev-mohitbeniwal/intervene/api/errors"
	"github.com/dev-mohitbeniwal/intervene/api/service"
	"github.com/dev-mohitbeniwal/intervene/api/util"
	helper_util "github.com/dev-mohitbeniwal/intervene/api/util/helper"
)

type AuditController struct {
	auditService service.IAuditQueryService
}

func NewAuditController(auditService service.IAuditQueryService) *AuditController {
	return &AuditController{
		auditService: auditService,
	}
}

// RegisterRoutes registers the API routes
func (ac *AuditController) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/audit", ac.QueryAudit)
}

// QueryAudit endpoint
func (ac *AuditController) QueryAudit(c *gin.Context) {
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
	var q audit.Query
	if err := c.ShouldBindQuery(&q); err != nil {
		util.RespondWithError(c, intervene_errors.ErrInvalidFilter.WithCause(err))
		return
	}
	q.Page = page

	records, err := ac.auditService.QueryAudit(c, actor, q)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}
