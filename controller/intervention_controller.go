// api/controller/intervention_controller.go
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

type InterventionController struct {
	interventionService service.IInterventionService
}

func NewInterventionController(interventionService service.IInterventionService) *InterventionController {
	return &InterventionController{
		interventionService: interventionService,
	}
}

// RegisterRoutes registers the API routes
func (ic *InterventionController) RegisterRoutes(r *gin.RouterGroup) {
	interventions := r.Group("/interventions")
	{
		interventions.POST("", ic.CreateIntervention)
		interventions.PUT("/:id", ic.UpdateIntervention)
		interventions.DELETE("/:id", ic.DeleteIntervention)
		interventions.GET("/:id", ic.GetIntervention)
		interventions.GET("", ic.ListInterventions)
	}
}

// CreateIntervention endpoint
func (ic *InterventionController) CreateIntervention(c *gin.Context) {
	actor, err := util.GetActorFromContext(c)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}
	var intervention model.Intervention
	if err := c.ShouldBindJSON(&intervention); err != nil {
		util.RespondWithError(c, intervene_errors.ErrInvalidInterventionData.WithCause(err))
		return
	}

	created, err := ic.interventionService.CreateIntervention(c, actor, intervention)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// UpdateIntervention endpoint
func (ic *InterventionController) UpdateIntervention(c *gin.Context) {
	actor, err := util.GetActorFromContext(c)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}
	var intervention model.Intervention
	if err := c.ShouldBindJSON(&intervention); err != nil {
		util.RespondWithError(c, intervene_errors.ErrInvalidInterventionData.WithCause(err))
		return
	}

	updated, err := ic.interventionService.UpdateIntervention(c, actor, c.Param("id"), intervention)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteIntervention endpoint
func (ic *InterventionController) DeleteIntervention(c *gin.Context) {
	actor, err := util.GetActorFromContext(c)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}

	if err := ic.interventionService.DeleteIntervention(c, actor, c.Param("id")); err != nil {
		util.RespondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetIntervention endpoint
func (ic *InterventionController) GetIntervention(c *gin.Context) {
	actor, err := util.GetActorFromContext(c)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}

	intervention, err := ic.interventionService.GetIntervention(c, actor, c.Param("id"))
	if err != nil {
		util.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, intervention)
}

// ListInterventions endpoint
func (ic *InterventionController) ListInterventions(c *gin.Context) {
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
	var filter model.InterventionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		util.RespondWithError(c, intervene_errors.ErrInvalidFilter.WithCause(err))
		return
	}

	interventions, err := ic.interventionService.ListInterventions(c, actor, filter, page)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, interventions)
}
