// api/controller/intervention_controller_test.go
package controller_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/dev-mohitbeniwal/intervene/api/controller"
	intervene_errors "github.com/dev-mohitbeniwal/intervene/api/errors"
	"github.com/dev-mohitbeniwal/intervene/api/model"
	mock_service "github.com/dev-mohitbeniwal/intervene/api/test/service_mock"
)

func TestInterventionController(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockInterventionService := mock_service.NewMockIInterventionService(ctrl)
	mockCommentService := mock_service.NewMockICommentService(ctrl)
	router, api := setupRouter(teacherActor)
	controller.NewInterventionController(mockInterventionService).RegisterRoutes(api)
	controller.NewCommentController(mockCommentService).RegisterRoutes(api)

	t.Run("CreateIntervention_Success", func(t *testing.T) {
		mockInterventionService.EXPECT().
			CreateIntervention(gomock.Any(), teacherActor, gomock.Any()).
			DoAndReturn(func(_ any, _ *model.Actor, i model.Intervention) (*model.Intervention, error) {
				assert.Equal(t, "s-1", i.StudentID)
				assert.Equal(t, model.InterventionType("Behavioral"), i.Type)
				i.ID = "i-1"
				return &i, nil
			})

		w := serve(router, "POST", "/interventions", strings.NewReader(`{"title":"Conflicto en recreo","description":"Pelea","type":"Behavioral","date_reported":"2026-03-10T10:00:00Z","student_id":"s-1"}`))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "i-1", decodeBody(t, w)["id"])
	})

	t.Run("CreateIntervention_Failure_Validation", func(t *testing.T) {
		mockInterventionService.EXPECT().
			CreateIntervention(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, intervene_errors.ErrInvalidInterventionData.WithDetails(map[string]interface{}{"title": "is required"}))

		w := serve(router, "POST", "/interventions", strings.NewReader(`{"student_id":"s-1"}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeBody(t, w), "details")
	})

	t.Run("ListInterventions_FilterBinding", func(t *testing.T) {
		mockInterventionService.EXPECT().
			ListInterventions(gomock.Any(), teacherActor, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, _ *model.Actor, f model.InterventionFilter, p model.Page) (*model.PageResult[model.Intervention], error) {
				if assert.NotNil(t, f.StudentID) {
					assert.Equal(t, "s-1", *f.StudentID)
				}
				if assert.NotNil(t, f.Status) {
					assert.Equal(t, model.InterventionStatus("Pending"), *f.Status)
				}
				return model.NewPageResult[model.Intervention](nil, 0, p), nil
			})

		w := serve(router, "GET", "/interventions?studentId=s-1&status=Pending", nil)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("DeleteIntervention_Failure_NotFound", func(t *testing.T) {
		mockInterventionService.EXPECT().
			DeleteIntervention(gomock.Any(), teacherActor, "missing").
			Return(intervene_errors.ErrInterventionNotFound)

		w := serve(router, "DELETE", "/interventions/missing", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("AddComment_Success", func(t *testing.T) {
		mockCommentService.EXPECT().
			AddComment(gomock.Any(), teacherActor, "i-1", gomock.Any()).
			Return(&model.InterventionComment{InterventionID: "i-1", Content: "Entrevista con apoderado"}, nil)

		w := serve(router, "POST", "/interventions/i-1/comments", strings.NewReader(`{"content":"Entrevista con apoderado","type":"Interview"}`))

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("ListComments_Success", func(t *testing.T) {
		mockCommentService.EXPECT().
			ListComments(gomock.Any(), teacherActor, "i-1", gomock.Any(), gomock.Any()).
			Return(model.NewPageResult([]model.InterventionComment{{Content: "ok"}}, 1, model.Page{Page: 1, Limit: 10}), nil)

		w := serve(router, "GET", "/interventions/i-1/comments", nil)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("UpdateComment_Failure_Forbidden", func(t *testing.T) {
		mockCommentService.EXPECT().
			UpdateComment(gomock.Any(), teacherActor, "c-1", gomock.Any()).
			Return(nil, intervene_errors.ErrForbidden.WithMessage("only the author may edit a comment"))

		w := serve(router, "PUT", "/intervention-comments/c-1", strings.NewReader(`{"content":"edit"}`))

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "only the author may edit a comment", decodeBody(t, w)["message"])
	})

	t.Run("DeleteComment_Success", func(t *testing.T) {
		mockCommentService.EXPECT().
			DeleteComment(gomock.Any(), teacherActor, "c-1").
			Return(nil)

		w := serve(router, "DELETE", "/intervention-comments/c-1", nil)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}
