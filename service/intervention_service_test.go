// api/service/intervention_service_test.go
package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	intervene_errors "github.com/dev-mohitbeniwal/intervene/api/errors"
	"github.com/dev-mohitbeniwal/intervene/api/model"
	"github.com/dev-mohitbeniwal/intervene/api/util"
)

func newIntervention(studentID string) model.Intervention {
	return model.Intervention{
		Title:       "Repeated absences",
		Description: "Missed five classes in two weeks",
		Type:        model.InterventionAttendance,
		StudentID:   studentID,
	}
}

func TestInterventionService(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin, user, viewer := f.seedStaff(t)
	student, err := f.svc.Student.CreateStudent(ctx, user, newStudent("15678432-K", "E-001"))
	require.NoError(t, err)
	svc := f.svc.Intervention

	var created *model.Intervention

	t.Run("Create_ByViewer_SetsDefaults", func(t *testing.T) {
		created, err = svc.CreateIntervention(ctx, viewer, newIntervention(student.ID))
		require.NoError(t, err)
		assert.Equal(t, viewer.UserID, created.InformerID)
		assert.Equal(t, model.StatusPending, created.Status)
		assert.Equal(t, model.PriorityMedium, created.Priority)
		assert.False(t, created.DateReported.IsZero())
	})

	t.Run("Create_UnknownStudent", func(t *testing.T) {
		_, err := svc.CreateIntervention(ctx, user, newIntervention("missing"))
		assert.ErrorIs(t, err, intervene_errors.ErrStudentNotFound)
	})

	t.Run("Create_InvalidType", func(t *testing.T) {
		in := newIntervention(student.ID)
		in.Type = "Sports"
		_, err := svc.CreateIntervention(ctx, user, in)
		assert.ErrorIs(t, err, intervene_errors.ErrInvalidInterventionData)
	})

	t.Run("Create_ResolvedBeforeReported", func(t *testing.T) {
		in := newIntervention(student.ID)
		in.DateReported = time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
		resolved := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
		in.DateResolved = &resolved
		_, err := svc.CreateIntervention(ctx, user, in)
		assert.ErrorIs(t, err, intervene_errors.ErrInvalidInterventionData)
	})

	t.Run("Update_KeepsInformer", func(t *testing.T) {
		_, err := svc.GetIntervention(ctx, user, created.ID)
		require.NoError(t, err)
		assert.True(t, f.mr.Exists(util.DetailKey(util.CacheIntervention, created.ID)))

		change := newIntervention(student.ID)
		change.Status = model.StatusInProgress
		change.InformerID = user.UserID

		updated, err := svc.UpdateIntervention(ctx, user, created.ID, change)
		require.NoError(t, err)
		assert.Equal(t, viewer.UserID, updated.InformerID)
		assert.Equal(t, model.StatusInProgress, updated.Status)
		assert.Equal(t, model.PriorityMedium, updated.Priority)
		assert.False(t, f.mr.Exists(util.DetailKey(util.CacheIntervention, created.ID)))
	})

	t.Run("List_Filtered", func(t *testing.T) {
		status := model.StatusInProgress
		page, err := svc.ListInterventions(ctx, viewer, model.InterventionFilter{Status: &status}, model.Page{Page: 1, Limit: 5})
		require.NoError(t, err)
		require.Len(t, page.Data, 1)
		assert.Equal(t, created.ID, page.Data[0].ID)

		pending := model.StatusPending
		page, err = svc.ListInterventions(ctx, viewer, model.InterventionFilter{Status: &pending}, model.Page{})
		require.NoError(t, err)
		assert.Empty(t, page.Data)
	})

	t.Run("Delete_OnlyAdmin", func(t *testing.T) {
		assert.ErrorIs(t, svc.DeleteIntervention(ctx, viewer, created.ID), intervene_errors.ErrForbidden)
		assert.ErrorIs(t, svc.DeleteIntervention(ctx, user, created.ID), intervene_errors.ErrForbidden)
		require.NoError(t, svc.DeleteIntervention(ctx, admin, created.ID))

		_, err := svc.GetIntervention(ctx, user, created.ID)
		assert.ErrorIs(t, err, intervene_errors.ErrInterventionNotFound)
	})
}

func TestCommentService(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin, user, viewer := f.seedStaff(t)
	student, err := f.svc.Student.CreateStudent(ctx, user, newStudent("15678432-K", "E-001"))
	require.NoError(t, err)
	intervention, err := f.svc.Intervention.CreateIntervention(ctx, user, newIntervention(student.ID))
	require.NoError(t, err)
	svc := f.svc.Comment

	var comment *model.InterventionComment

	t.Run("Add_ByViewer", func(t *testing.T) {
		comment, err = svc.AddComment(ctx, viewer, intervention.ID, model.InterventionComment{Content: "Called the guardian", UserID: admin.UserID})
		require.NoError(t, err)
		assert.Equal(t, viewer.UserID, comment.UserID)
		assert.Equal(t, intervention.ID, comment.InterventionID)
		assert.Equal(t, model.CommentFollowUp, comment.Type)
	})

	t.Run("Add_UnknownIntervention", func(t *testing.T) {
		_, err := svc.AddComment(ctx, viewer, "missing", model.InterventionComment{Content: "x"})
		assert.ErrorIs(t, err, intervene_errors.ErrInterventionNotFound)
	})

	t.Run("Add_EmptyContent", func(t *testing.T) {
		_, err := svc.AddComment(ctx, viewer, intervention.ID, model.InterventionComment{})
		assert.ErrorIs(t, err, intervene_errors.ErrInvalidCommentData)
	})

	t.Run("List_InvalidatedByAdd", func(t *testing.T) {
		page, err := svc.ListComments(ctx, user, intervention.ID, model.CommentFilter{}, model.Page{})
		require.NoError(t, err)
		assert.Len(t, page.Data, 1)
		assert.NotEmpty(t, listKeys(f, "intervention_comments:"+intervention.ID))

		_, err = svc.AddComment(ctx, user, intervention.ID, model.InterventionComment{Content: "Agreed on a plan", Type: model.CommentAgreement})
		require.NoError(t, err)
		assert.Empty(t, listKeys(f, "intervention_comments:"+intervention.ID))

		agreement := model.CommentAgreement
		page, err = svc.ListComments(ctx, user, intervention.ID, model.CommentFilter{Type: &agreement}, model.Page{})
		require.NoError(t, err)
		assert.Len(t, page.Data, 1)
	})

	t.Run("Update_OnlyAuthorOrAdmin", func(t *testing.T) {
		_, err := svc.UpdateComment(ctx, user, comment.ID, model.InterventionComment{Content: "edited"})
		assert.ErrorIs(t, err, intervene_errors.ErrForbidden)

		updated, err := svc.UpdateComment(ctx, viewer, comment.ID, model.InterventionComment{Content: "edited by author"})
		require.NoError(t, err)
		assert.Equal(t, "edited by author", updated.Content)
		assert.Equal(t, viewer.UserID, updated.UserID)

		updated, err = svc.UpdateComment(ctx, admin, comment.ID, model.InterventionComment{Content: "edited by admin", IsPrivate: true})
		require.NoError(t, err)
		assert.True(t, updated.IsPrivate)
	})

	t.Run("Delete_OnlyAdmin", func(t *testing.T) {
		assert.ErrorIs(t, svc.DeleteComment(ctx, viewer, comment.ID), intervene_errors.ErrForbidden)
		require.NoError(t, svc.DeleteComment(ctx, admin, comment.ID))

		page, err := svc.ListComments(ctx, user, intervention.ID, model.CommentFilter{}, model.Page{})
		require.NoError(t, err)
		assert.Len(t, page.Data, 1)
	})
}
