// api/service/student_service_test.go
package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	testify_mock "github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dev-mohitbeniwal/intervene/api/audit"
	intervene_errors "github.com/dev-mohitbeniwal/intervene/api/errors"
	"github.com/dev-mohitbeniwal/intervene/api/model"
	"github.com/dev-mohitbeniwal/intervene/api/util"
)

func listKeys(f *fixture, prefix string) []string {
	var keys []string
	for _, k := range f.mr.Keys() {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return keys
}

func TestStudentService(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin, user, viewer := f.seedStaff(t)
	svc := f.svc.Student

	var created *model.Student

	t.Run("Create_ForbiddenForViewer", func(t *testing.T) {
		_, err := svc.CreateStudent(ctx, viewer, newStudent("15678432-K", "E-001"))
		assert.ErrorIs(t, err, intervene_errors.ErrForbidden)
	})

	t.Run("Create_RequiresActor", func(t *testing.T) {
		_, err := svc.CreateStudent(ctx, nil, newStudent("15678432-K", "E-001"))
		assert.ErrorIs(t, err, intervene_errors.ErrUnauthorized)
	})

	t.Run("Create_Success", func(t *testing.T) {
		var err error
		created, err = svc.CreateStudent(ctx, user, newStudent("15678432-K", "E-001"))
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, model.EnrollmentActive, created.EnrollmentStatus)
		assert.True(t, created.IsActive)
		assert.Contains(t, f.audit.Actions(), audit.ActionCreate)
	})

	t.Run("Create_InvalidRUT", func(t *testing.T) {
		_, err := svc.CreateStudent(ctx, user, newStudent("15678432-1", "E-002"))
		assert.ErrorIs(t, err, intervene_errors.ErrInvalidStudentData)
	})

	t.Run("Create_Duplicate", func(t *testing.T) {
		_, err := svc.CreateStudent(ctx, user, newStudent("15678432-K", "E-002"))
		assert.ErrorIs(t, err, intervene_errors.ErrStudentConflict)

		_, err = svc.CreateStudent(ctx, user, newStudent("9876543-3", "E-001"))
		assert.ErrorIs(t, err, intervene_errors.ErrStudentConflict)
	})

	t.Run("Get_CachesRecord", func(t *testing.T) {
		got, err := svc.GetStudent(ctx, viewer, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.RUT, got.RUT)
		assert.True(t, f.mr.Exists(util.DetailKey(util.CacheStudent, created.ID)))
	})

	t.Run("List_InvalidatedByCreate", func(t *testing.T) {
		page, err := svc.ListStudents(ctx, viewer, model.StudentFilter{}, model.Page{})
		require.NoError(t, err)
		assert.Len(t, page.Data, 1)
		assert.NotEmpty(t, listKeys(f, "student_list:"))

		_, err = svc.CreateStudent(ctx, user, newStudent("9876543-3", "E-002"))
		require.NoError(t, err)
		assert.Empty(t, listKeys(f, "student_list:"))
		assert.True(t, f.mr.Exists(util.DetailKey(util.CacheStudent, created.ID)))

		page, err = svc.ListStudents(ctx, viewer, model.StudentFilter{}, model.Page{})
		require.NoError(t, err)
		assert.Len(t, page.Data, 2)
		assert.Equal(t, int64(2), page.Pagination.TotalItems)
	})

	t.Run("Update_InvalidatesDetail", func(t *testing.T) {
		change := newStudent("15678432-K", "E-001")
		change.Grade = "6B"
		change.EnrollmentStatus = model.EnrollmentWithdrawn

		updated, err := svc.UpdateStudent(ctx, user, created.ID, change)
		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)
		assert.False(t, updated.IsActive)
		assert.False(t, f.mr.Exists(util.DetailKey(util.CacheStudent, created.ID)))

		got, err := svc.GetStudent(ctx, viewer, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "6B", got.Grade)
	})

	t.Run("Update_ForbiddenForViewer", func(t *testing.T) {
		_, err := svc.UpdateStudent(ctx, viewer, created.ID, newStudent("15678432-K", "E-001"))
		assert.ErrorIs(t, err, intervene_errors.ErrForbidden)
	})

	t.Run("Update_ConflictsWithOther", func(t *testing.T) {
		_, err := svc.UpdateStudent(ctx, user, created.ID, newStudent("9876543-3", "E-001"))
		assert.ErrorIs(t, err, intervene_errors.ErrStudentConflict)
	})

	t.Run("Delete_OnlyAdmin", func(t *testing.T) {
		err := svc.DeleteStudent(ctx, user, created.ID)
		assert.ErrorIs(t, err, intervene_errors.ErrForbidden)

		f.graph.On("Write", testify_mock.Anything, testify_mock.Anything, map[string]any{"studentId": created.ID}).
			Return(nil, nil).Once()

		require.NoError(t, svc.DeleteStudent(ctx, admin, created.ID))
		f.graph.AssertExpectations(t)

		_, err = svc.GetStudent(ctx, viewer, created.ID)
		assert.ErrorIs(t, err, intervene_errors.ErrStudentNotFound)
		assert.Contains(t, f.audit.Actions(), audit.ActionDelete)
	})

	t.Run("Delete_NotFound", func(t *testing.T) {
		err := svc.DeleteStudent(ctx, admin, "missing")
		assert.ErrorIs(t, err, intervene_errors.ErrStudentNotFound)
	})
}
