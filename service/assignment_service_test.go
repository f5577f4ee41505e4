// api/service/assignment_service_test.go
package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	testify_mock "github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dev-mohitbeniwal/intervene/api/audit"
	intervene_errors "github.com/dev-mohitbeniwal/intervene/api/errors"
	"github.com/dev-mohitbeniwal/intervene/api/util"
)

func TestAssignmentService(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin, user, viewer := f.seedStaff(t)
	student, err := f.svc.Student.CreateStudent(ctx, user, newStudent("15678432-K", "E-001"))
	require.NoError(t, err)
	svc := f.svc.Assignment
	require.NotNil(t, svc)

	row := map[string]any{
		"studentId":  student.ID,
		"userId":     user.UserID,
		"assignedBy": admin.UserID,
		"assignedAt": "2024-04-02T10:00:00Z",
	}

	t.Run("Assign_ForbiddenForViewer", func(t *testing.T) {
		_, err := svc.AssignUser(ctx, viewer, student.ID, user.UserID)
		assert.ErrorIs(t, err, intervene_errors.ErrForbidden)
	})

	t.Run("Assign_UnknownUser", func(t *testing.T) {
		_, err := svc.AssignUser(ctx, admin, student.ID, "missing")
		assert.ErrorIs(t, err, intervene_errors.ErrUserNotFound)
	})

	t.Run("List_CachedUntilAssign", func(t *testing.T) {
		f.graph.On("Read", testify_mock.Anything, testify_mock.Anything, map[string]any{"studentId": student.ID}).
			Return([]map[string]any{}, nil).Once()

		assignments, err := svc.ListStudentAssignments(ctx, viewer, student.ID)
		require.NoError(t, err)
		assert.Empty(t, assignments)
		assert.True(t, f.mr.Exists(util.StudentAssignmentsKey(student.ID)))

		// Served from the cache: the graph is not read again.
		_, err = svc.ListStudentAssignments(ctx, viewer, student.ID)
		require.NoError(t, err)

		f.graph.On("Write", testify_mock.Anything, testify_mock.Anything, testify_mock.Anything).
			Return([]map[string]any{row}, nil).Once()

		assignment, err := svc.AssignUser(ctx, admin, student.ID, user.UserID)
		require.NoError(t, err)
		assert.Equal(t, user.UserID, assignment.UserID)
		assert.False(t, f.mr.Exists(util.StudentAssignmentsKey(student.ID)))
		assert.Contains(t, f.audit.Actions(), audit.ActionAssign)
		f.graph.AssertExpectations(t)
	})

	t.Run("ListUserStudents_OwnOnly", func(t *testing.T) {
		_, err := svc.ListUserStudents(ctx, user, admin.UserID)
		assert.ErrorIs(t, err, intervene_errors.ErrForbidden)

		f.graph.On("Read", testify_mock.Anything, testify_mock.Anything, map[string]any{"userId": user.UserID}).
			Return([]map[string]any{row}, nil).Once()

		assignments, err := svc.ListUserStudents(ctx, user, user.UserID)
		require.NoError(t, err)
		require.Len(t, assignments, 1)
		assert.Equal(t, student.ID, assignments[0].StudentID)
	})

	t.Run("Unassign", func(t *testing.T) {
		f.graph.On("Write", testify_mock.Anything, testify_mock.Anything, map[string]any{"studentId": student.ID, "userId": user.UserID}).
			Return([]map[string]any{{"removed": int64(1)}}, nil).Once()
		f.graph.On("Write", testify_mock.Anything, testify_mock.Anything, map[string]any{"studentId": student.ID, "userId": viewer.UserID}).
			Return([]map[string]any{{"removed": int64(0)}}, nil).Once()

		require.NoError(t, svc.UnassignUser(ctx, user, student.ID, user.UserID))
		assert.False(t, f.mr.Exists(util.UserStudentsKey(user.UserID)))

		err := svc.UnassignUser(ctx, user, student.ID, viewer.UserID)
		assert.ErrorIs(t, err, intervene_errors.ErrAssignmentNotFound)
	})
}
