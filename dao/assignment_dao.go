// api/dao/assignment_dao.go
package dao

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	intervene_errors "github.com/dev-mohitbeniwal/intervene/api/errors"
	logger "github.com/dev-mohitbeniwal/intervene/api/logging"
	"github.com/dev-mohitbeniwal/intervene/api/model"
	intervene_neo4j "github.com/dev-mohitbeniwal/intervene/api/model/neo4j"
	helper_util "github.com/dev-mohitbeniwal/intervene/api/util/helper"
)

// GraphRunner executes Cypher and returns rows keyed by column name.
type GraphRunner interface {
	Read(ctx context.Context, cypher string, params map[string]any) ([]map[string]any, error)
	Write(ctx context.Context, cypher string, params map[string]any) ([]map[string]any, error)
}

// AssignmentDAO keeps the staff to student assignment graph in Neo4j.
type AssignmentDAO struct {
	runner GraphRunner
}

func NewAssignmentDAO(runner GraphRunner) *AssignmentDAO {
	return &AssignmentDAO{runner: runner}
}

func (dao *AssignmentDAO) EnsureConstraints(ctx context.Context) error {
	for _, label := range []string{intervene_neo4j.LabelStudent, intervene_neo4j.LabelUser} {
		query := fmt.Sprintf(`
        CREATE CONSTRAINT unique_%s_id IF NOT EXISTS
        FOR (n:%s) REQUIRE n.%s IS UNIQUE
        `, label, label, intervene_neo4j.AttrID)
		if _, err := dao.runner.Write(ctx, query, nil); err != nil {
			logger.Error("Failed to ensure unique constraint", zap.String("label", label), zap.Error(err))
			return err
		}
	}
	return nil
}

func (dao *AssignmentDAO) Assign(ctx context.Context, a model.Assignment) (*model.Assignment, error) {
	start := time.Now()
	query := fmt.Sprintf(`
    MERGE (s:%s {%s: $studentId})
    MERGE (u:%s {%s: $userId})
    MERGE (u)-[r:%s]->(s)
    ON CREATE SET r.%s = $assignedBy, r.%s = $assignedAt
    RETURN s.%s AS studentId, u.%s AS userId, r.%s AS assignedBy, r.%s AS assignedAt
    `,
		intervene_neo4j.LabelStudent, intervene_neo4j.AttrID,
		intervene_neo4j.LabelUser, intervene_neo4j.AttrID,
		intervene_neo4j.RelAssignedTo,
		intervene_neo4j.AttrAssignedBy, intervene_neo4j.AttrAssignedAt,
		intervene_neo4j.AttrID, intervene_neo4j.AttrID,
		intervene_neo4j.AttrAssignedBy, intervene_neo4j.AttrAssignedAt)

	params := map[string]any{
		"studentId":  a.StudentID,
		"userId":     a.UserID,
		"assignedBy": a.AssignedBy,
		"assignedAt": a.AssignedAt.UTC().Format(time.RFC3339),
	}

	rows, err := dao.runner.Write(ctx, query, params)
	if err != nil {
		logger.Error("Failed to assign user to student",
			zap.Error(err),
			zap.String("studentID", a.StudentID),
			zap.String("userID", a.UserID))
		return nil, intervene_errors.ErrDatabaseOperation.WithCause(err)
	}
	if len(rows) == 0 {
		return nil, intervene_errors.ErrInternalServer
	}

	logger.Info("User assigned to student",
		zap.String("studentID", a.StudentID),
		zap.String("userID", a.UserID),
		zap.Duration("duration", time.Since(start)))
	return rowToAssignment(rows[0]), nil
}

// Unassign removes the link and reports whether one existed.
func (dao *AssignmentDAO) Unassign(ctx context.Context, studentID, userID string) (bool, error) {
	query := fmt.Sprintf(`
    MATCH (u:%s {%s: $userId})-[r:%s]->(s:%s {%s: $studentId})
    DELETE r
    RETURN count(r) AS removed
    `,
		intervene_neo4j.LabelUser, intervene_neo4j.AttrID,
		intervene_neo4j.RelAssignedTo,
		intervene_neo4j.LabelStudent, intervene_neo4j.AttrID)

	rows, err := dao.runner.Write(ctx, query, map[string]any{"studentId": studentID, "userId": userID})
	if err != nil {
		logger.Error("Failed to unassign user from student", zap.Error(err), zap.String("studentID", studentID))
		return false, intervene_errors.ErrDatabaseOperation.WithCause(err)
	}
	if len(rows) == 0 {
		return false, nil
	}
	removed, _ := rows[0]["removed"].(int64)
	return removed > 0, nil
}

func (dao *AssignmentDAO) ListForStudent(ctx context.Context, studentID string) ([]model.Assignment, error) {
	query := fmt.Sprintf(`
    MATCH (u:%s)-[r:%s]->(s:%s {%s: $studentId})
    RETURN s.%s AS studentId, u.%s AS userId, r.%s AS assignedBy, r.%s AS assignedAt
    ORDER BY r.%s
    `,
		intervene_neo4j.LabelUser, intervene_neo4j.RelAssignedTo,
		intervene_neo4j.LabelStudent, intervene_neo4j.AttrID,
		intervene_neo4j.AttrID, intervene_neo4j.AttrID,
		intervene_neo4j.AttrAssignedBy, intervene_neo4j.AttrAssignedAt,
		intervene_neo4j.AttrAssignedAt)
	return dao.list(ctx, query, map[string]any{"studentId": studentID})
}

func (dao *AssignmentDAO) ListForUser(ctx context.Context, userID string) ([]model.Assignment, error) {
	query := fmt.Sprintf(`
    MATCH (u:%s {%s: $userId})-[r:%s]->(s:%s)
    RETURN s.%s AS studentId, u.%s AS userId, r.%s AS assignedBy, r.%s AS assignedAt
    ORDER BY r.%s
    `,
		intervene_neo4j.LabelUser, intervene_neo4j.AttrID,
		intervene_neo4j.RelAssignedTo, intervene_neo4j.LabelStudent,
		intervene_neo4j.AttrID, intervene_neo4j.AttrID,
		intervene_neo4j.AttrAssignedBy, intervene_neo4j.AttrAssignedAt,
		intervene_neo4j.AttrAssignedAt)
	return dao.list(ctx, query, map[string]any{"userId": userID})
}

// RemoveStudent drops the student node with all of its assignments.
func (dao *AssignmentDAO) RemoveStudent(ctx context.Context, studentID string) error {
	query := fmt.Sprintf(`
    MATCH (s:%s {%s: $studentId})
    DETACH DELETE s
    `, intervene_neo4j.LabelStudent, intervene_neo4j.AttrID)
	if _, err := dao.runner.Write(ctx, query, map[string]any{"studentId": studentID}); err != nil {
		return intervene_errors.ErrDatabaseOperation.WithCause(err)
	}
	return nil
}

func (dao *AssignmentDAO) list(ctx context.Context, query string, params map[string]any) ([]model.Assignment, error) {
	rows, err := dao.runner.Read(ctx, query, params)
	if err != nil {
		logger.Error("Failed to list assignments", zap.Error(err))
		return nil, intervene_errors.ErrDatabaseOperation.WithCause(err)
	}
	assignments := make([]model.Assignment, 0, len(rows))
	for _, row := range rows {
		assignments = append(assignments, *rowToAssignment(row))
	}
	return assignments, nil
}

func rowToAssignment(row map[string]any) *model.Assignment {
	a := &model.Assignment{}
	a.StudentID, _ = row["studentId"].(string)
	a.UserID, _ = row["userId"].(string)
	a.AssignedBy, _ = row["assignedBy"].(string)
	if at, err := helper_util.ParseNullableTime(row["assignedAt"]); err == nil && at != nil {
		a.AssignedAt = *at
	}
	return a
}
