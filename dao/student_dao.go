// api/dao/student_dao.go
package dao

import (
	"context"

	"gorm.io/gorm"

	intervene_errors "github.com/dev-mohitbeniwal/intervene/api/errors"
	"github.com/dev-mohitbeniwal/intervene/api/model"
)

type StudentDAO struct {
	*GormRepository[model.Student]
}

func NewStudentDAO(db *gorm.DB) *StudentDAO {
	return &StudentDAO{
		GormRepository: NewGormRepository[model.Student](db, "student",
			intervene_errors.ErrStudentNotFound, intervene_errors.ErrStudentConflict),
	}
}

// IdentityTaken reports whether another student already uses rut or the
// enrollment number. excludeID skips the student being updated.
func (dao *StudentDAO) IdentityTaken(ctx context.Context, rut, enrollmentNumber, excludeID string) (bool, error) {
	return dao.Exists(ctx, "(rut = ? OR enrollment_number = ?) AND id <> ?", rut, enrollmentNumber, excludeID)
}
