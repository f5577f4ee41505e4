// api/dao/intervention_dao.go
package dao

import (
	"gorm.io/gorm"

	intervene_errors "github.com/dev-mohitbeniwal/intervene/api/errors"
	"github.com/dev-mohitbeniwal/intervene/api/model"
)

type InterventionDAO struct {
	*GormRepository[model.Intervention]
}

func NewInterventionDAO(db *gorm.DB) *InterventionDAO {
	return &InterventionDAO{
		GormRepository: NewGormRepository[model.Intervention](db, "intervention",
			intervene_errors.ErrInterventionNotFound, intervene_errors.ErrConflict),
	}
}

type CommentDAO struct {
	*GormRepository[model.InterventionComment]
}

func NewCommentDAO(db *gorm.DB) *CommentDAO {
	return &CommentDAO{
		GormRepository: NewGormRepository[model.InterventionComment](db, "comment",
			intervene_errors.ErrCommentNotFound, intervene_errors.ErrConflict),
	}
}
