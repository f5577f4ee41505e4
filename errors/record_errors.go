// api/errors/record_errors.go
package errors

var (
	ErrNotFound             = NewNotFoundError("NOT_FOUND", "record not found")
	ErrStudentNotFound      = NewNotFoundError("STUDENT_NOT_FOUND", "student not found")
	ErrInterventionNotFound = NewNotFoundError("INTERVENTION_NOT_FOUND", "intervention not found")
	ErrCommentNotFound      = NewNotFoundError("COMMENT_NOT_FOUND", "comment not found")
	ErrUserNotFound         = NewNotFoundError("USER_NOT_FOUND", "user not found")
	ErrAssignmentNotFound   = NewNotFoundError("ASSIGNMENT_NOT_FOUND", "assignment not found")

	ErrConflict        = NewConflictError("CONFLICT", "record already exists")
	ErrStudentConflict = NewConflictError("STUDENT_CONFLICT", "a student with this RUT or enrollment number already exists")
	ErrUserConflict    = NewConflictError("USER_CONFLICT", "a user with this email or RUT already exists")
	ErrStaleRecord     = NewConflictError("STALE_RECORD", "record was modified concurrently")
	ErrLastAdmin       = NewConflictError("LAST_ADMIN", "the last active administrator cannot be removed or demoted")

	ErrInvalidStudentData      = NewValidationError("INVALID_STUDENT_DATA", "invalid student data")
	ErrInvalidInterventionData = NewValidationError("INVALID_INTERVENTION_DATA", "invalid intervention data")
	ErrInvalidCommentData      = NewValidationError("INVALID_COMMENT_DATA", "invalid comment data")
	ErrInvalidUserData         = NewValidationError("INVALID_USER_DATA", "invalid user data")
	ErrInvalidPagination       = NewValidationError("INVALID_PAGINATION", "invalid pagination parameters")
	ErrInvalidFilter           = NewValidationError("INVALID_FILTER", "invalid filter parameters")

	ErrDatabaseOperation = NewDatabaseError("DATABASE_ERROR", "database operation failed")
	ErrInternalServer    = NewInternalError("INTERNAL_ERROR", "internal server error")
)
