package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/beacon-dev/beacon/internal/apperrors"
)

// now is a package variable so lifecycle tests can pin the clock.
var now = time.Now

// translateDBError maps the driver-level constraint failures GORM
// surfaces (with TranslateError enabled) onto the application taxonomy.
// Anything else propagates as-is.
func translateDBError(err error, conflict *apperrors.ConflictError, referential *apperrors.ReferentialViolationError) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) && conflict != nil {
		return conflict
	}

	if errors.Is(err, gorm.ErrForeignKeyViolated) && referential != nil {
		return referential
	}

	return err
}
