package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/personal-color/internal/domain"
)

// translate maps gorm sentinel errors onto the domain ones. The database is
// opened with TranslateError so unique violations arrive as ErrDuplicatedKey.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrDuplicate
	default:
		return err
	}
}
