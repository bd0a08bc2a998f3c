package analysis

import (
	"errors"

	"github.com/BruksfildServices01/personal-color/internal/domain"
	"github.com/BruksfildServices01/personal-color/internal/httperr"
)

func notFoundAsBusiness(err error, code string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return httperr.ErrBusiness(code)
	}
	return err
}
