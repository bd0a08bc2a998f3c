package analysis

import (
	"github.com/BruksfildServices01/personal-color/internal/httperr"
	"github.com/BruksfildServices01/personal-color/internal/models"
)

// ===============================
// Ownership
// ===============================

func IsOwnedBy(a *models.ColorAnalysis, userID uint) bool {
	return a != nil && userID != 0 && a.UserID == userID
}

func CanDelete(a *models.ColorAnalysis, userID uint) error {
	if !IsOwnedBy(a, userID) {
		return httperr.ErrBusiness(httperr.CodeForbidden)
	}
	return nil
}
