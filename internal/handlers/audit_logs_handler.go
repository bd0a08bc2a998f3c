package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/personal-color/internal/dto"
	"github.com/BruksfildServices01/personal-color/internal/httperr"
	"github.com/BruksfildServices01/personal-color/internal/middleware"
	"github.com/BruksfildServices01/personal-color/internal/models"
)

const (
	defaultActivityLimit = 50
	maxActivityLimit     = 200
)

// ActivityReader lists the audit trail of one user.
type ActivityReader interface {
	ListByUser(ctx context.Context, userID uint, limit int) ([]models.AuditLog, error)
}

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logs ActivityReader
}

func NewAuditLogsHandler(logs ActivityReader) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs}
}

// List returns the caller's own recent activity, newest first.
func (h *AuditLogsHandler) List(c *gin.Context) {
	p, _ := middleware.CurrentPrincipal(c)

	limit := queryInt(c, "limit", defaultActivityLimit)
	if limit <= 0 || limit > maxActivityLimit {
		limit = defaultActivityLimit
	}

	logs, err := h.logs.ListByUser(c.Request.Context(), p.UserID, limit)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	items := dto.NewActivityDTOs(logs)
	c.JSON(http.StatusOK, gin.H{
		"data":  items,
		"total": len(items),
	})
}
