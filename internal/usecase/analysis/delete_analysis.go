package analysis

import (
	"context"
	"log/slog"

	"github.com/BruksfildServices01/personal-color/internal/audit"
	domain "github.com/BruksfildServices01/personal-color/internal/domain/analysis"
	"github.com/BruksfildServices01/personal-color/internal/httperr"
	"github.com/BruksfildServices01/personal-color/internal/storage"
)

type DeleteAnalysis struct {
	repo  domain.Repository
	files storage.FileStore
	audit audit.Recorder
}

func NewDeleteAnalysis(
	repo domain.Repository,
	files storage.FileStore,
	audit audit.Recorder,
) *DeleteAnalysis {
	return &DeleteAnalysis{
		repo:  repo,
		files: files,
		audit: audit,
	}
}

func (uc *DeleteAnalysis) Execute(
	ctx context.Context,
	userID uint,
	id uint,
) error {

	a, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return notFoundAsBusiness(err, httperr.CodeAnalysisMissing)
	}

	if err := domain.CanDelete(a, userID); err != nil {
		slog.WarnContext(ctx, "analysis_delete_forbidden",
			"analysis_id", id,
			"user_id", userID,
		)
		return err
	}

	if err := uc.repo.Delete(ctx, a.ID); err != nil {
		return notFoundAsBusiness(err, httperr.CodeAnalysisMissing)
	}

	// files are removed after the row; a leftover file is harmless
	names := []string{a.StoredFileName}
	if a.ThumbnailFileName != nil {
		names = append(names, *a.ThumbnailFileName)
	}
	for _, name := range names {
		if err := uc.files.Delete(ctx, name); err != nil {
			slog.WarnContext(ctx, "analysis_file_delete_failed", "name", name, "err", err)
		}
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.UintPtr(userID),
		Action:   audit.ActionAnalysisDeleted,
		Entity:   audit.EntityAnalysis,
		EntityID: audit.UintPtr(a.ID),
	})

	return nil
}
