package analysis

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/BruksfildServices01/personal-color/internal/audit"
	domain "github.com/BruksfildServices01/personal-color/internal/domain/analysis"
	"github.com/BruksfildServices01/personal-color/internal/httperr"
	"github.com/BruksfildServices01/personal-color/internal/imaging"
	"github.com/BruksfildServices01/personal-color/internal/models"
	"github.com/BruksfildServices01/personal-color/internal/storage"
)

const maxOriginalNameLen = 255

// ======================================================
// INPUT
// ======================================================

type Upload struct {
	UserID       uint
	OriginalName string
	ContentType  string
	Data         []byte
}

// ======================================================
// USE CASE
// ======================================================

type CreateAnalysis struct {
	repo       domain.Repository
	files      storage.FileStore
	classifier domain.Classifier
	policy     domain.UploadPolicy
	thumbSize  int
	audit      audit.Recorder
}

func NewCreateAnalysis(
	repo domain.Repository,
	files storage.FileStore,
	classifier domain.Classifier,
	policy domain.UploadPolicy,
	thumbSize int,
	audit audit.Recorder,
) *CreateAnalysis {
	return &CreateAnalysis{
		repo:       repo,
		files:      files,
		classifier: classifier,
		policy:     policy,
		thumbSize:  thumbSize,
		audit:      audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAnalysis) Execute(
	ctx context.Context,
	in Upload,
) (*models.ColorAnalysis, error) {

	if in.UserID == 0 {
		return nil, httperr.ErrBusiness(httperr.CodeUnauthorized)
	}

	// --------------------------------------------------
	// 1. Validation
	// --------------------------------------------------
	if err := uc.policy.Check(int64(len(in.Data)), in.ContentType); err != nil {
		return nil, err
	}

	info, err := imaging.Inspect(in.Data)
	if err != nil || !uc.policy.Allows(info.ContentType) {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidImage)
	}
	if err := uc.policy.CheckDimensions(info.Width, info.Height); err != nil {
		slog.WarnContext(ctx, "analysis_image_too_large",
			"user_id", in.UserID,
			"width", info.Width,
			"height", info.Height,
		)
		return nil, err
	}

	originalName := cleanOriginalName(in.OriginalName, info.Format)

	// --------------------------------------------------
	// 2. Original file
	// --------------------------------------------------
	storedName, err := uc.files.Store(ctx, bytes.NewReader(in.Data), originalName)
	if err != nil {
		return nil, err
	}
	stored := []string{storedName}

	// --------------------------------------------------
	// 3. Thumbnail (best-effort)
	// --------------------------------------------------
	var thumbName *string
	if name, ok := uc.storeThumbnail(ctx, in.Data); ok {
		thumbName = &name
		stored = append(stored, name)
	}

	// --------------------------------------------------
	// 4. Classification
	// --------------------------------------------------
	result, err := uc.classifier.Classify(ctx, in.Data)
	if err != nil {
		uc.cleanup(ctx, stored)
		return nil, err
	}

	palette, _ := domain.PaletteFor(result.ColorType)

	// --------------------------------------------------
	// 5. Persistence
	// --------------------------------------------------
	a := &models.ColorAnalysis{
		UserID:            in.UserID,
		OriginalFileName:  originalName,
		StoredFileName:    storedName,
		ThumbnailFileName: thumbName,
		ContentType:       info.ContentType,
		FileSize:          int64(len(in.Data)),
		Width:             info.Width,
		Height:            info.Height,
		ColorType:         result.ColorType,
		Description:       palette.Description,
		DominantColors:    palette.Swatches,
		Confidence:        result.Confidence,
	}

	if err := uc.repo.Create(ctx, a); err != nil {
		uc.cleanup(ctx, stored)
		return nil, err
	}

	// --------------------------------------------------
	// 6. Audit
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		UserID:   audit.UintPtr(in.UserID),
		Action:   audit.ActionAnalysisCreated,
		Entity:   audit.EntityAnalysis,
		EntityID: audit.UintPtr(a.ID),
		Metadata: map[string]any{
			"color_type": a.ColorType,
			"file_size":  a.FileSize,
		},
	})

	slog.InfoContext(ctx, "analysis_created",
		"analysis_id", a.ID,
		"user_id", a.UserID,
		"color_type", a.ColorType,
	)

	return a, nil
}

func (uc *CreateAnalysis) storeThumbnail(ctx context.Context, data []byte) (string, bool) {
	if uc.thumbSize <= 0 {
		return "", false
	}

	thumb, err := imaging.Thumbnail(data, uc.thumbSize)
	if err != nil {
		slog.WarnContext(ctx, "thumbnail_failed", "err", err)
		return "", false
	}

	name, err := uc.files.Store(ctx, bytes.NewReader(thumb), "thumb"+imaging.ThumbnailExtension)
	if err != nil {
		slog.WarnContext(ctx, "thumbnail_store_failed", "err", err)
		return "", false
	}
	return name, true
}

// cleanup removes files written for an analysis that was never persisted.
func (uc *CreateAnalysis) cleanup(ctx context.Context, names []string) {
	ctx = context.WithoutCancel(ctx)
	for _, name := range names {
		if err := uc.files.Delete(ctx, name); err != nil {
			slog.ErrorContext(ctx, "orphan_file_cleanup_failed", "name", name, "err", err)
		}
	}
}

// cleanOriginalName keeps the base name only and makes sure it carries an
// extension matching the detected format when it has none.
func cleanOriginalName(name, format string) string {
	name = strings.TrimSpace(strings.ReplaceAll(name, `\`, "/"))
	name = filepath.Base(name)
	if name == "." || name == "/" || name == "" {
		name = "upload"
	}
	if storage.Extension(name) == "" {
		name += "." + format
	}
	if len(name) > maxOriginalNameLen {
		ext := storage.Extension(name)
		cut := maxOriginalNameLen - len(ext)
		for cut > 0 && !utf8.RuneStart(name[cut]) {
			cut--
		}
		name = name[:cut] + ext
	}
	return name
}
