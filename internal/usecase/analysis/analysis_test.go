package analysis

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/personal-color/internal/audit"
	domain "github.com/BruksfildServices01/personal-color/internal/domain/analysis"
	"github.com/BruksfildServices01/personal-color/internal/httperr"
	"github.com/BruksfildServices01/personal-color/internal/infra/repository"
	"github.com/BruksfildServices01/personal-color/internal/models"
	"github.com/BruksfildServices01/personal-color/internal/storage"
)

// ======================================================
// Fixtures
// ======================================================

type recorder struct {
	mu     sync.Mutex
	events []audit.Event
}

func (r *recorder) Dispatch(ev audit.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Action)
	}
	return out
}

type failingCreateRepo struct {
	domain.Repository
}

func (failingCreateRepo) Create(context.Context, *models.ColorAnalysis) error {
	return errors.New("insert failed")
}

type env struct {
	store    *repository.MemoryStore
	files    *storage.DiskStore
	dir      string
	audit    *recorder
	owner    *models.User
	stranger *models.User
	create   *CreateAnalysis
}

var fixedClassifier = domain.ClassifierFunc(func(context.Context, []byte) (domain.Result, error) {
	return domain.Result{ColorType: models.ColorTypeAutumnWarm, Confidence: 0.9}, nil
})

var policy = domain.UploadPolicy{
	MaxBytes:     1 << 20,
	ContentTypes: []string{"image/jpeg", "image/png", "image/gif", "image/webp"},
}

func newEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()

	store := repository.NewMemoryStore()
	owner := &models.User{Email: "ana@example.com", Username: "ana", Name: "Ana", Active: true}
	stranger := &models.User{Email: "bob@example.com", Username: "bob", Name: "Bob", Active: true}
	require.NoError(t, store.Users().Create(ctx, owner))
	require.NoError(t, store.Users().Create(ctx, stranger))

	dir := t.TempDir()
	files, err := storage.NewDiskStore(dir)
	require.NoError(t, err)

	rec := &recorder{}
	return &env{
		store:    store,
		files:    files,
		dir:      dir,
		audit:    rec,
		owner:    owner,
		stranger: stranger,
		create:   NewCreateAnalysis(store.Analyses(), files, fixedClassifier, policy, 32, rec),
	}
}

func (e *env) fileCount(t *testing.T) int {
	t.Helper()
	entries, err := os.ReadDir(e.dir)
	require.NoError(t, err)
	return len(entries)
}

func pngData(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	for x := 0; x < 64; x++ {
		for y := 0; y < 48; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: uint8(x * 3), B: uint8(y * 4), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func (e *env) upload(t *testing.T, userID uint) *models.ColorAnalysis {
	t.Helper()
	a, err := e.create.Execute(context.Background(), Upload{
		UserID:       userID,
		OriginalName: "portrait.png",
		ContentType:  "image/png",
		Data:         pngData(t),
	})
	require.NoError(t, err)
	return a
}

// ======================================================
// CreateAnalysis
// ======================================================

func TestCreateAnalysisPersistsEverything(t *testing.T) {
	e := newEnv(t)
	a := e.upload(t, e.owner.ID)

	assert.NotZero(t, a.ID)
	assert.Equal(t, e.owner.ID, a.UserID)
	assert.Equal(t, "portrait.png", a.OriginalFileName)
	assert.Equal(t, "image/png", a.ContentType)
	assert.Equal(t, 64, a.Width)
	assert.Equal(t, 48, a.Height)
	assert.Equal(t, models.ColorTypeAutumnWarm, a.ColorType)
	assert.Equal(t, 0.9, a.Confidence)

	palette, _ := domain.PaletteFor(models.ColorTypeAutumnWarm)
	assert.Equal(t, palette.Description, a.Description)
	assert.Equal(t, palette.Swatches, []string(a.DominantColors))

	assert.FileExists(t, e.dir+"/"+a.StoredFileName)
	require.NotNil(t, a.ThumbnailFileName)
	assert.FileExists(t, e.dir+"/"+*a.ThumbnailFileName)
	assert.Equal(t, 2, e.fileCount(t))

	stored, err := e.store.Analyses().GetByID(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.StoredFileName, stored.StoredFileName)

	assert.Equal(t, []string{audit.ActionAnalysisCreated}, e.audit.actions())
}

func TestCreateAnalysisRejectsNonImage(t *testing.T) {
	e := newEnv(t)

	_, err := e.create.Execute(context.Background(), Upload{
		UserID:       e.owner.ID,
		OriginalName: "notes.png",
		ContentType:  "image/png",
		Data:         []byte("this is plain text pretending to be a png"),
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidImage))

	_, total, err := e.store.Analyses().ListByUser(context.Background(), e.owner.ID, 0, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Zero(t, e.fileCount(t))
	assert.Empty(t, e.audit.actions())
}

func TestCreateAnalysisValidation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	cases := []struct {
		name string
		in   Upload
		code string
	}{
		{"anonymous", Upload{ContentType: "image/png", Data: pngData(t)}, httperr.CodeUnauthorized},
		{"empty", Upload{UserID: e.owner.ID, ContentType: "image/png"}, httperr.CodeEmptyFile},
		{"too large", Upload{UserID: e.owner.ID, ContentType: "image/png", Data: make([]byte, policy.MaxBytes+1)}, httperr.CodeFileTooLarge},
		{"declared text", Upload{UserID: e.owner.ID, ContentType: "text/plain", Data: pngData(t)}, httperr.CodeUnsupportedType},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.create.Execute(ctx, tc.in)
			assert.True(t, httperr.IsBusiness(err, tc.code), "got %v", err)
		})
	}
	assert.Zero(t, e.fileCount(t))
}

func TestCreateAnalysisRemovesFilesWhenInsertFails(t *testing.T) {
	e := newEnv(t)
	uc := NewCreateAnalysis(failingCreateRepo{e.store.Analyses()}, e.files, fixedClassifier, policy, 32, e.audit)

	_, err := uc.Execute(context.Background(), Upload{
		UserID: e.owner.ID, OriginalName: "p.png", ContentType: "image/png", Data: pngData(t),
	})
	require.Error(t, err)
	assert.Zero(t, e.fileCount(t))
	assert.Empty(t, e.audit.actions())
}

func TestCreateAnalysisRemovesFilesWhenClassifierFails(t *testing.T) {
	e := newEnv(t)
	broken := domain.ClassifierFunc(func(context.Context, []byte) (domain.Result, error) {
		return domain.Result{}, errors.New("model offline")
	})
	uc := NewCreateAnalysis(e.store.Analyses(), e.files, broken, policy, 32, e.audit)

	_, err := uc.Execute(context.Background(), Upload{
		UserID: e.owner.ID, OriginalName: "p.png", ContentType: "image/png", Data: pngData(t),
	})
	require.Error(t, err)
	assert.Zero(t, e.fileCount(t))
}

func TestCreateAnalysisRejectsOversizedDimensions(t *testing.T) {
	e := newEnv(t)
	small := policy
	small.MaxPixels = 64*48 - 1
	uc := NewCreateAnalysis(e.store.Analyses(), e.files, fixedClassifier, small, 32, e.audit)

	_, err := uc.Execute(context.Background(), Upload{
		UserID: e.owner.ID, OriginalName: "wide.png", ContentType: "image/png", Data: pngData(t),
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidImage), "got %v", err)
	assert.Zero(t, e.fileCount(t))
	assert.Empty(t, e.audit.actions())

	small.MaxPixels = 64 * 48
	uc = NewCreateAnalysis(e.store.Analyses(), e.files, fixedClassifier, small, 32, e.audit)
	_, err = uc.Execute(context.Background(), Upload{
		UserID: e.owner.ID, OriginalName: "fits.png", ContentType: "image/png", Data: pngData(t),
	})
	assert.NoError(t, err)
}

func TestCreateAnalysisWithoutThumbnails(t *testing.T) {
	e := newEnv(t)
	uc := NewCreateAnalysis(e.store.Analyses(), e.files, fixedClassifier, policy, 0, audit.Nop{})

	a, err := uc.Execute(context.Background(), Upload{
		UserID: e.owner.ID, OriginalName: "p.png", ContentType: "image/png", Data: pngData(t),
	})
	require.NoError(t, err)
	assert.Nil(t, a.ThumbnailFileName)
	assert.Equal(t, 1, e.fileCount(t))
}

func TestCreateAnalysisStoredNamesUnique(t *testing.T) {
	e := newEnv(t)
	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		a := e.upload(t, e.owner.ID)
		assert.False(t, seen[a.StoredFileName])
		seen[a.StoredFileName] = true
	}
}

func TestCleanOriginalName(t *testing.T) {
	assert.Equal(t, "me.jpg", cleanOriginalName(`C:\photos\me.jpg`, "jpeg"))
	assert.Equal(t, "x.png", cleanOriginalName("../../x.png", "png"))
	assert.Equal(t, "upload.png", cleanOriginalName("", "png"))
	assert.Equal(t, "selfie.gif", cleanOriginalName("selfie", "gif"))

	hangul := cleanOriginalName(strings.Repeat("사", 100)+".png", "png")
	assert.True(t, utf8.ValidString(hangul))
	assert.LessOrEqual(t, len(hangul), maxOriginalNameLen)
	assert.True(t, strings.HasSuffix(hangul, ".png"))
	assert.Equal(t, strings.Repeat("사", 83)+".png", hangul)
}

// ======================================================
// Queries
// ======================================================

func TestListHistoryPaging(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	for i := 0; i < 15; i++ {
		e.upload(t, e.owner.ID)
	}
	e.upload(t, e.stranger.ID)

	uc := NewListHistory(e.store.Analyses())

	first, err := uc.Execute(ctx, e.owner.ID, 0, 10)
	require.NoError(t, err)
	assert.Len(t, first.Items, 10)
	assert.Equal(t, int64(15), first.TotalItems)
	assert.Equal(t, 2, first.TotalPages)
	assert.True(t, first.HasNext())
	assert.False(t, first.HasPrevious())

	second, err := uc.Execute(ctx, e.owner.ID, 1, 10)
	require.NoError(t, err)
	assert.Len(t, second.Items, 5)
	assert.False(t, second.HasNext())

	seen := map[uint]bool{}
	for _, a := range append(first.Items, second.Items...) {
		assert.Equal(t, e.owner.ID, a.UserID)
		assert.False(t, seen[a.ID], "analysis %d on two pages", a.ID)
		seen[a.ID] = true
	}
	for i := 1; i < len(first.Items); i++ {
		assert.False(t, first.Items[i].CreatedAt.After(first.Items[i-1].CreatedAt))
	}

	beyond, err := uc.Execute(ctx, e.owner.ID, 5, 10)
	require.NoError(t, err)
	assert.Empty(t, beyond.Items)

	huge, err := uc.Execute(ctx, e.owner.ID, math.MaxInt/10+1, 10)
	require.NoError(t, err)
	assert.Empty(t, huge.Items)
	assert.False(t, huge.HasNext())

	defaults, err := uc.Execute(ctx, e.owner.ID, -3, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, defaults.Page)
	assert.Equal(t, domain.DefaultPageSize, defaults.Size)
}

func TestGetResultFallbacks(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	uc := NewGetResult(e.store.Analyses())

	_, err := uc.Execute(ctx, e.owner.ID, 0)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeAnalysisMissing))

	older := e.upload(t, e.owner.ID)
	newer := e.upload(t, e.owner.ID)
	foreign := e.upload(t, e.stranger.ID)

	got, err := uc.Execute(ctx, e.owner.ID, older.ID)
	require.NoError(t, err)
	assert.Equal(t, older.ID, got.ID)

	got, err = uc.Execute(ctx, e.owner.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, newer.ID, got.ID)

	got, err = uc.Execute(ctx, e.owner.ID, foreign.ID)
	require.NoError(t, err)
	assert.Equal(t, newer.ID, got.ID, "foreign id falls back to own latest")

	got, err = uc.Execute(ctx, e.owner.ID, 9999)
	require.NoError(t, err)
	assert.Equal(t, newer.ID, got.ID)
}

func TestGetAnalysisOwnership(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	uc := NewGetAnalysis(e.store.Analyses())
	a := e.upload(t, e.owner.ID)

	got, err := uc.Execute(ctx, e.owner.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	_, err = uc.Execute(ctx, e.stranger.ID, a.ID)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeForbidden))

	_, err = uc.Execute(ctx, e.owner.ID, 12345)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeAnalysisMissing))
}

func TestGetStats(t *testing.T) {
	e := newEnv(t)
	for i := 0; i < 3; i++ {
		e.upload(t, e.owner.ID)
	}

	stats, err := NewGetStats(e.store.Analyses()).Execute(context.Background(), e.owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	require.Len(t, stats.Categories, 4)
	for _, c := range stats.Categories {
		if c.ColorType == models.ColorTypeAutumnWarm {
			assert.Equal(t, int64(3), c.Count)
			assert.Equal(t, "Autumn Warm", c.DisplayName)
		} else {
			assert.Zero(t, c.Count)
		}
	}
}

// ======================================================
// DeleteAnalysis
// ======================================================

func TestDeleteAnalysisForeignIsForbidden(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a := e.upload(t, e.owner.ID)
	uc := NewDeleteAnalysis(e.store.Analyses(), e.files, e.audit)

	err := uc.Execute(ctx, e.stranger.ID, a.ID)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeForbidden))

	still, err := e.store.Analyses().GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, still.ID)
	assert.FileExists(t, e.dir+"/"+a.StoredFileName)
}

func TestDeleteAnalysisRemovesRowAndFiles(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a := e.upload(t, e.owner.ID)
	uc := NewDeleteAnalysis(e.store.Analyses(), e.files, e.audit)

	require.NoError(t, uc.Execute(ctx, e.owner.ID, a.ID))

	_, err := e.store.Analyses().GetByID(ctx, a.ID)
	assert.Error(t, err)
	assert.Zero(t, e.fileCount(t))
	assert.Equal(t, []string{audit.ActionAnalysisCreated, audit.ActionAnalysisDeleted}, e.audit.actions())

	err = uc.Execute(ctx, e.owner.ID, a.ID)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeAnalysisMissing))
}
