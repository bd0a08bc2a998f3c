package handlers

import (
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/personal-color/internal/dto"
	"github.com/BruksfildServices01/personal-color/internal/httperr"
	"github.com/BruksfildServices01/personal-color/internal/httpresp"
	"github.com/BruksfildServices01/personal-color/internal/middleware"
	"github.com/BruksfildServices01/personal-color/internal/session"
	ucAnalysis "github.com/BruksfildServices01/personal-color/internal/usecase/analysis"
	ucAuth "github.com/BruksfildServices01/personal-color/internal/usecase/auth"
)

// multipartOverhead is allowed on top of the file size for form boundaries
// and headers.
const multipartOverhead = 1 << 20

var uploadFields = []string{"file", "image"}

type AnalysisHandler struct {
	create   *ucAnalysis.CreateAnalysis
	result   *ucAnalysis.GetResult
	get      *ucAnalysis.GetAnalysis
	history  *ucAnalysis.ListHistory
	remove   *ucAnalysis.DeleteAnalysis
	stats    *ucAnalysis.GetStats
	getUser  *ucAuth.GetUser
	sessions *session.Manager
	maxBytes int64
}

func NewAnalysisHandler(
	create *ucAnalysis.CreateAnalysis,
	result *ucAnalysis.GetResult,
	get *ucAnalysis.GetAnalysis,
	history *ucAnalysis.ListHistory,
	remove *ucAnalysis.DeleteAnalysis,
	stats *ucAnalysis.GetStats,
	getUser *ucAuth.GetUser,
	sessions *session.Manager,
	maxBytes int64,
) *AnalysisHandler {
	return &AnalysisHandler{
		create:   create,
		result:   result,
		get:      get,
		history:  history,
		remove:   remove,
		stats:    stats,
		getUser:  getUser,
		sessions: sessions,
		maxBytes: maxBytes,
	}
}

// ======================================================
// PAGES
// ======================================================

func (h *AnalysisHandler) UploadPage(c *gin.Context) {
	p, _ := middleware.CurrentPrincipal(c)

	data := gin.H{"Title": "Analyze"}
	if u, err := h.getUser.Execute(c.Request.Context(), p.UserID); err == nil {
		data["User"] = dto.NewUserDTO(u)
	}
	render(c, http.StatusOK, "upload", data)
}

// ResultsPage shows ?id=, else the last analysis of this session, else the
// user's latest. Without any analysis the user is sent to the upload page.
func (h *AnalysisHandler) ResultsPage(c *gin.Context) {
	p, _ := middleware.CurrentPrincipal(c)

	id, ok := parseID(c.Query("id"))
	if !ok {
		id = p.LastAnalysisID
	}

	a, err := h.result.Execute(c.Request.Context(), p.UserID, id)
	if err != nil {
		if httperr.IsBusiness(err, httperr.CodeAnalysisMissing) {
			c.Redirect(http.StatusFound, "/upload")
			return
		}
		status, message := pageError(c, err)
		render(c, status, "error", gin.H{"Error": message})
		return
	}

	render(c, http.StatusOK, "result", gin.H{
		"Title":    "Result",
		"Analysis": dto.NewAnalysisDTO(a),
	})
}

func (h *AnalysisHandler) HistoryPage(c *gin.Context) {
	p, _ := middleware.CurrentPrincipal(c)

	page, err := h.history.Execute(
		c.Request.Context(),
		p.UserID,
		queryInt(c, "page", 0),
		queryInt(c, "size", 0),
	)
	if err != nil {
		status, message := pageError(c, err)
		render(c, status, "error", gin.H{"Error": message})
		return
	}

	render(c, http.StatusOK, "history", gin.H{
		"Title":       "History",
		"Items":       dto.NewAnalysisDTOs(page.Items),
		"PageIndex":   page.Page,
		"Size":        page.Size,
		"TotalItems":  page.TotalItems,
		"TotalPages":  page.TotalPages,
		"HasPrevious": page.HasPrevious(),
		"HasNext":     page.HasNext(),
	})
}

// ======================================================
// API
// ======================================================

func (h *AnalysisHandler) Upload(c *gin.Context) {
	p, _ := middleware.CurrentPrincipal(c)
	ctx := c.Request.Context()

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+multipartOverhead)

	fh, err := formFile(c)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	data, err := readUpload(fh, h.maxBytes)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	a, err := h.create.Execute(ctx, ucAnalysis.Upload{
		UserID:       p.UserID,
		OriginalName: fh.Filename,
		ContentType:  fh.Header.Get("Content-Type"),
		Data:         data,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	if err := h.sessions.SetLastAnalysis(ctx, p.SessionID, a.ID); err != nil {
		slog.WarnContext(ctx, "session_last_analysis_failed", "err", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"analysis":     dto.NewAnalysisDTO(a),
		"redirect_url": "/results?id=" + strconv.FormatUint(uint64(a.ID), 10),
	})
}

func (h *AnalysisHandler) List(c *gin.Context) {
	p, _ := middleware.CurrentPrincipal(c)

	page, err := h.history.Execute(
		c.Request.Context(),
		p.UserID,
		queryInt(c, "page", 0),
		queryInt(c, "size", 0),
	)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Page(c, dto.NewAnalysisDTOs(page.Items), page.Page, page.Size, page.TotalItems, page.TotalPages)
}

func (h *AnalysisHandler) Get(c *gin.Context) {
	p, _ := middleware.CurrentPrincipal(c)

	id, ok := parseID(c.Param("id"))
	if !ok {
		httperr.FromError(c, httperr.ErrBusiness(httperr.CodeInvalidRequest))
		return
	}

	a, err := h.get.Execute(c.Request.Context(), p.UserID, id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, dto.NewAnalysisDTO(a))
}

func (h *AnalysisHandler) Delete(c *gin.Context) {
	p, _ := middleware.CurrentPrincipal(c)

	id, ok := parseID(c.Param("id"))
	if !ok {
		httperr.FromError(c, httperr.ErrBusiness(httperr.CodeInvalidRequest))
		return
	}

	if err := h.remove.Execute(c.Request.Context(), p.UserID, id); err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "id": id})
}

func (h *AnalysisHandler) Stats(c *gin.Context) {
	p, _ := middleware.CurrentPrincipal(c)

	stats, err := h.stats.Execute(c.Request.Context(), p.UserID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, stats)
}

// ======================================================
// Multipart helpers
// ======================================================

// formFile returns the uploaded file from the first known field.
func formFile(c *gin.Context) (*multipart.FileHeader, error) {
	for _, field := range uploadFields {
		fh, err := c.FormFile(field)
		if err == nil {
			return fh, nil
		}
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return nil, httperr.ErrBusiness(httperr.CodeFileTooLarge)
		}
		if !errors.Is(err, http.ErrMissingFile) {
			return nil, httperr.ErrBusiness(httperr.CodeInvalidRequest)
		}
	}
	return nil, httperr.ErrBusiness(httperr.CodeEmptyFile)
}

func readUpload(fh *multipart.FileHeader, maxBytes int64) ([]byte, error) {
	if fh.Size > maxBytes {
		return nil, httperr.ErrBusiness(httperr.CodeFileTooLarge)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxBytes {
		return nil, httperr.ErrBusiness(httperr.CodeFileTooLarge)
	}
	return data, nil
}
