package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/personal-color/internal/dto"
	"github.com/BruksfildServices01/personal-color/internal/httperr"
	"github.com/BruksfildServices01/personal-color/internal/middleware"
	"github.com/BruksfildServices01/personal-color/internal/session"
	ucAuth "github.com/BruksfildServices01/personal-color/internal/usecase/auth"
)

type MeHandler struct {
	getUser        *ucAuth.GetUser
	changePassword *ucAuth.ChangePassword
	deactivate     *ucAuth.Deactivate
	sessions       *session.Manager
}

func NewMeHandler(
	getUser *ucAuth.GetUser,
	changePassword *ucAuth.ChangePassword,
	deactivate *ucAuth.Deactivate,
	sessions *session.Manager,
) *MeHandler {
	return &MeHandler{
		getUser:        getUser,
		changePassword: changePassword,
		deactivate:     deactivate,
		sessions:       sessions,
	}
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

// Current reports whether the caller is logged in and who they are.
func (h *MeHandler) Current(c *gin.Context) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}

	u, err := h.getUser.Execute(c.Request.Context(), p.UserID)
	if err != nil {
		if httperr.IsBusiness(err, httperr.CodeUserNotFound) {
			c.JSON(http.StatusOK, gin.H{"authenticated": false})
			return
		}
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"user":          dto.NewUserDTO(u),
	})
}

// Session is the lightweight login check used by page scripts.
func (h *MeHandler) Session(c *gin.Context) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"isLoggedIn": false})
		return
	}

	u, err := h.getUser.Execute(c.Request.Context(), p.UserID)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"isLoggedIn": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"isLoggedIn": true,
		"userEmail":  u.Email,
	})
}

func (h *MeHandler) ChangePassword(c *gin.Context) {
	p, _ := middleware.CurrentPrincipal(c)

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.FromError(c, httperr.ErrBusiness(httperr.CodeInvalidRequest))
		return
	}

	if err := h.changePassword.Execute(
		c.Request.Context(),
		p.UserID,
		req.CurrentPassword,
		req.NewPassword,
	); err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Deactivate disables the account and ends all of its sessions.
func (h *MeHandler) Deactivate(c *gin.Context) {
	p, _ := middleware.CurrentPrincipal(c)
	ctx := c.Request.Context()

	if err := h.deactivate.Execute(ctx, p.UserID); err != nil {
		httperr.FromError(c, err)
		return
	}

	if err := h.sessions.RevokeUser(ctx, p.UserID); err != nil {
		slog.WarnContext(ctx, "session_revoke_failed", "user_id", p.UserID, "err", err)
		if err := h.sessions.Revoke(ctx, p.SessionID); err != nil {
			slog.WarnContext(ctx, "session_revoke_failed", "err", err)
		}
	}
	h.sessions.ClearCookie(c.Writer)

	c.JSON(http.StatusOK, gin.H{"success": true, "redirect_url": afterLogoutPath})
}
