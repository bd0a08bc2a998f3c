package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/personal-color/internal/audit"
	"github.com/BruksfildServices01/personal-color/internal/dto"
	"github.com/BruksfildServices01/personal-color/internal/httperr"
	"github.com/BruksfildServices01/personal-color/internal/middleware"
	"github.com/BruksfildServices01/personal-color/internal/models"
	"github.com/BruksfildServices01/personal-color/internal/session"
	ucAuth "github.com/BruksfildServices01/personal-color/internal/usecase/auth"
)

const (
	afterLoginPath  = "/upload"
	afterSignupPath = "/login?registered=1"
	afterLogoutPath = "/"
)

type AuthHandler struct {
	signup   *ucAuth.Signup
	login    *ucAuth.Login
	sessions *session.Manager
	audit    audit.Recorder
}

func NewAuthHandler(
	signup *ucAuth.Signup,
	login *ucAuth.Login,
	sessions *session.Manager,
	audit audit.Recorder,
) *AuthHandler {
	return &AuthHandler{
		signup:   signup,
		login:    login,
		sessions: sessions,
		audit:    audit,
	}
}

// --------- Requests ---------

type SignupRequest struct {
	Email    string `json:"email" form:"email"`
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
	Name     string `json:"name" form:"name"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

func (r LoginRequest) identity() string {
	if id := strings.TrimSpace(r.Email); id != "" {
		return id
	}
	return strings.TrimSpace(r.Username)
}

// --------- Pages ---------

func (h *AuthHandler) LoginPage(c *gin.Context) {
	if _, ok := middleware.CurrentPrincipal(c); ok {
		c.Redirect(http.StatusFound, afterLoginPath)
		return
	}
	data := gin.H{"Title": "Login"}
	if c.Query("registered") != "" {
		data["Notice"] = "Your account was created. Please log in."
	}
	render(c, http.StatusOK, "login", data)
}

func (h *AuthHandler) SignupPage(c *gin.Context) {
	render(c, http.StatusOK, "signup", gin.H{"Title": "Sign up"})
}

// --------- Handlers ---------

// Login accepts a form post or JSON. Form posts are redirected, JSON gets
// {success, redirect_url, user}.
func (h *AuthHandler) Login(c *gin.Context) {
	asJSON := wantsJSON(c)

	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.loginFailed(c, asJSON, req, httperr.ErrBusiness(httperr.CodeInvalidRequest))
		return
	}

	user, err := h.login.Execute(c.Request.Context(), req.identity(), req.Password)
	if err != nil {
		h.loginFailed(c, asJSON, req, err)
		return
	}

	if !h.startSession(c, user) {
		if asJSON {
			httperr.FromError(c, errSessionStart)
			return
		}
		render(c, http.StatusInternalServerError, "login", gin.H{"Title": "Login", "Error": "Could not start a session."})
		return
	}

	if asJSON {
		c.JSON(http.StatusOK, gin.H{
			"success":      true,
			"redirect_url": afterLoginPath,
			"user":         dto.NewUserDTO(user),
		})
		return
	}
	c.Redirect(http.StatusSeeOther, afterLoginPath)
}

// APILogin is the JSON-only login endpoint.
func (h *AuthHandler) APILogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.FromError(c, httperr.ErrBusiness(httperr.CodeInvalidRequest))
		return
	}

	user, err := h.login.Execute(c.Request.Context(), req.identity(), req.Password)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	if !h.startSession(c, user) {
		httperr.FromError(c, errSessionStart)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"redirect_url": afterLoginPath,
		"user":         dto.NewUserDTO(user),
	})
}

func (h *AuthHandler) Signup(c *gin.Context) {
	asJSON := wantsJSON(c)

	var req SignupRequest
	if err := c.ShouldBind(&req); err != nil {
		h.signupFailed(c, asJSON, req, httperr.ErrBusiness(httperr.CodeInvalidRequest))
		return
	}

	user, err := h.signup.Execute(c.Request.Context(), ucAuth.SignupInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		h.signupFailed(c, asJSON, req, err)
		return
	}

	if asJSON {
		c.JSON(http.StatusCreated, gin.H{
			"success":      true,
			"redirect_url": afterSignupPath,
			"user":         dto.NewUserDTO(user),
		})
		return
	}
	c.Redirect(http.StatusSeeOther, afterSignupPath)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := c.Request.Context()

	if p, ok := middleware.CurrentPrincipal(c); ok {
		if err := h.sessions.Revoke(ctx, p.SessionID); err != nil {
			slog.WarnContext(ctx, "session_revoke_failed", "err", err)
		}
		h.audit.Dispatch(audit.Event{
			UserID: audit.UintPtr(p.UserID),
			Action: audit.ActionUserLogout,
			Entity: audit.EntityUser,
		})
	}
	h.sessions.ClearCookie(c.Writer)

	if wantsJSON(c) || strings.HasPrefix(c.Request.URL.Path, "/api/") {
		c.JSON(http.StatusOK, gin.H{"success": true, "redirect_url": afterLogoutPath})
		return
	}
	c.Redirect(http.StatusSeeOther, afterLogoutPath)
}

// --------- Helpers ---------

func (h *AuthHandler) startSession(c *gin.Context, user *models.User) bool {
	token, _, err := h.sessions.Issue(c.Request.Context(), user.ID)
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "session_issue_failed", "user_id", user.ID, "err", err)
		return false
	}
	h.sessions.SetCookie(c.Writer, token)
	return true
}

func (h *AuthHandler) loginFailed(c *gin.Context, asJSON bool, req LoginRequest, err error) {
	if asJSON {
		httperr.FromError(c, err)
		return
	}
	status, message := pageError(c, err)
	render(c, status, "login", gin.H{
		"Title":    "Login",
		"Error":    message,
		"Identity": req.identity(),
	})
}

func (h *AuthHandler) signupFailed(c *gin.Context, asJSON bool, req SignupRequest, err error) {
	if asJSON {
		httperr.FromError(c, err)
		return
	}
	status, message := pageError(c, err)
	render(c, status, "signup", gin.H{
		"Title":        "Sign up",
		"Error":        message,
		"FormName":     req.Name,
		"FormEmail":    req.Email,
		"FormUsername": req.Username,
	})
}
