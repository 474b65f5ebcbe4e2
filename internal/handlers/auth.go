package handlers

import (
	"net/http"
	"time"

	"minifeed/internal/auth"
	dom "minifeed/internal/domain"
	"minifeed/internal/dto"
	"minifeed/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CookieOptions describes the session cookie. TTL doubles as session expiry.
type CookieOptions struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

// AuthHandler handles login, register and logout.
type AuthHandler struct {
	sessions *auth.Sessions
	userSvc  *service.UserService
	cookie   CookieOptions
}

// NewAuthHandler returns a new AuthHandler.
func NewAuthHandler(sessions *auth.Sessions, userSvc *service.UserService, cookie CookieOptions) *AuthHandler {
	return &AuthHandler{sessions: sessions, userSvc: userSvc, cookie: cookie}
}

// Login godoc
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.LoginRequest  true  "Credentials"
// @Success      200   {object}  dto.AuthResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		writeBindError(c, err)
		return
	}
	user, err := h.userSvc.ValidateCredentials(c.Request.Context(), req.Name, req.Credential)
	if err != nil {
		writeError(c, err)
		return
	}
	h.startSession(c, user.ID)
	c.JSON(http.StatusOK, dto.AuthResponse{OK: true, User: userToResponse(user)})
}

// Register godoc
// @Summary      Register
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RegisterRequest  true  "Credentials"
// @Success      201   {object}  dto.AuthResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		writeBindError(c, err)
		return
	}
	user, err := h.userSvc.Register(c.Request.Context(), req.Name, req.Credential)
	if err != nil {
		writeError(c, err)
		return
	}
	h.startSession(c, user.ID)
	c.JSON(http.StatusCreated, dto.AuthResponse{OK: true, User: userToResponse(user)})
}

// Logout godoc
// @Summary      Logout
// @Tags         auth
// @Success      204
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(h.cookie.Name); err == nil && token != "" {
		h.sessions.Unbind(token)
	}
	h.setCookie(c, "", -1)
	c.Status(http.StatusNoContent)
}

// Me godoc
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	id, ok := auth.UserIDFromContext(c)
	if !ok {
		writeError(c, dom.ErrUnauthenticated)
		return
	}
	user, ok := h.userSvc.Get(id)
	if !ok {
		writeError(c, dom.ErrUnauthenticated)
		return
	}
	c.JSON(http.StatusOK, userToResponse(user))
}

// startSession binds a fresh token to userID and drops the caller's previous one.
func (h *AuthHandler) startSession(c *gin.Context, userID dom.UserID) {
	if old, err := c.Cookie(h.cookie.Name); err == nil && old != "" {
		h.sessions.Unbind(old)
	}
	token := uuid.NewString()
	h.sessions.Bind(token, userID)
	h.setCookie(c, token, int(h.cookie.TTL.Seconds()))
}

func (h *AuthHandler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, value, maxAge, "/", "", h.cookie.Secure, true)
}

func userToResponse(u dom.User) dto.UserResponse {
	return dto.UserResponse{ID: u.ID, Name: u.Name}
}
