package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/altad3005/bet-cycling-friends-gateway/internal/core/domain"
	"github.com/altad3005/bet-cycling-friends-gateway/internal/core/ports"
	"github.com/altad3005/bet-cycling-friends-gateway/internal/core/services"
)

type AuthHandler struct {
	sessions     *services.SessionService
	logger       ports.LoggerPort
	metrics      ports.MetricsPort
	secureCookie bool
}

func NewAuthHandler(
	sessions *services.SessionService,
	logger ports.LoggerPort,
	metrics ports.MetricsPort,
	secureCookie bool,
) *AuthHandler {
	return &AuthHandler{
		sessions:     sessions,
		logger:       logger,
		metrics:      metrics,
		secureCookie: secureCookie,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"julien@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

type LoginResponse struct {
	Token    string       `json:"token"`
	User     *domain.User `json:"user"`
	Redirect string       `json:"redirect"`
}

type RegisterRequest struct {
	Pseudo   string `json:"pseudo" binding:"required" example:"JuJuLaFlèche"`
	Email    string `json:"email" binding:"required" example:"julien@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type MeResponse struct {
	User *domain.User `json:"user"`
}

type LogoutResponse struct {
	Redirect string `json:"redirect"`
}

// setSessionCookie dual-writes the token into the auth_token cookie so
// the route guard can read it without validating it.
func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AuthCookieName, token, int(services.SessionTTL.Seconds()), "/", "", h.secureCookie, true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AuthCookieName, "", -1, "/", "", h.secureCookie, true)
}

// @Summary Log in
// @Description Exchanges credentials for a session; the response asks the browser for a hard navigation to /leagues
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} LoginResponse "Session opened"
// @Failure 401 {object} errorResponse "Bad credentials"
// @Failure 422 {object} errorResponse "Malformed credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	token, user, err := h.sessions.Login(c.Request.Context(), services.Credentials{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		apiError(c, err)
		return
	}

	h.setSessionCookie(c, token)

	// Full navigation on purpose: the fresh page refetches every piece
	// of session-dependent state.
	c.JSON(http.StatusOK, LoginResponse{
		Token:    token,
		User:     user,
		Redirect: services.HomeRoute,
	})
}

// @Summary Register
// @Description Creates an account; no token is returned, the caller must then log in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Account data"
// @Success 201 {object} MessageResponse "Account created"
// @Failure 422 {object} errorResponse "Invalid registration data"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	err := h.sessions.Register(c.Request.Context(), services.Registration{
		Pseudo:   req.Pseudo,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		apiError(c, err)
		return
	}

	c.JSON(http.StatusCreated, MessageResponse{Message: "Account created, you can now log in"})
}

// @Summary Who am I
// @Description Validates the persisted token against the backend; an invalid session is purged and sent back to the landing route
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} MeResponse "Current user"
// @Failure 401 {object} LogoutResponse "Session invalid, token purged"
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	token := bearerToken(c)
	if token == "" {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.sessions.Validate(c.Request.Context(), token)
	if err != nil {
		h.logger.Warn("Session validation failed, purging token", map[string]interface{}{
			"ip":    c.ClientIP(),
			"error": err.Error(),
		})
		h.clearSessionCookie(c)
		c.JSON(http.StatusUnauthorized, LogoutResponse{Redirect: services.LandingRoute})
		return
	}

	c.JSON(http.StatusOK, MeResponse{User: user})
}

// @Summary Log out
// @Description Purges both persistence locations and sends the browser back to the landing route
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} LogoutResponse "Session closed"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	if token := bearerToken(c); token != "" {
		h.sessions.Logout(c.Request.Context(), token)
	}
	h.clearSessionCookie(c)

	c.JSON(http.StatusOK, LogoutResponse{Redirect: services.LandingRoute})
}
