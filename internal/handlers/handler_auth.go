package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rendaplus/rendaplus_backend/internal/core/domain"
	portssvc "github.com/rendaplus/rendaplus_backend/internal/core/ports/services"
	"github.com/rendaplus/rendaplus_backend/internal/dto"
	"github.com/rendaplus/rendaplus_backend/internal/middleware"
	"github.com/rendaplus/rendaplus_backend/internal/platform/config"
)

// authHandler handles registration, login and token rotation.
type authHandler struct {
	cfg        *config.Config
	accountSvc portssvc.AccountSvcFacade
	authSvc    portssvc.AuthSvcFacade
}

func newAuthHandler(cfg *config.Config, accountSvc portssvc.AccountSvcFacade, authSvc portssvc.AuthSvcFacade) *authHandler {
	return &authHandler{
		cfg:        cfg,
		accountSvc: accountSvc,
		authSvc:    authSvc,
	}
}

// registerAuthRoutes registers the public authentication routes.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := newAuthHandler(cfg, services.Account, services.Auth)

	auth := r.Group("/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
		auth.POST("/refresh", h.refresh)
		auth.POST("/logout", h.logout)
	}
}

// register godoc
// @Summary Register a new account
// @Description Creates a member account; an optional referral code links the new account to its recruiter permanently
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   account body dto.RegisterAccountRequest true "Registration details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input or unknown referral code"
// @Failure 409 {object} map[string]string "Email already registered"
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RegisterAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.accountSvc.RegisterAccount(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "Failed to register account")
		return
	}

	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// login godoc
// @Summary Log in
// @Description Verifies credentials and issues an access token; the refresh token travels in an HTTP-only cookie
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   credentials body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.authSvc.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, logger, err, "Failed to authenticate")
		return
	}

	h.issueTokens(c, logger, account)
}

// refresh godoc
// @Summary Rotate tokens
// @Description Exchanges a valid refresh token cookie for a fresh access token and a rotated refresh token
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   request body dto.RefreshRequest true "Account asking for rotation"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} map[string]string "Missing, invalid or expired refresh token"
// @Router /auth/refresh [post]
func (h *authHandler) refresh(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	raw, err := c.Cookie(h.cfg.RefreshTokenCookieName)
	if err != nil || raw == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token missing"})
		return
	}

	account, err := h.authSvc.ValidateRefreshToken(c.Request.Context(), req.AccountID, raw)
	if err != nil {
		respondError(c, logger, err, "Failed to validate refresh token")
		return
	}

	h.issueTokens(c, logger, account)
}

// logout godoc
// @Summary Log out
// @Description Invalidates the stored refresh token and clears the cookie
// @Tags auth
// @Produce  json
// @Success 204 "Logged out"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *authHandler) logout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	// Logout is best-effort: a missing cookie or unknown account still clears
	// the client side.
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err == nil && req.AccountID != "" {
		if err := h.authSvc.ClearRefreshToken(c.Request.Context(), req.AccountID); err != nil {
			logger.Warn("Failed to clear refresh token", slog.String("error", err.Error()))
		}
	}

	h.setRefreshCookie(c, "", -1)
	c.Status(http.StatusNoContent)
}

// issueTokens generates both tokens and writes the login response, with the
// refresh token going out only as an HTTP-only cookie.
func (h *authHandler) issueTokens(c *gin.Context, logger *slog.Logger, account *domain.Account) {
	accessToken, expiresAt, err := h.authSvc.GenerateAccessToken(c.Request.Context(), account)
	if err != nil {
		respondError(c, logger, err, "Failed to issue access token")
		return
	}

	refreshToken, refreshExpiresAt, err := h.authSvc.GenerateRefreshToken(c.Request.Context(), account)
	if err != nil {
		respondError(c, logger, err, "Failed to issue refresh token")
		return
	}

	h.setRefreshCookie(c, refreshToken, int(time.Until(refreshExpiresAt).Seconds()))

	logger.Info("tokens issued", slog.String("accountID", account.AccountID))
	c.JSON(http.StatusOK, dto.LoginResponse{
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
		Account:     dto.ToAccountResponse(account),
	})
}

func (h *authHandler) setRefreshCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(
		h.cfg.RefreshTokenCookieName,
		value,
		maxAge,
		h.cfg.RefreshTokenCookiePath,
		"",
		h.cfg.IsProduction, // secure only over HTTPS
		true,               // HTTP-only
	)
}
