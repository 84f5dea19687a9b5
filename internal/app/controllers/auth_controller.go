// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dmwangi/schooltransit/internal/app/models/dto"
	"github.com/dmwangi/schooltransit/internal/app/services"
	"github.com/dmwangi/schooltransit/internal/middleware"
	"github.com/dmwangi/schooltransit/internal/pkg/auth"
)

// refreshCookieName is the httpOnly cookie carrying the refresh token.
const refreshCookieName = "refreshToken"

// refreshCookiePath scopes the cookie to the auth endpoints only.
const refreshCookiePath = "/api/auth"

// AuthController handles authentication related operations
type AuthController struct {
	authService  services.IAuthService
	jwtService   *auth.JWTService
	secureCookie bool
	logger       zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.IAuthService, jwtService *auth.JWTService, secureCookie bool, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService:  authService,
		jwtService:   jwtService,
		secureCookie: secureCookie,
		logger:       logger,
	}
}

func (c *AuthController) setRefreshCookie(ctx *gin.Context, refreshToken string) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(refreshCookieName, refreshToken,
		c.jwtService.RefreshTokenMaxAge(), refreshCookiePath, "", c.secureCookie, true)
}

func (c *AuthController) clearRefreshCookie(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(refreshCookieName, "", -1, refreshCookiePath, "", c.secureCookie, true)
}

// Register handles user registration
// @Summary Register a new user
// @Description Creates a new account. Driver and Bus Assistant roles must name an active number plate.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "User registration information"
// @Success 201 {object} dto.APIResponse{data=dto.RegisterData} "Registration successful."
// @Failure 400 {object} dto.APIResponse "Validation failed or plate unavailable"
// @Failure 409 {object} dto.APIResponse "Email or phone number already registered"
// @Router /api/auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid registration request payload")
		ctx.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(dto.HandleValidationError(err)))
		return
	}

	data, err := c.authService.Register(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err, "Failed to register user.")
		return
	}

	c.logger.Info().Str("email", data.Email).Str("role", data.Role).Msg("User registered")
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse("Registration successful.", data))
}

// Login handles user login
// @Summary Log in
// @Description Verifies credentials and returns an access/refresh token pair. The refresh token is also set as an httpOnly cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.SessionData} "Login successful."
// @Failure 401 {object} dto.APIResponse "Invalid login credentials"
// @Router /api/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(dto.HandleValidationError(err)))
		return
	}

	session, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err, "Failed to login user.")
		return
	}

	c.setRefreshCookie(ctx, session.RefreshToken)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Login successful.", session))
}

// Refresh handles token refresh
// @Summary Refresh the session
// @Description Exchanges a valid refresh token (body field or cookie) for a new token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshRequest false "Optional body refresh token"
// @Success 200 {object} dto.APIResponse{data=dto.SessionData} "Token refreshed successfully."
// @Failure 401 {object} dto.APIResponse "Missing, invalid or expired refresh token"
// @Router /api/auth/refresh [post]
func (c *AuthController) Refresh(ctx *gin.Context) {
	var req dto.RefreshRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && ctx.Request.ContentLength > 0 {
		ctx.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(dto.HandleValidationError(err)))
		return
	}

	refreshToken := req.RefreshToken
	if refreshToken == "" {
		refreshToken, _ = ctx.Cookie(refreshCookieName)
	}
	if refreshToken == "" {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Refresh token is missing."))
		return
	}

	session, err := c.authService.RefreshSession(ctx.Request.Context(), refreshToken)
	if err != nil {
		middleware.HandleAPIError(ctx, err, "Failed to refresh session.")
		return
	}

	c.setRefreshCookie(ctx, session.RefreshToken)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Token refreshed successfully.", session))
}

// Me returns the authenticated caller
// @Summary Current user claims
// @Description Echoes the decoded access token claims without touching the database.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ClaimsData} "Authenticated user retrieved."
// @Failure 401 {object} dto.APIResponse "Missing or invalid access token"
// @Router /api/auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	userID := ctx.GetInt64(middleware.ContextUserID)

	claims := dto.ClaimsData{
		Sub:   formatUserID(userID),
		Email: ctx.GetString(middleware.ContextEmail),
		Role:  ctx.GetString(middleware.ContextRole),
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Authenticated user retrieved.", claims))
}

// Logout clears the refresh cookie
// @Summary Log out
// @Description Clears the refresh cookie. Outstanding tokens simply expire.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.APIResponse "Logout successful."
// @Router /api/auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	c.clearRefreshCookie(ctx)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Logout successful.", nil))
}

// GetNumberPlates lists the active fleet plates
// @Summary List active number plates
// @Description Returns the plates selectable during Driver/Bus Assistant registration.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.NumberPlatesData} "Number plates retrieved successfully."
// @Router /api/auth/number-plates [get]
func (c *AuthController) GetNumberPlates(ctx *gin.Context) {
	plates, err := c.authService.ListNumberPlates(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err, "Failed to fetch number plates.")
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Number plates retrieved successfully.",
		dto.NumberPlatesData{NumberPlates: plates}))
}
