package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/accounts/internal/account/http/dto"
	"github.com/allisson/accounts/internal/account/usecase"
	apperrors "github.com/allisson/accounts/internal/errors"
	"github.com/allisson/accounts/internal/httputil"
	customValidation "github.com/allisson/accounts/internal/validation"
)

// Response messages.
const (
	msgSignup         = "User created successfully"
	msgLogin          = "Logged in successfully"
	msgLogout         = "Logged out successfully"
	msgVerifyEmail    = "Email verified successfully"
	msgForgotPassword = "If an account exists for this email, a password reset link has been sent"
	msgResetPassword  = "Password reset successfully"
)

// AccountHandler handles the account HTTP API.
type AccountHandler struct {
	accountUseCase usecase.AccountUseCase
	cookie         CookieConfig
	logger         *slog.Logger
}

// NewAccountHandler creates a new account handler with required dependencies.
func NewAccountHandler(
	accountUseCase usecase.AccountUseCase,
	cookie CookieConfig,
	logger *slog.Logger,
) *AccountHandler {
	return &AccountHandler{
		accountUseCase: accountUseCase,
		cookie:         cookie,
		logger:         logger,
	}
}

// RegisterRoutes mounts the account routes on the given group.
func (h *AccountHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/signup", h.SignupHandler)
	group.POST("/login", h.LoginHandler)
	group.POST("/logout", h.LogoutHandler)
	group.POST("/verify-email", h.VerifyEmailHandler)
	group.POST("/forgot-password", h.ForgotPasswordHandler)
	group.POST("/reset-password/:token", h.ResetPasswordHandler)
	group.GET("/check-auth", SessionMiddleware(h.accountUseCase, h.cookie, h.logger), h.CheckAuthHandler)
}

// SignupHandler registers an account and signs it in.
// POST /auth/signup - Returns 201 Created with the user and sets the session cookie.
func (h *AccountHandler) SignupHandler(c *gin.Context) {
	var req dto.SignupRequest
	if !h.bind(c, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	output, err := h.accountUseCase.Signup(c.Request.Context(), dto.ToSignupInput(req))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.cookie.set(c, output.Token)
	c.JSON(http.StatusCreated, dto.NewUserEnvelope(msgSignup, output.Profile))
}

// LoginHandler checks credentials and signs the account in.
// POST /auth/login - Returns 200 OK with the user and sets the session cookie.
func (h *AccountHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest
	if !h.bind(c, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	output, err := h.accountUseCase.Login(c.Request.Context(), dto.ToLoginInput(req))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.cookie.set(c, output.Token)
	c.JSON(http.StatusOK, dto.NewUserEnvelope(msgLogin, output.Profile))
}

// LogoutHandler clears the session cookie.
// POST /auth/logout - Always returns 200 OK.
func (h *AccountHandler) LogoutHandler(c *gin.Context) {
	if err := h.accountUseCase.Logout(c.Request.Context()); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.cookie.clear(c)
	c.JSON(http.StatusOK, dto.NewMessageResponse(msgLogout))
}

// VerifyEmailHandler consumes an email verification code.
// POST /auth/verify-email - Returns 200 OK with the verified user.
func (h *AccountHandler) VerifyEmailHandler(c *gin.Context) {
	var req dto.VerifyEmailRequest
	if !h.bind(c, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	profile, err := h.accountUseCase.VerifyEmail(c.Request.Context(), dto.ToVerifyEmailInput(req))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserEnvelope(msgVerifyEmail, profile))
}

// ForgotPasswordHandler emails a password reset link.
// POST /auth/forgot-password - Returns the same 200 OK whether or not the email is registered.
func (h *AccountHandler) ForgotPasswordHandler(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if !h.bind(c, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.accountUseCase.RequestPasswordRecovery(c.Request.Context(), req.Email); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewMessageResponse(msgForgotPassword))
}

// ResetPasswordHandler consumes a recovery token and replaces the password.
// POST /auth/reset-password/:token - Returns 200 OK. The caller is not signed in.
func (h *AccountHandler) ResetPasswordHandler(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !h.bind(c, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	input := dto.ToResetPasswordInput(c.Param("token"), req)
	if err := h.accountUseCase.ResetPassword(c.Request.Context(), input); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewMessageResponse(msgResetPassword))
}

// CheckAuthHandler returns the profile resolved by SessionMiddleware.
// GET /auth/check-auth - Returns 200 OK with the current user.
func (h *AccountHandler) CheckAuthHandler(c *gin.Context) {
	profile, ok := GetAccount(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserEnvelope("", profile))
}

func (h *AccountHandler) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return false
	}
	return true
}
