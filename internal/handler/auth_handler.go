package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/student-records/internal/logger"
	"github.com/stemsi/student-records/internal/middleware"
	"github.com/stemsi/student-records/internal/model"
	"github.com/stemsi/student-records/internal/response"
	"github.com/stemsi/student-records/internal/service"
	"github.com/stemsi/student-records/internal/validator"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService *service.AuthService
	log         zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		log:         logger.Component(log, "auth_handler"),
	}
}

// Register godoc
// POST /api/register
// Creates an account and returns it with a bearer token.
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.CredentialsRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	account, token, err := h.authService.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err, "register")
		return
	}

	response.Success(c, http.StatusCreated, model.AuthResponse{
		Message: "User registered successfully",
		User:    account.Summary(),
		Token:   token,
	})
}

// Login godoc
// POST /api/login
// Verifies credentials and returns a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.CredentialsRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	account, token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err, "login")
		return
	}

	response.Success(c, http.StatusOK, model.AuthResponse{
		Message: "Login successful",
		User:    account.Summary(),
		Token:   token,
	})
}

// ChangePassword godoc
// POST /api/change-password
// Replaces the caller's password. The existing token stays valid.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.ChangePasswordRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), accountID, req.CurrentPassword, req.NewPassword); err != nil {
		h.fail(c, err, "change password")
		return
	}

	response.Success(c, http.StatusOK, response.Message{Message: "Password changed successfully"})
}

// Me godoc
// GET /api/me
// Returns the profile of the currently authenticated account.
func (h *AuthHandler) Me(c *gin.Context) {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	account, err := h.authService.Profile(c.Request.Context(), accountID)
	if err != nil {
		h.fail(c, err, "profile")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": account.Summary()})
}

// fail maps an auth service error to its response. Unknown errors are logged.
func (h *AuthHandler) fail(c *gin.Context, err error, op string) {
	switch {
	case errors.Is(err, service.ErrCredentialsRequired):
		response.Fail(c, http.StatusBadRequest, response.ErrCredentialsRequired)
	case errors.Is(err, service.ErrInvalidEmail):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidEmail)
	case errors.Is(err, service.ErrPasswordTooShort):
		response.Fail(c, http.StatusBadRequest, response.ErrPasswordTooShort)
	case errors.Is(err, service.ErrPasswordTooLong):
		response.Fail(c, http.StatusBadRequest, response.ErrPasswordTooLong)
	case errors.Is(err, service.ErrPasswordsRequired):
		response.Fail(c, http.StatusBadRequest, response.ErrPasswordsRequired)
	case errors.Is(err, service.ErrEmailTaken):
		response.Fail(c, http.StatusConflict, response.ErrEmailTaken)
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
	case errors.Is(err, service.ErrCurrentPasswordIncorrect):
		response.Fail(c, http.StatusUnauthorized, response.ErrCurrentPasswordIncorrect)
	case errors.Is(err, service.ErrAccountNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrAccountNotFound)
	default:
		h.log.Error().Err(err).
			Str("op", op).
			Str("request_id", response.GetRequestID(c)).
			Msg("Auth request failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
