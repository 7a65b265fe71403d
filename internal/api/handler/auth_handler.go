package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/marketloop/storefront-api/internal/api/metrics"
	"github.com/marketloop/storefront-api/internal/core/domain"
	"github.com/marketloop/storefront-api/internal/core/ports"
)

// AuthHandler handles HTTP requests for account operations.
type AuthHandler struct {
	service ports.AuthService
	log     zerolog.Logger
}

func NewAuthHandler(service ports.AuthService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{service: service, log: log}
}

// Register creates a new customer account.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  messageResponse
// @Failure      409   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid payload"})
	}

	user, err := h.service.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Address:  req.Address,
		Answer:   req.Answer,
	})
	if err != nil {
		if ve, ok := domain.AsValidation(err); ok {
			return c.JSON(http.StatusBadRequest, messageResponse{Message: ve.Message})
		}
		if errors.Is(err, domain.ErrUserExists) {
			return c.JSON(http.StatusConflict, messageResponse{Message: "Already registered, please login"})
		}
		h.log.Error().Err(err).Msg("registration failed")
		return c.JSON(http.StatusInternalServerError, messageResponse{Message: "Error in Registration"})
	}

	metrics.RegistrationsTotal.Inc()
	return c.JSON(http.StatusCreated, registerResponse{
		Success: true,
		Message: "User Registered Successfully",
		User:    user,
	})
}

// Login authenticates an account and returns a session token.
//
// A registered email with a wrong password is a soft fail: HTTP 200 with
// success=false and "Invalid Password" — deliberately not a 404, unlike an
// unregistered email.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      404   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid payload"})
	}

	result, err := h.service.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			return c.JSON(http.StatusNotFound, messageResponse{Message: "Invalid email or password"})
		case errors.Is(err, domain.ErrUserNotFound):
			metrics.LoginsTotal.WithLabelValues("not_registered").Inc()
			return c.JSON(http.StatusNotFound, messageResponse{Message: "Email is not registerd"})
		default:
			metrics.LoginsTotal.WithLabelValues("error").Inc()
			h.log.Error().Err(err).Msg("login failed")
			return c.JSON(http.StatusInternalServerError, messageResponse{Message: "Error in login"})
		}
	}

	if result.InvalidPassword {
		metrics.LoginsTotal.WithLabelValues("invalid_password").Inc()
		return c.JSON(http.StatusOK, messageResponse{Message: "Invalid Password"})
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{
		Success: true,
		Message: "login successfully",
		Token:   result.Token,
		User:    result.User,
	})
}

// ForgotPassword resets an account's password against its security answer.
//
// @Summary      Reset password via security answer
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      forgotPasswordRequest  true  "Recovery details"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /api/auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid payload"})
	}

	err := h.service.ForgotPassword(c.Request().Context(), ports.ForgotPasswordInput{
		Email:       req.Email,
		Answer:      req.Answer,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		if ve, ok := domain.AsValidation(err); ok {
			return c.JSON(http.StatusBadRequest, messageResponse{Message: ve.Message})
		}
		if errors.Is(err, domain.ErrWrongEmailOrAnswer) {
			return c.JSON(http.StatusNotFound, messageResponse{Message: "Wrong Email Or Answer"})
		}
		h.log.Error().Err(err).Msg("password reset failed")
		return c.JSON(http.StatusInternalServerError, messageResponse{Message: "Something went wrong"})
	}

	metrics.PasswordResetsTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "Password Reset Successfully"})
}

// UpdateProfile applies a partial update to the authenticated account.
// Omitted fields keep their stored values.
//
// @Summary      Update the authenticated account's profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Fields to update"
// @Success      200   {object}  updateProfileResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /api/auth/profile [put]
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid payload"})
	}

	updated, err := h.service.UpdateProfile(c.Request().Context(), userID, ports.UpdateProfileInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		if ve, ok := domain.AsValidation(err); ok {
			return c.JSON(http.StatusBadRequest, messageResponse{Message: ve.Message})
		}
		h.log.Error().Err(err).Str("user_id", userID).Msg("profile update failed")
		return c.JSON(http.StatusInternalServerError, messageResponse{Message: "Error While Update Profile"})
	}

	metrics.ProfileUpdatesTotal.Inc()
	return c.JSON(http.StatusOK, updateProfileResponse{
		Success:     true,
		Message:     "Profile Updated Successfully",
		UpdatedUser: updated,
	})
}
