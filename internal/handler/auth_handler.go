package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"volunflow/internal/service"
)

// AuthHandler handles login and OTP endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginResponse is the successful login body.
type LoginResponse struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
	Token   string `json:"token"`
	Role    string `json:"role"`
}

// target pulls the account locator out of the request: email query param
// first, path id as the fallback.
func target(c echo.Context) (email, id string, ok bool) {
	email = c.QueryParam("email")
	id = c.Param("id")
	return email, id, email != "" || id != ""
}

// Login godoc
// @Summary Log in with email or account id
// @Tags auth
// @Produce json
// @Param email query string false "Account email"
// @Param password query string true "Password"
// @Param collection query string true "Account collection (users or admin)"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.MessageResponse
// @Failure 401 {object} errors.MessageResponse
// @Failure 404 {object} errors.MessageResponse
// @Router /auth/login [get]
func (h *AuthHandler) Login(c echo.Context) error {
	email, id, ok := target(c)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "Email or ID is required")
	}
	password := c.QueryParam("password")
	if password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Password is required")
	}

	res, err := h.authService.Login(c.Request().Context(), c.QueryParam("collection"), email, id, password)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Message: "Login successful",
		UserID:  res.UserID,
		Token:   res.Token,
		Role:    string(res.Role),
	})
}

// GenerateOTP godoc
// @Summary Generate and email a one-time code
// @Tags auth
// @Produce json
// @Param email query string false "Account email"
// @Param collection query string true "Account collection (users or admin)"
// @Success 200 {object} errors.MessageResponse
// @Failure 400 {object} errors.MessageResponse
// @Failure 404 {object} errors.MessageResponse
// @Router /auth/generate_otp [get]
func (h *AuthHandler) GenerateOTP(c echo.Context) error {
	email, id, ok := target(c)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "Email or ID is required")
	}

	if err := h.authService.GenerateOTP(c.Request().Context(), c.QueryParam("collection"), email, id); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "OTP sent successfully"})
}

// VerifyOTP godoc
// @Summary Verify a one-time code
// @Tags auth
// @Produce json
// @Param email query string false "Account email"
// @Param otp query int true "Submitted code"
// @Param delete query string false "Clear the stored code on success"
// @Param collection query string true "Account collection (users or admin)"
// @Success 200 {object} errors.MessageResponse
// @Failure 400 {object} errors.MessageResponse
// @Failure 404 {object} errors.MessageResponse
// @Router /auth/verify_otp [get]
func (h *AuthHandler) VerifyOTP(c echo.Context) error {
	email, id, ok := target(c)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "Email or ID is required")
	}
	otp, err := strconv.Atoi(c.QueryParam("otp"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid OTP")
	}
	clear := c.QueryParam("delete") != ""

	if err := h.authService.VerifyOTP(c.Request().Context(), c.QueryParam("collection"), email, id, otp, clear); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "OTP verified successfully"})
}
