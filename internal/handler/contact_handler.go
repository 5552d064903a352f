package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"volunflow/internal/mail"
	"volunflow/internal/middleware"
)

// ContactHandler forwards contact-form submissions to the platform inbox.
type ContactHandler struct {
	notifier mail.Notifier
}

// NewContactHandler creates a new contact handler.
func NewContactHandler(notifier mail.Notifier) *ContactHandler {
	return &ContactHandler{notifier: notifier}
}

// Submit godoc
// @Summary Submit the contact form
// @Tags contact
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Param name formData string true "Sender name"
// @Param email formData string true "Sender email"
// @Param number formData string false "Sender phone number"
// @Param message formData string true "Message body"
// @Success 200 {object} errors.MessageResponse
// @Failure 400 {object} errors.MessageResponse
// @Router /contact [post]
func (h *ContactHandler) Submit(c echo.Context) error {
	payload, err := middleware.Payload(c)
	if err != nil {
		return err
	}

	name, _ := payload["name"].(string)
	email, _ := payload["email"].(string)
	number, _ := payload["number"].(string)
	message, _ := payload["message"].(string)
	if name == "" || email == "" || message == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Name, email and message are required")
	}

	h.notifier.SendContact(name, email, number, message)
	return c.JSON(http.StatusOK, echo.Map{"message": "Email sent successfully"})
}
