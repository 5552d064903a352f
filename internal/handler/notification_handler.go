package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"volunflow/internal/middleware"
	"volunflow/internal/model"
	"volunflow/internal/service"
	"volunflow/internal/validation"
)

// NotificationHandler handles the embedded notification list endpoints.
type NotificationHandler struct {
	notifications service.NotificationService
	validator     *validation.Validator
}

// NewNotificationHandler creates a new notification handler.
func NewNotificationHandler(notifications service.NotificationService, validator *validation.Validator) *NotificationHandler {
	return &NotificationHandler{notifications: notifications, validator: validator}
}

// notificationsRequest is the replace-list payload.
type notificationsRequest struct {
	Notifications []model.Notification `json:"notifications" validate:"required,dive"`
}

// List godoc
// @Summary Read an account's notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Account id"
// @Param collection query string true "Account collection (users or admin)"
// @Success 200 {array} model.Notification
// @Failure 400 {object} errors.MessageResponse
// @Failure 404 {object} errors.MessageResponse
// @Router /notifications/{id} [get]
func (h *NotificationHandler) List(c echo.Context) error {
	items, err := h.notifications.List(c.Request().Context(), c.QueryParam("collection"), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

// Update godoc
// @Summary Replace an account's notifications
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Account id"
// @Param collection query string true "Account collection (users or admin)"
// @Param request body notificationsRequest true "Full replacement list"
// @Success 200 {array} model.Notification
// @Failure 400 {object} errors.MessageResponse
// @Failure 404 {object} errors.MessageResponse
// @Router /notifications/{id} [patch]
func (h *NotificationHandler) Update(c echo.Context) error {
	payload, err := middleware.Payload(c)
	if err != nil {
		return err
	}

	var req notificationsRequest
	if err := validation.Decode(payload, &req); err != nil {
		return httpError(err)
	}
	if req.Notifications == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Notifications array is required")
	}
	if err := h.validator.Struct(req); err != nil {
		return httpError(err)
	}

	if err := h.notifications.Replace(c.Request().Context(), c.QueryParam("collection"), c.Param("id"), req.Notifications); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, req.Notifications)
}
