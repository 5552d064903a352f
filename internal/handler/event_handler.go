package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "volunflow/internal/errors"
	"volunflow/internal/middleware"
	"volunflow/internal/model"
	"volunflow/internal/service"
	"volunflow/internal/validation"
)

// eventCoercedFields are the event payload fields a form submission carries
// as JSON-encoded strings.
var eventCoercedFields = []string{"tags", "media", "volunteers", "approved"}

// EventHandler handles event resource endpoints.
type EventHandler struct {
	crud      service.CrudService
	validator *validation.Validator
}

// NewEventHandler creates a new event handler.
func NewEventHandler(crud service.CrudService, validator *validation.Validator) *EventHandler {
	return &EventHandler{crud: crud, validator: validator}
}

// CreateEventResponse is the successful event creation body.
type CreateEventResponse struct {
	Message string `json:"message"`
	EventID string `json:"event_id"`
}

// List godoc
// @Summary List events
// @Tags events
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Param tags query []string false "Match any of these tags"
// @Success 200 {object} service.Page
// @Failure 500 {object} errors.MessageResponse
// @Router /events [get]
func (h *EventHandler) List(c echo.Context) error {
	page, limit := pageParams(c)

	filter := bson.M{}
	if tags := c.QueryParams()["tags"]; len(tags) > 0 {
		filter["tags"] = bson.M{"$in": tags}
	}

	res, err := h.crud.ReadPage(c.Request().Context(), "events", filter, nil, page, limit)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, res)
}

// Get godoc
// @Summary Read one event
// @Tags events
// @Produce json
// @Param id path string true "Event id"
// @Success 200 {object} service.Page
// @Failure 400 {object} errors.MessageResponse
// @Failure 500 {object} errors.MessageResponse
// @Router /events/{id} [get]
func (h *EventHandler) Get(c echo.Context) error {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return httpError(apperrors.ErrInvalidID)
	}
	page, limit := pageParams(c)

	res, err := h.crud.ReadPage(c.Request().Context(), "events", bson.M{"_id": oid}, nil, page, limit)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, res)
}

// Create godoc
// @Summary Create an event
// @Tags events
// @Accept json
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param request body model.EventInput true "Event data"
// @Success 201 {object} CreateEventResponse
// @Failure 400 {object} errors.MessageResponse
// @Failure 500 {object} errors.MessageResponse
// @Router /events [post]
func (h *EventHandler) Create(c echo.Context) error {
	payload, err := middleware.Payload(c)
	if err != nil {
		return err
	}
	if err := validation.CoerceJSONStrings(payload, eventCoercedFields...); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var in model.EventInput
	if err := validation.Decode(payload, &in); err != nil {
		return httpError(err)
	}
	if err := h.validator.Struct(in); err != nil {
		return httpError(err)
	}

	res, err := h.crud.Create(c.Request().Context(), "events", in.Document(), "")
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, CreateEventResponse{
		Message: "Event created successfully",
		EventID: res.ID,
	})
}

// Update godoc
// @Summary Patch an event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event id"
// @Param request body model.EventPatch true "Fields to change"
// @Success 200 {object} errors.MessageResponse
// @Failure 400 {object} errors.MessageResponse
// @Failure 404 {object} errors.MessageResponse
// @Failure 500 {object} errors.MessageResponse
// @Router /events/{id} [patch]
func (h *EventHandler) Update(c echo.Context) error {
	payload, err := middleware.Payload(c)
	if err != nil {
		return err
	}
	// Events carry no credentials; a stray password field is dropped, not
	// rejected.
	delete(payload, "password")
	if err := validation.CoerceJSONStrings(payload, eventCoercedFields...); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var patch model.EventPatch
	if err := validation.Decode(payload, &patch); err != nil {
		return httpError(err)
	}
	if err := h.validator.Struct(patch); err != nil {
		return httpError(err)
	}

	if err := h.crud.Update(c.Request().Context(), "events", c.Param("id"), patch.SetFields()); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Event updated successfully"})
}

// Delete godoc
// @Summary Delete an event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event id"
// @Success 200 {object} errors.MessageResponse
// @Failure 400 {object} errors.MessageResponse
// @Failure 404 {object} errors.MessageResponse
// @Failure 500 {object} errors.MessageResponse
// @Router /events/{id} [delete]
func (h *EventHandler) Delete(c echo.Context) error {
	if err := h.crud.Delete(c.Request().Context(), "events", c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Event deleted successfully"})
}
