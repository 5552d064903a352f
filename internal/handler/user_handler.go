package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "volunflow/internal/errors"
	"volunflow/internal/middleware"
	"volunflow/internal/model"
	"volunflow/internal/service"
	"volunflow/internal/validation"
)

// userCoercedFields are the user payload fields a form submission carries as
// JSON-encoded strings.
var userCoercedFields = []string{"tags", "media", "notifications", "rating", "approved"}

// UserHandler handles user resource endpoints.
type UserHandler struct {
	crud        service.CrudService
	userService service.UserService
	validator   *validation.Validator
}

// NewUserHandler creates a new user handler.
func NewUserHandler(crud service.CrudService, userService service.UserService, validator *validation.Validator) *UserHandler {
	return &UserHandler{crud: crud, userService: userService, validator: validator}
}

// RegisterResponse is the successful registration body.
type RegisterResponse struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
	Token   string `json:"token"`
}

// List godoc
// @Summary List users
// @Tags users
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Param type query string false "Filter by account type"
// @Param approved query bool false "Filter by approval state"
// @Success 200 {object} service.Page
// @Failure 500 {object} errors.MessageResponse
// @Router /users [get]
func (h *UserHandler) List(c echo.Context) error {
	page, limit := pageParams(c)

	filter := bson.M{}
	if t := c.QueryParam("type"); t != "" {
		filter["type"] = t
	}
	if a := c.QueryParam("approved"); a != "" {
		approved, err := strconv.ParseBool(a)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid value for approved")
		}
		filter["approved"] = approved
	}

	res, err := h.crud.ReadPage(c.Request().Context(), "users", filter, bson.M{"password": 0}, page, limit)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, res)
}

// Get godoc
// @Summary Read one user
// @Tags users
// @Produce json
// @Param id path string true "User id"
// @Success 200 {object} service.Page
// @Failure 400 {object} errors.MessageResponse
// @Failure 500 {object} errors.MessageResponse
// @Router /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return httpError(apperrors.ErrInvalidID)
	}
	page, limit := pageParams(c)

	res, err := h.crud.ReadPage(c.Request().Context(), "users", bson.M{"_id": oid}, bson.M{"password": 0}, page, limit)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, res)
}

// Create godoc
// @Summary Register a user
// @Tags users
// @Accept json
// @Accept mpfd
// @Produce json
// @Param request body model.UserInput true "Registration data"
// @Success 201 {object} RegisterResponse
// @Failure 400 {object} errors.MessageResponse
// @Failure 500 {object} errors.MessageResponse
// @Router /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	payload, err := middleware.Payload(c)
	if err != nil {
		return err
	}
	if err := validation.CoerceJSONStrings(payload, userCoercedFields...); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var in model.UserInput
	if err := validation.Decode(payload, &in); err != nil {
		return httpError(err)
	}
	if err := h.validator.Struct(in); err != nil {
		return httpError(err)
	}

	res, err := h.userService.Register(c.Request().Context(), in)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, RegisterResponse{
		Message: "User created successfully",
		UserID:  res.ID,
		Token:   res.Token,
	})
}

// Update godoc
// @Summary Patch a user
// @Tags users
// @Accept json
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path string true "User id"
// @Param request body model.UserPatch true "Fields to change"
// @Success 200 {object} errors.MessageResponse
// @Failure 400 {object} errors.MessageResponse
// @Failure 404 {object} errors.MessageResponse
// @Failure 500 {object} errors.MessageResponse
// @Router /users/{id} [patch]
func (h *UserHandler) Update(c echo.Context) error {
	payload, err := middleware.Payload(c)
	if err != nil {
		return err
	}
	if _, ok := payload["password"]; ok {
		return echo.NewHTTPError(http.StatusBadRequest, "Password update is not allowed")
	}
	if err := validation.CoerceJSONStrings(payload, userCoercedFields...); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var patch model.UserPatch
	if err := validation.Decode(payload, &patch); err != nil {
		return httpError(err)
	}
	if err := h.validator.Struct(patch); err != nil {
		return httpError(err)
	}

	res, err := h.userService.Update(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return httpError(err)
	}

	body := echo.Map{"message": "User updated successfully"}
	if res.Token != "" {
		body["token"] = res.Token
	}
	return c.JSON(http.StatusOK, body)
}

// Delete godoc
// @Summary Delete a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User id"
// @Success 200 {object} errors.MessageResponse
// @Failure 400 {object} errors.MessageResponse
// @Failure 404 {object} errors.MessageResponse
// @Failure 500 {object} errors.MessageResponse
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.crud.Delete(c.Request().Context(), "users", c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "User deleted successfully"})
}
