package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "volunflow/internal/errors"
	"volunflow/internal/service"
)

// AdminHandler handles reads from the admin collection.
type AdminHandler struct {
	crud service.CrudService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(crud service.CrudService) *AdminHandler {
	return &AdminHandler{crud: crud}
}

// Get godoc
// @Summary Read one admin account
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Admin id"
// @Success 200 {object} service.Page
// @Failure 400 {object} errors.MessageResponse
// @Failure 500 {object} errors.MessageResponse
// @Router /admin/{id} [get]
func (h *AdminHandler) Get(c echo.Context) error {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return httpError(apperrors.ErrInvalidID)
	}
	page, limit := pageParams(c)

	res, err := h.crud.ReadPage(c.Request().Context(), "admin", bson.M{"_id": oid}, bson.M{"password": 0}, page, limit)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, res)
}
