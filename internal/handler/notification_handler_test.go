package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "volunflow/internal/errors"
	"volunflow/internal/model"
	"volunflow/internal/validation"
)

// MockNotificationService is a mock implementation of NotificationService.
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) List(ctx context.Context, collection, id string) ([]model.Notification, error) {
	args := m.Called(ctx, collection, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Notification), args.Error(1)
}

func (m *MockNotificationService) Replace(ctx context.Context, collection, id string, items []model.Notification) error {
	args := m.Called(ctx, collection, id, items)
	return args.Error(0)
}

func notificationContext(method, target, body string) (*httptest.ResponseRecorder, echo.Context) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("abc")
	return rec, c
}

func TestNotificationHandler_List(t *testing.T) {
	t.Run("returns the account's list", func(t *testing.T) {
		svc := new(MockNotificationService)
		h := NewNotificationHandler(svc, validation.New())
		items := []model.Notification{{Title: "Welcome", Date: "2026-01-01", Desc: "hello"}}
		svc.On("List", mock.Anything, "users", "abc").Return(items, nil)

		rec, c := notificationContext(http.MethodGet, "/notifications/abc?collection=users", "")

		require.NoError(t, h.List(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var body []model.Notification
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, items, body)
	})

	t.Run("missing collection maps to 400", func(t *testing.T) {
		svc := new(MockNotificationService)
		h := NewNotificationHandler(svc, validation.New())
		svc.On("List", mock.Anything, "", "abc").Return(nil, apperrors.ErrBadCollection)

		_, c := notificationContext(http.MethodGet, "/notifications/abc", "")

		err := h.List(c)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, he.Code)
	})
}

func TestNotificationHandler_Update(t *testing.T) {
	t.Run("replaces and echoes the list", func(t *testing.T) {
		svc := new(MockNotificationService)
		h := NewNotificationHandler(svc, validation.New())
		items := []model.Notification{{Title: "Shift moved", Date: "2026-02-01", Desc: "new time"}}
		svc.On("Replace", mock.Anything, "users", "abc", items).Return(nil)

		rec, c := notificationContext(http.MethodPatch, "/notifications/abc?collection=users",
			`{"notifications":[{"title":"Shift moved","date":"2026-02-01","desc":"new time"}]}`)

		require.NoError(t, h.Update(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("missing array maps to 400", func(t *testing.T) {
		svc := new(MockNotificationService)
		h := NewNotificationHandler(svc, validation.New())

		_, c := notificationContext(http.MethodPatch, "/notifications/abc?collection=users",
			`{"something":"else"}`)

		err := h.Update(c)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, he.Code)
		assert.Equal(t, "Notifications array is required", he.Message)
		svc.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid date in an entry is rejected", func(t *testing.T) {
		svc := new(MockNotificationService)
		h := NewNotificationHandler(svc, validation.New())

		_, c := notificationContext(http.MethodPatch, "/notifications/abc?collection=users",
			`{"notifications":[{"title":"Shift moved","date":"yesterday","desc":"new time"}]}`)

		err := h.Update(c)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, he.Code)

		body, ok := he.Message.(echo.Map)
		require.True(t, ok)
		fields, ok := body["error"].([]validation.FieldError)
		require.True(t, ok)
		require.Len(t, fields, 1)
		assert.Equal(t, "notifications[0].date", fields[0].Path)
		svc.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown id maps to 404", func(t *testing.T) {
		svc := new(MockNotificationService)
		h := NewNotificationHandler(svc, validation.New())
		svc.On("Replace", mock.Anything, "users", "abc", mock.Anything).
			Return(apperrors.ErrNotFound)

		_, c := notificationContext(http.MethodPatch, "/notifications/abc?collection=users",
			`{"notifications":[]}`)

		err := h.Update(c)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, he.Code)
	})
}
