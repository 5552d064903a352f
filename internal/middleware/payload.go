package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const payloadKey = "payload"

// Payload returns the canonical request body: a map built once at the
// boundary from JSON, form, or multipart input. Handlers never branch on
// content type themselves.
func Payload(c echo.Context) (map[string]any, error) {
	if m, ok := c.Get(payloadKey).(map[string]any); ok {
		return m, nil
	}
	m, err := parseBody(c)
	if err != nil {
		return nil, err
	}
	c.Set(payloadKey, m)
	return m, nil
}

func parseBody(c echo.Context) (map[string]any, error) {
	ct := c.Request().Header.Get(echo.HeaderContentType)

	if strings.HasPrefix(ct, echo.MIMEApplicationJSON) {
		m := map[string]any{}
		if c.Request().ContentLength == 0 {
			return m, nil
		}
		if err := json.NewDecoder(c.Request().Body).Decode(&m); err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
		}
		return m, nil
	}

	// Form and multipart bodies carry every value as a string; coercion of
	// JSON-encoded list fields happens later, per route.
	params, err := c.FormParams()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	m := make(map[string]any, len(params))
	for k, vs := range params {
		if len(vs) > 0 {
			m[k] = vs[0]
		}
	}
	return m, nil
}
