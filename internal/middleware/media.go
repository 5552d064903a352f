package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"volunflow/internal/media"
)

// mediaField is the multipart field name that carries file parts.
const mediaField = "media"

// MediaIntake parses the request body and, for multipart requests, filters
// and persists uploaded images before the handler runs. Stored filenames are
// appended to the payload's media list, which may itself have arrived as a
// JSON-encoded string. Any file failing the image filter rejects the whole
// request.
func MediaIntake(store *media.Storage) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ct := c.Request().Header.Get(echo.HeaderContentType)
			if !strings.HasPrefix(ct, echo.MIMEMultipartForm) {
				if _, err := Payload(c); err != nil {
					return err
				}
				return next(c)
			}

			form, err := c.MultipartForm()
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "Invalid multipart form")
			}

			payload := make(map[string]any, len(form.Value))
			for k, vs := range form.Value {
				if len(vs) > 0 {
					payload[k] = vs[0]
				}
			}

			files := form.File[mediaField]
			for _, fh := range files {
				if !media.Allowed(fh.Header.Get("Content-Type")) {
					return echo.NewHTTPError(http.StatusBadRequest, "File must be an image (JPEG, PNG, or GIF)")
				}
			}

			list := []any{}
			if s, ok := payload[mediaField].(string); ok {
				var decoded []any
				if err := json.Unmarshal([]byte(s), &decoded); err != nil {
					return echo.NewHTTPError(http.StatusBadRequest, "Invalid format for media")
				}
				list = decoded
			}

			for _, fh := range files {
				name, err := store.Save(fh)
				if err != nil {
					c.Logger().Error(err)
					return echo.NewHTTPError(http.StatusInternalServerError, "Error storing media")
				}
				list = append(list, name)
			}

			if len(list) > 0 || len(files) > 0 || payload[mediaField] != nil {
				payload[mediaField] = list
			}

			c.Set(payloadKey, payload)
			return next(c)
		}
	}
}
