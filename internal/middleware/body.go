package middleware

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/labstack/echo/v4"
)

// leerBody decodes the request body into a generic map for pre-handler
// validation and puts the bytes back so the handler can still bind it.  A
// missing or non-JSON body yields an empty map; whether that is acceptable
// is the handler's concern.
func leerBody(c echo.Context) map[string]any {
	datos := map[string]any{}
	req := c.Request()
	if req.Body == nil {
		return datos
	}
	raw, err := io.ReadAll(req.Body)
	if err != nil {
		return datos
	}
	req.Body = io.NopCloser(bytes.NewReader(raw))
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &datos)
	}
	return datos
}
