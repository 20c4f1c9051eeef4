package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

// The secret gate must reject before any repository is touched, so a
// handler with nil repositories is safe for these cases.
func TestAdminReset_RejectsBadSecret(t *testing.T) {
	h := NewAdminHandler(nil, nil, "top-secret", testEventID, 100, 100, 0)
	e := echo.New()

	for name, header := range map[string]string{
		"missing": "",
		"wrong":   "not-the-secret",
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/reset", nil)
		if header != "" {
			req.Header.Set("x-admin-secret", header)
		}
		rec := httptest.NewRecorder()
		err := h.Reset(e.NewContext(req, rec))

		assert.NoError(t, err, name)
		assert.Equal(t, http.StatusForbidden, rec.Code, name)
	}
}
