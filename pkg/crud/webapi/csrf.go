package webapi

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const (
	csrfCookie = "crudform_csrf"
	csrfField  = "_csrf"
)

// ensureCSRF returns the session's CSRF token, minting one into a cookie
// when the request carries none.
func ensureCSRF(c echo.Context) string {
	if cookie, err := c.Cookie(csrfCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	token := uuid.NewString()
	c.SetCookie(&http.Cookie{
		Name:     csrfCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return token
}

// checkCSRF verifies that a mutating request echoes the cookie token back
// in its form body.
func checkCSRF(c echo.Context) error {
	cookie, err := c.Cookie(csrfCookie)
	if err != nil || cookie.Value == "" {
		return errors.New("webapi: missing csrf cookie")
	}
	if c.FormValue(csrfField) != cookie.Value {
		return errors.New("webapi: csrf token mismatch")
	}
	return nil
}
