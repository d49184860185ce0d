package webapi

import (
	"net/url"

	"github.com/labstack/echo/v4"
)

func formValues(ctx echo.Context) (url.Values, error) {
	if err := ctx.Request().ParseForm(); err != nil {
		return nil, err
	}
	return ctx.Request().PostForm, nil
}

// submittedValues echoes the raw submission back into the re-rendered form
// so the user does not lose their input. Control tokens stay out.
func submittedValues(form url.Values) map[string]any {
	values := make(map[string]any, len(form))
	for name := range form {
		if name == csrfField || name == "_method" {
			continue
		}
		values[name] = form.Get(name)
	}
	return values
}
