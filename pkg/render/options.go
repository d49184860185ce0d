package render

import (
	theme "github.com/goliatone/go-theme"
)

// RenderOptions describe per-request data that renderers can use to
// customise their output without mutating the form model pipeline.
type RenderOptions struct {
	// Method overrides the HTTP method declared by the form model. Renderers
	// translate non-POST verbs into a POST submission plus a hidden _method
	// input, since browsers only submit GET and POST.
	Method string
	// Values pre-populates rendered controls keyed by column name. Update
	// forms pass the current row here.
	Values map[string]any
	// Errors surfaces server-side validation feedback keyed by column name.
	Errors map[string][]string
	// FormErrors carries messages not tied to a single column.
	FormErrors []string
	// Hidden lists extra hidden inputs to emit (CSRF tokens, method
	// overrides, row versions).
	Hidden map[string]string
	// Theme optionally carries a resolved go-theme renderer configuration;
	// the vanilla renderer emits its CSS variables and swaps asset URLs.
	Theme *theme.RendererConfig
}
