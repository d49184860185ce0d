package template

// TemplateRenderer is the seam renderers rely on for template execution.
// The built-in implementation is backed by pongo2; tests can substitute a
// fake without touching the renderer code.
type TemplateRenderer interface {
	RenderTemplate(name string, data any) (string, error)
	RenderString(content string, data any) (string, error)
}
