package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-crudform/pkg/model"
	"github.com/goliatone/go-crudform/pkg/render"
	rendertemplate "github.com/goliatone/go-crudform/pkg/render/template"
	"github.com/goliatone/go-crudform/pkg/render/template/pongo2tpl"
	"github.com/goliatone/go-crudform/pkg/widgets"
)

const timePartSuffix = render.TimePartSuffix

// Option customises the renderer configuration.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	widgetRegistry   *widgets.Registry
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templateFS = files
		}
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithWidgetRegistry overrides the widget registry used to pick controls.
func WithWidgetRegistry(registry *widgets.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.widgetRegistry = registry
		}
	}
}

// Renderer produces dependency-free HTML for generated forms, tab pages and
// row listings.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	fields    *fieldRenderer
}

var (
	_ render.Renderer     = (*Renderer)(nil)
	_ render.TabsRenderer = (*Renderer)(nil)
	_ render.ListRenderer = (*Renderer)(nil)
)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	templates := cfg.templateRenderer
	if templates == nil {
		engine, err := pongo2tpl.New(pongo2tpl.WithFS(cfg.templateFS))
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		templates = engine
	}

	return &Renderer{
		templates: templates,
		fields:    newFieldRenderer(cfg.widgetRegistry),
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render converts one form model into HTML.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, options render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, fmt.Errorf("vanilla renderer: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	method, hidden := resolveMethod(form, options)

	controls := make([]string, 0, len(form.Fields))
	for _, field := range form.Fields {
		value := field.Default
		if options.Values != nil {
			if v, ok := options.Values[field.Name]; ok {
				value = v
			}
		}
		controls = append(controls, r.fields.render(field, value, options.Errors[field.Name]))
	}

	seed := make([]string, 0, len(hidden))
	for name := range hidden {
		seed = append(seed, name)
	}
	sort.Strings(seed)

	data := map[string]any{
		"form_id":      formID(form.Table, string(form.Intent), seed),
		"title":        form.Title,
		"method":       method,
		"endpoint":     form.Endpoint,
		"submit_label": form.SubmitLabel,
		"controls":     controls,
		"hidden":       render.SortedHiddenFields(hidden),
		"form_errors":  options.FormErrors,
		"classes":      chromeClasses(),
		"css_vars":     themeCSSVars(options.Theme),
	}

	out, err := r.templates.RenderTemplate("templates/form.tmpl", data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render form: %w", err)
	}
	return []byte(out), nil
}

// RenderTabs composes pre-rendered forms into the create/update/delete tab
// page.
func (r *Renderer) RenderTabs(ctx context.Context, tabs render.TabsModel, options render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, fmt.Errorf("vanilla renderer: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	panes := make([]map[string]any, 0, len(tabs.Tabs))
	for _, tab := range tabs.Tabs {
		panes = append(panes, map[string]any{
			"ID":    tab.ID,
			"Label": tab.Label,
			"Body":  string(tab.Body),
		})
	}

	data := map[string]any{
		"entity":  tabs.Entity,
		"title":   tabs.Title,
		"tabs":    panes,
		"classes": chromeClasses(),
	}

	out, err := r.templates.RenderTemplate("templates/tabs.tmpl", data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render tabs: %w", err)
	}
	return []byte(out), nil
}

// RenderList renders the row listing with per-row edit and delete actions.
func (r *Renderer) RenderList(ctx context.Context, list render.ListModel, options render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, fmt.Errorf("vanilla renderer: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data := map[string]any{
		"entity":  list.Entity,
		"title":   list.Title,
		"columns": list.Columns,
		"rows":    list.Rows,
		"hidden":  render.SortedHiddenFields(list.Hidden),
		"classes": chromeClasses(),
	}

	out, err := r.templates.RenderTemplate("templates/list.tmpl", data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render list: %w", err)
	}
	return []byte(out), nil
}

// resolveMethod translates non-POST verbs into a POST submission plus the
// hidden _method input, since browser forms only speak GET and POST.
func resolveMethod(form model.FormModel, options render.RenderOptions) (string, map[string]string) {
	method := strings.ToUpper(strings.TrimSpace(options.Method))
	if method == "" {
		method = form.Method
	}
	if method == "" {
		method = "POST"
	}

	hidden := options.Hidden
	if method != "GET" && method != "POST" {
		hidden = render.MergeHiddenFields(hidden, render.MethodOverride(method))
		method = "POST"
	}
	return method, hidden
}

func chromeClasses() map[string]string {
	return map[string]string{
		"form":    string(ClassForm),
		"header":  string(ClassHeader),
		"grid":    string(ClassGrid),
		"field":   string(ClassField),
		"actions": string(ClassActions),
		"errors":  string(ClassErrors),
		"tabs":    string(ClassTabs),
		"list":    string(ClassList),
	}
}

// themeCSSVars flattens a resolved go-theme configuration into a :root CSS
// block appended after the form.
func themeCSSVars(cfg *theme.RendererConfig) string {
	if cfg == nil || len(cfg.CSSVars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(cfg.CSSVars))
	for key := range cfg.CSSVars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(cfg.CSSVars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}
