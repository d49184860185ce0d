// Package crudform generates CRUD admin forms for gorm mapped models. It
// introspects column metadata, maps each column to a form control through a
// widget registry, renders the result with a pluggable renderer, and
// persists submissions back through gorm.
package crudform

import (
	"context"
	"io/fs"
	"sort"

	theme "github.com/goliatone/go-theme"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/goliatone/go-crudform/pkg/crud"
	"github.com/goliatone/go-crudform/pkg/crud/webapi"
	"github.com/goliatone/go-crudform/pkg/model"
	"github.com/goliatone/go-crudform/pkg/orm"
	"github.com/goliatone/go-crudform/pkg/render"
	"github.com/goliatone/go-crudform/pkg/renderers/vanilla"
	"github.com/goliatone/go-crudform/pkg/uimeta"
	"github.com/goliatone/go-crudform/pkg/widgets"
)

// RenderRequest aliases crud.RenderRequest for callers driving rendering
// through the facade.
type RenderRequest = crud.RenderRequest

// Admin owns the mapped entities and their generated CRUD surfaces.
type Admin struct {
	db         *gorm.DB
	registry   *orm.Registry
	builder    *model.Builder
	widgets    *widgets.Registry
	renderer   render.Renderer
	renderers  *render.Registry
	decorators []model.Decorator
	theme      *theme.RendererConfig
	basePath   string
	resources  map[string]*crud.Resource
	store      crud.Store
}

// Option configures an Admin.
type Option func(*Admin) error

// WithRenderer swaps the renderer used for every resource. Defaults to the
// vanilla HTML renderer.
func WithRenderer(r render.Renderer) Option {
	return func(a *Admin) error {
		if r == nil {
			return errors.New("crudform: renderer is nil")
		}
		a.renderer = r
		return nil
	}
}

// WithBasePath sets the mount path prefix for generated endpoints.
// Defaults to "/admin".
func WithBasePath(base string) Option {
	return func(a *Admin) error {
		a.basePath = base
		return nil
	}
}

// WithDecorators appends form decorators run after each form is built.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(a *Admin) error {
		a.decorators = append(a.decorators, decorators...)
		return nil
	}
}

// WithUIMeta loads YAML UI metadata from fsys and applies it as a
// decorator: per table titles and per column labels, help text, widget
// overrides, and hidden flags.
func WithUIMeta(fsys fs.FS) Option {
	return func(a *Admin) error {
		store, err := uimeta.LoadFS(fsys)
		if err != nil {
			return err
		}
		a.decorators = append(a.decorators, uimeta.NewDecorator(store))
		return nil
	}
}

// WithLabeler overrides label derivation for generated fields.
func WithLabeler(labeler model.Labeler) Option {
	return func(a *Admin) error {
		if labeler == nil {
			return errors.New("crudform: labeler is nil")
		}
		a.builder = model.NewBuilder(model.Options{Labeler: labeler})
		return nil
	}
}

// WithWidgetRegistry replaces the widget matching rules.
func WithWidgetRegistry(reg *widgets.Registry) Option {
	return func(a *Admin) error {
		if reg == nil {
			return errors.New("crudform: widget registry is nil")
		}
		a.widgets = reg
		return nil
	}
}

// WithTheme attaches a resolved go-theme configuration; renderers emit its
// CSS variables and asset URLs.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(a *Admin) error {
		a.theme = cfg
		return nil
	}
}

// WithStore replaces the gorm backed store, mainly for tests.
func WithStore(store crud.Store) Option {
	return func(a *Admin) error {
		if store == nil {
			return errors.New("crudform: store is nil")
		}
		a.store = store
		return nil
	}
}

// New builds an Admin over db and registers the given models.
func New(db *gorm.DB, models []any, options ...Option) (*Admin, error) {
	a := &Admin{
		db:        db,
		registry:  orm.NewRegistry(),
		builder:   model.NewBuilder(),
		widgets:   widgets.NewRegistry(),
		basePath:  "/admin",
		resources: map[string]*crud.Resource{},
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	if a.renderer == nil {
		r, err := vanilla.New(vanilla.WithWidgetRegistry(a.widgets))
		if err != nil {
			return nil, err
		}
		a.renderer = r
	}
	a.renderers = render.NewRegistry()
	if err := a.renderers.Register(a.renderer); err != nil {
		return nil, err
	}
	if a.store == nil {
		if db == nil {
			return nil, errors.New("crudform: db is required")
		}
		a.store = crud.NewGormStore(db)
	}

	if err := a.Register(models...); err != nil {
		return nil, err
	}

	return a, nil
}

// Register maps additional models and creates their resources.
func (a *Admin) Register(models ...any) error {
	if err := a.registry.Register(models...); err != nil {
		return err
	}

	for _, entity := range a.registry.Entities() {
		if _, ok := a.resources[entity.Table]; ok {
			continue
		}

		decorators := append([]model.Decorator{a.widgets}, a.decorators...)

		res, err := crud.NewResource(crud.Config{
			Entity:     entity,
			Lookup:     a.registry,
			Store:      a.store,
			Builder:    a.builder,
			Renderer:   a.renderer,
			Decorators: decorators,
			BasePath:   a.basePath,
		})
		if err != nil {
			return err
		}

		a.resources[entity.Table] = res
	}

	return nil
}

// Resource returns the resource mounted for a table.
func (a *Admin) Resource(table string) (*crud.Resource, bool) {
	res, ok := a.resources[table]
	return res, ok
}

// Resources lists the mounted resources ordered by table name.
func (a *Admin) Resources() []*crud.Resource {
	out := make([]*crud.Resource, 0, len(a.resources))
	for _, res := range a.resources {
		out = append(out, res)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Table() < out[j].Table()
	})
	return out
}

// BasePath reports the mount path prefix.
func (a *Admin) BasePath() string {
	return a.basePath
}

// Renderer looks up a registered renderer by name.
func (a *Admin) Renderer(name string) (render.Renderer, error) {
	return a.renderers.Get(name)
}

// RendererNames lists the registered renderers.
func (a *Admin) RendererNames() []string {
	return a.renderers.List()
}

// Mount registers the admin HTTP surface on e at the configured base path.
func (a *Admin) Mount(e *echo.Echo) {
	controller := webapi.NewAdminController(a, a.theme)
	controller.RegisterRoutes(e.Group(a.basePath))
}

// RenderCreateForm renders the create form for a mapped model's table. It
// is the simplest entry point for callers that just want markup.
func (a *Admin) RenderCreateForm(ctx context.Context, table string, req RenderRequest) ([]byte, error) {
	res, ok := a.Resource(table)
	if !ok {
		return nil, errors.Errorf("crudform: no resource for table %q", table)
	}
	return res.RenderCreate(ctx, req)
}
