package crud

import (
	"context"

	theme "github.com/goliatone/go-theme"
	"github.com/pkg/errors"

	"github.com/goliatone/go-crudform/pkg/model"
	"github.com/goliatone/go-crudform/pkg/render"
)

// RenderRequest carries per-request state into the rendered pages: values
// and errors from a rejected submission, hidden inputs such as CSRF
// tokens, and an optional theme.
type RenderRequest struct {
	Defaults   map[string]any
	Except     []string
	Values     map[string]any
	Errors     map[string][]string
	FormErrors []string
	Hidden     map[string]string
	Theme      *theme.RendererConfig
}

func (req RenderRequest) options() render.RenderOptions {
	return render.RenderOptions{
		Values:     req.Values,
		Errors:     req.Errors,
		FormErrors: req.FormErrors,
		Hidden:     req.Hidden,
		Theme:      req.Theme,
	}
}

// RenderCreate renders the create form.
func (r *Resource) RenderCreate(ctx context.Context, req RenderRequest) ([]byte, error) {
	form, err := r.CreateForm(req.Defaults)
	if err != nil {
		return nil, err
	}
	return r.renderer.Render(ctx, form, req.options())
}

// RenderUpdate renders the update form for one row. When the request
// carries no values the current row is loaded and used to prefill the
// controls.
func (r *Resource) RenderUpdate(ctx context.Context, key string, req RenderRequest) ([]byte, error) {
	form, err := r.UpdateForm(key, req.Except)
	if err != nil {
		return nil, err
	}

	opts := req.options()
	if opts.Values == nil {
		row, err := r.Get(key)
		if err != nil {
			return nil, err
		}
		opts.Values = row
	}

	return r.renderer.Render(ctx, form, opts)
}

// RenderDelete renders the row-select confirmation form.
func (r *Resource) RenderDelete(ctx context.Context, req RenderRequest) ([]byte, error) {
	form, err := r.DeleteForm()
	if err != nil {
		return nil, err
	}
	return r.renderer.Render(ctx, form, req.options())
}

// RenderTabs composes the create and delete forms and the row listing into
// a tabbed admin page for the entity. The renderer must implement
// render.TabsRenderer.
func (r *Resource) RenderTabs(ctx context.Context, req RenderRequest) ([]byte, error) {
	tr, ok := r.renderer.(render.TabsRenderer)
	if !ok {
		return nil, errors.Errorf("crud: renderer %q cannot render tab pages", r.renderer.Name())
	}

	create, err := r.RenderCreate(ctx, req)
	if err != nil {
		return nil, err
	}
	listing, err := r.RenderList(ctx, nil, req)
	if err != nil {
		return nil, err
	}
	del, err := r.RenderDelete(ctx, req)
	if err != nil {
		return nil, err
	}

	tabs := render.TabsModel{
		Entity: r.entity.Name,
		Title:  r.entity.PrettyName(),
		Tabs: []render.Tab{
			{ID: "create", Label: "Create", Body: create},
			{ID: "browse", Label: "Browse", Body: listing},
			{ID: "delete", Label: "Delete", Body: del},
		},
	}

	return tr.RenderTabs(ctx, tabs, req.options())
}

// RenderList renders the entity's rows with per-row edit and delete
// actions. The renderer must implement render.ListRenderer.
func (r *Resource) RenderList(ctx context.Context, filter map[string]any, req RenderRequest) ([]byte, error) {
	lr, ok := r.renderer.(render.ListRenderer)
	if !ok {
		return nil, errors.Errorf("crud: renderer %q cannot render listings", r.renderer.Name())
	}

	rows, err := r.List(filter)
	if err != nil {
		return nil, err
	}

	list := render.ListModel{
		Entity: r.entity.Name,
		Title:  r.entity.PrettyName(),
		Hidden: req.Hidden,
	}

	columns, err := r.listColumns()
	if err != nil {
		return nil, err
	}
	list.Columns = columns

	for _, row := range rows {
		key := r.Key(row)
		item := render.ListRow{
			Key:       key,
			EditURL:   r.Path() + "/" + key + "/edit",
			DeleteURL: r.Path() + "/" + key + "/delete",
		}
		for _, col := range list.Columns {
			item.Cells = append(item.Cells, formatCell(row[col.Name]))
		}
		list.Rows = append(list.Rows, item)
	}

	return lr.RenderList(ctx, list, req.options())
}

// listColumns selects the columns shown in listings. The candidate fields
// run through the decorator chain, so overlay-hidden columns and label
// overrides apply to the browse table just as they do to forms.
func (r *Resource) listColumns() ([]render.ListColumn, error) {
	form := model.FormModel{
		Entity: r.entity.Name,
		Table:  r.entity.Table,
	}
	for _, col := range r.entity.DataColumns() {
		if col.Hidden() {
			continue
		}
		form.Fields = append(form.Fields, model.Field{
			Name:  col.DBName,
			Label: r.builder.Label(col.DBName),
		})
	}

	for _, dec := range r.decorators {
		if err := dec.Decorate(&form); err != nil {
			return nil, errors.Wrap(err, "crud: decorate listing")
		}
	}

	columns := make([]render.ListColumn, 0, len(form.Fields))
	for _, field := range form.Fields {
		columns = append(columns, render.ListColumn{
			Name:  field.Name,
			Label: field.Label,
		})
	}
	return columns, nil
}
