package render

import "context"

// Tab is a single pane in a CRUD tab strip. Body carries pre-rendered form
// markup.
type Tab struct {
	ID    string
	Label string
	Body  []byte
}

// TabsModel describes the create/update/delete tab page for one entity.
type TabsModel struct {
	Entity string
	Title  string
	Tabs   []Tab
}

// ListColumn is a column header in a rendered row listing.
type ListColumn struct {
	Name  string
	Label string
}

// ListRow is a single row in a rendered listing, with its action targets.
type ListRow struct {
	Key       string
	Cells     []string
	EditURL   string
	DeleteURL string
}

// ListModel describes the row listing for one entity.
type ListModel struct {
	Entity  string
	Title   string
	Columns []ListColumn
	Rows    []ListRow
	// Hidden inputs for the per-row delete forms (CSRF and friends).
	Hidden map[string]string
}

// TabsRenderer is implemented by renderers that can compose per-intent forms
// into a tabbed page.
type TabsRenderer interface {
	RenderTabs(ctx context.Context, tabs TabsModel, options RenderOptions) ([]byte, error)
}

// ListRenderer is implemented by renderers that can produce row listings
// with per-row edit/delete actions.
type ListRenderer interface {
	RenderList(ctx context.Context, list ListModel, options RenderOptions) ([]byte, error)
}
