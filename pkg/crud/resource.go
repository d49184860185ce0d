package crud

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/goliatone/go-crudform/pkg/model"
	"github.com/goliatone/go-crudform/pkg/orm"
	"github.com/goliatone/go-crudform/pkg/render"
)

// RelatedLookup resolves the mapped entity behind a relationship target
// table so foreign key selects can be populated from live rows.
type RelatedLookup interface {
	ByTable(table string) (*orm.Entity, bool)
}

// Config wires a Resource. Entity, Store, Builder, and Renderer are
// required.
type Config struct {
	Entity     *orm.Entity
	Lookup     RelatedLookup
	Store      Store
	Builder    *model.Builder
	Renderer   render.Renderer
	Decorators []model.Decorator

	// BasePath prefixes every generated endpoint, e.g. "/admin".
	BasePath string
}

// Resource binds one mapped entity to a store and a renderer and exposes
// the generated create, update, and delete surfaces for it.
type Resource struct {
	entity     *orm.Entity
	lookup     RelatedLookup
	store      Store
	builder    *model.Builder
	renderer   render.Renderer
	decorators []model.Decorator
	basePath   string
}

func NewResource(cfg Config) (*Resource, error) {
	if cfg.Entity == nil {
		return nil, errors.New("crud: resource requires an entity")
	}
	if cfg.Store == nil {
		return nil, errors.New("crud: resource requires a store")
	}
	if cfg.Builder == nil {
		return nil, errors.New("crud: resource requires a form builder")
	}
	if cfg.Renderer == nil {
		return nil, errors.New("crud: resource requires a renderer")
	}

	return &Resource{
		entity:     cfg.Entity,
		lookup:     cfg.Lookup,
		store:      cfg.Store,
		builder:    cfg.Builder,
		renderer:   cfg.Renderer,
		decorators: cfg.Decorators,
		basePath:   cfg.BasePath,
	}, nil
}

func (r *Resource) Entity() *orm.Entity { return r.entity }

func (r *Resource) Table() string { return r.entity.Table }

// Path returns the resource's collection endpoint.
func (r *Resource) Path() string {
	return r.basePath + "/" + r.entity.Table
}

func (r *Resource) List(filter map[string]any) ([]Row, error) {
	return r.store.List(r.entity, filter)
}

func (r *Resource) Get(key string) (Row, error) {
	pk, err := r.parseKey(key)
	if err != nil {
		return nil, err
	}
	return r.store.Get(r.entity, pk)
}

// Label renders a human readable handle for a row: the entity's label
// column when it carries a value, otherwise "<Entity> #<pk>".
func (r *Resource) Label(row Row) string {
	return rowLabel(r.entity, row)
}

// Key returns the row's primary key formatted for use in URLs and form
// values.
func (r *Resource) Key(row Row) string {
	return formatCell(row[r.entity.PrimaryKey.DBName])
}

// parseKey converts a key from its wire form back to the primary key's
// native type.
func (r *Resource) parseKey(raw string) (any, error) {
	switch r.entity.PrimaryKey.Kind {
	case orm.KindInt:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "crud: bad %s key %q", r.entity.Table, raw)
		}
		return n, nil
	case orm.KindUint:
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "crud: bad %s key %q", r.entity.Table, raw)
		}
		return n, nil
	default:
		return raw, nil
	}
}

// Options lists this resource's rows as select options, labeled by the
// entity's label column. A non empty query keeps only labels containing
// it; limit caps the result when positive.
func (r *Resource) Options(query string, limit int) ([]model.Option, error) {
	rows, err := r.List(nil)
	if err != nil {
		return nil, err
	}

	options := make([]model.Option, 0, len(rows))
	for _, row := range rows {
		label := r.Label(row)
		if query != "" && !containsFold(label, query) {
			continue
		}
		options = append(options, model.Option{Value: r.Key(row), Label: label})
		if limit > 0 && len(options) >= limit {
			break
		}
	}

	return options, nil
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case bool:
		if x {
			return "True"
		}
		return "False"
	case time.Time:
		return x.Format("2006-01-02 15:04")
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	default:
		return fmt.Sprintf("%v", x)
	}
}
