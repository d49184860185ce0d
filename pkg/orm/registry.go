package orm

import (
	"fmt"
	"sync"

	"github.com/apex/log"
	"gorm.io/gorm/schema"
)

// LabelColumner lets a model pick the column used to describe its rows in
// selects and listings. The default is the first non-primary-key column.
type LabelColumner interface {
	CrudLabelColumn() string
}

// OrderByer lets a model pick the column its rows are listed by. The default
// is the label column, falling back to the primary key.
type OrderByer interface {
	CrudOrderBy() string
}

// Registry introspects gorm models and stores the resulting entities keyed
// by table name. Foreign-key rendering needs the table lookup to find the
// referenced entity.
type Registry struct {
	mu      sync.RWMutex
	cache   *sync.Map
	namer   schema.Namer
	byTable map[string]*Entity
	tables  []string
}

// NewRegistry creates an empty registry using gorm's default naming strategy.
func NewRegistry() *Registry {
	return &Registry{
		cache:   &sync.Map{},
		namer:   schema.NamingStrategy{},
		byTable: make(map[string]*Entity),
	}
}

// Register parses the given models and adds them to the registry.
// Registering a model twice keeps the first entity and logs a warning.
func (r *Registry) Register(models ...any) error {
	for _, m := range models {
		if m == nil {
			return fmt.Errorf("orm: model is required")
		}
		entity, err := r.parse(m)
		if err != nil {
			return err
		}

		r.mu.Lock()
		if _, exists := r.byTable[entity.Table]; exists {
			r.mu.Unlock()
			log.Warnf("orm: model %s already registered for table %s, keeping first", entity.Name, entity.Table)
			continue
		}
		r.byTable[entity.Table] = entity
		r.tables = append(r.tables, entity.Table)
		r.mu.Unlock()
	}
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(models ...any) {
	if err := r.Register(models...); err != nil {
		panic(err)
	}
}

// ByTable returns the entity mapped to the given table.
func (r *Registry) ByTable(table string) (*Entity, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entity, ok := r.byTable[table]
	return entity, ok
}

// Entities returns the registered entities in registration order.
func (r *Registry) Entities() []*Entity {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Entity, 0, len(r.tables))
	for _, table := range r.tables {
		out = append(out, r.byTable[table])
	}
	return out
}

func (r *Registry) parse(model any) (*Entity, error) {
	sch, err := schema.Parse(model, r.cache, r.namer)
	if err != nil {
		return nil, fmt.Errorf("orm: parse model %T: %w", model, err)
	}
	if len(sch.PrimaryFields) == 0 {
		return nil, fmt.Errorf("orm: model %s has no primary key column", sch.Name)
	}

	entity := &Entity{
		Name:     sch.Name,
		Table:    sch.Table,
		byDBName: make(map[string]int),
	}

	// Foreign keys by owning column, belongs-to only. Has-many and
	// many-to-many are not rendered.
	refs := make(map[string]*Reference)
	for _, rel := range sch.Relationships.BelongsTo {
		for _, ref := range rel.References {
			if ref.ForeignKey == nil || ref.PrimaryKey == nil {
				continue
			}
			refs[ref.ForeignKey.DBName] = &Reference{
				Entity: rel.FieldSchema.Name,
				Table:  rel.FieldSchema.Table,
				Column: ref.PrimaryKey.DBName,
			}
		}
	}

	for _, field := range sch.Fields {
		if field.DBName == "" {
			// Relation struct fields and ignored fields carry no column.
			continue
		}

		settings := parseSettings(field.Tag.Get("crudform"))
		kind := normalizeKind(string(field.DataType))
		if override, ok := settings["kind"]; ok {
			kind = DataKind(override)
		}

		col := Column{
			Name:          field.Name,
			DBName:        field.DBName,
			Kind:          kind,
			PrimaryKey:    field.PrimaryKey,
			AutoIncrement: field.AutoIncrement,
			NotNull:       field.NotNull,
			Unique:        field.Unique,
			HasDefault:    field.HasDefaultValue,
			Default:       field.DefaultValue,
			Size:          field.Size,
			Comment:       field.Comment,
			Settings:      settings,
			Ref:           refs[field.DBName],
		}

		entity.byDBName[col.DBName] = len(entity.Columns)
		entity.Columns = append(entity.Columns, col)
		if field == sch.PrioritizedPrimaryField {
			entity.PrimaryKey = col
		}
	}

	if entity.PrimaryKey.DBName == "" {
		entity.PrimaryKey = entity.Columns[0]
	}

	entity.LabelColumn = resolveLabelColumn(model, entity)
	entity.OrderBy = resolveOrderBy(model, entity)

	return entity, nil
}

func resolveLabelColumn(model any, entity *Entity) string {
	if hook, ok := model.(LabelColumner); ok {
		if name := hook.CrudLabelColumn(); name != "" {
			return name
		}
	}
	if col, ok := entity.FirstDataColumn(); ok {
		return col.DBName
	}
	return entity.PrimaryKey.DBName
}

func resolveOrderBy(model any, entity *Entity) string {
	if hook, ok := model.(OrderByer); ok {
		if name := hook.CrudOrderBy(); name != "" {
			return name
		}
	}
	return entity.LabelColumn
}
