package orm

import (
	"strings"
)

// DataKind is the normalized column kind used to pick widgets. It collapses
// dialect-specific column types into the small set the form pipeline cares
// about.
type DataKind string

const (
	KindBool     DataKind = "bool"
	KindInt      DataKind = "int"
	KindUint     DataKind = "uint"
	KindFloat    DataKind = "float"
	KindString   DataKind = "string"
	KindText     DataKind = "text"
	KindDate     DataKind = "date"
	KindTime     DataKind = "time"
	KindDateTime DataKind = "datetime"
	KindBytes    DataKind = "bytes"
)

// Reference describes the target of a belongs-to column.
type Reference struct {
	// Entity is the struct name of the referenced model.
	Entity string
	// Table is the referenced table.
	Table string
	// Column is the referenced primary key column.
	Column string
}

// Column is the introspected metadata for a single database column.
type Column struct {
	Name          string
	DBName        string
	Kind          DataKind
	PrimaryKey    bool
	AutoIncrement bool
	NotNull       bool
	Unique        bool
	HasDefault    bool
	Default       string
	Size          int
	Comment       string
	// Settings holds the parsed `crudform` struct tag (widget, hidden, ...).
	Settings map[string]string
	// Ref is non-nil when the column is a belongs-to foreign key.
	Ref *Reference
}

// IsForeignKey reports whether the column references another table.
func (c Column) IsForeignKey() bool {
	return c.Ref != nil
}

// Hidden reports whether the column was tagged out of generated forms.
func (c Column) Hidden() bool {
	_, ok := c.Settings["hidden"]
	return ok
}

// Widget returns the explicit widget override from the struct tag, if any.
func (c Column) Widget() string {
	return c.Settings["widget"]
}

// Entity is the introspected metadata for a registered model.
type Entity struct {
	// Name is the model struct name.
	Name string
	// Table is the mapped table name.
	Table string
	// PrimaryKey is the prioritized primary key column.
	PrimaryKey Column
	// Columns lists every mapped column in declaration order, primary key
	// included.
	Columns []Column
	// LabelColumn names the column used to describe a row to humans.
	LabelColumn string
	// OrderBy names the column rows are listed by.
	OrderBy string

	byDBName map[string]int
}

// Column looks up a column by db name.
func (e *Entity) Column(dbName string) (Column, bool) {
	idx, ok := e.byDBName[dbName]
	if !ok {
		return Column{}, false
	}
	return e.Columns[idx], true
}

// DataColumns returns every column except the primary key.
func (e *Entity) DataColumns() []Column {
	out := make([]Column, 0, len(e.Columns))
	for _, col := range e.Columns {
		if col.PrimaryKey {
			continue
		}
		out = append(out, col)
	}
	return out
}

// FirstDataColumn returns the first non-primary-key column, the default
// source for row labels and ordering.
func (e *Entity) FirstDataColumn() (Column, bool) {
	for _, col := range e.Columns {
		if !col.PrimaryKey {
			return col, true
		}
	}
	return Column{}, false
}

// PrettyName returns the table name formatted for headings ("car_brand"
// becomes "Car Brand").
func (e *Entity) PrettyName() string {
	return prettyWords(e.Table)
}

func prettyWords(name string) string {
	parts := strings.Split(name, "_")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		out = append(out, strings.ToUpper(part[:1])+part[1:])
	}
	return strings.Join(out, " ")
}

func normalizeKind(dataType string) DataKind {
	dt := strings.ToLower(strings.TrimSpace(dataType))
	switch {
	case dt == "bool" || strings.Contains(dt, "boolean"):
		return KindBool
	case dt == "uint":
		return KindUint
	case dt == "int" || strings.Contains(dt, "int"):
		return KindInt
	case dt == "float" || strings.Contains(dt, "decimal") || strings.Contains(dt, "numeric") ||
		strings.Contains(dt, "double") || strings.Contains(dt, "real"):
		return KindFloat
	case dt == "date":
		return KindDate
	// gorm maps time.Time fields to the "time" data type; a time-of-day
	// column needs a `crudform:"kind:time"` tag to disambiguate.
	case dt == "time" || dt == "datetime" || strings.Contains(dt, "timestamp"):
		return KindDateTime
	case dt == "bytes" || strings.Contains(dt, "blob") || strings.Contains(dt, "binary"):
		return KindBytes
	case strings.Contains(dt, "text") || strings.Contains(dt, "clob"):
		return KindText
	default:
		return KindString
	}
}

// parseSettings splits a `crudform:"widget:textarea;hidden"` tag into a map.
func parseSettings(tag string) map[string]string {
	tag = strings.TrimSpace(tag)
	if tag == "" || tag == "-" {
		return nil
	}
	out := map[string]string{}
	for _, part := range strings.Split(tag, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, _ := strings.Cut(part, ":")
		out[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(value)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
