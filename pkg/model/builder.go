package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-crudform/pkg/orm"
)

// Builder converts introspected entities into form models.
type Builder struct {
	opts Options
}

// NewBuilder creates a Builder with the supplied options.
func NewBuilder(options ...Options) *Builder {
	opts := defaultOptions()
	if len(options) > 0 && options[0].Labeler != nil {
		opts.Labeler = options[0].Labeler
	}
	return &Builder{opts: opts}
}

// Build transforms an entity into a FormModel for the requested intent.
// The primary key column is never rendered; update forms additionally skip
// foreign-key columns, and delete forms carry no data fields at all.
func (b *Builder) Build(entity *orm.Entity, req BuildRequest) (FormModel, error) {
	if entity == nil {
		return FormModel{}, fmt.Errorf("model: entity is required")
	}

	intent := req.Intent
	if intent == "" {
		intent = IntentCreate
	}
	method := req.Method
	if method == "" {
		method = "POST"
	}

	form := FormModel{
		Entity:      entity.Name,
		Table:       entity.Table,
		Intent:      intent,
		Endpoint:    req.Endpoint,
		Method:      strings.ToUpper(method),
		Title:       fmt.Sprintf("%s %s", titleForIntent(intent), entity.PrettyName()),
		SubmitLabel: fmt.Sprintf("%s %s", titleForIntent(intent), entity.PrettyName()),
	}

	if intent == IntentDelete {
		return form, nil
	}

	skip := make(map[string]struct{}, len(req.Except)+len(req.Defaults))
	for _, name := range req.Except {
		skip[name] = struct{}{}
	}
	for _, name := range req.Defaults {
		skip[name] = struct{}{}
	}

	for _, col := range entity.DataColumns() {
		if col.Hidden() {
			continue
		}
		if _, ok := skip[col.DBName]; ok {
			continue
		}
		if intent == IntentUpdate && col.IsForeignKey() {
			continue
		}
		form.Fields = append(form.Fields, b.fieldFromColumn(col))
	}

	return form, nil
}

// Label derives a display label for a column name with the configured
// labeler.
func (b *Builder) Label(name string) string {
	return b.opts.Labeler(name)
}

func (b *Builder) fieldFromColumn(col orm.Column) Field {
	field := Field{
		Name:        col.DBName,
		Type:        fieldTypeForKind(col.Kind),
		Required:    col.NotNull && !col.HasDefault,
		Label:       b.opts.Labeler(col.DBName),
		Description: col.Comment,
		Default:     defaultForColumn(col),
	}

	if widget := col.Widget(); widget != "" {
		field.Metadata = map[string]string{"widget": widget}
	}

	if col.Ref != nil {
		field.Relationship = &Relationship{
			Kind:         RelationshipBelongsTo,
			Entity:       col.Ref.Entity,
			Target:       col.Ref.Table,
			TargetColumn: col.Ref.Column,
		}
	}

	if field.Required {
		field.Validations = append(field.Validations, ValidationRule{Kind: ValidationRuleRequired})
	}
	if col.Size > 0 && (field.Type == FieldTypeString || field.Type == FieldTypeText) {
		field.Validations = append(field.Validations, ValidationRule{
			Kind:   ValidationRuleMaxLength,
			Params: map[string]string{"value": strconv.Itoa(col.Size)},
		})
	}

	return field
}

func fieldTypeForKind(kind orm.DataKind) FieldType {
	switch kind {
	case orm.KindBool:
		return FieldTypeBoolean
	case orm.KindInt, orm.KindUint:
		return FieldTypeInteger
	case orm.KindFloat:
		return FieldTypeNumber
	case orm.KindDate:
		return FieldTypeDate
	case orm.KindTime:
		return FieldTypeTime
	case orm.KindDateTime:
		return FieldTypeDateTime
	case orm.KindText:
		return FieldTypeText
	default:
		return FieldTypeString
	}
}

// defaultForColumn seeds the rendered control value: the schema default when
// one is declared, otherwise zero for numeric columns so number inputs start
// at 0 rather than empty.
func defaultForColumn(col orm.Column) any {
	if col.HasDefault && col.Default != "" {
		raw := strings.Trim(col.Default, "'\"")
		switch col.Kind {
		case orm.KindInt, orm.KindUint:
			if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
				return n
			}
		case orm.KindFloat:
			if f, err := strconv.ParseFloat(raw, 64); err == nil {
				return f
			}
		case orm.KindBool:
			if v, err := strconv.ParseBool(raw); err == nil {
				return v
			}
		default:
			return raw
		}
		return raw
	}

	switch col.Kind {
	case orm.KindInt, orm.KindUint:
		return int64(0)
	case orm.KindFloat:
		return float64(0)
	default:
		return nil
	}
}

func titleForIntent(intent Intent) string {
	switch intent {
	case IntentUpdate:
		return "Update"
	case IntentDelete:
		return "Delete"
	default:
		return "Create"
	}
}
