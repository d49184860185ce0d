package uimeta

import (
	"github.com/goliatone/go-crudform/pkg/model"
)

// Decorator applies overlay overrides to built form models. It implements
// model.Decorator and runs after widget resolution so explicit widget
// overrides win.
type Decorator struct {
	store *Store
}

// NewDecorator wraps a store in a model.Decorator.
func NewDecorator(store *Store) *Decorator {
	return &Decorator{store: store}
}

// Decorate rewrites labels, widgets, placeholders and help text, and drops
// fields the overlay hides.
func (d *Decorator) Decorate(form *model.FormModel) error {
	if d == nil || d.store.Empty() || form == nil {
		return nil
	}
	table, ok := d.store.Table(form.Table)
	if !ok {
		return nil
	}

	if table.Title != "" {
		form.Title = table.Title
	}

	kept := form.Fields[:0]
	for _, field := range form.Fields {
		overrides, ok := table.Fields[field.Name]
		if !ok {
			kept = append(kept, field)
			continue
		}
		if overrides.Hidden {
			continue
		}
		if overrides.Label != "" {
			field.Label = overrides.Label
		}
		if overrides.Placeholder != "" {
			field.Placeholder = overrides.Placeholder
		}
		if overrides.Help != "" {
			field.Description = overrides.Help
		}
		if overrides.Widget != "" {
			if field.Metadata == nil {
				field.Metadata = make(map[string]string)
			}
			field.Metadata["widget"] = overrides.Widget
		}
		kept = append(kept, field)
	}
	form.Fields = kept
	return nil
}
