package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-crudform/pkg/model"
)

// Built-in widget identifiers exposed by the registry.
const (
	WidgetInput         = "input"
	WidgetTextarea      = "textarea"
	WidgetNumber        = "number"
	WidgetDecimal       = "decimal"
	WidgetBooleanSelect = "boolean-select"
	WidgetSelect        = "select"
	WidgetDate          = "date"
	WidgetTime          = "time"
	WidgetDateTime      = "datetime"
)

// Matcher decides whether a widget should handle the supplied field.
type Matcher func(field model.Field) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects widgets for fields based on explicit hints or registered
// matchers. Higher priority wins; ties fall back to registration order.
// Fields nothing matches resolve to the plain text input.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in widget matchers
// registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a widget matcher with the provided name and priority. Higher
// priority values take precedence.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget name for a field. Explicit hints (struct tag or
// overlay metadata) are honoured before matcher evaluation.
func (r *Registry) Resolve(field model.Field) string {
	if explicit := explicitWidget(field); explicit != "" {
		return explicit
	}
	if r == nil {
		return WidgetInput
	}
	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()

	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.name
		}
	}
	return WidgetInput
}

// Decorate implements model.Decorator, stamping the resolved widget into
// Metadata["widget"] for every field, preserving existing values.
func (r *Registry) Decorate(form *model.FormModel) error {
	if r == nil || form == nil {
		return nil
	}
	for idx := range form.Fields {
		field := &form.Fields[idx]
		widget := r.Resolve(*field)
		if field.Metadata == nil {
			field.Metadata = make(map[string]string)
		}
		if field.Metadata["widget"] == "" {
			field.Metadata["widget"] = widget
		}
	}
	return nil
}

func explicitWidget(field model.Field) string {
	if field.Metadata == nil {
		return ""
	}
	return strings.TrimSpace(field.Metadata["widget"])
}

func (r *Registry) registerBuiltins() {
	r.Register(WidgetSelect, 90, func(field model.Field) bool {
		return field.Relationship != nil || len(field.Options) > 0
	})

	r.Register(WidgetBooleanSelect, 80, func(field model.Field) bool {
		return field.Type == model.FieldTypeBoolean
	})

	r.Register(WidgetNumber, 70, func(field model.Field) bool {
		return field.Type == model.FieldTypeInteger
	})

	r.Register(WidgetDecimal, 60, func(field model.Field) bool {
		return field.Type == model.FieldTypeNumber
	})

	r.Register(WidgetDateTime, 50, func(field model.Field) bool {
		return field.Type == model.FieldTypeDateTime
	})

	r.Register(WidgetDate, 50, func(field model.Field) bool {
		return field.Type == model.FieldTypeDate
	})

	r.Register(WidgetTime, 50, func(field model.Field) bool {
		return field.Type == model.FieldTypeTime
	})

	r.Register(WidgetTextarea, 40, func(field model.Field) bool {
		return field.Type == model.FieldTypeText
	})
}
