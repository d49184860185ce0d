package vanilla

import (
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-crudform/pkg/model"
	"github.com/goliatone/go-crudform/pkg/widgets"
)

// fieldRenderer builds the markup for a single control. The surrounding
// chrome (label, description, inline errors) follows the same structure for
// every widget.
type fieldRenderer struct {
	widgets  *widgets.Registry
	sanitize *bluemonday.Policy
}

func newFieldRenderer(registry *widgets.Registry) *fieldRenderer {
	if registry == nil {
		registry = widgets.NewRegistry()
	}
	return &fieldRenderer{
		widgets:  registry,
		sanitize: bluemonday.StrictPolicy(),
	}
}

func (r *fieldRenderer) render(field model.Field, value any, errs []string) string {
	widget := r.widgets.Resolve(field)

	var control string
	switch widget {
	case widgets.WidgetTextarea:
		control = renderTextarea(field, value)
	case widgets.WidgetNumber:
		control = renderNumber(field, value, "1")
	case widgets.WidgetDecimal:
		control = renderNumber(field, value, "0.1")
	case widgets.WidgetBooleanSelect:
		control = renderBooleanSelect(field, value)
	case widgets.WidgetSelect:
		control = renderSelect(field, value)
	case widgets.WidgetDate:
		control = renderScalarInput(field, "date", formatDate(value))
	case widgets.WidgetTime:
		control = renderScalarInput(field, "time", formatTimeOfDay(value))
	case widgets.WidgetDateTime:
		control = renderDateTime(field, value)
	default:
		control = renderScalarInput(field, "text", formatString(value))
	}

	return r.wrapControl(field, widget, control, errs)
}

func (r *fieldRenderer) wrapControl(field model.Field, widget, control string, errs []string) string {
	var b strings.Builder
	b.Grow(len(control) + 256)

	b.WriteString(`<div class="`)
	b.WriteString(string(ClassField))
	b.WriteString(`" data-widget="`)
	b.WriteString(html.EscapeString(widget))
	b.WriteString(`"`)
	if rel := field.Relationship; rel != nil {
		b.WriteString(` data-relationship-target="`)
		b.WriteString(html.EscapeString(rel.Target))
		b.WriteString(`"`)
	}
	b.WriteString(">\n")

	if field.Label != "" {
		b.WriteString(`  <label for="`)
		b.WriteString(controlID(field.Name))
		b.WriteString(`">`)
		b.WriteString(html.EscapeString(field.Label))
		if field.Required {
			b.WriteString(` *`)
		}
		b.WriteString("</label>\n")
	}

	b.WriteString("  ")
	b.WriteString(control)
	b.WriteString("\n")

	if desc := strings.TrimSpace(field.Description); desc != "" {
		b.WriteString(`  <small>`)
		b.WriteString(r.sanitize.Sanitize(desc))
		b.WriteString("</small>\n")
	}

	if len(errs) > 0 {
		b.WriteString(`  <ul class="`)
		b.WriteString(string(ClassErrors))
		b.WriteString("\">\n")
		for _, msg := range errs {
			b.WriteString("    <li>")
			b.WriteString(html.EscapeString(msg))
			b.WriteString("</li>\n")
		}
		b.WriteString("  </ul>\n")
	}

	b.WriteString("</div>")
	return b.String()
}

func renderScalarInput(field model.Field, inputType, value string) string {
	var b strings.Builder
	b.WriteString(`<input type="`)
	b.WriteString(inputType)
	b.WriteString(`" id="`)
	b.WriteString(controlID(field.Name))
	b.WriteString(`" name="`)
	b.WriteString(html.EscapeString(field.Name))
	b.WriteString(`"`)
	if value != "" {
		b.WriteString(` value="`)
		b.WriteString(html.EscapeString(value))
		b.WriteString(`"`)
	}
	if limit := maxLength(field); limit > 0 && inputType == "text" {
		b.WriteString(` maxlength="`)
		b.WriteString(strconv.Itoa(limit))
		b.WriteString(`"`)
	}
	if field.Placeholder != "" {
		b.WriteString(` placeholder="`)
		b.WriteString(html.EscapeString(field.Placeholder))
		b.WriteString(`"`)
	}
	if field.Required {
		b.WriteString(` required`)
	}
	b.WriteString(">")
	return b.String()
}

func renderNumber(field model.Field, value any, step string) string {
	var b strings.Builder
	b.WriteString(`<input type="number" id="`)
	b.WriteString(controlID(field.Name))
	b.WriteString(`" name="`)
	b.WriteString(html.EscapeString(field.Name))
	b.WriteString(`" step="`)
	b.WriteString(step)
	b.WriteString(`"`)
	if v := formatString(value); v != "" {
		b.WriteString(` value="`)
		b.WriteString(html.EscapeString(v))
		b.WriteString(`"`)
	}
	if field.Required {
		b.WriteString(` required`)
	}
	b.WriteString(">")
	return b.String()
}

func renderTextarea(field model.Field, value any) string {
	var b strings.Builder
	b.WriteString(`<textarea id="`)
	b.WriteString(controlID(field.Name))
	b.WriteString(`" name="`)
	b.WriteString(html.EscapeString(field.Name))
	b.WriteString(`" rows="4"`)
	if limit := maxLength(field); limit > 0 {
		b.WriteString(` maxlength="`)
		b.WriteString(strconv.Itoa(limit))
		b.WriteString(`"`)
	}
	if field.Required {
		b.WriteString(` required`)
	}
	b.WriteString(">")
	b.WriteString(html.EscapeString(formatString(value)))
	b.WriteString("</textarea>")
	return b.String()
}

func renderBooleanSelect(field model.Field, value any) string {
	selected := ""
	switch v := value.(type) {
	case bool:
		selected = strconv.FormatBool(v)
	case string:
		selected = strings.ToLower(v)
	case nil:
	default:
		selected = strings.ToLower(formatString(value))
	}

	options := []model.Option{
		{Value: "true", Label: "True"},
		{Value: "false", Label: "False"},
	}
	return renderSelectControl(field, options, selected)
}

func renderSelect(field model.Field, value any) string {
	return renderSelectControl(field, field.Options, formatString(value))
}

func renderSelectControl(field model.Field, options []model.Option, selected string) string {
	var b strings.Builder
	b.WriteString(`<select id="`)
	b.WriteString(controlID(field.Name))
	b.WriteString(`" name="`)
	b.WriteString(html.EscapeString(field.Name))
	b.WriteString(`"`)
	if field.Required {
		b.WriteString(` required`)
	}
	b.WriteString(">\n")

	// Leading empty option so creating never preselects a row.
	b.WriteString(`  <option value="">`)
	if field.Placeholder != "" {
		b.WriteString(html.EscapeString(field.Placeholder))
	} else {
		b.WriteString("Choose...")
	}
	b.WriteString("</option>\n")

	for _, opt := range options {
		b.WriteString(`  <option value="`)
		b.WriteString(html.EscapeString(opt.Value))
		b.WriteString(`"`)
		if selected != "" && selected == opt.Value {
			b.WriteString(` selected`)
		}
		b.WriteString(">")
		b.WriteString(html.EscapeString(opt.Label))
		b.WriteString("</option>\n")
	}
	b.WriteString("</select>")
	return b.String()
}

// renderDateTime emits the split date + time input pair recombined by
// render.Decode.
func renderDateTime(field model.Field, value any) string {
	datePart, timePart := splitDateTime(value)

	var b strings.Builder
	b.WriteString(renderScalarInput(field, "date", datePart))
	b.WriteString("\n  ")

	b.WriteString(`<input type="time" id="`)
	b.WriteString(controlID(field.Name))
	b.WriteString(`-time" name="`)
	b.WriteString(html.EscapeString(field.Name))
	b.WriteString(timePartSuffix)
	b.WriteString(`"`)
	if timePart != "" {
		b.WriteString(` value="`)
		b.WriteString(timePart)
		b.WriteString(`"`)
	}
	b.WriteString(">")
	return b.String()
}

func maxLength(field model.Field) int {
	for _, rule := range field.Validations {
		if rule.Kind != model.ValidationRuleMaxLength {
			continue
		}
		if limit, err := strconv.Atoi(rule.Params["value"]); err == nil {
			return limit
		}
	}
	return 0
}

func formatString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case time.Time:
		if v.IsZero() {
			return ""
		}
		return v.Format("2006-01-02 15:04")
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	default:
		return fmt.Sprint(v)
	}
}

func formatDate(value any) string {
	if t, ok := asTime(value); ok {
		return t.Format("2006-01-02")
	}
	return formatString(value)
}

func formatTimeOfDay(value any) string {
	if t, ok := asTime(value); ok {
		return t.Format("15:04")
	}
	return formatString(value)
}

func splitDateTime(value any) (string, string) {
	if t, ok := asTime(value); ok {
		return t.Format("2006-01-02"), t.Format("15:04")
	}
	raw := formatString(value)
	if raw == "" {
		return "", ""
	}
	date, clock, found := strings.Cut(raw, " ")
	if !found {
		return raw, ""
	}
	if len(clock) > 5 {
		clock = clock[:5]
	}
	return date, clock
}

func asTime(value any) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		if v.IsZero() {
			return time.Time{}, false
		}
		return v, true
	case *time.Time:
		if v == nil || v.IsZero() {
			return time.Time{}, false
		}
		return *v, true
	default:
		return time.Time{}, false
	}
}
