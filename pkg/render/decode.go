package render

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-crudform/pkg/model"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"

	// TimePartSuffix names the companion input carrying the time half of a
	// split datetime control ("due_at" pairs with "due_at__time").
	TimePartSuffix = "__time"
)

// Decode reconciles submitted form values with the form model, converting
// each posted string back into the typed value the column expects. It
// returns the typed values keyed by column name plus any per-field errors.
// Columns absent from the form model are ignored.
func Decode(form model.FormModel, values url.Values) (map[string]any, map[string][]string) {
	out := make(map[string]any, len(form.Fields))
	fieldErrors := make(map[string][]string)

	addErr := func(name, msg string) {
		fieldErrors[name] = append(fieldErrors[name], msg)
	}

	for _, field := range form.Fields {
		raw := strings.TrimSpace(values.Get(field.Name))

		// An unchecked or unselected boolean posts nothing; the column
		// still decodes to false rather than staying NULL.
		if raw == "" && field.Type == model.FieldTypeBoolean {
			out[field.Name] = false
			continue
		}

		if raw == "" && field.Type != model.FieldTypeDateTime {
			if field.Required {
				addErr(field.Name, fmt.Sprintf("%s is required", field.Label))
			}
			continue
		}

		switch field.Type {
		case model.FieldTypeInteger:
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				addErr(field.Name, fmt.Sprintf("%s must be a whole number", field.Label))
				continue
			}
			out[field.Name] = n

		case model.FieldTypeNumber:
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				addErr(field.Name, fmt.Sprintf("%s must be a number", field.Label))
				continue
			}
			out[field.Name] = f

		case model.FieldTypeBoolean:
			v, err := strconv.ParseBool(raw)
			if err != nil {
				addErr(field.Name, fmt.Sprintf("%s must be true or false", field.Label))
				continue
			}
			out[field.Name] = v

		case model.FieldTypeDate:
			t, err := time.Parse(dateLayout, raw)
			if err != nil {
				addErr(field.Name, fmt.Sprintf("%s must be a date (YYYY-MM-DD)", field.Label))
				continue
			}
			out[field.Name] = t

		case model.FieldTypeTime:
			if _, err := time.Parse(timeLayout, raw); err != nil {
				addErr(field.Name, fmt.Sprintf("%s must be a time (HH:MM)", field.Label))
				continue
			}
			out[field.Name] = raw

		case model.FieldTypeDateTime:
			t, ok := decodeDateTime(field, raw, values, addErr)
			if !ok {
				continue
			}
			out[field.Name] = t

		default:
			if msg, ok := exceedsMaxLength(field, raw); ok {
				addErr(field.Name, msg)
				continue
			}
			out[field.Name] = raw
		}
	}

	if len(fieldErrors) == 0 {
		fieldErrors = nil
	}
	return out, fieldErrors
}

// decodeDateTime recombines the split date + time inputs the datetime widget
// renders. A missing time part defaults to midnight.
func decodeDateTime(field model.Field, raw string, values url.Values, addErr func(name, msg string)) (time.Time, bool) {
	if raw == "" {
		if field.Required {
			addErr(field.Name, fmt.Sprintf("%s is required", field.Label))
		}
		return time.Time{}, false
	}

	day, err := time.Parse(dateLayout, raw)
	if err != nil {
		addErr(field.Name, fmt.Sprintf("%s must be a date (YYYY-MM-DD)", field.Label))
		return time.Time{}, false
	}

	clock := strings.TrimSpace(values.Get(field.Name + TimePartSuffix))
	if clock == "" {
		return day, true
	}

	t, err := time.Parse(timeLayout, clock)
	if err != nil {
		addErr(field.Name, fmt.Sprintf("%s must include a valid time (HH:MM)", field.Label))
		return time.Time{}, false
	}

	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC), true
}

func exceedsMaxLength(field model.Field, raw string) (string, bool) {
	for _, rule := range field.Validations {
		if rule.Kind != model.ValidationRuleMaxLength {
			continue
		}
		limit, err := strconv.Atoi(rule.Params["value"])
		if err != nil || limit <= 0 {
			continue
		}
		if len(raw) > limit {
			return fmt.Sprintf("%s must be at most %d characters", field.Label, limit), true
		}
	}
	return "", false
}
