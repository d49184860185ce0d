package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-crudform/pkg/model"
	"github.com/goliatone/go-crudform/pkg/render"
)

const (
	dateLayout     = "2006-01-02"
	timeLayout     = "15:04"
	dateTimeLayout = "2006-01-02 15:04"
)

// Renderer implements render.Renderer for terminal-driven sessions: each
// field becomes a prompt and the collected answers are serialized as the
// submission payload.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
}

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) *Renderer {
	r := &Renderer{
		driver:       newSurveyDriver(),
		outputFormat: OutputFormatJSON,
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	if r.outputFormat == OutputFormatFormURLEncoded {
		return "application/x-www-form-urlencoded"
	}
	return "application/json"
}

// Render walks the form's fields as interactive prompts and returns the
// serialized answers. RenderOptions values act as per-field defaults.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if form.Title != "" {
		if err := r.driver.Info(ctx, form.Title); err != nil {
			return nil, err
		}
	}

	values := make(map[string]any, len(form.Fields))
	for _, field := range form.Fields {
		value, err := r.promptField(ctx, field, opts.Values)
		if err != nil {
			return nil, err
		}
		if value != nil {
			values[field.Name] = value
		}
	}

	return r.serialize(values)
}

func (r *Renderer) promptField(ctx context.Context, field model.Field, current map[string]any) (any, error) {
	if len(field.Options) > 0 {
		return r.promptSelect(ctx, field, current)
	}

	switch field.Type {
	case model.FieldTypeBoolean:
		return r.promptBoolean(ctx, field, current)
	case model.FieldTypeInteger, model.FieldTypeNumber:
		return r.promptNumber(ctx, field, current)
	case model.FieldTypeText:
		return r.promptTextArea(ctx, field, current)
	case model.FieldTypeDate, model.FieldTypeTime, model.FieldTypeDateTime:
		return r.promptTemporal(ctx, field, current)
	default:
		return r.promptString(ctx, field, current)
	}
}

func (r *Renderer) promptString(ctx context.Context, field model.Field, current map[string]any) (any, error) {
	response, err := r.driver.Input(ctx, InputConfig{
		Message:   displayLabel(field),
		Default:   stringDefault(field, current),
		Help:      field.Description,
		Validator: stringValidator(field),
	})
	if err != nil {
		return nil, err
	}
	if !field.Required && strings.TrimSpace(response) == "" {
		return nil, nil
	}
	return response, nil
}

func (r *Renderer) promptTextArea(ctx context.Context, field model.Field, current map[string]any) (any, error) {
	response, err := r.driver.TextArea(ctx, TextAreaConfig{
		Message: displayLabel(field),
		Default: stringDefault(field, current),
		Help:    field.Description,
	})
	if err != nil {
		return nil, err
	}
	if !field.Required && strings.TrimSpace(response) == "" {
		return nil, nil
	}
	return response, nil
}

func (r *Renderer) promptBoolean(ctx context.Context, field model.Field, current map[string]any) (any, error) {
	def := false
	if v, ok := lookupDefault(field, current).(bool); ok {
		def = v
	}
	return r.driver.Confirm(ctx, ConfirmConfig{
		Message: displayLabel(field),
		Default: def,
		Help:    field.Description,
	})
}

func (r *Renderer) promptNumber(ctx context.Context, field model.Field, current map[string]any) (any, error) {
	for {
		response, err := r.driver.Input(ctx, InputConfig{
			Message: displayLabel(field),
			Default: stringDefault(field, current),
			Help:    field.Description,
		})
		if err != nil {
			return nil, err
		}
		if !field.Required && strings.TrimSpace(response) == "" {
			return nil, nil
		}

		if field.Type == model.FieldTypeInteger {
			n, err := strconv.ParseInt(strings.TrimSpace(response), 10, 64)
			if err == nil {
				return n, nil
			}
		} else {
			f, err := strconv.ParseFloat(strings.TrimSpace(response), 64)
			if err == nil {
				return f, nil
			}
		}

		if err := r.driver.Info(ctx, fmt.Sprintf("Invalid %s: not a number", field.Name)); err != nil {
			return nil, err
		}
	}
}

func (r *Renderer) promptTemporal(ctx context.Context, field model.Field, current map[string]any) (any, error) {
	layout := dateTimeLayout
	switch field.Type {
	case model.FieldTypeDate:
		layout = dateLayout
	case model.FieldTypeTime:
		layout = timeLayout
	}

	for {
		response, err := r.driver.Input(ctx, InputConfig{
			Message: displayLabel(field),
			Default: stringDefault(field, current),
			Help:    "format " + layout,
		})
		if err != nil {
			return nil, err
		}
		if !field.Required && strings.TrimSpace(response) == "" {
			return nil, nil
		}
		if _, err := time.Parse(layout, strings.TrimSpace(response)); err == nil {
			return strings.TrimSpace(response), nil
		}
		if err := r.driver.Info(ctx, fmt.Sprintf("Invalid %s: expected %s", field.Name, layout)); err != nil {
			return nil, err
		}
	}
}

func (r *Renderer) promptSelect(ctx context.Context, field model.Field, current map[string]any) (any, error) {
	labels := make([]string, len(field.Options))
	defIndex := -1
	def := fmt.Sprintf("%v", lookupDefault(field, current))
	for i, opt := range field.Options {
		labels[i] = opt.Label
		if opt.Value == def {
			defIndex = i
		}
	}

	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      displayLabel(field),
		Options:      labels,
		DefaultIndex: defIndex,
		Help:         field.Description,
	})
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(field.Options) {
		return nil, fmt.Errorf("tui: no option selected for %s", field.Name)
	}
	return field.Options[idx].Value, nil
}

func (r *Renderer) serialize(values map[string]any) ([]byte, error) {
	if r.outputFormat == OutputFormatFormURLEncoded {
		out := url.Values{}
		for name, value := range values {
			out.Set(name, fmt.Sprintf("%v", value))
		}
		return []byte(out.Encode()), nil
	}
	return json.Marshal(values)
}

func displayLabel(field model.Field) string {
	if field.Label != "" {
		return field.Label
	}
	return field.Name
}

// lookupDefault prefers the current row value over the schema default.
func lookupDefault(field model.Field, current map[string]any) any {
	if current != nil {
		if v, ok := current[field.Name]; ok && v != nil {
			return v
		}
	}
	return field.Default
}

func stringDefault(field model.Field, current map[string]any) string {
	v := lookupDefault(field, current)
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func stringValidator(field model.Field) func(string) error {
	max := 0
	for _, rule := range field.Validations {
		if rule.Kind == model.ValidationRuleMaxLength {
			if n, err := strconv.Atoi(rule.Params["value"]); err == nil {
				max = n
			}
		}
	}
	if max <= 0 {
		return nil
	}
	return func(s string) error {
		if len(s) > max {
			return fmt.Errorf("longer than %d characters", max)
		}
		return nil
	}
}
