package tui

import (
	"context"
	"encoding/json"
	"net/url"
	"testing"

	"github.com/goliatone/go-crudform/pkg/model"
	"github.com/goliatone/go-crudform/pkg/render"
)

// stubDriver scripts prompt answers keyed by prompt message.
type stubDriver struct {
	inputs   map[string]string
	confirms map[string]bool
	selects  map[string]int
	areas    map[string]string
	infos    []string
}

func (d *stubDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	if v, ok := d.inputs[cfg.Message]; ok {
		return v, nil
	}
	return cfg.Default, nil
}

func (d *stubDriver) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	if v, ok := d.confirms[cfg.Message]; ok {
		return v, nil
	}
	return cfg.Default, nil
}

func (d *stubDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	if v, ok := d.selects[cfg.Message]; ok {
		return v, nil
	}
	return cfg.DefaultIndex, nil
}

func (d *stubDriver) TextArea(ctx context.Context, cfg TextAreaConfig) (string, error) {
	if v, ok := d.areas[cfg.Message]; ok {
		return v, nil
	}
	return cfg.Default, nil
}

func (d *stubDriver) Info(ctx context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

func promptForm() model.FormModel {
	return model.FormModel{
		Table:  "tasks",
		Intent: model.IntentCreate,
		Title:  "Create Tasks",
		Fields: []model.Field{
			{Name: "title", Type: model.FieldTypeString, Label: "Title", Required: true},
			{Name: "notes", Type: model.FieldTypeText, Label: "Notes"},
			{Name: "priority", Type: model.FieldTypeInteger, Label: "Priority"},
			{Name: "done", Type: model.FieldTypeBoolean, Label: "Done"},
			{Name: "due_at", Type: model.FieldTypeDateTime, Label: "Due At"},
			{
				Name: "user_id", Type: model.FieldTypeInteger, Label: "User",
				Options: []model.Option{{Value: "1", Label: "Ada"}, {Value: "2", Label: "Grace"}},
			},
		},
	}
}

func TestRenderer_CollectsAnswersAsJSON(t *testing.T) {
	driver := &stubDriver{
		inputs: map[string]string{
			"Title":    "Ship it",
			"Priority": "3",
			"Due At":   "2024-06-05 17:45",
		},
		areas:    map[string]string{"Notes": "remember the tag"},
		confirms: map[string]bool{"Done": true},
		selects:  map[string]int{"User": 1},
	}

	renderer := New(WithPromptDriver(driver))
	out, err := renderer.Render(context.Background(), promptForm(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got["title"] != "Ship it" {
		t.Errorf("title = %v", got["title"])
	}
	if got["notes"] != "remember the tag" {
		t.Errorf("notes = %v", got["notes"])
	}
	if got["priority"] != float64(3) {
		t.Errorf("priority = %v", got["priority"])
	}
	if got["done"] != true {
		t.Errorf("done = %v", got["done"])
	}
	if got["due_at"] != "2024-06-05 17:45" {
		t.Errorf("due_at = %v", got["due_at"])
	}
	if got["user_id"] != "2" {
		t.Errorf("user_id = %v", got["user_id"])
	}

	if len(driver.infos) == 0 || driver.infos[0] != "Create Tasks" {
		t.Errorf("title banner not printed: %v", driver.infos)
	}
}

func TestRenderer_FormURLEncodedOutput(t *testing.T) {
	driver := &stubDriver{
		inputs:  map[string]string{"Title": "Ship it", "Priority": "", "Due At": ""},
		selects: map[string]int{"User": 0},
	}

	renderer := New(WithPromptDriver(driver), WithOutputFormat(OutputFormatFormURLEncoded))
	if ct := renderer.ContentType(); ct != "application/x-www-form-urlencoded" {
		t.Fatalf("content type = %q", ct)
	}

	out, err := renderer.Render(context.Background(), promptForm(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	values, err := url.ParseQuery(string(out))
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if values.Get("title") != "Ship it" {
		t.Errorf("title = %q", values.Get("title"))
	}
	if values.Get("user_id") != "1" {
		t.Errorf("user_id = %q", values.Get("user_id"))
	}
	if _, ok := values["priority"]; ok {
		t.Error("empty optional answer should be skipped")
	}
}

func TestRenderer_CurrentValuesBecomeDefaults(t *testing.T) {
	driver := &stubDriver{}

	renderer := New(WithPromptDriver(driver))
	out, err := renderer.Render(context.Background(), promptForm(), render.RenderOptions{
		Values: map[string]any{
			"title":    "Existing task",
			"priority": int64(7),
			"done":     true,
			"user_id":  "2",
		},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got["title"] != "Existing task" {
		t.Errorf("title = %v", got["title"])
	}
	if got["priority"] != float64(7) {
		t.Errorf("priority = %v", got["priority"])
	}
	if got["done"] != true {
		t.Errorf("done = %v", got["done"])
	}
	if got["user_id"] != "2" {
		t.Errorf("user_id = %v", got["user_id"])
	}
}

func TestRenderer_RetriesInvalidNumber(t *testing.T) {
	calls := 0
	driver := &retryDriver{
		answers: []string{"not a number", "42"},
		calls:   &calls,
	}

	renderer := New(WithPromptDriver(driver))
	form := model.FormModel{
		Fields: []model.Field{{Name: "priority", Type: model.FieldTypeInteger, Label: "Priority", Required: true}},
	}

	out, err := renderer.Render(context.Background(), form, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if calls != 2 {
		t.Fatalf("input prompted %d times", calls)
	}

	var got map[string]any
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got["priority"] != float64(42) {
		t.Fatalf("priority = %v", got["priority"])
	}
}

type retryDriver struct {
	stubDriver
	answers []string
	calls   *int
}

func (d *retryDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	idx := *d.calls
	*d.calls++
	if idx < len(d.answers) {
		return d.answers[idx], nil
	}
	return "", nil
}
