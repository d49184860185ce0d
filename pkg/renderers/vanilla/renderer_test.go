package vanilla_test

import (
	"context"
	"strings"
	"testing"
	"time"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-crudform/pkg/model"
	"github.com/goliatone/go-crudform/pkg/render"
	"github.com/goliatone/go-crudform/pkg/renderers/vanilla"
)

func taskForm() model.FormModel {
	return model.FormModel{
		Entity:      "Task",
		Table:       "tasks",
		Intent:      model.IntentCreate,
		Endpoint:    "/admin/tasks",
		Method:      "POST",
		Title:       "Create Tasks",
		SubmitLabel: "Create Tasks",
		Fields: []model.Field{
			{Name: "name", Type: model.FieldTypeString, Label: "Name", Required: true},
			{Name: "notes", Type: model.FieldTypeText, Label: "Notes"},
			{Name: "count", Type: model.FieldTypeInteger, Label: "Count", Default: int64(0)},
			{Name: "budget", Type: model.FieldTypeNumber, Label: "Budget", Default: float64(0)},
			{Name: "done", Type: model.FieldTypeBoolean, Label: "Done"},
			{Name: "due_at", Type: model.FieldTypeDateTime, Label: "Due At"},
			{
				Name: "user_id", Type: model.FieldTypeInteger, Label: "User",
				Relationship: &model.Relationship{Kind: model.RelationshipBelongsTo, Target: "users", TargetColumn: "id"},
				Options:      []model.Option{{Value: "1", Label: "Ada"}, {Value: "2", Label: "Grace"}},
			},
		},
	}
}

func mustRender(t *testing.T, form model.FormModel, opts render.RenderOptions) string {
	t.Helper()
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := renderer.Render(context.Background(), form, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func TestRenderer_FormChrome(t *testing.T) {
	out := mustRender(t, taskForm(), render.RenderOptions{})

	for _, want := range []string{
		`method="POST"`,
		`action="/admin/tasks"`,
		`class="crudform-form"`,
		`<h3 class="crudform-header">Create Tasks</h3>`,
		`<button type="submit">Create Tasks</button>`,
		`<label for="cf-name">Name *</label>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}

func TestRenderer_WidgetSelection(t *testing.T) {
	out := mustRender(t, taskForm(), render.RenderOptions{})

	for _, want := range []string{
		`<input type="text" id="cf-name" name="name" required>`,
		`<textarea id="cf-notes" name="notes" rows="4">`,
		`<input type="number" id="cf-count" name="count" step="1" value="0">`,
		`<input type="number" id="cf-budget" name="budget" step="0.1" value="0">`,
		`<option value="true">True</option>`,
		`<option value="false">False</option>`,
		`<input type="date" id="cf-due_at" name="due_at">`,
		`name="due_at__time"`,
		`<option value="1">Ada</option>`,
		`<option value="2">Grace</option>`,
		`data-relationship-target="users"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}

func TestRenderer_ValuesAndErrors(t *testing.T) {
	due := time.Date(2024, 6, 5, 17, 45, 0, 0, time.UTC)
	out := mustRender(t, taskForm(), render.RenderOptions{
		Values: map[string]any{
			"name":    "Ship release",
			"done":    true,
			"due_at":  due,
			"user_id": "2",
		},
		Errors: map[string][]string{
			"name": {"Name is taken"},
		},
		FormErrors: []string{"Something else went wrong"},
	})

	for _, want := range []string{
		`value="Ship release"`,
		`<option value="true" selected>True</option>`,
		`value="2024-06-05"`,
		`value="17:45"`,
		`<option value="2" selected>Grace</option>`,
		`<li>Name is taken</li>`,
		`<li>Something else went wrong</li>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}

func TestRenderer_MethodOverride(t *testing.T) {
	form := taskForm()
	form.Method = "PUT"

	out := mustRender(t, form, render.RenderOptions{Hidden: map[string]string{"_csrf": "tok"}})

	for _, want := range []string{
		`method="POST"`,
		`<input type="hidden" name="_method" value="PUT">`,
		`<input type="hidden" name="_csrf" value="tok">`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}

func TestRenderer_ThemeCSSVars(t *testing.T) {
	out := mustRender(t, taskForm(), render.RenderOptions{
		Theme: &theme.RendererConfig{
			CSSVars: map[string]string{"--cf-accent": "#336699"},
		},
	})

	if !strings.Contains(out, "--cf-accent: #336699;") {
		t.Fatalf("output missing theme vars\n%s", out)
	}
}

func TestRenderer_SanitizesDescriptions(t *testing.T) {
	form := taskForm()
	form.Fields[0].Description = `helpful <script>alert("x")</script> hint`

	out := mustRender(t, form, render.RenderOptions{})

	if strings.Contains(out, "<script>") {
		t.Fatal("script tag survived sanitization")
	}
	if !strings.Contains(out, "helpful") {
		t.Fatal("description text dropped")
	}
}

func TestRenderer_RenderTabs(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out, err := renderer.RenderTabs(context.Background(), render.TabsModel{
		Entity: "Task",
		Title:  "Tasks",
		Tabs: []render.Tab{
			{ID: "create", Label: "Create", Body: []byte("<p>create pane</p>")},
			{ID: "delete", Label: "Delete", Body: []byte("<p>delete pane</p>")},
		},
	}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render tabs: %v", err)
	}

	html := string(out)
	for _, want := range []string{
		`class="crudform-tabs"`,
		`aria-controls="create" aria-selected="true"`,
		`<p>create pane</p>`,
		`<div id="delete" role="tabpanel" hidden>`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("output missing %q\n%s", want, html)
		}
	}
}

func TestRenderer_RenderList(t *testing.T) {
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out, err := renderer.RenderList(context.Background(), render.ListModel{
		Entity:  "Task",
		Title:   "Tasks",
		Columns: []render.ListColumn{{Name: "title", Label: "Title"}},
		Rows: []render.ListRow{
			{Key: "1", Cells: []string{"Ship"}, EditURL: "/admin/tasks/1/edit", DeleteURL: "/admin/tasks/1/delete"},
		},
		Hidden: map[string]string{"_csrf": "tok"},
	}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render list: %v", err)
	}

	html := string(out)
	for _, want := range []string{
		`<th>Title</th>`,
		`<td>Ship</td>`,
		`<a href="/admin/tasks/1/edit">Edit</a>`,
		`action="/admin/tasks/1/delete"`,
		`<input type="hidden" name="_csrf" value="tok">`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("output missing %q\n%s", want, html)
		}
	}

	empty, err := renderer.RenderList(context.Background(), render.ListModel{Entity: "Task"}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render empty list: %v", err)
	}
	if !strings.Contains(string(empty), "No rows yet.") {
		t.Fatalf("empty list placeholder missing\n%s", empty)
	}
}
