package model

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-crudform/pkg/orm"
)

type testAuthor struct {
	ID   uint `gorm:"primaryKey"`
	Name string
}

type testBook struct {
	ID         uint   `gorm:"primaryKey"`
	Title      string `gorm:"size:200;not null"`
	Pages      int
	Price      float64 `gorm:"default:9.5"`
	Published  bool
	ReleasedAt time.Time
	Internal   string `crudform:"hidden"`
	AuthorID   uint
	Author     testAuthor
}

func bookEntity(t *testing.T) *orm.Entity {
	t.Helper()
	reg := orm.NewRegistry()
	if err := reg.Register(&testAuthor{}, &testBook{}); err != nil {
		t.Fatalf("register: %v", err)
	}
	entity, ok := reg.ByTable("test_books")
	if !ok {
		t.Fatal("expected test_books entity")
	}
	return entity
}

func fieldNames(form FormModel) []string {
	names := make([]string, 0, len(form.Fields))
	for _, f := range form.Fields {
		names = append(names, f.Name)
	}
	return names
}

func TestBuilder_BuildCreate(t *testing.T) {
	form, err := NewBuilder().Build(bookEntity(t), BuildRequest{
		Intent:   IntentCreate,
		Endpoint: "/admin/test_books",
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if form.Title != "Create Test Books" {
		t.Errorf("title = %q", form.Title)
	}
	if form.Method != "POST" {
		t.Errorf("method = %q", form.Method)
	}

	want := []string{"title", "pages", "price", "published", "released_at", "author_id"}
	if diff := cmp.Diff(want, fieldNames(form)); diff != "" {
		t.Fatalf("field names mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilder_FieldTypes(t *testing.T) {
	form, err := NewBuilder().Build(bookEntity(t), BuildRequest{Intent: IntentCreate})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	wantTypes := map[string]FieldType{
		"title":       FieldTypeString,
		"pages":       FieldTypeInteger,
		"price":       FieldTypeNumber,
		"published":   FieldTypeBoolean,
		"released_at": FieldTypeDateTime,
		"author_id":   FieldTypeInteger,
	}
	for name, want := range wantTypes {
		field := form.Field(name)
		if field == nil {
			t.Fatalf("missing field %q", name)
		}
		if field.Type != want {
			t.Errorf("field %s type = %q, want %q", name, field.Type, want)
		}
	}

	title := form.Field("title")
	if !title.Required {
		t.Error("title should be required")
	}
	if title.Label != "Title" {
		t.Errorf("title label = %q", title.Label)
	}

	rel := form.Field("author_id")
	if rel.Relationship == nil || rel.Relationship.Target != "test_authors" {
		t.Fatalf("author_id relationship = %+v", rel.Relationship)
	}
	if rel.Label != "Author" {
		t.Errorf("author_id label = %q", rel.Label)
	}
}

func TestBuilder_Defaults(t *testing.T) {
	form, err := NewBuilder().Build(bookEntity(t), BuildRequest{Intent: IntentCreate})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	price := form.Field("price")
	if price.Default != 9.5 {
		t.Errorf("price default = %v", price.Default)
	}
	if price.Required {
		t.Error("columns with a schema default are not required")
	}

	pages := form.Field("pages")
	if pages.Default != int64(0) {
		t.Errorf("pages default = %v", pages.Default)
	}
}

func TestBuilder_UpdateSkipsForeignKeys(t *testing.T) {
	form, err := NewBuilder().Build(bookEntity(t), BuildRequest{
		Intent: IntentUpdate,
		Except: []string{"released_at"},
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	want := []string{"title", "pages", "price", "published"}
	if diff := cmp.Diff(want, fieldNames(form)); diff != "" {
		t.Fatalf("field names mismatch (-want +got):\n%s", diff)
	}
	if form.Title != "Update Test Books" {
		t.Errorf("title = %q", form.Title)
	}
}

func TestBuilder_DefaultColumnsNotRendered(t *testing.T) {
	form, err := NewBuilder().Build(bookEntity(t), BuildRequest{
		Intent:   IntentCreate,
		Defaults: []string{"published", "author_id"},
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	for _, name := range []string{"published", "author_id"} {
		if form.Field(name) != nil {
			t.Errorf("field %q should not be rendered", name)
		}
	}
}

func TestBuilder_DeleteHasNoFields(t *testing.T) {
	form, err := NewBuilder().Build(bookEntity(t), BuildRequest{Intent: IntentDelete})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(form.Fields) != 0 {
		t.Fatalf("delete form fields = %v", fieldNames(form))
	}
	if form.SubmitLabel != "Delete Test Books" {
		t.Errorf("submit label = %q", form.SubmitLabel)
	}
}

func TestBuilder_MaxLengthValidation(t *testing.T) {
	form, err := NewBuilder().Build(bookEntity(t), BuildRequest{Intent: IntentCreate})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	title := form.Field("title")
	found := false
	for _, rule := range title.Validations {
		if rule.Kind == ValidationRuleMaxLength && rule.Params["value"] == "200" {
			found = true
		}
	}
	if !found {
		t.Fatalf("title validations = %+v", title.Validations)
	}
}
