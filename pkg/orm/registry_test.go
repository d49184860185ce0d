package orm

import (
	"testing"
	"time"
)

type author struct {
	ID     uint `gorm:"primaryKey"`
	Name   string
	Bio    string `gorm:"type:text" crudform:"widget:textarea"`
	Secret string `crudform:"hidden"`
}

type book struct {
	ID         uint   `gorm:"primaryKey"`
	Title      string `gorm:"size:200;not null"`
	Pages      int
	Price      float64 `gorm:"default:9.5"`
	Published  bool
	ReleasedAt time.Time
	AuthorID   uint
	Author     author
}

func (book) CrudLabelColumn() string { return "title" }
func (book) CrudOrderBy() string     { return "released_at" }

func mustRegister(t *testing.T, models ...any) *Registry {
	t.Helper()
	reg := NewRegistry()
	if err := reg.Register(models...); err != nil {
		t.Fatalf("register: %v", err)
	}
	return reg
}

func TestRegistry_Register(t *testing.T) {
	reg := mustRegister(t, &author{}, &book{})

	entity, ok := reg.ByTable("books")
	if !ok {
		t.Fatal("expected books entity")
	}
	if entity.Name != "book" {
		t.Fatalf("entity name = %q", entity.Name)
	}
	if entity.PrimaryKey.DBName != "id" {
		t.Fatalf("primary key = %q", entity.PrimaryKey.DBName)
	}
	if !entity.PrimaryKey.AutoIncrement {
		t.Fatal("expected auto-increment primary key")
	}
	if got := len(entity.DataColumns()); got != 6 {
		t.Fatalf("data columns = %d", got)
	}
}

func TestRegistry_ColumnKinds(t *testing.T) {
	reg := mustRegister(t, &author{}, &book{})
	entity, _ := reg.ByTable("books")

	cases := map[string]DataKind{
		"title":       KindString,
		"pages":       KindInt,
		"price":       KindFloat,
		"published":   KindBool,
		"released_at": KindDateTime,
		"author_id":   KindUint,
	}
	for name, want := range cases {
		col, ok := entity.Column(name)
		if !ok {
			t.Fatalf("missing column %q", name)
		}
		if col.Kind != want {
			t.Errorf("column %s kind = %q, want %q", name, col.Kind, want)
		}
	}

	title, _ := entity.Column("title")
	if title.Size != 200 {
		t.Errorf("title size = %d", title.Size)
	}
	if !title.NotNull {
		t.Error("title should be not null")
	}

	price, _ := entity.Column("price")
	if !price.HasDefault || price.Default != "9.5" {
		t.Errorf("price default = %q (has=%v)", price.Default, price.HasDefault)
	}
}

func TestRegistry_ForeignKeys(t *testing.T) {
	reg := mustRegister(t, &author{}, &book{})
	entity, _ := reg.ByTable("books")

	col, ok := entity.Column("author_id")
	if !ok {
		t.Fatal("missing author_id")
	}
	if !col.IsForeignKey() {
		t.Fatal("author_id should be a foreign key")
	}
	if col.Ref.Table != "authors" || col.Ref.Column != "id" {
		t.Fatalf("author_id ref = %+v", col.Ref)
	}

	title, _ := entity.Column("title")
	if title.IsForeignKey() {
		t.Fatal("title should not be a foreign key")
	}
}

func TestRegistry_Settings(t *testing.T) {
	reg := mustRegister(t, &author{})
	entity, _ := reg.ByTable("authors")

	bio, _ := entity.Column("bio")
	if bio.Widget() != "textarea" {
		t.Fatalf("bio widget = %q", bio.Widget())
	}
	if bio.Kind != KindText {
		t.Fatalf("bio kind = %q", bio.Kind)
	}

	secret, _ := entity.Column("secret")
	if !secret.Hidden() {
		t.Fatal("secret should be hidden")
	}
}

func TestRegistry_LabelAndOrderHooks(t *testing.T) {
	reg := mustRegister(t, &author{}, &book{})

	books, _ := reg.ByTable("books")
	if books.LabelColumn != "title" {
		t.Errorf("books label column = %q", books.LabelColumn)
	}
	if books.OrderBy != "released_at" {
		t.Errorf("books order by = %q", books.OrderBy)
	}

	// No hooks: first data column is used for both.
	authors, _ := reg.ByTable("authors")
	if authors.LabelColumn != "name" {
		t.Errorf("authors label column = %q", authors.LabelColumn)
	}
	if authors.OrderBy != "name" {
		t.Errorf("authors order by = %q", authors.OrderBy)
	}
}

func TestRegistry_DuplicateKeepsFirst(t *testing.T) {
	reg := mustRegister(t, &author{})

	first, _ := reg.ByTable("authors")
	if err := reg.Register(&author{}); err != nil {
		t.Fatalf("re-register: %v", err)
	}

	second, _ := reg.ByTable("authors")
	if first != second {
		t.Fatal("duplicate registration should keep the first entity")
	}
	if got := len(reg.Entities()); got != 1 {
		t.Fatalf("entities = %d", got)
	}
}

func TestEntity_PrettyName(t *testing.T) {
	e := &Entity{Table: "car_brands"}
	if got := e.PrettyName(); got != "Car Brands" {
		t.Fatalf("pretty name = %q", got)
	}
}

func TestNormalizeKind(t *testing.T) {
	cases := map[string]DataKind{
		"bool":      KindBool,
		"int":       KindInt,
		"uint":      KindUint,
		"float":     KindFloat,
		"decimal":   KindFloat,
		"string":    KindString,
		"text":      KindText,
		"date":      KindDate,
		"time":      KindDateTime,
		"datetime":  KindDateTime,
		"timestamp": KindDateTime,
		"bytes":     KindBytes,
		"varchar":   KindString,
	}
	for in, want := range cases {
		if got := normalizeKind(in); got != want {
			t.Errorf("normalizeKind(%q) = %q, want %q", in, got, want)
		}
	}
}
