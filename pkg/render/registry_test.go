package render

import (
	"context"
	"testing"

	"github.com/goliatone/go-crudform/pkg/model"
)

type fakeRenderer struct {
	name string
}

func (f *fakeRenderer) Name() string        { return f.name }
func (f *fakeRenderer) ContentType() string { return "text/plain" }
func (f *fakeRenderer) Render(ctx context.Context, form model.FormModel, options RenderOptions) ([]byte, error) {
	return []byte(f.name), nil
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	reg := NewRegistry()

	if err := reg.Register(&fakeRenderer{name: "vanilla"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	renderer, err := reg.Get("vanilla")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if renderer.Name() != "vanilla" {
		t.Fatalf("name = %q", renderer.Name())
	}

	if _, err := reg.Get("missing"); err == nil {
		t.Fatal("expected error for unknown renderer")
	}
}

func TestRegistry_DuplicateRejected(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(&fakeRenderer{name: "tui"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := reg.Register(&fakeRenderer{name: "tui"}); err == nil {
		t.Fatal("expected duplicate registration error")
	}
}

func TestRegistry_List(t *testing.T) {
	reg := NewRegistry()
	for _, name := range []string{"vanilla", "tui"} {
		if err := reg.Register(&fakeRenderer{name: name}); err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
	}

	names := reg.List()
	if len(names) != 2 || names[0] != "tui" || names[1] != "vanilla" {
		t.Fatalf("list = %v", names)
	}
}
