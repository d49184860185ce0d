package pongo2tpl

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-crudform/pkg/render/template"
)

// Option configures the pongo2 adapter before construction.
type Option func(*config)

type config struct {
	templates  fs.FS
	baseDir    string
	globalData map[string]any
}

// WithFS configures the engine to load templates from an fs.FS.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// WithBaseDir configures the engine to load templates from a directory on
// disk.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithGlobalData seeds context values available to every template.
func WithGlobalData(data map[string]any) Option {
	return func(cfg *config) {
		if len(data) == 0 {
			return
		}
		if cfg.globalData == nil {
			cfg.globalData = make(map[string]any, len(data))
		}
		for key, value := range data {
			cfg.globalData[strings.TrimSpace(key)] = value
		}
	}
}

// Engine satisfies the template.TemplateRenderer contract using a
// pongo2-backed template set.
type Engine struct {
	mu sync.Mutex

	set     *pongo2.TemplateSet
	cache   map[string]*pongo2.Template
	globals map[string]any
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New constructs an Engine using the provided configuration options.
func New(options ...Option) (*Engine, error) {
	cfg := &config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	files := cfg.templates
	if files == nil {
		if cfg.baseDir == "" {
			return nil, fmt.Errorf("pongo2tpl: a template FS or base dir is required")
		}
		files = os.DirFS(cfg.baseDir)
	}

	set := pongo2.NewSet("crudform", &fsLoader{files: files})

	return &Engine{
		set:     set,
		cache:   make(map[string]*pongo2.Template),
		globals: cfg.globalData,
	}, nil
}

// RenderTemplate executes a named template from the configured FS.
func (e *Engine) RenderTemplate(name string, data any) (string, error) {
	tpl, err := e.lookup(name)
	if err != nil {
		return "", err
	}
	out, err := tpl.Execute(e.context(data))
	if err != nil {
		return "", fmt.Errorf("pongo2tpl: execute %q: %w", name, err)
	}
	return out, nil
}

// RenderString compiles and executes an inline template.
func (e *Engine) RenderString(content string, data any) (string, error) {
	tpl, err := e.set.FromString(content)
	if err != nil {
		return "", fmt.Errorf("pongo2tpl: compile inline template: %w", err)
	}
	out, err := tpl.Execute(e.context(data))
	if err != nil {
		return "", fmt.Errorf("pongo2tpl: execute inline template: %w", err)
	}
	return out, nil
}

func (e *Engine) lookup(name string) (*pongo2.Template, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if tpl, ok := e.cache[name]; ok {
		return tpl, nil
	}
	tpl, err := e.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("pongo2tpl: load %q: %w", name, err)
	}
	e.cache[name] = tpl
	return tpl, nil
}

func (e *Engine) context(data any) pongo2.Context {
	ctx := pongo2.Context{}
	for key, value := range e.globals {
		ctx[key] = value
	}
	switch typed := data.(type) {
	case nil:
	case pongo2.Context:
		for key, value := range typed {
			ctx[key] = value
		}
	case map[string]any:
		for key, value := range typed {
			ctx[key] = value
		}
	default:
		ctx["data"] = typed
	}
	return ctx
}

// fsLoader adapts an fs.FS to pongo2's TemplateLoader contract.
type fsLoader struct {
	files fs.FS
}

func (l *fsLoader) Abs(base, name string) string {
	if base == "" || strings.HasPrefix(name, "/") {
		return strings.TrimPrefix(name, "/")
	}
	return path.Join(path.Dir(base), name)
}

func (l *fsLoader) Get(p string) (io.Reader, error) {
	data, err := fs.ReadFile(l.files, strings.TrimPrefix(p, "/"))
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}
