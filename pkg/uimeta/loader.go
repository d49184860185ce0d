package uimeta

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Store holds merged overlay documents keyed by table.
type Store struct {
	tables map[string]Table
}

// Empty reports whether the store carries any overrides.
func (s *Store) Empty() bool {
	return s == nil || len(s.tables) == 0
}

// Table returns the overrides for a table, if any.
func (s *Store) Table(name string) (Table, bool) {
	if s == nil {
		return Table{}, false
	}
	table, ok := s.tables[name]
	return table, ok
}

// Parse reads a single YAML overlay document.
func Parse(data []byte) (Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("uimeta: parse overlay: %w", err)
	}
	return doc, nil
}

// LoadFS walks an fs.FS and merges every .yaml/.yml document into a Store.
// Files merge in lexical order; later files win on conflicting tables.
func LoadFS(fsys fs.FS) (*Store, error) {
	if fsys == nil {
		return &Store{}, nil
	}

	var files []string
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(path.Ext(p)) {
		case ".yaml", ".yml":
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("uimeta: walk overlay fs: %w", err)
	}
	sort.Strings(files)

	store := &Store{tables: make(map[string]Table)}
	for _, file := range files {
		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("uimeta: read %s: %w", file, err)
		}
		doc, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("uimeta: %s: %w", file, err)
		}
		for table, overrides := range doc.Tables {
			store.tables[table] = mergeTable(store.tables[table], overrides)
		}
	}
	return store, nil
}

func mergeTable(base, extra Table) Table {
	if extra.Title != "" {
		base.Title = extra.Title
	}
	if len(extra.Fields) > 0 {
		if base.Fields == nil {
			base.Fields = make(map[string]Field, len(extra.Fields))
		}
		for name, field := range extra.Fields {
			base.Fields[name] = field
		}
	}
	return base
}
