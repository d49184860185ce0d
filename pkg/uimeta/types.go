package uimeta

// Document is the on-disk shape of a UI metadata overlay. Overlays let an
// application adjust generated forms (labels, widgets, help text, hidden
// columns) without touching model structs.
type Document struct {
	Tables map[string]Table `yaml:"tables"`
}

// Table holds the overrides for a single entity.
type Table struct {
	// Title replaces the derived heading for the entity's forms.
	Title string `yaml:"title,omitempty"`
	// Fields holds per-column overrides keyed by column name.
	Fields map[string]Field `yaml:"fields,omitempty"`
}

// Field is the set of per-column overrides an overlay can express.
type Field struct {
	Label       string `yaml:"label,omitempty"`
	Widget      string `yaml:"widget,omitempty"`
	Placeholder string `yaml:"placeholder,omitempty"`
	Help        string `yaml:"help,omitempty"`
	Hidden      bool   `yaml:"hidden,omitempty"`
}
