package model

// FieldType is the simplified enum for form-friendly field kinds.
type FieldType string

const (
	FieldTypeString   FieldType = "string"
	FieldTypeText     FieldType = "text"
	FieldTypeInteger  FieldType = "integer"
	FieldTypeNumber   FieldType = "number"
	FieldTypeBoolean  FieldType = "boolean"
	FieldTypeDate     FieldType = "date"
	FieldTypeTime     FieldType = "time"
	FieldTypeDateTime FieldType = "datetime"
)

// Intent identifies which CRUD operation a form drives.
type Intent string

const (
	IntentCreate Intent = "create"
	IntentUpdate Intent = "update"
	IntentDelete Intent = "delete"
)

const (
	ValidationRuleMaxLength = "maxLength"
	ValidationRuleRequired  = "required"
)

// ValidationRule represents a single validation constraint applied to a
// field. Length limits encode their threshold in Params["value"].
type ValidationRule struct {
	Kind   string            `json:"kind"`
	Params map[string]string `json:"params,omitempty"`
}

// Option is a single choice in a select control. Foreign-key fields carry
// one Option per related row.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// RelationshipKind enumerates the association kinds forms understand.
type RelationshipKind string

const RelationshipBelongsTo RelationshipKind = "belongs-to"

// Relationship records where a foreign-key field points so renderers and
// the CRUD layer can resolve its choices.
type Relationship struct {
	Kind         RelationshipKind `json:"kind"`
	Entity       string           `json:"entity"`
	Target       string           `json:"target"`
	TargetColumn string           `json:"targetColumn"`
}

// Field models an individual input inside a generated form.
type Field struct {
	Name         string            `json:"name"`
	Type         FieldType         `json:"type"`
	Required     bool              `json:"required"`
	Label        string            `json:"label,omitempty"`
	Placeholder  string            `json:"placeholder,omitempty"`
	Description  string            `json:"description,omitempty"`
	Default      any               `json:"default,omitempty"`
	Options      []Option          `json:"options,omitempty"`
	Relationship *Relationship     `json:"relationship,omitempty"`
	Validations  []ValidationRule  `json:"validations,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// FormModel is the top-level representation renderers consume.
type FormModel struct {
	Entity      string            `json:"entity"`
	Table       string            `json:"table"`
	Intent      Intent            `json:"intent"`
	Endpoint    string            `json:"endpoint"`
	Method      string            `json:"method"`
	Title       string            `json:"title,omitempty"`
	SubmitLabel string            `json:"submitLabel,omitempty"`
	Fields      []Field           `json:"fields"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Field returns a pointer to the named field, or nil.
func (f *FormModel) Field(name string) *Field {
	for i := range f.Fields {
		if f.Fields[i].Name == name {
			return &f.Fields[i]
		}
	}
	return nil
}
