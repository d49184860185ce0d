package vanilla

// ChromeClass is a typed identifier for semantic chrome CSS classes.
type ChromeClass string

const (
	ClassForm    ChromeClass = "crudform-form"
	ClassHeader  ChromeClass = "crudform-header"
	ClassGrid    ChromeClass = "crudform-grid"
	ClassField   ChromeClass = "crudform-field"
	ClassActions ChromeClass = "crudform-actions"
	ClassErrors  ChromeClass = "crudform-errors"
	ClassTabs    ChromeClass = "crudform-tabs"
	ClassList    ChromeClass = "crudform-list"
)
