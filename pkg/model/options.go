package model

// Labeler converts column names into display labels.
type Labeler func(name string) string

// Options configure a Builder.
type Options struct {
	// Labeler overrides the default label derivation.
	Labeler Labeler
}

func defaultOptions() Options {
	return Options{
		Labeler: DefaultLabeler,
	}
}

// BuildRequest describes a single form to build from an entity.
type BuildRequest struct {
	// Intent selects the operation the form drives. Defaults to create.
	Intent Intent
	// Endpoint is the URL the form posts to.
	Endpoint string
	// Method is the HTTP method advertised by the form. Defaults to POST.
	Method string
	// Except lists column names excluded from the rendered form.
	Except []string
	// Defaults lists columns whose values are supplied by the caller;
	// they are skipped during rendering and merged back at submit time.
	Defaults []string
}
