package model

// Decorator mutates a form model after building but before rendering.
// Widget registries and UI overlays implement this.
type Decorator interface {
	Decorate(form *FormModel) error
}

// DecoratorFunc adapts a function to the Decorator interface.
type DecoratorFunc func(form *FormModel) error

// Decorate implements Decorator.
func (fn DecoratorFunc) Decorate(form *FormModel) error {
	return fn(form)
}
