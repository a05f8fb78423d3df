package binding

import "golang.org/x/text/language"

// BindingBuilderOption is a functional option for configuring a Binding during construction.
type BindingBuilderOption func(*binding)

// WithLocale sets which spelling of each channel name is tried first.
// Japanese locales prefer the localized names; every other locale prefers the default names.
// The other spelling is always tried as a fallback.
//
// Parameters:
//   - tag: the host UI locale
//
// Returns:
//   - BindingBuilderOption: a function that applies the locale option to a binding
func WithLocale(tag language.Tag) BindingBuilderOption {
	return func(b *binding) {
		b.locale = tag
	}
}
