package driving

import "context"

// ExtensionService reports which store extensions are installed.
type ExtensionService interface {
	// Names returns every registered extension name, sorted.
	Names() []string

	// Has reports whether the named extension is active.
	// Unknown names report false.
	Has(ctx context.Context, name string) bool

	// Active returns the names of every active extension, sorted.
	Active(ctx context.Context) []string
}
