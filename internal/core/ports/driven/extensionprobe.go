package driven

import "context"

// ExtensionProbe reports which host plugins are active.
type ExtensionProbe interface {
	// IsActive reports whether the plugin with the given slug is active.
	IsActive(ctx context.Context, slug string) (bool, error)
}
