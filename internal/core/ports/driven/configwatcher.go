package driven

import "context"

// ConfigWatcher reports changes to the configuration source.
type ConfigWatcher interface {
	// Watch reloads the configuration and calls onChange whenever the
	// source changes, until ctx is cancelled.
	Watch(ctx context.Context, onChange func()) error
}
