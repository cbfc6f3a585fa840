package services

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/eddkit/internal/core/ports/driven"
	"github.com/custodia-labs/eddkit/internal/core/ports/driving"
	"github.com/custodia-labs/eddkit/internal/logger"
)

// Ensure Extensions implements the interface.
var _ driving.ExtensionService = (*Extensions)(nil)

// Detector reports whether an extension is active.
type Detector func(ctx context.Context) bool

// KnownExtensions maps extension names to the plugin slugs that provide them.
var KnownExtensions = map[string][]string{
	"recurring":            {"edd-recurring"},
	"software_licensing":   {"edd-software-licensing"},
	"all_access":           {"edd-all-access"},
	"reviews":              {"edd-reviews"},
	"commissions":          {"edd-commissions"},
	"frontend_submissions": {"edd-fes", "edd-frontend-submissions"},
	"wish_lists":           {"edd-wish-lists"},
}

// Extensions is an explicit registry of extension detectors.
type Extensions struct {
	mu        sync.RWMutex
	detectors map[string]Detector
}

// NewExtensions creates an empty registry.
func NewExtensions() *Extensions {
	return &Extensions{detectors: make(map[string]Detector)}
}

// NewDefaultExtensions creates a registry of KnownExtensions checked
// through the probe. A nil probe reports every extension inactive.
func NewDefaultExtensions(probe driven.ExtensionProbe) *Extensions {
	e := NewExtensions()
	for name, slugs := range KnownExtensions {
		e.Register(name, PluginDetector(probe, slugs...))
	}
	return e
}

// PluginDetector reports active when any of the slugs is an active plugin.
func PluginDetector(probe driven.ExtensionProbe, slugs ...string) Detector {
	return func(ctx context.Context) bool {
		if probe == nil {
			return false
		}
		for _, slug := range slugs {
			active, err := probe.IsActive(ctx, slug)
			if err != nil {
				logger.Warn("probing plugin %s: %v", slug, err)
				continue
			}
			if active {
				return true
			}
		}
		return false
	}
}

// Register adds or replaces a detector.
func (e *Extensions) Register(name string, detect Detector) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.detectors[name] = detect
}

// Names returns every registered extension name, sorted.
func (e *Extensions) Names() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	names := make([]string, 0, len(e.detectors))
	for name := range e.detectors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether the named extension is active.
func (e *Extensions) Has(ctx context.Context, name string) bool {
	e.mu.RLock()
	detect, ok := e.detectors[name]
	e.mu.RUnlock()
	if !ok || detect == nil {
		return false
	}
	return detect(ctx)
}

// Active returns the names of every active extension, sorted.
func (e *Extensions) Active(ctx context.Context) []string {
	active := []string{}
	for _, name := range e.Names() {
		if e.Has(ctx, name) {
			active = append(active, name)
		}
	}
	return active
}
