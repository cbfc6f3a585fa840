// Package services implements the driving port interfaces.
// Services contain the core helper logic and orchestrate
// calls to driven ports (adapters).
//
// Lookups never fail: host errors are logged with logger.Warn and the
// caller receives a benign default. Only Importer and SettingsService
// return errors.
//
// Services are pure Go with no CGO dependencies.
package services

import (
	"github.com/custodia-labs/eddkit/internal/core/domain"
	"github.com/custodia-labs/eddkit/internal/core/ports/driving"
)

// Ensure the country lookup satisfies the driving port.
var _ driving.CountryService = (*domain.Countries)(nil)
