package mcp

import (
	"github.com/custodia-labs/eddkit/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the MCP server.
type Ports struct {
	Customers driving.CustomerSearch
	Discounts driving.DiscountSearch
	Downloads driving.DownloadSearch

	// Fields backs get_field and entity_exists.
	Fields driving.FieldService

	// Countries and Currencies back the resources. Both are optional.
	Countries  driving.CountryService
	Currencies driving.CurrencyService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Customers == nil || p.Discounts == nil || p.Downloads == nil {
		return ErrMissingSearchService
	}
	if p.Fields == nil {
		return ErrMissingFieldService
	}
	return nil
}
