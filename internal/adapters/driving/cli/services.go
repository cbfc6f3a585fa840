package cli

import (
	"errors"

	"golang.org/x/text/language"

	"github.com/custodia-labs/eddkit/internal/core/domain"
	"github.com/custodia-labs/eddkit/internal/core/ports/driven"
	"github.com/custodia-labs/eddkit/internal/core/ports/driving"
	"github.com/custodia-labs/eddkit/internal/core/services"
	"github.com/custodia-labs/eddkit/internal/logger"
)

// errNoServices is returned by commands run before SetServices.
var errNoServices = errors.New("services not configured")

// Services holds everything the commands call.
type Services struct {
	Customers   driving.CustomerService
	Orders      driving.OrderService
	OrderItems  driving.OrderItemService
	Adjustments driving.AdjustmentService
	Notes       driving.NoteService
	Logs        driving.LogService
	Downloads   driving.DownloadService
	Cart        driving.CartService

	CustomerSearch driving.CustomerSearch
	DiscountSearch driving.DiscountSearch
	DownloadSearch driving.DownloadSearch

	Fields     driving.FieldService
	Countries  driving.CountryService
	Currencies driving.CurrencyService
	Extensions driving.ExtensionService
	Importer   driving.ImportService

	// Settings and Watcher are optional. Without a watcher long running
	// commands keep the settings they started with.
	Settings driving.SettingsService
	Watcher  driven.ConfigWatcher
}

// svc is the service set used by every command.
var svc *Services

// SetServices sets the services used by the commands.
func SetServices(s *Services) {
	svc = s
}

// NewServices builds the service set over a host backend.
func NewServices(host driven.Host, cache driven.TransientCache, settings domain.Settings) *Services {
	locale, err := language.Parse(settings.Currency.Locale)
	if err != nil {
		logger.Warn("Unknown currency locale %q, using en-US", settings.Currency.Locale)
		locale = language.AmericanEnglish
	}

	orderStore := host.OrderStore()
	downloadStore := host.DownloadStore()
	fields := services.NewFieldAccessor(host, host, host)
	currencies := services.NewCurrencies(orderStore, cache, locale, settings.Currency.Default)

	s := &Services{
		Customers:      services.NewCustomers(host.CustomerStore(), fields, currencies),
		Orders:         services.NewOrders(orderStore, fields, currencies),
		OrderItems:     services.NewOrderItems(orderStore, downloadStore, fields),
		Adjustments:    services.NewAdjustments(host.AdjustmentStore(), fields, currencies),
		Notes:          services.NewNotes(host.NoteStore(), fields),
		Logs:           services.NewLogs(host.LogStore(), fields),
		Downloads:      services.NewDownloads(downloadStore, host, fields),
		Cart:           services.NewCart(host, currencies),
		CustomerSearch: services.NewCustomerSearch(host.CustomerStore()),
		DiscountSearch: services.NewDiscountSearch(host.AdjustmentStore()),
		DownloadSearch: services.NewDownloadSearch(downloadStore),
		Fields:         fields,
		Countries:      domain.NewCountries(),
		Currencies:     currencies,
		Extensions:     services.NewDefaultExtensions(host),
		Importer:       services.NewImporter(host, currencies),
	}
	s.ApplySearchSettings(settings.Search)
	return s
}

// ApplySearchSettings copies configured page size and status filters into
// the search helpers.
func (s *Services) ApplySearchSettings(search domain.SearchSettings) {
	s.CustomerSearch.SetNumber(search.Number)
	s.CustomerSearch.SetStatus(search.CustomerStatuses)
	s.DiscountSearch.SetNumber(search.Number)
	s.DiscountSearch.SetStatus(search.DiscountStatuses)
	s.DownloadSearch.SetNumber(search.Number)
	s.DownloadSearch.SetStatus(search.DownloadStatuses)
}

func requireServices() (*Services, error) {
	if svc == nil {
		return nil, errNoServices
	}
	return svc, nil
}
