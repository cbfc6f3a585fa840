package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/eddkit/internal/core/domain"
	"github.com/custodia-labs/eddkit/internal/core/ports/driven"
	"github.com/custodia-labs/eddkit/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keySearchNumber     = "search.number"
	keySearchFuzzy      = "search.fuzzy"
	keyCustomerStatuses = "search.customers.statuses"
	keyDiscountStatuses = "search.discounts.statuses"
	keyDownloadStatuses = "search.downloads.statuses"
	keyCurrencyDefault  = "currency.default"
	keyCurrencyLocale   = "currency.locale"
	keyCacheBackend     = "cache.backend"
	keyCacheRedisAddr   = "cache.redis_addr"
	keyCacheRedisDB     = "cache.redis_db"
	keyCacheTTL         = "cache.ttl"
	keyStorageBackend   = "storage.backend"
	keyStorageDataDir   = "storage.data_dir"
	keyMCPRateLimit     = "mcp.rate_limit"
	keyMCPBurst         = "mcp.burst"
)

type keyKind int

const (
	kindString keyKind = iota
	kindInt
	kindBool
	kindList
	kindDuration
)

var settingKeys = map[string]keyKind{
	keySearchNumber:     kindInt,
	keySearchFuzzy:      kindBool,
	keyCustomerStatuses: kindList,
	keyDiscountStatuses: kindList,
	keyDownloadStatuses: kindList,
	keyCurrencyDefault:  kindString,
	keyCurrencyLocale:   kindString,
	keyCacheBackend:     kindString,
	keyCacheRedisAddr:   kindString,
	keyCacheRedisDB:     kindInt,
	keyCacheTTL:         kindDuration,
	keyStorageBackend:   kindString,
	keyStorageDataDir:   kindString,
	keyMCPRateLimit:     kindInt,
	keyMCPBurst:         kindInt,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()

	settings := &domain.Settings{
		Search: domain.SearchSettings{
			Number:           s.getInt(keySearchNumber, defaults.Search.Number),
			CustomerStatuses: s.getList(keyCustomerStatuses, defaults.Search.CustomerStatuses),
			DiscountStatuses: s.getList(keyDiscountStatuses, defaults.Search.DiscountStatuses),
			DownloadStatuses: s.getList(keyDownloadStatuses, defaults.Search.DownloadStatuses),
			Fuzzy:            s.getBool(keySearchFuzzy, defaults.Search.Fuzzy),
		},
		Currency: domain.CurrencySettings{
			Default: s.getString(keyCurrencyDefault, defaults.Currency.Default),
			Locale:  s.getString(keyCurrencyLocale, defaults.Currency.Locale),
		},
		Cache: domain.CacheSettings{
			Backend:   s.getString(keyCacheBackend, defaults.Cache.Backend),
			RedisAddr: s.configStore.GetString(keyCacheRedisAddr),
			RedisDB:   s.configStore.GetInt(keyCacheRedisDB),
			TTL:       s.getDuration(keyCacheTTL, defaults.Cache.TTL),
		},
		Storage: domain.StorageSettings{
			Backend: s.getString(keyStorageBackend, defaults.Storage.Backend),
			DataDir: s.configStore.GetString(keyStorageDataDir),
		},
		MCP: domain.MCPSettings{
			RateLimit: s.getInt(keyMCPRateLimit, defaults.MCP.RateLimit),
			Burst:     s.getInt(keyMCPBurst, defaults.MCP.Burst),
		},
	}

	if err := settings.Validate(); err != nil {
		return settings, fmt.Errorf("invalid configuration in %s: %w", s.configStore.Path(), err)
	}
	return settings, nil
}

// Save validates and persists application settings.
func (s *SettingsService) Save(settings *domain.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{keySearchNumber, settings.Search.Number},
		{keySearchFuzzy, settings.Search.Fuzzy},
		{keyCustomerStatuses, settings.Search.CustomerStatuses},
		{keyDiscountStatuses, settings.Search.DiscountStatuses},
		{keyDownloadStatuses, settings.Search.DownloadStatuses},
		{keyCurrencyDefault, settings.Currency.Default},
		{keyCurrencyLocale, settings.Currency.Locale},
		{keyCacheBackend, settings.Cache.Backend},
		{keyCacheRedisAddr, settings.Cache.RedisAddr},
		{keyCacheRedisDB, settings.Cache.RedisDB},
		{keyCacheTTL, settings.Cache.TTL.String()},
		{keyStorageBackend, settings.Storage.Backend},
		{keyStorageDataDir, settings.Storage.DataDir},
		{keyMCPRateLimit, settings.MCP.RateLimit},
		{keyMCPBurst, settings.MCP.Burst},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set parses value according to the key's type and stores it.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := settingKeys[key]
	if !ok {
		return fmt.Errorf("unknown setting %q: %w", key, domain.ErrInvalidInput)
	}

	var parsed any
	switch kind {
	case kindInt:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%s expects an integer: %w", key, domain.ErrInvalidInput)
		}
		parsed = n
	case kindBool:
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%s expects true or false: %w", key, domain.ErrInvalidInput)
		}
		parsed = b
	case kindList:
		parsed = splitList(value)
	case kindDuration:
		if _, err := time.ParseDuration(strings.TrimSpace(value)); err != nil {
			return fmt.Errorf("%s expects a duration such as 30m: %w", key, domain.ErrInvalidInput)
		}
		parsed = strings.TrimSpace(value)
	default:
		parsed = value
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys returns every known settings key, sorted.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingKeys))
	for k := range settingKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

// getList accepts a TOML array or a comma separated string.
func (s *SettingsService) getList(key string, defaultVal []string) []string {
	if list := s.configStore.GetStringSlice(key); len(list) > 0 {
		return list
	}
	if list := splitList(s.configStore.GetString(key)); len(list) > 0 {
		return list
	}
	return defaultVal
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return d
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
