package domain

import (
	"fmt"
	"time"
)

// Storage backends for host data.
const (
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

// Cache backends for transient values.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheNone   = "none"
)

// SearchSettings configures the search helpers.
type SearchSettings struct {
	// Number is the page size of every search helper.
	Number int

	// Per-entity status filters.
	CustomerStatuses []string
	DiscountStatuses []string
	DownloadStatuses []string

	// Fuzzy matches free text by characters in order (memory host only).
	Fuzzy bool
}

// CurrencySettings configures amount formatting.
type CurrencySettings struct {
	// Default is the store currency code.
	Default string

	// Locale is the BCP 47 tag used to format amounts.
	Locale string
}

// CacheSettings selects the transient cache backend.
type CacheSettings struct {
	Backend   string
	RedisAddr string
	RedisDB   int
	TTL       time.Duration
}

// StorageSettings selects the host data backend.
type StorageSettings struct {
	Backend string
	DataDir string
}

// MCPSettings configures the MCP server.
type MCPSettings struct {
	// RateLimit is the sustained tool calls per second. Zero disables limiting.
	RateLimit int

	// Burst is the number of calls allowed at once.
	Burst int
}

// Settings is the complete application configuration.
type Settings struct {
	Search   SearchSettings
	Currency CurrencySettings
	Cache    CacheSettings
	Storage  StorageSettings
	MCP      MCPSettings
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Search: SearchSettings{
			Number:           30,
			CustomerStatuses: []string{"active"},
			DiscountStatuses: []string{AdjustmentStatusActive},
			DownloadStatuses: []string{"publish"},
		},
		Currency: CurrencySettings{
			Default: "USD",
			Locale:  "en-US",
		},
		Cache: CacheSettings{
			Backend: CacheMemory,
			TTL:     time.Hour,
		},
		Storage: StorageSettings{
			Backend: StorageSQLite,
		},
		MCP: MCPSettings{
			RateLimit: 20,
			Burst:     40,
		},
	}
}

// Validate checks values that would make a backend unusable.
func (s *Settings) Validate() error {
	if s.Search.Number <= 0 {
		return fmt.Errorf("search.number must be positive, got %d: %w", s.Search.Number, ErrInvalidInput)
	}
	switch s.Storage.Backend {
	case StorageSQLite, StorageMemory:
	default:
		return fmt.Errorf("storage.backend %q: %w", s.Storage.Backend, ErrInvalidInput)
	}
	switch s.Cache.Backend {
	case CacheMemory, CacheNone:
	case CacheRedis:
		if s.Cache.RedisAddr == "" {
			return fmt.Errorf("cache.redis_addr is required for the redis backend: %w", ErrInvalidInput)
		}
	default:
		return fmt.Errorf("cache.backend %q: %w", s.Cache.Backend, ErrInvalidInput)
	}
	if s.MCP.RateLimit < 0 || s.MCP.Burst < 0 {
		return fmt.Errorf("mcp rate limit must not be negative: %w", ErrInvalidInput)
	}
	return nil
}
