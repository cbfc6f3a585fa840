package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/eddkit/internal/core/domain"
)

// errNoSettings is returned by config commands when no settings service is set.
var errNoSettings = errors.New("settings service not configured")

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and change settings",
	Long: `View and change eddkit settings. Settings are stored in
~/.eddkit/config.toml and addressed by dotted keys such as search.number.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change a setting. Lists are comma separated and durations use Go
syntax, for example:

  eddkit config set search.customers.statuses active,pending
  eddkit config set cache.ttl 30m`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List every settings key",
	Args:  cobra.NoArgs,
	RunE:  runConfigKeys,
}

// settingsView is the structured output of config show.
type settingsView struct {
	Search struct {
		Number           int      `json:"number" yaml:"number"`
		Fuzzy            bool     `json:"fuzzy" yaml:"fuzzy"`
		CustomerStatuses []string `json:"customer_statuses" yaml:"customer_statuses"`
		DiscountStatuses []string `json:"discount_statuses" yaml:"discount_statuses"`
		DownloadStatuses []string `json:"download_statuses" yaml:"download_statuses"`
	} `json:"search" yaml:"search"`
	Currency struct {
		Default string `json:"default" yaml:"default"`
		Locale  string `json:"locale" yaml:"locale"`
	} `json:"currency" yaml:"currency"`
	Cache struct {
		Backend   string `json:"backend" yaml:"backend"`
		RedisAddr string `json:"redis_addr,omitempty" yaml:"redis_addr,omitempty"`
		RedisDB   int    `json:"redis_db" yaml:"redis_db"`
		TTL       string `json:"ttl" yaml:"ttl"`
	} `json:"cache" yaml:"cache"`
	Storage struct {
		Backend string `json:"backend" yaml:"backend"`
		DataDir string `json:"data_dir,omitempty" yaml:"data_dir,omitempty"`
	} `json:"storage" yaml:"storage"`
	MCP struct {
		RateLimit int `json:"rate_limit" yaml:"rate_limit"`
		Burst     int `json:"burst" yaml:"burst"`
	} `json:"mcp" yaml:"mcp"`
}

func newSettingsView(s *domain.Settings) settingsView {
	var v settingsView
	v.Search.Number = s.Search.Number
	v.Search.Fuzzy = s.Search.Fuzzy
	v.Search.CustomerStatuses = s.Search.CustomerStatuses
	v.Search.DiscountStatuses = s.Search.DiscountStatuses
	v.Search.DownloadStatuses = s.Search.DownloadStatuses
	v.Currency.Default = s.Currency.Default
	v.Currency.Locale = s.Currency.Locale
	v.Cache.Backend = s.Cache.Backend
	v.Cache.RedisAddr = s.Cache.RedisAddr
	v.Cache.RedisDB = s.Cache.RedisDB
	v.Cache.TTL = s.Cache.TTL.String()
	v.Storage.Backend = s.Storage.Backend
	v.Storage.DataDir = s.Storage.DataDir
	v.MCP.RateLimit = s.MCP.RateLimit
	v.MCP.Burst = s.MCP.Burst
	return v
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configKeysCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}
	if s.Settings == nil {
		return errNoSettings
	}

	settings, err := s.Settings.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	v := newSettingsView(settings)
	return writeOutput(cmd, v, func(w io.Writer) error {
		fmt.Fprintln(w, "[Search]")
		fmt.Fprintf(w, "  Page size: %d\n", v.Search.Number)
		fmt.Fprintf(w, "  Fuzzy: %t\n", v.Search.Fuzzy)
		fmt.Fprintf(w, "  Customer statuses: %s\n", strings.Join(v.Search.CustomerStatuses, ", "))
		fmt.Fprintf(w, "  Discount statuses: %s\n", strings.Join(v.Search.DiscountStatuses, ", "))
		fmt.Fprintf(w, "  Download statuses: %s\n", strings.Join(v.Search.DownloadStatuses, ", "))
		fmt.Fprintln(w)

		fmt.Fprintln(w, "[Currency]")
		fmt.Fprintf(w, "  Default: %s\n", v.Currency.Default)
		fmt.Fprintf(w, "  Locale: %s\n", v.Currency.Locale)
		fmt.Fprintln(w)

		fmt.Fprintln(w, "[Cache]")
		fmt.Fprintf(w, "  Backend: %s\n", v.Cache.Backend)
		if v.Cache.Backend == domain.CacheRedis {
			fmt.Fprintf(w, "  Redis: %s (db %d)\n", v.Cache.RedisAddr, v.Cache.RedisDB)
		}
		fmt.Fprintf(w, "  TTL: %s\n", v.Cache.TTL)
		fmt.Fprintln(w)

		fmt.Fprintln(w, "[Storage]")
		fmt.Fprintf(w, "  Backend: %s\n", v.Storage.Backend)
		if v.Storage.DataDir != "" {
			fmt.Fprintf(w, "  Data dir: %s\n", v.Storage.DataDir)
		}
		fmt.Fprintln(w)

		fmt.Fprintln(w, "[MCP]")
		_, err := fmt.Fprintf(w, "  Rate limit: %d/s (burst %d)\n", v.MCP.RateLimit, v.MCP.Burst)
		return err
	})
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}
	if s.Settings == nil {
		return errNoSettings
	}

	if err := s.Settings.Set(args[0], args[1]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", args[0], args[1])
	return nil
}

func runConfigKeys(cmd *cobra.Command, _ []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}
	if s.Settings == nil {
		return errNoSettings
	}
	return writeLines(cmd, s.Settings.Keys())
}
