package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/eddkit/internal/core/domain"
)

var (
	searchNumber         int
	searchStatus         []string
	searchOrderBy        string
	searchOrder          string
	searchRaw            bool
	searchExcludeBundles bool
	searchArgs           []string
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search records for selection widgets",
	Long: `Search customers, discounts or downloads the way admin search boxes do.

A term can be a numeric ID, an email address, a prefixed ID such as
c:12 (customer) or u:4 (user), or free text matched against names and
titles. An empty term lists the first page.

Flags override the configured defaults for this call only.`,
}

var searchCustomersCmd = &cobra.Command{
	Use:     "customers [term]",
	Aliases: []string{"customer"},
	Short:   "Search customers by ID, user, email or name",
	Args:    cobra.MaximumNArgs(1),
	RunE:    runSearchCustomers,
}

var searchDiscountsCmd = &cobra.Command{
	Use:     "discounts [term]",
	Aliases: []string{"discount"},
	Short:   "Search discount codes by ID, code or name",
	Args:    cobra.MaximumNArgs(1),
	RunE:    runSearchDiscounts,
}

var searchDownloadsCmd = &cobra.Command{
	Use:     "downloads [term]",
	Aliases: []string{"download", "products"},
	Short:   "Search downloads by ID, author or title",
	Args:    cobra.MaximumNArgs(1),
	RunE:    runSearchDownloads,
}

func init() {
	flags := searchCmd.PersistentFlags()
	flags.IntVarP(&searchNumber, "number", "n", 0, "maximum number of results (default from config)")
	flags.StringSliceVar(&searchStatus, "status", nil, "statuses to include (default from config)")
	flags.StringVar(&searchOrderBy, "orderby", "", "sort field")
	flags.StringVar(&searchOrder, "order", "", "sort direction: ASC or DESC")
	flags.BoolVar(&searchRaw, "raw", false, "print host records instead of option pairs")
	flags.StringArrayVar(&searchArgs, "arg", nil, "extra query argument as key=value (repeatable)")
	searchDownloadsCmd.Flags().BoolVar(&searchExcludeBundles, "exclude-bundles", false, "leave bundle products out")

	searchCmd.AddCommand(searchCustomersCmd)
	searchCmd.AddCommand(searchDiscountsCmd)
	searchCmd.AddCommand(searchDownloadsCmd)
	rootCmd.AddCommand(searchCmd)
}

// searchExtra builds the per-call query arguments from flags. --arg pairs
// are applied last.
func searchExtra() (domain.QueryArgs, error) {
	extra := make(domain.QueryArgs)
	if searchNumber > 0 {
		extra.Set(domain.ArgNumber, strconv.Itoa(searchNumber))
	}
	if len(searchStatus) > 0 {
		extra[domain.ArgStatus] = append([]string(nil), searchStatus...)
	}
	if searchOrderBy != "" {
		extra.Set(domain.ArgOrderBy, searchOrderBy)
	}
	if searchOrder != "" {
		order := domain.ParseSortOrder(searchOrder)
		if !order.IsValid() {
			return nil, fmt.Errorf("invalid order %q: must be ASC or DESC: %w", searchOrder, domain.ErrInvalidInput)
		}
		extra.Set(domain.ArgOrder, string(order))
	}

	pairs, err := domain.ParseArgs(searchArgs)
	if err != nil {
		return nil, fmt.Errorf("invalid --arg, expected key=value: %w", err)
	}
	for k, v := range pairs {
		extra[k] = v
	}
	return extra, nil
}

func searchTerm(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return strings.TrimSpace(args[0])
}

func runSearchCustomers(cmd *cobra.Command, args []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}
	extra, err := searchExtra()
	if err != nil {
		return err
	}

	term := searchTerm(args)
	if searchRaw {
		return writeRecords(cmd, s.CustomerSearch.RawResults(cmd.Context(), term, extra), (*domain.Customer).Record)
	}
	return writeOptions(cmd, s.CustomerSearch.Results(cmd.Context(), term, extra))
}

func runSearchDiscounts(cmd *cobra.Command, args []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}
	extra, err := searchExtra()
	if err != nil {
		return err
	}

	term := searchTerm(args)
	if searchRaw {
		return writeRecords(cmd, s.DiscountSearch.RawResults(cmd.Context(), term, extra), (*domain.Adjustment).Record)
	}
	return writeOptions(cmd, s.DiscountSearch.Results(cmd.Context(), term, extra))
}

func runSearchDownloads(cmd *cobra.Command, args []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}
	extra, err := searchExtra()
	if err != nil {
		return err
	}
	if searchExcludeBundles {
		extra.Set(domain.ArgExcludeBundles, "true")
	}

	term := searchTerm(args)
	if searchRaw {
		return writeRecords(cmd, s.DownloadSearch.RawResults(cmd.Context(), term, extra), (*domain.Download).Record)
	}
	return writeOptions(cmd, s.DownloadSearch.Results(cmd.Context(), term, extra))
}
