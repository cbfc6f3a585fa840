package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/eddkit/internal/core/domain"
)

var optionsSorted bool

var optionsCmd = &cobra.Command{
	Use:   "options <list>",
	Short: "Print a fixed option list for dropdowns",
	Long: `Print one of the fixed option lists as {value, label} pairs.

Lists:
  order-statuses   order status keys and labels
  discount-types   discount amount types
  countries        ISO 3166 countries`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"order-statuses", "discount-types", "countries"},
	RunE:      runOptions,
}

func init() {
	optionsCmd.Flags().BoolVar(&optionsSorted, "sorted", false, "order by label instead of value")
	rootCmd.AddCommand(optionsCmd)
}

func runOptions(cmd *cobra.Command, args []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}

	var options []domain.OptionPair
	switch args[0] {
	case "order-statuses":
		options = s.Orders.StatusOptions(optionsSorted)
	case "discount-types":
		options = s.Adjustments.TypeOptions(optionsSorted)
	case "countries":
		options = s.Countries.Options(optionsSorted)
	default:
		return fmt.Errorf("unknown option list %q: %w", args[0], domain.ErrInvalidInput)
	}
	return writeOptions(cmd, options)
}
