package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/eddkit/internal/core/domain"
)

var countriesSorted bool

var countriesCmd = &cobra.Command{
	Use:   "countries [code]",
	Short: "List countries or show one by its ISO 3166 code",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCountries,
}

func init() {
	countriesCmd.Flags().BoolVar(&countriesSorted, "sorted", true, "order by name instead of code")
	rootCmd.AddCommand(countriesCmd)
}

func runCountries(cmd *cobra.Command, args []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		return writeOptions(cmd, s.Countries.Options(countriesSorted))
	}

	country, ok := s.Countries.Details(args[0])
	if !ok {
		return fmt.Errorf("country %q: %w", args[0], domain.ErrNotFound)
	}
	return writeOutput(cmd, country, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, s.Countries.Format(country.Code))
		return err
	})
}
