package cli

import (
	"cmp"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/eddkit/internal/core/domain"
)

var (
	pricePriceID int64
	priceMetaKey string
)

var priceCmd = &cobra.Command{
	Use:   "price <download-id>",
	Short: "Show the price of a download or one of its variable prices",
	Long: `Show the price of a download. With --price-id the named variable price
is used instead of the base price.

--meta reads a product setting. With --price-id the setting stored for
that price is read, e.g. license_limit_2 for price 2.`,
	Args: cobra.ExactArgs(1),
	RunE: runPrice,
}

// priceInfo is the structured output of the price command.
type priceInfo struct {
	DownloadID int64   `json:"download_id" yaml:"download_id"`
	PriceID    *int64  `json:"price_id,omitempty" yaml:"price_id,omitempty"`
	Name       string  `json:"name,omitempty" yaml:"name,omitempty"`
	Amount     float64 `json:"amount" yaml:"amount"`
	Meta       *string `json:"meta,omitempty" yaml:"meta,omitempty"`
}

func init() {
	priceCmd.Flags().Int64Var(&pricePriceID, "price-id", -1, "variable price ID")
	priceCmd.Flags().StringVar(&priceMetaKey, "meta", "", "product setting to read for the price")
	rootCmd.AddCommand(priceCmd)
}

func runPrice(cmd *cobra.Command, args []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if !s.Downloads.Exists(ctx, id) {
		return fmt.Errorf("download %d: %w", id, domain.ErrNotFound)
	}

	var priceID *int64
	if cmd.Flags().Changed("price-id") {
		priceID = &pricePriceID
	}

	info := priceInfo{
		DownloadID: id,
		PriceID:    priceID,
		Name:       s.Downloads.PriceName(ctx, id, priceID),
		Amount:     s.Downloads.Price(ctx, id, priceID),
	}
	if priceMetaKey != "" {
		if v, ok := s.Downloads.PriceMeta(ctx, id, priceMetaKey, priceID); ok {
			info.Meta = &v
		}
	}

	return writeOutput(cmd, info, func(w io.Writer) error {
		fmt.Fprintf(w, "%s: %s\n", cmp.Or(info.Name, "Price"), s.Currencies.Format(info.Amount, s.Currencies.Default()))
		if priceMetaKey != "" {
			value := "(not set)"
			if info.Meta != nil {
				value = *info.Meta
			}
			fmt.Fprintf(w, "%s: %s\n", priceMetaKey, value)
		}
		return nil
	})
}
