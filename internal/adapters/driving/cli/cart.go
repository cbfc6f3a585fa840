package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/eddkit/internal/core/domain"
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Show the current cart",
	Args:  cobra.NoArgs,
	RunE:  runCart,
}

// cartSummary is the structured output of the cart command.
type cartSummary struct {
	Items    []cartLine `json:"items" yaml:"items"`
	Quantity int        `json:"quantity" yaml:"quantity"`
	Total    string     `json:"total" yaml:"total"`
}

type cartLine struct {
	DownloadID int64   `json:"download_id" yaml:"download_id"`
	PriceID    *int64  `json:"price_id,omitempty" yaml:"price_id,omitempty"`
	Name       string  `json:"name" yaml:"name"`
	Quantity   int     `json:"quantity" yaml:"quantity"`
	ItemPrice  float64 `json:"item_price" yaml:"item_price"`
}

func init() {
	rootCmd.AddCommand(cartCmd)
}

func runCart(cmd *cobra.Command, _ []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	summary := cartSummary{
		Items:    []cartLine{},
		Quantity: s.Cart.Quantity(ctx),
		Total:    s.Cart.Total(ctx),
	}
	for _, item := range s.Cart.Contents(ctx) {
		summary.Items = append(summary.Items, cartLine{
			DownloadID: item.DownloadID,
			PriceID:    item.PriceID,
			Name:       lineName(cmd, s, item),
			Quantity:   item.Quantity,
			ItemPrice:  item.ItemPrice,
		})
	}

	return writeOutput(cmd, summary, func(w io.Writer) error {
		if s.Cart.IsEmpty(ctx) {
			_, err := fmt.Fprintln(w, "The cart is empty.")
			return err
		}
		rows := make([][]string, 0, len(summary.Items))
		for _, line := range summary.Items {
			rows = append(rows, []string{
				line.Name,
				fmt.Sprint(line.Quantity),
				s.Currencies.Format(line.ItemPrice, s.Currencies.Default()),
			})
		}
		fmt.Fprintln(w, renderTable([]string{"ITEM", "QTY", "PRICE"}, rows))
		_, err := fmt.Fprintf(w, "%d items, total %s\n", summary.Quantity, summary.Total)
		return err
	})
}

// lineName names a cart line by its download title and price option.
func lineName(cmd *cobra.Command, s *Services, item domain.CartItem) string {
	ctx := cmd.Context()
	title := fmt.Sprintf("#%d", item.DownloadID)
	if d, ok := s.Downloads.Get(ctx, item.DownloadID); ok && d.Title != "" {
		title = d.Title
	}
	if item.PriceID == nil {
		return title
	}
	if name := s.Downloads.PriceName(ctx, item.DownloadID, item.PriceID); name != "" {
		return title + " - " + name
	}
	return title
}
