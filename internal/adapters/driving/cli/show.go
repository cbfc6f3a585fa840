package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/eddkit/internal/core/domain"
)

var showItems bool

var showCmd = &cobra.Command{
	Use:   "show <entity> <id>",
	Short: "Show a record with its derived values",
	Long: `Show a customer, order, order item, discount, note, log or download.

Derived values such as formatted totals, status labels and whether a
discount is currently usable are added to the record's attributes.`,
	Args: cobra.ExactArgs(2),
	RunE: runShow,
}

var notesCmd = &cobra.Command{
	Use:   "notes <object-type> <object-id>",
	Short: "List notes attached to a record, oldest first",
	Args:  cobra.ExactArgs(2),
	RunE:  runNotes,
}

var logsCmd = &cobra.Command{
	Use:   "logs <object-type> <object-id>",
	Short: "List log entries attached to a record, oldest first",
	Args:  cobra.ExactArgs(2),
	RunE:  runLogs,
}

func init() {
	showCmd.Flags().BoolVar(&showItems, "items", false, "for orders, list the order items instead")
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(notesCmd)
	rootCmd.AddCommand(logsCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}
	entity, id, err := entityAndID(args)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if entity == domain.EntityOrder && showItems {
		if !s.Orders.Exists(ctx, id) {
			return fmt.Errorf("%s %d: %w", entity, id, domain.ErrNotFound)
		}
		return writeRecords(cmd, s.Orders.Items(ctx, id), (*domain.OrderItem).Record)
	}

	record, ok := s.detail(ctx, entity, id)
	if !ok {
		return fmt.Errorf("%s %d: %w", entity, id, domain.ErrNotFound)
	}
	return writeRecord(cmd, record)
}

// detail returns the record of an entity with facade values added.
func (s *Services) detail(ctx context.Context, entity domain.EntityType, id int64) (domain.Record, bool) {
	switch entity {
	case domain.EntityCustomer:
		c, ok := s.Customers.Get(ctx, id)
		if !ok {
			return nil, false
		}
		r := c.Record()
		r["display_name"] = s.Customers.Name(ctx, id)
		r["lifetime_value"] = s.Customers.LifetimeValue(ctx, id)
		r["order_count"] = s.Customers.OrderCount(ctx, id)
		return r, true

	case domain.EntityOrder:
		o, ok := s.Orders.Get(ctx, id)
		if !ok {
			return nil, false
		}
		r := o.Record()
		r["number"] = o.Number()
		r["status_label"] = s.Orders.StatusLabel(ctx, id)
		r["formatted_total"] = s.Orders.FormattedTotal(ctx, id)
		r["item_count"] = s.Orders.ItemCount(ctx, id)
		r["complete"] = s.Orders.IsComplete(ctx, id)
		return r, true

	case domain.EntityOrderItem:
		i, ok := s.OrderItems.Get(ctx, id)
		if !ok {
			return nil, false
		}
		r := i.Record()
		r["label"] = s.OrderItems.Label(ctx, id)
		return r, true

	case domain.EntityAdjustment:
		a, ok := s.Adjustments.Get(ctx, id)
		if !ok {
			return nil, false
		}
		r := a.Record()
		r["formatted_amount"] = s.Adjustments.FormattedAmount(ctx, id)
		r["usable"] = s.Adjustments.IsActive(ctx, id)
		return r, true

	case domain.EntityNote:
		n, ok := s.Notes.Get(ctx, id)
		if !ok {
			return nil, false
		}
		return n.Record(), true

	case domain.EntityLog:
		l, ok := s.Logs.Get(ctx, id)
		if !ok {
			return nil, false
		}
		return l.Record(), true

	case domain.EntityDownload:
		d, ok := s.Downloads.Get(ctx, id)
		if !ok {
			return nil, false
		}
		r := d.Record()
		r["bundle"] = s.Downloads.IsBundle(ctx, id)
		r["variable_prices"] = s.Downloads.HasVariablePrices(ctx, id)
		if bundled := s.Downloads.BundledProducts(ctx, id); len(bundled) > 0 {
			r["bundled_products"] = bundled
		}
		return r, true
	}
	return nil, false
}

func runNotes(cmd *cobra.Command, args []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}
	id, err := parseID(args[1])
	if err != nil {
		return err
	}
	return writeRecords(cmd, s.Notes.ForObject(cmd.Context(), args[0], id), (*domain.Note).Record)
}

func runLogs(cmd *cobra.Command, args []string) error {
	s, err := requireServices()
	if err != nil {
		return err
	}
	id, err := parseID(args[1])
	if err != nil {
		return err
	}
	return writeRecords(cmd, s.Logs.ForObject(cmd.Context(), args[0], id), (*domain.Log).Record)
}
