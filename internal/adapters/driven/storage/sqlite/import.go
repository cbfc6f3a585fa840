package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/custodia-labs/eddkit/internal/adapters/driven/storage/schema"
	"github.com/custodia-labs/eddkit/internal/core/domain"
)

// Import writes a dataset in one transaction, replacing records with the
// same ID. Order items nested in orders are stored against their order.
// A non-nil cart replaces the current cart.
func (s *Store) Import(ctx context.Context, data *domain.Dataset) error {
	if data == nil {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning import: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	steps := []func(context.Context, *sql.Tx, *domain.Dataset) error{
		importCustomers,
		importOrders,
		importAdjustments,
		importNotes,
		importLogs,
		importDownloads,
		importMeta,
		importPlugins,
		importCart,
	}
	for _, step := range steps {
		if err := step(ctx, tx, data); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing import: %w", err)
	}
	return nil
}

// SetMeta stores a metadata value.
func (s *Store) SetMeta(ctx context.Context, entity domain.EntityType, id int64, key, value string) error {
	t, ok := schema.ForEntity(entity)
	if !ok {
		return domain.ErrUnsupportedType
	}
	if _, err := s.db.ExecContext(ctx, upsertMeta(t), id, key, value); err != nil {
		return fmt.Errorf("saving %s: %w", t.Meta, err)
	}
	return nil
}

func upsertMeta(t schema.Table) string {
	return "INSERT INTO " + t.Meta + ` (object_id, meta_key, meta_value) VALUES (?, ?, ?)
		ON CONFLICT(object_id, meta_key) DO UPDATE SET meta_value = excluded.meta_value`
}

func importCustomers(ctx context.Context, tx *sql.Tx, data *domain.Dataset) error {
	for _, c := range data.Customers {
		_, err := tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO edd_customers
				(id, user_id, email, name, status, purchase_value, purchase_count, date_created)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, c.ID, c.UserID, c.Email, c.Name, c.Status, c.PurchaseValue, c.PurchaseCount, nullTime(c.DateCreated))
		if err != nil {
			return fmt.Errorf("saving customer %d: %w", c.ID, err)
		}
	}
	return nil
}

func importOrders(ctx context.Context, tx *sql.Tx, data *domain.Dataset) error {
	for _, o := range data.Orders {
		_, err := tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO edd_orders
				(id, parent, order_number, status, type, user_id, customer_id, email, ip, gateway, mode,
				 currency, payment_key, subtotal, discount, tax, total, date_created, date_completed)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, o.ID, o.ParentID, o.OrderNumber, o.Status, o.Type, o.UserID, o.CustomerID, o.Email, o.IP,
			o.Gateway, o.Mode, o.Currency, o.PaymentKey, o.Subtotal, o.Discount, o.Tax, o.Total,
			nullTime(o.DateCreated), nullTime(o.DateCompleted))
		if err != nil {
			return fmt.Errorf("saving order %d: %w", o.ID, err)
		}

		for _, i := range o.Items {
			_, err := tx.ExecContext(ctx, `
				INSERT OR REPLACE INTO edd_order_items
					(id, order_id, product_id, product_name, price_id, cart_index, type, status,
					 quantity, amount, subtotal, discount, tax, total)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			`, i.ID, o.ID, i.ProductID, i.ProductName, nullInt64(i.PriceID), i.CartIndex, i.Type, i.Status,
				i.Quantity, i.Amount, i.Subtotal, i.Discount, i.Tax, i.Total)
			if err != nil {
				return fmt.Errorf("saving order item %d: %w", i.ID, err)
			}
		}
	}
	return nil
}

func importAdjustments(ctx context.Context, tx *sql.Tx, data *domain.Dataset) error {
	for _, a := range data.Adjustments {
		_, err := tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO edd_adjustments
				(id, parent, name, code, status, type, scope, amount_type, amount, description,
				 max_uses, use_count, once_per_customer, min_charge_amount, start_date, end_date)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, a.ID, a.ParentID, a.Name, a.Code, a.Status, a.Type, a.Scope, a.AmountType, a.Amount, a.Description,
			a.MaxUses, a.UseCount, a.OncePerCustomer, a.MinChargeAmount, nullTime(a.StartDate), nullTime(a.EndDate))
		if err != nil {
			return fmt.Errorf("saving adjustment %d: %w", a.ID, err)
		}
	}
	return nil
}

func importNotes(ctx context.Context, tx *sql.Tx, data *domain.Dataset) error {
	for _, n := range data.Notes {
		_, err := tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO edd_notes (id, object_id, object_type, user_id, content, date_created)
			VALUES (?, ?, ?, ?, ?, ?)
		`, n.ID, n.ObjectID, n.ObjectType, n.UserID, n.Content, nullTime(n.DateCreated))
		if err != nil {
			return fmt.Errorf("saving note %d: %w", n.ID, err)
		}
	}
	return nil
}

func importLogs(ctx context.Context, tx *sql.Tx, data *domain.Dataset) error {
	for _, l := range data.Logs {
		_, err := tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO edd_logs (id, object_id, object_type, user_id, type, title, content, date_created)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, l.ID, l.ObjectID, l.ObjectType, l.UserID, l.Type, l.Title, l.Content, nullTime(l.DateCreated))
		if err != nil {
			return fmt.Errorf("saving log %d: %w", l.ID, err)
		}
	}
	return nil
}

func importDownloads(ctx context.Context, tx *sql.Tx, data *domain.Dataset) error {
	for _, d := range data.Downloads {
		productType := d.ProductType
		if productType == "" {
			productType = domain.ProductTypeDefault
		}
		_, err := tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO edd_downloads (id, title, status, author, product_type, price)
			VALUES (?, ?, ?, ?, ?, ?)
		`, d.ID, d.Title, d.Status, d.AuthorID, productType, d.Price)
		if err != nil {
			return fmt.Errorf("saving download %d: %w", d.ID, err)
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM edd_download_prices WHERE download_id = ?", d.ID); err != nil {
			return fmt.Errorf("clearing prices of download %d: %w", d.ID, err)
		}
		for _, p := range d.VariablePrices {
			_, err := tx.ExecContext(ctx,
				"INSERT OR REPLACE INTO edd_download_prices (download_id, price_index, name, amount) VALUES (?, ?, ?, ?)",
				d.ID, p.Index, p.Name, p.Amount)
			if err != nil {
				return fmt.Errorf("saving price %d of download %d: %w", p.Index, d.ID, err)
			}
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM edd_download_bundles WHERE download_id = ?", d.ID); err != nil {
			return fmt.Errorf("clearing bundle of download %d: %w", d.ID, err)
		}
		for pos, productID := range d.BundledProducts {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO edd_download_bundles (download_id, position, product_id) VALUES (?, ?, ?)",
				d.ID, pos, productID)
			if err != nil {
				return fmt.Errorf("saving bundle of download %d: %w", d.ID, err)
			}
		}
	}
	return nil
}

func importMeta(ctx context.Context, tx *sql.Tx, data *domain.Dataset) error {
	for _, m := range data.Meta {
		t, ok := schema.ForEntity(m.Entity)
		if !ok {
			return fmt.Errorf("meta %q for %s %d: %w", m.Key, m.Entity, m.ID, domain.ErrUnsupportedType)
		}
		if _, err := tx.ExecContext(ctx, upsertMeta(t), m.ID, m.Key, m.Value); err != nil {
			return fmt.Errorf("saving %s %q: %w", t.Meta, m.Key, err)
		}
	}
	return nil
}

func importPlugins(ctx context.Context, tx *sql.Tx, data *domain.Dataset) error {
	for _, slug := range data.ActivePlugins {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO plugins (slug, active) VALUES (?, 1)
			ON CONFLICT(slug) DO UPDATE SET active = 1
		`, slug)
		if err != nil {
			return fmt.Errorf("saving plugin %s: %w", slug, err)
		}
	}
	return nil
}

func importCart(ctx context.Context, tx *sql.Tx, data *domain.Dataset) error {
	if data.Cart == nil {
		return nil
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM cart_items"); err != nil {
		return fmt.Errorf("clearing cart: %w", err)
	}
	for pos, item := range data.Cart {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO cart_items (position, download_id, price_id, quantity, item_price) VALUES (?, ?, ?, ?, ?)",
			pos, item.DownloadID, nullInt64(item.PriceID), item.Quantity, item.ItemPrice)
		if err != nil {
			return fmt.Errorf("saving cart item %d: %w", pos, err)
		}
	}
	return nil
}
