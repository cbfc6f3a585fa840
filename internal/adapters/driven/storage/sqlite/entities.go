package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/custodia-labs/eddkit/internal/adapters/driven/storage/schema"
	"github.com/custodia-labs/eddkit/internal/core/domain"
	"github.com/custodia-labs/eddkit/internal/core/ports/driven"
)

// The scan functions read columns in schema.Table.Columns order.

func scanCustomer(row scanner) (domain.Customer, error) {
	var c domain.Customer
	var created sql.NullTime
	err := row.Scan(&c.ID, &c.UserID, &c.Email, &c.Name, &c.Status,
		&c.PurchaseValue, &c.PurchaseCount, &created)
	c.DateCreated = timeValue(created)
	return c, err
}

func scanOrder(row scanner) (domain.Order, error) {
	var o domain.Order
	var created, completed sql.NullTime
	err := row.Scan(&o.ID, &o.ParentID, &o.OrderNumber, &o.Status, &o.Type, &o.UserID, &o.CustomerID,
		&o.Email, &o.IP, &o.Gateway, &o.Mode, &o.Currency, &o.PaymentKey,
		&o.Subtotal, &o.Discount, &o.Tax, &o.Total, &created, &completed)
	o.DateCreated = timeValue(created)
	o.DateCompleted = timeValue(completed)
	return o, err
}

func scanOrderItem(row scanner) (domain.OrderItem, error) {
	var i domain.OrderItem
	var priceID sql.NullInt64
	err := row.Scan(&i.ID, &i.OrderID, &i.ProductID, &i.ProductName, &priceID, &i.CartIndex,
		&i.Type, &i.Status, &i.Quantity, &i.Amount, &i.Subtotal, &i.Discount, &i.Tax, &i.Total)
	i.PriceID = int64Ptr(priceID)
	return i, err
}

func scanAdjustment(row scanner) (domain.Adjustment, error) {
	var a domain.Adjustment
	var start, end sql.NullTime
	err := row.Scan(&a.ID, &a.ParentID, &a.Name, &a.Code, &a.Status, &a.Type, &a.Scope,
		&a.AmountType, &a.Amount, &a.Description, &a.MaxUses, &a.UseCount, &a.OncePerCustomer,
		&a.MinChargeAmount, &start, &end)
	a.StartDate = timeValue(start)
	a.EndDate = timeValue(end)
	return a, err
}

func scanNote(row scanner) (domain.Note, error) {
	var n domain.Note
	var created sql.NullTime
	err := row.Scan(&n.ID, &n.ObjectID, &n.ObjectType, &n.UserID, &n.Content, &created)
	n.DateCreated = timeValue(created)
	return n, err
}

func scanLog(row scanner) (domain.Log, error) {
	var l domain.Log
	var created sql.NullTime
	err := row.Scan(&l.ID, &l.ObjectID, &l.ObjectType, &l.UserID, &l.Type, &l.Title, &l.Content, &created)
	l.DateCreated = timeValue(created)
	return l, err
}

func scanDownload(row scanner) (domain.Download, error) {
	var d domain.Download
	err := row.Scan(&d.ID, &d.Title, &d.Status, &d.AuthorID, &d.ProductType, &d.Price)
	return d, err
}

func timeValue(t sql.NullTime) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time.UTC()
}

func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC()
}

func int64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

func nullInt64(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}

// ==================== Customer Store ====================

type customerStore struct {
	store *Store
}

var _ driven.CustomerStore = (*customerStore)(nil)

func (s *customerStore) Get(ctx context.Context, id int64) (*domain.Customer, error) {
	return getRow(ctx, s.store.db, mustTable(domain.EntityCustomer), id, scanCustomer)
}

func (s *customerStore) Query(ctx context.Context, args domain.QueryArgs) ([]domain.Customer, error) {
	return queryTable(ctx, s.store.db, mustTable(domain.EntityCustomer), args, scanCustomer)
}

// ==================== Order Store ====================

type orderStore struct {
	store *Store
}

var _ driven.OrderStore = (*orderStore)(nil)

func (s *orderStore) Get(ctx context.Context, id int64) (*domain.Order, error) {
	return getRow(ctx, s.store.db, mustTable(domain.EntityOrder), id, scanOrder)
}

func (s *orderStore) Query(ctx context.Context, args domain.QueryArgs) ([]domain.Order, error) {
	return queryTable(ctx, s.store.db, mustTable(domain.EntityOrder), args, scanOrder)
}

func (s *orderStore) Items(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	t := mustTable(domain.EntityOrderItem)
	return queryRows(ctx, s.store.db, t.Name,
		"SELECT "+selectList(t)+" FROM "+t.Name+" WHERE order_id = ? ORDER BY cart_index, id",
		[]any{orderID}, scanOrderItem)
}

func (s *orderStore) GetItem(ctx context.Context, id int64) (*domain.OrderItem, error) {
	return getRow(ctx, s.store.db, mustTable(domain.EntityOrderItem), id, scanOrderItem)
}

func (s *orderStore) Distinct(ctx context.Context, column string) ([]string, error) {
	if !slices.Contains(schema.DistinctOrderColumns, column) {
		return nil, fmt.Errorf("distinct %q: %w", column, domain.ErrInvalidArgument)
	}
	return queryRows(ctx, s.store.db, "distinct "+column,
		"SELECT DISTINCT "+column+" FROM edd_orders WHERE "+column+" != '' ORDER BY "+column,
		nil, func(row scanner) (string, error) {
			var v string
			err := row.Scan(&v)
			return v, err
		})
}

// ==================== Adjustment Store ====================

type adjustmentStore struct {
	store *Store
}

var _ driven.AdjustmentStore = (*adjustmentStore)(nil)

func (s *adjustmentStore) Get(ctx context.Context, id int64) (*domain.Adjustment, error) {
	return getRow(ctx, s.store.db, mustTable(domain.EntityAdjustment), id, scanAdjustment)
}

func (s *adjustmentStore) Query(ctx context.Context, args domain.QueryArgs) ([]domain.Adjustment, error) {
	return queryTable(ctx, s.store.db, mustTable(domain.EntityAdjustment), args, scanAdjustment)
}

// ByCode returns the discount with the given code, compared without case.
func (s *adjustmentStore) ByCode(ctx context.Context, code string) (*domain.Adjustment, error) {
	t := mustTable(domain.EntityAdjustment)
	row := s.store.db.QueryRowContext(ctx,
		"SELECT "+selectList(t)+" FROM "+t.Name+" WHERE type = ? AND code = ? COLLATE NOCASE ORDER BY id LIMIT 1",
		domain.AdjustmentTypeDiscount, code)
	a, err := scanAdjustment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning discount: %w", err)
	}
	return &a, nil
}

// ==================== Note and Log Stores ====================

type noteStore struct {
	store *Store
}

var _ driven.NoteStore = (*noteStore)(nil)

func (s *noteStore) Get(ctx context.Context, id int64) (*domain.Note, error) {
	return getRow(ctx, s.store.db, mustTable(domain.EntityNote), id, scanNote)
}

func (s *noteStore) Query(ctx context.Context, args domain.QueryArgs) ([]domain.Note, error) {
	return queryTable(ctx, s.store.db, mustTable(domain.EntityNote), args, scanNote)
}

type logStore struct {
	store *Store
}

var _ driven.LogStore = (*logStore)(nil)

func (s *logStore) Get(ctx context.Context, id int64) (*domain.Log, error) {
	return getRow(ctx, s.store.db, mustTable(domain.EntityLog), id, scanLog)
}

func (s *logStore) Query(ctx context.Context, args domain.QueryArgs) ([]domain.Log, error) {
	return queryTable(ctx, s.store.db, mustTable(domain.EntityLog), args, scanLog)
}

// ==================== Download Store ====================

type downloadStore struct {
	store *Store
}

var _ driven.DownloadStore = (*downloadStore)(nil)

// Get returns the download with its variable prices and bundled products.
func (s *downloadStore) Get(ctx context.Context, id int64) (*domain.Download, error) {
	d, err := getRow(ctx, s.store.db, mustTable(domain.EntityDownload), id, scanDownload)
	if err != nil {
		return nil, err
	}
	if err := s.loadChildren(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *downloadStore) Query(ctx context.Context, args domain.QueryArgs) ([]domain.Download, error) {
	downloads, err := queryTable(ctx, s.store.db, mustTable(domain.EntityDownload), args, scanDownload)
	if err != nil {
		return nil, err
	}
	for i := range downloads {
		if err := s.loadChildren(ctx, &downloads[i]); err != nil {
			return nil, err
		}
	}
	return downloads, nil
}

func (s *downloadStore) loadChildren(ctx context.Context, d *domain.Download) error {
	prices, err := queryRows(ctx, s.store.db, "download prices",
		"SELECT price_index, name, amount FROM edd_download_prices WHERE download_id = ? ORDER BY price_index",
		[]any{d.ID}, func(row scanner) (domain.PriceOption, error) {
			var p domain.PriceOption
			err := row.Scan(&p.Index, &p.Name, &p.Amount)
			return p, err
		})
	if err != nil {
		return err
	}
	if len(prices) > 0 {
		d.VariablePrices = prices
	}

	bundled, err := queryRows(ctx, s.store.db, "download bundles",
		"SELECT product_id FROM edd_download_bundles WHERE download_id = ? ORDER BY position",
		[]any{d.ID}, func(row scanner) (int64, error) {
			var id int64
			err := row.Scan(&id)
			return id, err
		})
	if err != nil {
		return err
	}
	if len(bundled) > 0 {
		d.BundledProducts = bundled
	}
	return nil
}
