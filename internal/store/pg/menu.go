package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"menuqr.app/internal/menu"
)

// Menu implements menu.Store.
type Menu struct {
	db *sql.DB
}

var _ menu.Store = (*Menu)(nil)

// NewMenu builds a Menu store.
func NewMenu(db *sql.DB) *Menu {
	return &Menu{db: db}
}

const categoryColumns = `id, tenant_id, name, description, sort_order, is_active, created_at, updated_at`
const itemColumns = `id, tenant_id, category_id, name, description, price_cents, image_url, is_available, sort_order, created_at, updated_at`

func scanCategory(row interface{ Scan(dest ...any) error }) (*menu.Category, error) {
	var c menu.Category
	err := row.Scan(&c.ID, &c.TenantID, &c.Name, &c.Description, &c.SortOrder, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, menu.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func scanItem(row interface{ Scan(dest ...any) error }) (*menu.Item, error) {
	var (
		i          menu.Item
		categoryID sql.NullString
	)
	err := row.Scan(&i.ID, &i.TenantID, &categoryID, &i.Name, &i.Description, &i.PriceCents,
		&i.ImageURL, &i.IsAvailable, &i.SortOrder, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, menu.ErrNotFound
		}
		return nil, err
	}
	i.CategoryID = categoryID.String
	return &i, nil
}

func (s *Menu) CreateCategory(ctx context.Context, c *menu.Category) error {
	_, err := s.db.ExecContext(ctx,
		`insert into categories(id, tenant_id, name, description, sort_order, is_active)
		 values($1,$2,$3,$4,$5,$6)`,
		c.ID, c.TenantID, c.Name, c.Description, c.SortOrder, c.IsActive,
	)
	return err
}

func (s *Menu) ListCategories(ctx context.Context, tenantID string, activeOnly bool) ([]*menu.Category, error) {
	query := `select ` + categoryColumns + ` from categories where tenant_id=$1`
	if activeOnly {
		query += ` and is_active`
	}
	query += ` order by sort_order, created_at`
	rows, err := s.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*menu.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *Menu) GetCategory(ctx context.Context, id string) (*menu.Category, error) {
	row := s.db.QueryRowContext(ctx,
		`select `+categoryColumns+` from categories where id=$1`, id)
	return scanCategory(row)
}

func (s *Menu) UpdateCategory(ctx context.Context, id string, upd menu.CategoryUpdate) (*menu.Category, error) {
	sets := []string{"updated_at = now()"}
	args := []any{id}
	set := func(column string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if upd.Name != nil {
		set("name", *upd.Name)
	}
	if upd.Description != nil {
		set("description", *upd.Description)
	}
	if upd.SortOrder != nil {
		set("sort_order", *upd.SortOrder)
	}
	if upd.IsActive != nil {
		set("is_active", *upd.IsActive)
	}
	row := s.db.QueryRowContext(ctx,
		`update categories set `+strings.Join(sets, ", ")+` where id=$1 returning `+categoryColumns, args...)
	return scanCategory(row)
}

func (s *Menu) DeleteCategory(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	// Items survive their category; they just become uncategorized.
	if _, err := tx.ExecContext(ctx,
		`update menu_items set category_id = null, updated_at = now() where category_id=$1`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `delete from categories where id=$1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return menu.ErrNotFound
	}
	return tx.Commit()
}

func (s *Menu) CreateItem(ctx context.Context, i *menu.Item) error {
	_, err := s.db.ExecContext(ctx,
		`insert into menu_items(id, tenant_id, category_id, name, description, price_cents, image_url, is_available, sort_order)
		 values($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		i.ID, i.TenantID, nullable(i.CategoryID), i.Name, i.Description, i.PriceCents, i.ImageURL, i.IsAvailable, i.SortOrder,
	)
	return err
}

func (s *Menu) ListItems(ctx context.Context, filter menu.ItemFilter) ([]*menu.Item, error) {
	query := `select ` + itemColumns + ` from menu_items where tenant_id=$1`
	args := []any{filter.TenantID}
	if filter.CategoryID != "" {
		args = append(args, filter.CategoryID)
		query += fmt.Sprintf(` and category_id=$%d`, len(args))
	}
	if filter.AvailableOnly {
		query += ` and is_available`
	}
	query += ` order by sort_order, created_at`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*menu.Item
	for rows.Next() {
		i, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

func (s *Menu) GetItem(ctx context.Context, id string) (*menu.Item, error) {
	row := s.db.QueryRowContext(ctx,
		`select `+itemColumns+` from menu_items where id=$1`, id)
	return scanItem(row)
}

func (s *Menu) UpdateItem(ctx context.Context, id string, upd menu.ItemUpdate) (*menu.Item, error) {
	sets := []string{"updated_at = now()"}
	args := []any{id}
	set := func(column string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if upd.CategoryID != nil {
		set("category_id", nullable(*upd.CategoryID))
	}
	if upd.Name != nil {
		set("name", *upd.Name)
	}
	if upd.Description != nil {
		set("description", *upd.Description)
	}
	if upd.PriceCents != nil {
		set("price_cents", *upd.PriceCents)
	}
	if upd.ImageURL != nil {
		set("image_url", *upd.ImageURL)
	}
	if upd.IsAvailable != nil {
		set("is_available", *upd.IsAvailable)
	}
	if upd.SortOrder != nil {
		set("sort_order", *upd.SortOrder)
	}
	row := s.db.QueryRowContext(ctx,
		`update menu_items set `+strings.Join(sets, ", ")+` where id=$1 returning `+itemColumns, args...)
	return scanItem(row)
}

func (s *Menu) DeleteItem(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `delete from menu_items where id=$1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return menu.ErrNotFound
	}
	return nil
}
