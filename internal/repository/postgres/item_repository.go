package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/wolhaven/atelier/internal/domain"
)

const itemColumns = `
	id, title, description, price, images,
	is_favorite, featured_haken, featured_borduren,
	featured_order_haken, featured_order_borduren,
	manual_order, created_at, updated_at
`

type itemRepository struct {
	db       *dbpg.DB
	strategy retry.Strategy
}

func NewItemRepository(db *dbpg.DB, strategy retry.Strategy) domain.ItemRepository {
	return &itemRepository{
		db:       db,
		strategy: strategy,
	}
}

// featuredColumns maps a channel to its flag and order column names.
// Channels are validated before use, never interpolated from user input.
func featuredColumns(ch domain.Channel) (flag, order string, err error) {
	switch ch {
	case domain.ChannelHaken:
		return "featured_haken", "featured_order_haken", nil
	case domain.ChannelBorduren:
		return "featured_borduren", "featured_order_borduren", nil
	default:
		return "", "", domain.ErrInvalidChannel
	}
}

func (r *itemRepository) Create(ctx context.Context, item *domain.Item, categoryIDs []string) error {
	query := `
		INSERT INTO items (
			id, title, description, price, images,
			is_favorite, featured_haken, featured_borduren,
			featured_order_haken, featured_order_borduren,
			manual_order, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.ExecWithRetry(ctx, r.strategy, query,
		item.ID,
		item.Title,
		nullString(item.Description),
		item.Price,
		pq.Array(item.Images),
		item.IsFavorite,
		item.FeaturedHaken,
		item.FeaturedBorduren,
		nullIntPtr(item.FeaturedOrderHaken),
		nullIntPtr(item.FeaturedOrderBorduren),
		item.ManualOrder,
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("item_id", item.ID).Msg("failed to create item")
		return fmt.Errorf("create item: %w", err)
	}

	if err := r.replaceCategories(ctx, item.ID, categoryIDs); err != nil {
		return err
	}

	zlog.Logger.Info().Str("item_id", item.ID).Msg("item created")
	return nil
}

func (r *itemRepository) FindByID(ctx context.Context, id string) (*domain.Item, error) {
	query := `SELECT` + itemColumns + `FROM items WHERE id = $1`

	row := r.db.Master.QueryRowContext(ctx, query, id)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrItemNotFound
	}
	if err != nil {
		zlog.Logger.Error().Err(err).Str("item_id", id).Msg("failed to find item")
		return nil, fmt.Errorf("find item: %w", err)
	}

	return item, nil
}

func (r *itemRepository) Update(ctx context.Context, item *domain.Item, categoryIDs []string) error {
	query := `
		UPDATE items
		SET title = $2,
		    description = $3,
		    price = $4,
		    images = $5,
		    manual_order = $6,
		    updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.ExecWithRetry(ctx, r.strategy, query,
		item.ID,
		item.Title,
		nullString(item.Description),
		item.Price,
		pq.Array(item.Images),
		item.ManualOrder,
	)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("item_id", item.ID).Msg("failed to update item")
		return fmt.Errorf("update item: %w", err)
	}
	if err := requireRows(result, domain.ErrItemNotFound); err != nil {
		return err
	}

	if categoryIDs != nil {
		if err := r.replaceCategories(ctx, item.ID, categoryIDs); err != nil {
			return err
		}
	}

	zlog.Logger.Info().Str("item_id", item.ID).Msg("item updated")
	return nil
}

func (r *itemRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecWithRetry(ctx, r.strategy, `DELETE FROM item_categories WHERE item_id = $1`, id); err != nil {
		return fmt.Errorf("delete item categories: %w", err)
	}

	result, err := r.db.ExecWithRetry(ctx, r.strategy, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("item_id", id).Msg("failed to delete item")
		return fmt.Errorf("delete item: %w", err)
	}
	if err := requireRows(result, domain.ErrItemNotFound); err != nil {
		return err
	}

	zlog.Logger.Info().Str("item_id", id).Msg("item deleted")
	return nil
}

func (r *itemRepository) List(ctx context.Context) ([]*domain.Item, error) {
	query := `SELECT` + itemColumns + `FROM items`

	rows, err := r.db.QueryWithRetry(ctx, r.strategy, query)
	if err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to list items")
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

func (r *itemRepository) ListByChannel(ctx context.Context, ch domain.Channel) ([]*domain.Item, error) {
	flag, order, err := featuredColumns(ch)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM items WHERE %s = TRUE ORDER BY %s ASC`, itemColumns, flag, order)

	rows, err := r.db.QueryWithRetry(ctx, r.strategy, query)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("channel", string(ch)).Msg("failed to list channel items")
		return nil, fmt.Errorf("list channel items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

func (r *itemRepository) CategoryIDs(ctx context.Context, itemID string) ([]string, error) {
	rows, err := r.db.QueryWithRetry(ctx, r.strategy,
		`SELECT category_id FROM item_categories WHERE item_id = $1`, itemID)
	if err != nil {
		return nil, fmt.Errorf("item category ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan category id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *itemRepository) CountFavorites(ctx context.Context) (int, error) {
	var count int
	err := r.db.Master.QueryRowContext(ctx, `SELECT COUNT(*) FROM items WHERE is_favorite = TRUE`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count favorites: %w", err)
	}
	return count, nil
}

func (r *itemRepository) CountFeatured(ctx context.Context, ch domain.Channel) (int, error) {
	flag, _, err := featuredColumns(ch)
	if err != nil {
		return 0, err
	}

	var count int
	query := fmt.Sprintf(`SELECT COUNT(*) FROM items WHERE %s = TRUE`, flag)
	if err := r.db.Master.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count featured: %w", err)
	}
	return count, nil
}

func (r *itemRepository) SetFavorite(ctx context.Context, id string, favorite bool) error {
	result, err := r.db.ExecWithRetry(ctx, r.strategy,
		`UPDATE items SET is_favorite = $2, updated_at = NOW() WHERE id = $1`, id, favorite)
	if err != nil {
		return fmt.Errorf("set favorite: %w", err)
	}
	return requireRows(result, domain.ErrItemNotFound)
}

func (r *itemRepository) SetFeaturedOrder(ctx context.Context, id string, ch domain.Channel, featured bool, order *int) error {
	flag, orderCol, err := featuredColumns(ch)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(
		`UPDATE items SET %s = $2, %s = $3, updated_at = NOW() WHERE id = $1`, flag, orderCol)

	result, err := r.db.ExecWithRetry(ctx, r.strategy, query, id, featured, nullIntPtr(order))
	if err != nil {
		return fmt.Errorf("set featured order: %w", err)
	}
	return requireRows(result, domain.ErrItemNotFound)
}

func (r *itemRepository) ShiftFeaturedOrders(ctx context.Context, ch domain.Channel) error {
	_, orderCol, err := featuredColumns(ch)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(
		`UPDATE items SET %s = %s + 1 WHERE %s IS NOT NULL`, orderCol, orderCol, orderCol)

	if _, err := r.db.ExecWithRetry(ctx, r.strategy, query); err != nil {
		return fmt.Errorf("shift featured orders: %w", err)
	}
	return nil
}

func (r *itemRepository) UpdateOrder(ctx context.Context, id string, order int) error {
	result, err := r.db.ExecWithRetry(ctx, r.strategy,
		`UPDATE items SET manual_order = $2, updated_at = NOW() WHERE id = $1`, id, order)
	if err != nil {
		return fmt.Errorf("update item order: %w", err)
	}
	return requireRows(result, domain.ErrItemNotFound)
}

func (r *itemRepository) replaceCategories(ctx context.Context, itemID string, categoryIDs []string) error {
	if _, err := r.db.ExecWithRetry(ctx, r.strategy,
		`DELETE FROM item_categories WHERE item_id = $1`, itemID); err != nil {
		return fmt.Errorf("clear item categories: %w", err)
	}

	for _, catID := range categoryIDs {
		if _, err := r.db.ExecWithRetry(ctx, r.strategy,
			`INSERT INTO item_categories (item_id, category_id) VALUES ($1, $2)`, itemID, catID); err != nil {
			return fmt.Errorf("link category %s: %w", catID, err)
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*domain.Item, error) {
	var item domain.Item
	var description sql.NullString
	var orderHaken, orderBorduren sql.NullInt32

	err := row.Scan(
		&item.ID,
		&item.Title,
		&description,
		&item.Price,
		pq.Array(&item.Images),
		&item.IsFavorite,
		&item.FeaturedHaken,
		&item.FeaturedBorduren,
		&orderHaken,
		&orderBorduren,
		&item.ManualOrder,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		item.Description = description.String
	}
	if orderHaken.Valid {
		v := int(orderHaken.Int32)
		item.FeaturedOrderHaken = &v
	}
	if orderBorduren.Valid {
		v := int(orderBorduren.Int32)
		item.FeaturedOrderBorduren = &v
	}

	return &item, nil
}

func scanItems(rows *sql.Rows) ([]*domain.Item, error) {
	var items []*domain.Item

	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return items, nil
}

func requireRows(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return notFound
	}
	return nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullIntPtr(v *int) sql.NullInt32 {
	if v == nil {
		return sql.NullInt32{Valid: false}
	}
	return sql.NullInt32{Int32: int32(*v), Valid: true}
}
