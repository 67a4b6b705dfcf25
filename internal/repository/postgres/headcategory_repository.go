package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/wolhaven/atelier/internal/domain"
)

type headCategoryRepository struct {
	db       *dbpg.DB
	strategy retry.Strategy
}

func NewHeadCategoryRepository(db *dbpg.DB, strategy retry.Strategy) domain.HeadCategoryRepository {
	return &headCategoryRepository{
		db:       db,
		strategy: strategy,
	}
}

func (r *headCategoryRepository) Create(ctx context.Context, head *domain.HeadCategory, categoryIDs []string) error {
	query := `
		INSERT INTO headcategories (id, name, image_url, manual_order, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecWithRetry(ctx, r.strategy, query,
		head.ID,
		head.Name,
		nullString(head.ImageURL),
		head.ManualOrder,
		head.CreatedAt,
	)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("headcategory_id", head.ID).Msg("failed to create headcategory")
		return fmt.Errorf("create headcategory: %w", err)
	}

	if err := r.replaceCategories(ctx, head.ID, categoryIDs); err != nil {
		return err
	}

	zlog.Logger.Info().Str("headcategory_id", head.ID).Msg("headcategory created")
	return nil
}

func (r *headCategoryRepository) FindByID(ctx context.Context, id string) (*domain.HeadCategory, error) {
	query := `SELECT id, name, image_url, manual_order, created_at FROM headcategories WHERE id = $1`

	head, err := scanHeadCategory(r.db.Master.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find headcategory: %w", err)
	}

	return head, nil
}

func (r *headCategoryRepository) Update(ctx context.Context, head *domain.HeadCategory, categoryIDs []string) error {
	query := `
		UPDATE headcategories
		SET name = $2, image_url = $3, manual_order = $4
		WHERE id = $1
	`

	result, err := r.db.ExecWithRetry(ctx, r.strategy, query,
		head.ID,
		head.Name,
		nullString(head.ImageURL),
		head.ManualOrder,
	)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("headcategory_id", head.ID).Msg("failed to update headcategory")
		return fmt.Errorf("update headcategory: %w", err)
	}
	if err := requireRows(result, domain.ErrNotFound); err != nil {
		return err
	}

	if categoryIDs != nil {
		return r.replaceCategories(ctx, head.ID, categoryIDs)
	}
	return nil
}

func (r *headCategoryRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecWithRetry(ctx, r.strategy,
		`DELETE FROM headcategories_categories WHERE headcategory_id = $1`, id); err != nil {
		return fmt.Errorf("delete category links: %w", err)
	}

	result, err := r.db.ExecWithRetry(ctx, r.strategy, `DELETE FROM headcategories WHERE id = $1`, id)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("headcategory_id", id).Msg("failed to delete headcategory")
		return fmt.Errorf("delete headcategory: %w", err)
	}
	return requireRows(result, domain.ErrNotFound)
}

func (r *headCategoryRepository) List(ctx context.Context) ([]*domain.HeadCategory, error) {
	query := `
		SELECT id, name, image_url, manual_order, created_at
		FROM headcategories
		ORDER BY manual_order ASC, created_at DESC
	`

	rows, err := r.db.QueryWithRetry(ctx, r.strategy, query)
	if err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to list headcategories")
		return nil, fmt.Errorf("list headcategories: %w", err)
	}
	defer rows.Close()

	var heads []*domain.HeadCategory
	for rows.Next() {
		head, err := scanHeadCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan headcategory: %w", err)
		}
		heads = append(heads, head)
	}
	return heads, rows.Err()
}

func (r *headCategoryRepository) CategoryIDs(ctx context.Context, headID string) ([]string, error) {
	rows, err := r.db.QueryWithRetry(ctx, r.strategy,
		`SELECT category_id FROM headcategories_categories WHERE headcategory_id = $1`, headID)
	if err != nil {
		return nil, fmt.Errorf("headcategory category ids: %w", err)
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

func (r *headCategoryRepository) UpdateOrder(ctx context.Context, id string, order int) error {
	result, err := r.db.ExecWithRetry(ctx, r.strategy,
		`UPDATE headcategories SET manual_order = $2 WHERE id = $1`, id, order)
	if err != nil {
		return fmt.Errorf("update headcategory order: %w", err)
	}
	return requireRows(result, domain.ErrNotFound)
}

func (r *headCategoryRepository) replaceCategories(ctx context.Context, headID string, categoryIDs []string) error {
	if _, err := r.db.ExecWithRetry(ctx, r.strategy,
		`DELETE FROM headcategories_categories WHERE headcategory_id = $1`, headID); err != nil {
		return fmt.Errorf("clear category links: %w", err)
	}

	for _, catID := range categoryIDs {
		if _, err := r.db.ExecWithRetry(ctx, r.strategy,
			`INSERT INTO headcategories_categories (headcategory_id, category_id) VALUES ($1, $2)`, headID, catID); err != nil {
			return fmt.Errorf("link category %s: %w", catID, err)
		}
	}
	return nil
}

func scanHeadCategory(row rowScanner) (*domain.HeadCategory, error) {
	var head domain.HeadCategory
	var imageURL sql.NullString

	err := row.Scan(
		&head.ID,
		&head.Name,
		&imageURL,
		&head.ManualOrder,
		&head.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if imageURL.Valid {
		head.ImageURL = imageURL.String
	}
	return &head, nil
}
