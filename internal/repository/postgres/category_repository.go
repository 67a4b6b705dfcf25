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

type categoryRepository struct {
	db       *dbpg.DB
	strategy retry.Strategy
}

func NewCategoryRepository(db *dbpg.DB, strategy retry.Strategy) domain.CategoryRepository {
	return &categoryRepository{
		db:       db,
		strategy: strategy,
	}
}

func (r *categoryRepository) Create(ctx context.Context, category *domain.Category) error {
	query := `
		INSERT INTO categories (id, name, image_url, manual_order, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecWithRetry(ctx, r.strategy, query,
		category.ID,
		category.Name,
		nullString(category.ImageURL),
		category.ManualOrder,
		category.CreatedAt,
	)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("category_id", category.ID).Msg("failed to create category")
		return fmt.Errorf("create category: %w", err)
	}

	zlog.Logger.Info().Str("category_id", category.ID).Msg("category created")
	return nil
}

func (r *categoryRepository) FindByID(ctx context.Context, id string) (*domain.Category, error) {
	query := `SELECT id, name, image_url, manual_order, created_at FROM categories WHERE id = $1`

	category, err := scanCategory(r.db.Master.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find category: %w", err)
	}

	return category, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *domain.Category) error {
	query := `
		UPDATE categories
		SET name = $2, image_url = $3, manual_order = $4
		WHERE id = $1
	`

	result, err := r.db.ExecWithRetry(ctx, r.strategy, query,
		category.ID,
		category.Name,
		nullString(category.ImageURL),
		category.ManualOrder,
	)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("category_id", category.ID).Msg("failed to update category")
		return fmt.Errorf("update category: %w", err)
	}
	return requireRows(result, domain.ErrCategoryNotFound)
}

func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecWithRetry(ctx, r.strategy,
		`DELETE FROM item_categories WHERE category_id = $1`, id); err != nil {
		return fmt.Errorf("delete item links: %w", err)
	}
	if _, err := r.db.ExecWithRetry(ctx, r.strategy,
		`DELETE FROM headcategories_categories WHERE category_id = $1`, id); err != nil {
		return fmt.Errorf("delete headcategory links: %w", err)
	}

	result, err := r.db.ExecWithRetry(ctx, r.strategy, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("category_id", id).Msg("failed to delete category")
		return fmt.Errorf("delete category: %w", err)
	}
	return requireRows(result, domain.ErrCategoryNotFound)
}

func (r *categoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	query := `
		SELECT id, name, image_url, manual_order, created_at
		FROM categories
		ORDER BY manual_order ASC, created_at DESC
	`

	rows, err := r.db.QueryWithRetry(ctx, r.strategy, query)
	if err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to list categories")
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (r *categoryRepository) UpdateOrder(ctx context.Context, id string, order int) error {
	result, err := r.db.ExecWithRetry(ctx, r.strategy,
		`UPDATE categories SET manual_order = $2 WHERE id = $1`, id, order)
	if err != nil {
		return fmt.Errorf("update category order: %w", err)
	}
	return requireRows(result, domain.ErrCategoryNotFound)
}

func scanCategory(row rowScanner) (*domain.Category, error) {
	var category domain.Category
	var imageURL sql.NullString

	err := row.Scan(
		&category.ID,
		&category.Name,
		&imageURL,
		&category.ManualOrder,
		&category.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if imageURL.Valid {
		category.ImageURL = imageURL.String
	}
	return &category, nil
}
