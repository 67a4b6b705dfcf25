package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/zlog"

	"github.com/wolhaven/atelier/internal/domain"
)

type CategoryUsecase struct {
	categories domain.CategoryRepository
	heads      domain.HeadCategoryRepository
}

func NewCategoryUsecase(categories domain.CategoryRepository, heads domain.HeadCategoryRepository) *CategoryUsecase {
	return &CategoryUsecase{
		categories: categories,
		heads:      heads,
	}
}

func (u *CategoryUsecase) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if category.Name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}

	category.ID = uuid.New().String()
	category.CreatedAt = time.Now()

	if err := u.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (u *CategoryUsecase) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	return u.categories.FindByID(ctx, id)
}

func (u *CategoryUsecase) UpdateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if category.Name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if err := u.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	return u.categories.FindByID(ctx, category.ID)
}

func (u *CategoryUsecase) DeleteCategory(ctx context.Context, id string) error {
	return u.categories.Delete(ctx, id)
}

func (u *CategoryUsecase) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return u.categories.List(ctx)
}

// ReorderCategories applies order values row by row, non-transactionally.
func (u *CategoryUsecase) ReorderCategories(ctx context.Context, updates []domain.OrderUpdate) error {
	for _, upd := range updates {
		if err := u.categories.UpdateOrder(ctx, upd.ID, upd.Order); err != nil {
			zlog.Logger.Error().Err(err).Str("category_id", upd.ID).Msg("category reorder failed midway")
			return err
		}
	}
	return nil
}

func (u *CategoryUsecase) CreateHeadCategory(ctx context.Context, head *domain.HeadCategory, categoryIDs []string) (*domain.HeadCategory, error) {
	if head.Name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}

	head.ID = uuid.New().String()
	head.CreatedAt = time.Now()

	if err := u.heads.Create(ctx, head, categoryIDs); err != nil {
		return nil, err
	}
	return head, nil
}

func (u *CategoryUsecase) GetHeadCategory(ctx context.Context, id string) (*domain.HeadCategory, error) {
	return u.heads.FindByID(ctx, id)
}

func (u *CategoryUsecase) UpdateHeadCategory(ctx context.Context, head *domain.HeadCategory, categoryIDs []string) (*domain.HeadCategory, error) {
	if head.Name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if err := u.heads.Update(ctx, head, categoryIDs); err != nil {
		return nil, err
	}
	return u.heads.FindByID(ctx, head.ID)
}

func (u *CategoryUsecase) DeleteHeadCategory(ctx context.Context, id string) error {
	return u.heads.Delete(ctx, id)
}

func (u *CategoryUsecase) ListHeadCategories(ctx context.Context) ([]*domain.HeadCategory, error) {
	return u.heads.List(ctx)
}

func (u *CategoryUsecase) HeadCategoryIDs(ctx context.Context, headID string) ([]string, error) {
	return u.heads.CategoryIDs(ctx, headID)
}

func (u *CategoryUsecase) ReorderHeadCategories(ctx context.Context, updates []domain.OrderUpdate) error {
	for _, upd := range updates {
		if err := u.heads.UpdateOrder(ctx, upd.ID, upd.Order); err != nil {
			zlog.Logger.Error().Err(err).Str("headcategory_id", upd.ID).Msg("headcategory reorder failed midway")
			return err
		}
	}
	return nil
}
