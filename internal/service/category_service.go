package service

import (
	"context"
	"strings"

	"libraryhub/internal/models"
	"libraryhub/internal/repository"
)

type CategoryService interface {
	Create(ctx context.Context, actor Actor, name string) (*models.Category, error)
	Get(ctx context.Context, id int64) (*models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
	Update(ctx context.Context, actor Actor, id int64, name string) (*models.Category, error)
	// Delete detaches the category from its books; the books survive.
	Delete(ctx context.Context, actor Actor, id int64) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) Create(ctx context.Context, actor Actor, name string) (*models.Category, error) {
	if !actor.IsStaff() {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(name) == "" {
		return nil, ErrValidation
	}

	category := &models.Category{Name: name}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Get(ctx context.Context, id int64) (*models.Category, error) {
	return s.categoryRepo.GetByID(ctx, id)
}

func (s *categoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.categoryRepo.GetAll(ctx)
}

func (s *categoryService) Update(ctx context.Context, actor Actor, id int64, name string) (*models.Category, error) {
	if !actor.IsStaff() {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(name) == "" {
		return nil, ErrValidation
	}

	category := &models.Category{ID: id, Name: name}
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, actor Actor, id int64) error {
	if !actor.IsStaff() {
		return ErrForbidden
	}
	return s.categoryRepo.Delete(ctx, id)
}
