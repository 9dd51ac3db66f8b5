package service

import (
	"context"
	"strings"

	"libraryhub/internal/models"
	"libraryhub/internal/repository"
)

type AuthorInput struct {
	Name string
	Bio  *string
}

type AuthorService interface {
	Create(ctx context.Context, actor Actor, input AuthorInput) (*models.Author, error)
	Get(ctx context.Context, id int64) (*models.Author, error)
	List(ctx context.Context, page, pageSize int) ([]models.Author, int64, error)
	Search(ctx context.Context, query string, page, pageSize int) ([]models.Author, int64, error)
	Update(ctx context.Context, actor Actor, id int64, input AuthorInput) (*models.Author, error)
	Delete(ctx context.Context, actor Actor, id int64) error
}

type authorService struct {
	authorRepo repository.AuthorRepository
}

func NewAuthorService(authorRepo repository.AuthorRepository) AuthorService {
	return &authorService{authorRepo: authorRepo}
}

func (s *authorService) Create(ctx context.Context, actor Actor, input AuthorInput) (*models.Author, error) {
	if !actor.IsStaff() {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrValidation
	}

	author := &models.Author{Name: input.Name, Bio: input.Bio}
	if err := s.authorRepo.Create(ctx, author); err != nil {
		return nil, err
	}
	return author, nil
}

func (s *authorService) Get(ctx context.Context, id int64) (*models.Author, error) {
	return s.authorRepo.GetByID(ctx, id)
}

func (s *authorService) List(ctx context.Context, page, pageSize int) ([]models.Author, int64, error) {
	return s.authorRepo.GetAll(ctx, page, pageSize)
}

func (s *authorService) Search(ctx context.Context, query string, page, pageSize int) ([]models.Author, int64, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.Author{}, 0, nil
	}
	return s.authorRepo.SearchByName(ctx, query, page, pageSize)
}

func (s *authorService) Update(ctx context.Context, actor Actor, id int64, input AuthorInput) (*models.Author, error) {
	if !actor.IsStaff() {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrValidation
	}

	author := &models.Author{ID: id, Name: input.Name, Bio: input.Bio}
	if err := s.authorRepo.Update(ctx, author); err != nil {
		return nil, err
	}
	return s.authorRepo.GetByID(ctx, id)
}

func (s *authorService) Delete(ctx context.Context, actor Actor, id int64) error {
	if !actor.IsStaff() {
		return ErrForbidden
	}
	return s.authorRepo.Delete(ctx, id)
}
