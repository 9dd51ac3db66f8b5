package service

import (
	"context"
	"strings"
	"time"

	"libraryhub/internal/models"
	"libraryhub/internal/repository"
)

type BookInput struct {
	Title       string
	ISBN        string
	Description *string
	PublishedAt *time.Time
	CoverURL    *string
	Pages       *int
	Quantity    int
	AuthorIDs   []int64
	CategoryIDs []int64
}

type BookService interface {
	Create(ctx context.Context, actor Actor, input BookInput) (*models.Book, error)
	Get(ctx context.Context, id int64) (*models.Book, error)
	List(ctx context.Context, page, pageSize int) ([]models.Book, int64, error)
	Search(ctx context.Context, query string, page, pageSize int) ([]models.Book, int64, error)
	Update(ctx context.Context, actor Actor, id int64, input BookInput) (*models.Book, error)
	Delete(ctx context.Context, actor Actor, id int64) error
}

type bookService struct {
	bookRepo repository.BookRepository
}

func NewBookService(bookRepo repository.BookRepository) BookService {
	return &bookService{bookRepo: bookRepo}
}

func (s *bookService) validate(input BookInput) error {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.ISBN) == "" {
		return ErrValidation
	}
	if input.Quantity < 0 {
		return ErrValidation
	}
	return nil
}

func (s *bookService) Create(ctx context.Context, actor Actor, input BookInput) (*models.Book, error) {
	if !actor.IsStaff() {
		return nil, ErrForbidden
	}
	if err := s.validate(input); err != nil {
		return nil, err
	}

	book := &models.Book{
		Title:       input.Title,
		ISBN:        input.ISBN,
		Description: input.Description,
		PublishedAt: input.PublishedAt,
		CoverURL:    input.CoverURL,
		Pages:       input.Pages,
		Quantity:    input.Quantity,
		// Every copy starts on the shelf.
		Available: input.Quantity,
	}

	if err := s.bookRepo.Create(ctx, book, input.AuthorIDs, input.CategoryIDs); err != nil {
		return nil, err
	}

	return s.bookRepo.GetByID(ctx, book.ID)
}

func (s *bookService) Get(ctx context.Context, id int64) (*models.Book, error) {
	return s.bookRepo.GetByID(ctx, id)
}

func (s *bookService) List(ctx context.Context, page, pageSize int) ([]models.Book, int64, error) {
	return s.bookRepo.GetAll(ctx, page, pageSize)
}

func (s *bookService) Search(ctx context.Context, query string, page, pageSize int) ([]models.Book, int64, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.Book{}, 0, nil
	}
	return s.bookRepo.SearchByTitle(ctx, query, page, pageSize)
}

func (s *bookService) Update(ctx context.Context, actor Actor, id int64, input BookInput) (*models.Book, error) {
	if !actor.IsStaff() {
		return nil, ErrForbidden
	}
	if err := s.validate(input); err != nil {
		return nil, err
	}

	book := &models.Book{
		ID:          id,
		Title:       input.Title,
		ISBN:        input.ISBN,
		Description: input.Description,
		PublishedAt: input.PublishedAt,
		CoverURL:    input.CoverURL,
		Pages:       input.Pages,
		Quantity:    input.Quantity,
	}

	// The repository re-bases Available against outstanding loans and
	// rejects a quantity below them.
	if err := s.bookRepo.Update(ctx, book, input.AuthorIDs, input.CategoryIDs); err != nil {
		return nil, err
	}

	return s.bookRepo.GetByID(ctx, id)
}

func (s *bookService) Delete(ctx context.Context, actor Actor, id int64) error {
	if !actor.IsStaff() {
		return ErrForbidden
	}
	return s.bookRepo.Delete(ctx, id)
}
