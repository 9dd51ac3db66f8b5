package repository

import (
	"context"
	"errors"
	"fmt"

	"libraryhub/internal/models"

	"gorm.io/gorm"
)

// BookRepository persists books together with their author and category
// associations. Nil id slices leave an association untouched; non-nil
// slices replace it.
type BookRepository interface {
	Create(ctx context.Context, book *models.Book, authorIDs, categoryIDs []int64) error
	GetByID(ctx context.Context, id int64) (*models.Book, error)
	GetAll(ctx context.Context, page, pageSize int) ([]models.Book, int64, error)
	SearchByTitle(ctx context.Context, query string, page, pageSize int) ([]models.Book, int64, error)
	Update(ctx context.Context, book *models.Book, authorIDs, categoryIDs []int64) error
	Delete(ctx context.Context, id int64) error
}

type bookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(ctx context.Context, book *models.Book, authorIDs, categoryIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkIDsExist(tx, &models.Author{}, authorIDs); err != nil {
			return err
		}
		if err := checkIDsExist(tx, &models.Category{}, categoryIDs); err != nil {
			return err
		}

		if err := tx.Omit("Authors", "Categories").Create(book).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateISBN
			}
			return fmt.Errorf("create book: %w", err)
		}

		if err := replaceAssociations(tx, book, authorIDs, categoryIDs); err != nil {
			return err
		}
		return nil
	})
}

func (r *bookRepository) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	var b models.Book
	if err := r.db.WithContext(ctx).
		Preload("Authors").
		Preload("Categories").
		First(&b, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *bookRepository) GetAll(ctx context.Context, page, pageSize int) ([]models.Book, int64, error) {
	var list []models.Book
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Book{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := r.db.WithContext(ctx).
		Preload("Authors").
		Preload("Categories").
		Order("created_at desc").
		Limit(pageSize).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

// SearchByTitle performs a case-insensitive substring match on the title.
// LOWER + LIKE rather than ILIKE so the query runs on both postgres and
// the sqlite used in tests.
func (r *bookRepository) SearchByTitle(ctx context.Context, query string, page, pageSize int) ([]models.Book, int64, error) {
	var list []models.Book
	var total int64

	pattern := "%" + query + "%"
	base := r.db.WithContext(ctx).Model(&models.Book{}).
		Where("LOWER(title) LIKE LOWER(?)", pattern)

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := r.db.WithContext(ctx).
		Preload("Authors").
		Preload("Categories").
		Where("LOWER(title) LIKE LOWER(?)", pattern).
		Order("title asc").
		Limit(pageSize).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("search books by title: %w", err)
	}

	return list, total, nil
}

// Update applies the mutable fields of book. When the quantity changes,
// the number of copies on loan must still fit: quantity may never drop
// below quantity-available of the stored row. Available is re-based so
// that outstanding loans are preserved exactly.
func (r *bookRepository) Update(ctx context.Context, book *models.Book, authorIDs, categoryIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.Book
		if err := tx.First(&current, book.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		outstanding := current.Quantity - current.Available
		if book.Quantity < outstanding {
			return ErrQuantityBelowLoans
		}
		book.Available = book.Quantity - outstanding
		book.CreatedAt = current.CreatedAt

		if err := checkIDsExist(tx, &models.Author{}, authorIDs); err != nil {
			return err
		}
		if err := checkIDsExist(tx, &models.Category{}, categoryIDs); err != nil {
			return err
		}

		if err := tx.Omit("Authors", "Categories").Save(book).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateISBN
			}
			return fmt.Errorf("update book: %w", err)
		}

		return replaceAssociations(tx, book, authorIDs, categoryIDs)
	})
}

// Delete removes a book and its join rows. Borrow history that is fully
// returned is kept; any outstanding borrow blocks the delete.
func (r *bookRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b models.Book
		if err := tx.First(&b, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var active int64
		if err := tx.Model(&models.Borrow{}).
			Where("book_id = ? AND returned_at IS NULL", id).
			Count(&active).Error; err != nil {
			return fmt.Errorf("count active borrows: %w", err)
		}
		if active > 0 {
			return ErrHasActiveBorrows
		}

		if err := tx.Model(&b).Association("Authors").Clear(); err != nil {
			return fmt.Errorf("clear authors: %w", err)
		}
		if err := tx.Model(&b).Association("Categories").Clear(); err != nil {
			return fmt.Errorf("clear categories: %w", err)
		}

		if err := tx.Delete(&models.Book{}, id).Error; err != nil {
			return fmt.Errorf("delete book: %w", err)
		}
		return nil
	})
}

// checkIDsExist verifies every id in ids references a stored row of model.
// A nil slice means "leave unchanged" and is not checked.
func checkIDsExist(tx *gorm.DB, model interface{}, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	var count int64
	if err := tx.Model(model).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return err
	}
	if count != int64(len(ids)) {
		return ErrNotFound
	}
	return nil
}

func replaceAssociations(tx *gorm.DB, book *models.Book, authorIDs, categoryIDs []int64) error {
	if authorIDs != nil {
		authors := make([]models.Author, 0, len(authorIDs))
		for _, id := range authorIDs {
			authors = append(authors, models.Author{ID: id})
		}
		if err := tx.Model(book).Association("Authors").Replace(&authors); err != nil {
			return fmt.Errorf("replace authors: %w", err)
		}
	}
	if categoryIDs != nil {
		categories := make([]models.Category, 0, len(categoryIDs))
		for _, id := range categoryIDs {
			categories = append(categories, models.Category{ID: id})
		}
		if err := tx.Model(book).Association("Categories").Replace(&categories); err != nil {
			return fmt.Errorf("replace categories: %w", err)
		}
	}
	return nil
}
