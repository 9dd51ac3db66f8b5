package repository

import (
	"context"
	"errors"
	"fmt"

	"libraryhub/internal/models"

	"gorm.io/gorm"
)

type AuthorRepository interface {
	Create(ctx context.Context, author *models.Author) error
	GetByID(ctx context.Context, id int64) (*models.Author, error)
	GetAll(ctx context.Context, page, pageSize int) ([]models.Author, int64, error)
	SearchByName(ctx context.Context, query string, page, pageSize int) ([]models.Author, int64, error)
	Update(ctx context.Context, author *models.Author) error
	Delete(ctx context.Context, id int64) error
}

type authorRepository struct {
	db *gorm.DB
}

func NewAuthorRepository(db *gorm.DB) AuthorRepository {
	return &authorRepository{db: db}
}

func (r *authorRepository) Create(ctx context.Context, author *models.Author) error {
	if err := r.db.WithContext(ctx).Create(author).Error; err != nil {
		return fmt.Errorf("create author: %w", err)
	}
	return nil
}

func (r *authorRepository) GetByID(ctx context.Context, id int64) (*models.Author, error) {
	var a models.Author
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *authorRepository) GetAll(ctx context.Context, page, pageSize int) ([]models.Author, int64, error) {
	var list []models.Author
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Author{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := r.db.WithContext(ctx).
		Order("name asc").
		Limit(pageSize).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *authorRepository) SearchByName(ctx context.Context, query string, page, pageSize int) ([]models.Author, int64, error) {
	var list []models.Author
	var total int64

	pattern := "%" + query + "%"
	if err := r.db.WithContext(ctx).Model(&models.Author{}).
		Where("LOWER(name) LIKE LOWER(?)", pattern).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE LOWER(?)", pattern).
		Order("name asc").
		Limit(pageSize).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("search authors by name: %w", err)
	}

	return list, total, nil
}

func (r *authorRepository) Update(ctx context.Context, author *models.Author) error {
	res := r.db.WithContext(ctx).Model(&models.Author{}).
		Where("id = ?", author.ID).
		Updates(map[string]interface{}{"name": author.Name, "bio": author.Bio})
	if res.Error != nil {
		return fmt.Errorf("update author: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete detaches the author from all books and removes the author row.
// Books themselves are never deleted here.
func (r *authorRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var a models.Author
		if err := tx.First(&a, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := tx.Exec("DELETE FROM book_authors WHERE author_id = ?", id).Error; err != nil {
			return fmt.Errorf("detach author from books: %w", err)
		}

		if err := tx.Delete(&models.Author{}, id).Error; err != nil {
			return fmt.Errorf("delete author: %w", err)
		}
		return nil
	})
}
