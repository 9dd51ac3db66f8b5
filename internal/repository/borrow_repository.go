package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"libraryhub/internal/models"

	"gorm.io/gorm"
)

// BorrowFilter narrows List results. Status may be any of the three
// presented statuses; OVERDUE and BORROWED are translated into predicates
// over returned_at and due_date evaluated against Now.
type BorrowFilter struct {
	Status   *models.BorrowStatus
	Now      time.Time
	Page     int
	PageSize int
}

type BorrowRepository interface {
	// Borrow inserts the record and decrements the book's availability as
	// one transaction. The conditional UPDATE is the availability check:
	// under concurrent requests for the last copy exactly one decrement
	// succeeds, regardless of how many server instances run.
	Borrow(ctx context.Context, b *models.Borrow) error
	// Return stamps returned_at/status and increments availability, capped
	// at quantity. A second return of the same borrow fails with
	// ErrAlreadyReturned and leaves availability untouched.
	Return(ctx context.Context, id int64, now time.Time) (*models.Borrow, error)
	GetByID(ctx context.Context, id int64) (*models.Borrow, error)
	List(ctx context.Context, f BorrowFilter) ([]models.Borrow, int64, error)
	ListByUser(ctx context.Context, userID string) ([]models.Borrow, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
}

type borrowRepository struct {
	db *gorm.DB
}

func NewBorrowRepository(db *gorm.DB) BorrowRepository {
	return &borrowRepository{db: db}
}

func (r *borrowRepository) Borrow(ctx context.Context, b *models.Borrow) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Book{}).
			Where("id = ? AND available > 0", b.BookID).
			UpdateColumn("available", gorm.Expr("available - 1"))
		if res.Error != nil {
			return fmt.Errorf("decrement availability: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.Book{}).Where("id = ?", b.BookID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return ErrNotFound
			}
			return ErrBookUnavailable
		}

		if err := tx.Create(b).Error; err != nil {
			return fmt.Errorf("create borrow: %w", err)
		}
		return nil
	})
}

func (r *borrowRepository) Return(ctx context.Context, id int64, now time.Time) (*models.Borrow, error) {
	var borrow models.Borrow
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&borrow, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		res := tx.Model(&models.Borrow{}).
			Where("id = ? AND returned_at IS NULL", id).
			Updates(map[string]interface{}{
				"returned_at": now,
				"status":      models.StatusReturned,
			})
		if res.Error != nil {
			return fmt.Errorf("mark returned: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyReturned
		}

		// The available < quantity guard keeps the invariant intact even
		// if a row were ever returned through a competing path.
		if err := tx.Model(&models.Book{}).
			Where("id = ? AND available < quantity", borrow.BookID).
			UpdateColumn("available", gorm.Expr("available + 1")).Error; err != nil {
			return fmt.Errorf("increment availability: %w", err)
		}

		borrow.ReturnedAt = &now
		borrow.Status = models.StatusReturned
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &borrow, nil
}

func (r *borrowRepository) GetByID(ctx context.Context, id int64) (*models.Borrow, error) {
	var b models.Borrow
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Book").
		First(&b, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *borrowRepository) List(ctx context.Context, f BorrowFilter) ([]models.Borrow, int64, error) {
	var list []models.Borrow
	var total int64

	base := r.db.WithContext(ctx).Model(&models.Borrow{})
	base = applyStatusFilter(base, f)

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := r.db.WithContext(ctx).Preload("User").Preload("Book")
	q = applyStatusFilter(q, f)

	offset := (f.Page - 1) * f.PageSize
	if err := q.Order("borrowed_at desc").
		Limit(f.PageSize).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("list borrows: %w", err)
	}

	return list, total, nil
}

func applyStatusFilter(q *gorm.DB, f BorrowFilter) *gorm.DB {
	if f.Status == nil {
		return q
	}
	switch *f.Status {
	case models.StatusReturned:
		return q.Where("returned_at IS NOT NULL")
	case models.StatusOverdue:
		return q.Where("returned_at IS NULL AND due_date < ?", f.Now)
	default:
		return q.Where("returned_at IS NULL AND due_date >= ?", f.Now)
	}
}

func (r *borrowRepository) ListByUser(ctx context.Context, userID string) ([]models.Borrow, error) {
	var list []models.Borrow
	if err := r.db.WithContext(ctx).
		Preload("Book").
		Where("user_id = ?", userID).
		Order("borrowed_at desc").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list user borrows: %w", err)
	}
	return list, nil
}

func (r *borrowRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Borrow{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
