package service

import (
	"context"
	"time"

	"libraryhub/internal/models"
	"libraryhub/internal/repository"
)

// CreateBorrowInput describes a loan request. UserID may differ from the
// acting subject only when staff borrow on a patron's behalf.
type CreateBorrowInput struct {
	UserID  string
	BookID  int64
	DueDate time.Time
	Note    *string
}

type ListBorrowsInput struct {
	Status   *models.BorrowStatus
	Page     int
	PageSize int
}

type BorrowService interface {
	Create(ctx context.Context, actor Actor, input CreateBorrowInput) (*models.Borrow, error)
	Return(ctx context.Context, actor Actor, borrowID int64) (*models.Borrow, error)
	Get(ctx context.Context, actor Actor, borrowID int64) (*models.Borrow, error)
	List(ctx context.Context, actor Actor, input ListBorrowsInput) ([]models.Borrow, int64, error)
	ListByUser(ctx context.Context, actor Actor, userID string) ([]models.Borrow, error)
}

type borrowService struct {
	borrowRepo repository.BorrowRepository
	userRepo   repository.UserRepository
	maxWindow  time.Duration
	now        func() time.Time
}

// minDueDateLead keeps due dates strictly later than tomorrow.
const minDueDateLead = 24 * time.Hour

func NewBorrowService(
	borrowRepo repository.BorrowRepository,
	userRepo repository.UserRepository,
	maxWindow time.Duration,
) BorrowService {
	return &borrowService{
		borrowRepo: borrowRepo,
		userRepo:   userRepo,
		maxWindow:  maxWindow,
		now:        time.Now,
	}
}

func (s *borrowService) Create(ctx context.Context, actor Actor, input CreateBorrowInput) (*models.Borrow, error) {
	if !actor.CanActFor(input.UserID) {
		return nil, ErrForbidden
	}

	now := s.now()
	if !input.DueDate.After(now.Add(minDueDateLead)) || input.DueDate.After(now.Add(s.maxWindow)) {
		return nil, ErrInvalidDueDate
	}

	if _, err := s.userRepo.FindByID(ctx, input.UserID); err != nil {
		return nil, err
	}

	borrow := &models.Borrow{
		UserID:     input.UserID,
		BookID:     input.BookID,
		BorrowedAt: now,
		DueDate:    input.DueDate,
		Status:     models.StatusBorrowed,
		Note:       input.Note,
	}

	// Availability check, decrement and insert happen atomically in the
	// repository; the book-missing and no-copies cases surface as
	// ErrNotFound / ErrBookUnavailable.
	if err := s.borrowRepo.Borrow(ctx, borrow); err != nil {
		return nil, err
	}

	return borrow, nil
}

func (s *borrowService) Return(ctx context.Context, actor Actor, borrowID int64) (*models.Borrow, error) {
	borrow, err := s.borrowRepo.GetByID(ctx, borrowID)
	if err != nil {
		return nil, err
	}
	if !actor.CanActFor(borrow.UserID) {
		return nil, ErrForbidden
	}

	returned, err := s.borrowRepo.Return(ctx, borrowID, s.now())
	if err != nil {
		return nil, err
	}
	return returned, nil
}

func (s *borrowService) Get(ctx context.Context, actor Actor, borrowID int64) (*models.Borrow, error) {
	borrow, err := s.borrowRepo.GetByID(ctx, borrowID)
	if err != nil {
		return nil, err
	}
	if !actor.CanActFor(borrow.UserID) {
		return nil, ErrForbidden
	}
	return borrow, nil
}

func (s *borrowService) List(ctx context.Context, actor Actor, input ListBorrowsInput) ([]models.Borrow, int64, error) {
	if !actor.IsStaff() {
		return nil, 0, ErrForbidden
	}

	return s.borrowRepo.List(ctx, repository.BorrowFilter{
		Status:   input.Status,
		Now:      s.now(),
		Page:     input.Page,
		PageSize: input.PageSize,
	})
}

func (s *borrowService) ListByUser(ctx context.Context, actor Actor, userID string) ([]models.Borrow, error) {
	if !actor.CanActFor(userID) {
		return nil, ErrForbidden
	}
	return s.borrowRepo.ListByUser(ctx, userID)
}
