package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"libraryhub/internal/models"
	"libraryhub/internal/repository"
)

func newBorrowServiceAt(borrowRepo repository.BorrowRepository, userRepo repository.UserRepository, now time.Time) *borrowService {
	return &borrowService{
		borrowRepo: borrowRepo,
		userRepo:   userRepo,
		maxWindow:  14 * 24 * time.Hour,
		now:        func() time.Time { return now },
	}
}

func TestBorrowCreate_DueDateWindow(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	actor := Actor{ID: "user-1", Role: models.RoleUser}

	cases := []struct {
		name    string
		dueDate time.Time
		wantErr error
	}{
		{"too soon", now.Add(12 * time.Hour), ErrInvalidDueDate},
		{"exactly the minimum lead", now.Add(24 * time.Hour), ErrInvalidDueDate},
		{"just past the minimum", now.Add(24*time.Hour + time.Minute), nil},
		{"at the window edge", now.Add(14 * 24 * time.Hour), nil},
		{"past the window", now.Add(15 * 24 * time.Hour), ErrInvalidDueDate},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			borrowRepo := new(mockBorrowRepo)
			userRepo := new(mockUserRepo)
			svc := newBorrowServiceAt(borrowRepo, userRepo, now)

			if tc.wantErr == nil {
				userRepo.On("FindByID", mock.Anything, "user-1").
					Return(&models.User{ID: "user-1", Role: models.RoleUser}, nil)
				borrowRepo.On("Borrow", mock.Anything, mock.AnythingOfType("*models.Borrow")).
					Return(nil)
			}

			_, err := svc.Create(context.Background(), actor, CreateBorrowInput{
				UserID:  "user-1",
				BookID:  1,
				DueDate: tc.dueDate,
			})

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
			borrowRepo.AssertExpectations(t)
		})
	}
}

func TestBorrowCreate_UserCannotBorrowForOthers(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := newBorrowServiceAt(new(mockBorrowRepo), new(mockUserRepo), now)

	actor := Actor{ID: "user-1", Role: models.RoleUser}
	_, err := svc.Create(context.Background(), actor, CreateBorrowInput{
		UserID:  "user-2",
		BookID:  1,
		DueDate: now.Add(48 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestBorrowCreate_StaffBorrowOnBehalf(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	borrowRepo := new(mockBorrowRepo)
	userRepo := new(mockUserRepo)
	svc := newBorrowServiceAt(borrowRepo, userRepo, now)

	userRepo.On("FindByID", mock.Anything, "patron-1").
		Return(&models.User{ID: "patron-1", Role: models.RoleUser}, nil)
	borrowRepo.On("Borrow", mock.Anything, mock.AnythingOfType("*models.Borrow")).
		Return(nil)

	actor := Actor{ID: "staff-1", Role: models.RoleLibrarian}
	borrow, err := svc.Create(context.Background(), actor, CreateBorrowInput{
		UserID:  "patron-1",
		BookID:  1,
		DueDate: now.Add(48 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, "patron-1", borrow.UserID)
	assert.Equal(t, models.StatusBorrowed, borrow.Status)
	assert.Equal(t, now, borrow.BorrowedAt)
}

func TestBorrowCreate_UnknownUser(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	borrowRepo := new(mockBorrowRepo)
	userRepo := new(mockUserRepo)
	svc := newBorrowServiceAt(borrowRepo, userRepo, now)

	userRepo.On("FindByID", mock.Anything, "ghost").
		Return(nil, repository.ErrNotFound)

	actor := Actor{ID: "staff-1", Role: models.RoleAdmin}
	_, err := svc.Create(context.Background(), actor, CreateBorrowInput{
		UserID:  "ghost",
		BookID:  1,
		DueDate: now.Add(48 * time.Hour),
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)
	borrowRepo.AssertNotCalled(t, "Borrow", mock.Anything, mock.Anything)
}

func TestBorrowReturn_OwnershipEnforced(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	borrowRepo := new(mockBorrowRepo)
	svc := newBorrowServiceAt(borrowRepo, new(mockUserRepo), now)

	borrowRepo.On("GetByID", mock.Anything, int64(7)).
		Return(&models.Borrow{ID: 7, UserID: "owner"}, nil)

	stranger := Actor{ID: "stranger", Role: models.RoleUser}
	_, err := svc.Return(context.Background(), stranger, 7)
	assert.ErrorIs(t, err, ErrForbidden)
	borrowRepo.AssertNotCalled(t, "Return", mock.Anything, mock.Anything, mock.Anything)
}

func TestBorrowReturn_StaffMayReturnAnyLoan(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	borrowRepo := new(mockBorrowRepo)
	svc := newBorrowServiceAt(borrowRepo, new(mockUserRepo), now)

	returnedAt := now
	borrowRepo.On("GetByID", mock.Anything, int64(7)).
		Return(&models.Borrow{ID: 7, UserID: "owner"}, nil)
	borrowRepo.On("Return", mock.Anything, int64(7), now).
		Return(&models.Borrow{ID: 7, UserID: "owner", ReturnedAt: &returnedAt, Status: models.StatusReturned}, nil)

	librarian := Actor{ID: "staff-1", Role: models.RoleLibrarian}
	returned, err := svc.Return(context.Background(), librarian, 7)
	require.NoError(t, err)
	assert.Equal(t, models.StatusReturned, returned.Status)
}

func TestBorrowList_StaffOnly(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	borrowRepo := new(mockBorrowRepo)
	svc := newBorrowServiceAt(borrowRepo, new(mockUserRepo), now)

	patron := Actor{ID: "user-1", Role: models.RoleUser}
	_, _, err := svc.List(context.Background(), patron, ListBorrowsInput{Page: 1, PageSize: 20})
	assert.ErrorIs(t, err, ErrForbidden)

	// The filter carries the service clock so OVERDUE is evaluated
	// consistently with what responses report.
	borrowRepo.On("List", mock.Anything, repository.BorrowFilter{Now: now, Page: 1, PageSize: 20}).
		Return([]models.Borrow{}, int64(0), nil)

	librarian := Actor{ID: "staff-1", Role: models.RoleLibrarian}
	_, _, err = svc.List(context.Background(), librarian, ListBorrowsInput{Page: 1, PageSize: 20})
	assert.NoError(t, err)
	borrowRepo.AssertExpectations(t)
}

// countingBorrowRepo models a store holding a fixed number of copies with
// an atomic availability counter, the same guarantee the conditional
// UPDATE gives in SQL.
type countingBorrowRepo struct {
	mockBorrowRepo
	available int64
}

func (r *countingBorrowRepo) Borrow(ctx context.Context, b *models.Borrow) error {
	for {
		cur := atomic.LoadInt64(&r.available)
		if cur <= 0 {
			return repository.ErrBookUnavailable
		}
		if atomic.CompareAndSwapInt64(&r.available, cur, cur-1) {
			return nil
		}
	}
}

func TestBorrowCreate_LastCopyRace(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	repo := &countingBorrowRepo{available: 1}
	userRepo := new(mockUserRepo)
	userRepo.On("FindByID", mock.Anything, mock.Anything).
		Return(&models.User{ID: "user-1", Role: models.RoleUser}, nil)
	svc := newBorrowServiceAt(repo, userRepo, now)

	const attempts = 32
	var wg sync.WaitGroup
	var successes, unavailable int64

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Create(context.Background(), Actor{ID: "user-1", Role: models.RoleUser}, CreateBorrowInput{
				UserID:  "user-1",
				BookID:  1,
				DueDate: now.Add(48 * time.Hour),
			})
			switch {
			case err == nil:
				atomic.AddInt64(&successes, 1)
			case errors.Is(err, repository.ErrBookUnavailable):
				atomic.AddInt64(&unavailable, 1)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, successes)
	assert.EqualValues(t, attempts-1, unavailable)
}
