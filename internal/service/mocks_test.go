package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"libraryhub/internal/models"
	"libraryhub/internal/repository"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) List(ctx context.Context, page, pageSize int) ([]models.User, int64, error) {
	args := m.Called(ctx, page, pageSize)
	var users []models.User
	if v := args.Get(0); v != nil {
		users = v.([]models.User)
	}
	return users, args.Get(1).(int64), args.Error(2)
}

func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockUserRepo) ForceDelete(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

type mockRefreshTokenRepo struct {
	mock.Mock
}

func (m *mockRefreshTokenRepo) Create(ctx context.Context, token *models.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *mockRefreshTokenRepo) FindByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	args := m.Called(ctx, token)
	if rt := args.Get(0); rt != nil {
		return rt.(*models.RefreshToken), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRefreshTokenRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockRefreshTokenRepo) DeleteByUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type mockBorrowRepo struct {
	mock.Mock
}

func (m *mockBorrowRepo) Borrow(ctx context.Context, b *models.Borrow) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *mockBorrowRepo) Return(ctx context.Context, id int64, now time.Time) (*models.Borrow, error) {
	args := m.Called(ctx, id, now)
	if b := args.Get(0); b != nil {
		return b.(*models.Borrow), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBorrowRepo) GetByID(ctx context.Context, id int64) (*models.Borrow, error) {
	args := m.Called(ctx, id)
	if b := args.Get(0); b != nil {
		return b.(*models.Borrow), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBorrowRepo) List(ctx context.Context, f repository.BorrowFilter) ([]models.Borrow, int64, error) {
	args := m.Called(ctx, f)
	var list []models.Borrow
	if v := args.Get(0); v != nil {
		list = v.([]models.Borrow)
	}
	return list, args.Get(1).(int64), args.Error(2)
}

func (m *mockBorrowRepo) ListByUser(ctx context.Context, userID string) ([]models.Borrow, error) {
	args := m.Called(ctx, userID)
	var list []models.Borrow
	if v := args.Get(0); v != nil {
		list = v.([]models.Borrow)
	}
	return list, args.Error(1)
}

func (m *mockBorrowRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}
