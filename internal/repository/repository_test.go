package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"libraryhub/internal/database"
	"libraryhub/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "library_test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string, role models.Role) *models.User {
	t.Helper()

	user := &models.User{
		Email:              email,
		Password:           "$2a$10$7EqJtq98hPqEX7fNZaFWoOHi6VbU5h6K9v8u5rO0m3j0h6dX5r8e",
		Name:               "Test User",
		Role:               role,
		MustChangePassword: false,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedBook(t *testing.T, db *gorm.DB, title, isbn string, quantity int) *models.Book {
	t.Helper()

	book := &models.Book{
		Title:     title,
		ISBN:      isbn,
		Quantity:  quantity,
		Available: quantity,
	}
	require.NoError(t, db.Create(book).Error)
	return book
}

func seedBorrow(t *testing.T, db *gorm.DB, userID string, bookID int64, dueDate time.Time) *models.Borrow {
	t.Helper()

	repo := NewBorrowRepository(db)
	borrow := &models.Borrow{
		UserID:     userID,
		BookID:     bookID,
		BorrowedAt: time.Now(),
		DueDate:    dueDate,
		Status:     models.StatusBorrowed,
	}
	require.NoError(t, repo.Borrow(context.Background(), borrow))
	return borrow
}

func bookAvailability(t *testing.T, db *gorm.DB, bookID int64) (available, quantity int) {
	t.Helper()

	var book models.Book
	require.NoError(t, db.First(&book, bookID).Error)
	return book.Available, book.Quantity
}
