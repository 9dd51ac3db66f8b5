package dto

import (
	"time"

	"libraryhub/internal/models"
)

type CreateBorrowRequest struct {
	UserID  string    `json:"user_id" binding:"required"`
	BookID  int64     `json:"book_id" binding:"required"`
	DueDate time.Time `json:"due_date" binding:"required"`
	Note    *string   `json:"note,omitempty"`
}

// BorrowResponse presents a borrow with its derived status: an outstanding
// loan past its due date reads as OVERDUE even though the stored status is
// still BORROWED.
type BorrowResponse struct {
	ID         int64               `json:"id"`
	UserID     string              `json:"user_id"`
	BookID     int64               `json:"book_id"`
	BorrowedAt time.Time           `json:"borrowed_at"`
	DueDate    time.Time           `json:"due_date"`
	ReturnedAt *time.Time          `json:"returned_at,omitempty"`
	Status     models.BorrowStatus `json:"status"`
	Note       *string             `json:"note,omitempty"`
	User       *models.User        `json:"user,omitempty"`
	Book       *models.Book        `json:"book,omitempty"`
}

func FromBorrow(b models.Borrow, now time.Time) BorrowResponse {
	return BorrowResponse{
		ID:         b.ID,
		UserID:     b.UserID,
		BookID:     b.BookID,
		BorrowedAt: b.BorrowedAt,
		DueDate:    b.DueDate,
		ReturnedAt: b.ReturnedAt,
		Status:     b.EffectiveStatus(now),
		Note:       b.Note,
		User:       b.User,
		Book:       b.Book,
	}
}

func FromBorrows(borrows []models.Borrow, now time.Time) []BorrowResponse {
	items := make([]BorrowResponse, 0, len(borrows))
	for _, b := range borrows {
		items = append(items, FromBorrow(b, now))
	}
	return items
}
