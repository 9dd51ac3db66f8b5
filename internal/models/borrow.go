package models

import "time"

// BorrowStatus is the stored state of a loan. OVERDUE is never stored:
// it is derived from DueDate and ReturnedAt at read time.
type BorrowStatus string

const (
	StatusBorrowed BorrowStatus = "BORROWED"
	StatusReturned BorrowStatus = "RETURNED"
	StatusOverdue  BorrowStatus = "OVERDUE"
)

type Borrow struct {
	ID         int64        `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     string       `gorm:"type:uuid;not null;index" json:"user_id"`
	BookID     int64        `gorm:"not null;index" json:"book_id"`
	BorrowedAt time.Time    `gorm:"not null" json:"borrowed_at"`
	DueDate    time.Time    `gorm:"not null;index" json:"due_date"`
	ReturnedAt *time.Time   `gorm:"index" json:"returned_at,omitempty"`
	Status     BorrowStatus `gorm:"type:varchar(16);default:'BORROWED';not null" json:"status"`
	Note       *string      `json:"note,omitempty"`

	// Associations
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Book *Book `gorm:"foreignKey:BookID" json:"book,omitempty"`
}

func (Borrow) TableName() string {
	return "borrows"
}

// Returned reports whether the loan has been closed.
// Invariant: ReturnedAt is non-nil iff Status == RETURNED.
func (b *Borrow) Returned() bool {
	return b.ReturnedAt != nil
}

// EffectiveStatus derives the presented status at the given instant.
// An outstanding loan past its due date reads as OVERDUE without any write.
func (b *Borrow) EffectiveStatus(now time.Time) BorrowStatus {
	if b.ReturnedAt != nil {
		return StatusReturned
	}
	if now.After(b.DueDate) {
		return StatusOverdue
	}
	return StatusBorrowed
}
