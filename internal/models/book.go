package models

import "time"

type Book struct {
	ID          int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string     `json:"title" gorm:"not null;index"`
	ISBN        string     `json:"isbn" gorm:"uniqueIndex;size:20;not null"`
	Description *string    `json:"description,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CoverURL    *string    `json:"cover_url,omitempty"`
	Pages       *int       `json:"pages,omitempty"`
	Quantity    int        `json:"quantity" gorm:"not null"`
	// Available counts copies not currently on loan. Mutated only by the
	// borrow lifecycle and by quantity re-basing on update.
	// Invariant: 0 <= Available <= Quantity.
	Available int        `json:"available" gorm:"not null"`
	CreatedAt *time.Time `json:"created_at,omitempty" gorm:"autoCreateTime"`

	// associations
	Authors    []Author   `json:"authors,omitempty" gorm:"many2many:book_authors;constraint:OnDelete:CASCADE;"`
	Categories []Category `json:"categories,omitempty" gorm:"many2many:book_categories;constraint:OnDelete:CASCADE;"`
}

func (Book) TableName() string {
	return "books"
}
