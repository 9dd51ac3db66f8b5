package dto

import "time"

type BookRequest struct {
	Title       string     `json:"title" binding:"required"`
	ISBN        string     `json:"isbn" binding:"required"`
	Description *string    `json:"description,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CoverURL    *string    `json:"cover_url,omitempty"`
	Pages       *int       `json:"pages,omitempty"`
	Quantity    int        `json:"quantity" binding:"min=0"`
	AuthorIDs   []int64    `json:"author_ids,omitempty"`
	CategoryIDs []int64    `json:"category_ids,omitempty"`
}

type AuthorRequest struct {
	Name string  `json:"name" binding:"required"`
	Bio  *string `json:"bio,omitempty"`
}

type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
}
