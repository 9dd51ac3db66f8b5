package dto

import "libraryhub/internal/models"

type CreateUserRequest struct {
	Name               string      `json:"name" binding:"required"`
	Email              string      `json:"email" binding:"required,email"`
	Password           string      `json:"password" binding:"required,min=8"`
	Role               models.Role `json:"role" binding:"required"`
	MustChangePassword *bool       `json:"must_change_password,omitempty"`
	PictureURL         *string     `json:"picture_url,omitempty"`
}

type UpdateUserRequest struct {
	Name       string      `json:"name,omitempty"`
	Email      string      `json:"email,omitempty"`
	Role       models.Role `json:"role,omitempty"`
	PictureURL *string     `json:"picture_url,omitempty"`
}
