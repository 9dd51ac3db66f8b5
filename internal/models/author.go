package models

type Author struct {
	ID   int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string  `json:"name" gorm:"not null;index"`
	Bio  *string `json:"bio,omitempty"`
}

func (Author) TableName() string {
	return "authors"
}
