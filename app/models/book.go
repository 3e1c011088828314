package models

import "time"

type Book struct {
	ID              string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Title           string     `json:"title" gorm:"not null;index" validate:"required"`
	ISBN            *string    `json:"isbn,omitempty" gorm:"uniqueIndex" validate:"omitempty,isbn"`
	PublishedYear   *int       `json:"published_year,omitempty"`
	TotalCopies     int        `json:"total_copies" gorm:"not null;default:1" validate:"min=0"`
	AvailableCopies int        `json:"available_copies" gorm:"not null;default:1" validate:"min=0"`
	AuthorID        string     `json:"author_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	CategoryID      *string    `json:"category_id,omitempty" gorm:"index;type:uuid" validate:"omitempty,uuid"`
	PublisherID     *string    `json:"publisher_id,omitempty" gorm:"index;type:uuid" validate:"omitempty,uuid"`
	AddedByID       string     `json:"added_by_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	CreatedAt       time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	Author          *Author    `json:"author,omitempty" gorm:"foreignKey:AuthorID;references:ID"`
	Category        *Category  `json:"category,omitempty" gorm:"foreignKey:CategoryID;references:ID"`
	Publisher       *Publisher `json:"publisher,omitempty" gorm:"foreignKey:PublisherID;references:ID"`
	AddedBy         *User      `json:"added_by,omitempty" gorm:"foreignKey:AddedByID;references:ID"`
}
