package models

import "time"

// BookAssignment tracks a copy handed to a student. ReturnedAt nil means
// the copy is still out.
type BookAssignment struct {
	ID           string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	BookID       string     `json:"book_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	StudentID    string     `json:"student_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	AssignedByID string     `json:"assigned_by_id" gorm:"not null;type:uuid" validate:"required,uuid"`
	DueDate      time.Time  `json:"due_date" gorm:"not null;index"`
	ReturnedAt   *time.Time `json:"returned_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at" gorm:"autoCreateTime"`
	Book         *Book      `json:"book,omitempty" gorm:"foreignKey:BookID;references:ID"`
	Student      *Student   `json:"student,omitempty" gorm:"foreignKey:StudentID;references:ID"`
	AssignedBy   *User      `json:"assigned_by,omitempty" gorm:"foreignKey:AssignedByID;references:ID"`
}
