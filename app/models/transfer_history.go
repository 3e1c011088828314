package models

import "time"

// TransferHistory is an append-only audit row: one entry per classroom change.
type TransferHistory struct {
	ID           string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	StudentID    string     `json:"student_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	OldClassID   string     `json:"old_class_id" gorm:"not null;type:uuid" validate:"required,uuid"`
	NewClassID   string     `json:"new_class_id" gorm:"not null;type:uuid" validate:"required,uuid"`
	Notes        *string    `json:"notes,omitempty"`
	TransferDate time.Time  `json:"transfer_date" gorm:"not null"`
	CreatedAt    time.Time  `json:"created_at" gorm:"autoCreateTime"`
	Student      *Student   `json:"student,omitempty" gorm:"foreignKey:StudentID;references:ID"`
	OldClass     *Classroom `json:"old_class,omitempty" gorm:"foreignKey:OldClassID;references:ID"`
	NewClass     *Classroom `json:"new_class,omitempty" gorm:"foreignKey:NewClassID;references:ID"`
}
