package models

import "time"

type Student struct {
	ID        string             `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Name      string             `json:"name" gorm:"not null;index" validate:"required"`
	Email     *string            `json:"email,omitempty" validate:"omitempty,email"`
	StudentNo string             `json:"student_no" gorm:"uniqueIndex;not null" validate:"required"`
	ClassID   string             `json:"class_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	CreatedAt time.Time          `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time          `json:"updated_at" gorm:"autoUpdateTime"`
	Classroom *Classroom         `json:"classroom,omitempty" gorm:"foreignKey:ClassID;references:ID"`
	Transfers []*TransferHistory `json:"transfers,omitempty" gorm:"foreignKey:StudentID;references:ID"`
}
