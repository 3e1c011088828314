package models

import "time"

type Notification struct {
	ID        string           `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Type      NotificationType `json:"type" gorm:"not null" validate:"required"`
	UserID    string           `json:"user_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Message   string           `json:"message" gorm:"not null" validate:"required"`
	IsRead    bool             `json:"is_read" gorm:"default:false"`
	Metadata  map[string]any   `json:"metadata,omitempty" gorm:"type:jsonb"`
	CreatedAt time.Time        `json:"created_at" gorm:"autoCreateTime"`
	User      *User            `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID"`
}
