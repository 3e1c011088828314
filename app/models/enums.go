package models

// NotificationType defines the possible notification kinds.
type NotificationType string

const (
	NotificationOverdueBook NotificationType = "OVERDUE_BOOK"
	NotificationSystem      NotificationType = "SYSTEM"
)
