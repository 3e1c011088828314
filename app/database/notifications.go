package database

import (
	"database/sql"
	"encoding/json"

	"github.com/seferogluemre/LibraryManagement-sub001/app/models"
)

func CreateNotification(db *sql.DB, n *models.Notification) error {
	var metadata any
	if n.Metadata != nil {
		raw, err := json.Marshal(n.Metadata)
		if err != nil {
			return err
		}
		metadata = raw
	}
	query := `INSERT INTO notifications (type, user_id, message, metadata)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id, is_read, created_at`
	return db.QueryRow(query, n.Type, n.UserID, n.Message, metadata).Scan(&n.ID, &n.IsRead, &n.CreatedAt)
}

// GetUserNotifications lists one user's notifications, unread and
// newest first.
func GetUserNotifications(db *sql.DB, userID string, limit int) ([]*models.Notification, error) {
	query := `SELECT id, type, user_id, message, is_read, metadata, created_at
			  FROM notifications WHERE user_id = $1
			  ORDER BY is_read ASC, created_at DESC LIMIT $2`
	rows, err := db.Query(query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		n := &models.Notification{}
		var metadata []byte
		if err := rows.Scan(&n.ID, &n.Type, &n.UserID, &n.Message, &n.IsRead, &metadata, &n.CreatedAt); err != nil {
			return nil, err
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &n.Metadata); err != nil {
				return nil, err
			}
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// MarkNotificationRead flips is_read for one notification owned by the
// user. sql.ErrNoRows when the row is missing or owned by someone else.
func MarkNotificationRead(db *sql.DB, notificationID, userID string) error {
	res, err := db.Exec(`UPDATE notifications SET is_read = true WHERE id = $1 AND user_id = $2`, notificationID, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func MarkAllNotificationsRead(db *sql.DB, userID string) (int64, error) {
	res, err := db.Exec(`UPDATE notifications SET is_read = true WHERE user_id = $1 AND is_read = false`, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// HasOverdueNotificationToday prevents the scheduler from piling up
// duplicate overdue alerts for the same assignment within a day.
func HasOverdueNotificationToday(db *sql.DB, userID, assignmentID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(
		SELECT 1 FROM notifications
		WHERE user_id = $1 AND type = 'OVERDUE_BOOK'
		AND metadata->>'assignment_id' = $2
		AND created_at >= date_trunc('day', NOW())
	)`
	err := db.QueryRow(query, userID, assignmentID).Scan(&exists)
	return exists, err
}
