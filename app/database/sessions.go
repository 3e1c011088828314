package database

import (
	"database/sql"
	"time"

	"github.com/seferogluemre/LibraryManagement-sub001/app/models"
)

func CreateSession(db *sql.DB, session *models.Session) error {
	query := `INSERT INTO sessions (user_id, access_token, refresh_token, expires_at)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id, created_at, updated_at`
	return db.QueryRow(query, session.UserID, session.AccessToken, session.RefreshToken, session.ExpiresAt).Scan(
		&session.ID, &session.CreatedAt, &session.UpdatedAt,
	)
}

// GetSessionByAccessToken returns the session only while it is still
// valid; expired rows behave as missing.
func GetSessionByAccessToken(db *sql.DB, accessToken string) (*models.Session, error) {
	session := &models.Session{}
	query := `SELECT id, user_id, access_token, refresh_token, expires_at, created_at, updated_at
			  FROM sessions WHERE access_token = $1 AND expires_at > NOW()`
	err := db.QueryRow(query, accessToken).Scan(
		&session.ID, &session.UserID, &session.AccessToken, &session.RefreshToken,
		&session.ExpiresAt, &session.CreatedAt, &session.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return session, nil
}

func GetSessionByRefreshToken(db *sql.DB, refreshToken string) (*models.Session, error) {
	session := &models.Session{}
	query := `SELECT id, user_id, access_token, refresh_token, expires_at, created_at, updated_at
			  FROM sessions WHERE refresh_token = $1`
	err := db.QueryRow(query, refreshToken).Scan(
		&session.ID, &session.UserID, &session.AccessToken, &session.RefreshToken,
		&session.ExpiresAt, &session.CreatedAt, &session.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return session, nil
}

// RotateSession swaps both tokens and extends the expiry in one update.
func RotateSession(db *sql.DB, sessionID, accessToken, refreshToken string, expiresAt time.Time) error {
	query := `UPDATE sessions
			  SET access_token = $1, refresh_token = $2, expires_at = $3, updated_at = NOW()
			  WHERE id = $4`
	_, err := db.Exec(query, accessToken, refreshToken, expiresAt, sessionID)
	return err
}

func DeleteSession(db *sql.DB, sessionID string) error {
	_, err := db.Exec(`DELETE FROM sessions WHERE id = $1`, sessionID)
	return err
}

// DeleteExpiredSessions clears rows past their expiry; called by the
// background scheduler.
func DeleteExpiredSessions(db *sql.DB) (int64, error) {
	res, err := db.Exec(`DELETE FROM sessions WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
