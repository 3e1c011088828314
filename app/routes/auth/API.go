package auth

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/seferogluemre/LibraryManagement-sub001/app/config"
	"github.com/seferogluemre/LibraryManagement-sub001/app/database"
	"github.com/seferogluemre/LibraryManagement-sub001/app/models"
	"github.com/seferogluemre/LibraryManagement-sub001/app/schema"
	"github.com/seferogluemre/LibraryManagement-sub001/app/services"
)

func LoginAPI(c *fiber.Ctx) error {
	type LoginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}

	user, err := database.GetUserByEmail(config.GetDB(), req.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid credentials"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}

	if !CheckPasswordHash(req.Password, user.Password) {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid credentials"})
	}

	accessToken, refreshToken, expiresAt, err := GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to generate token"})
	}

	session := &models.Session{
		UserID:       user.ID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
	}
	if err := database.CreateSession(config.GetDB(), session); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create session"})
	}

	// Set JWT as HTTP-only cookie
	c.Cookie(&fiber.Cookie{
		Name:     "jwt_token",
		Value:    accessToken,
		Expires:  expiresAt,
		HTTPOnly: true,
		Secure:   false, // Set to true in production with HTTPS
		SameSite: "Lax",
	})

	return c.JSON(fiber.Map{
		"message":       "Login successful",
		"user":          user,
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"expires_at":    expiresAt,
	})
}

func LogoutAPI(c *fiber.Ctx) error {
	sessionID := c.Locals("session_id").(string)
	if err := database.DeleteSession(config.GetDB(), sessionID); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to end session"})
	}

	// Clear JWT cookie
	c.Cookie(&fiber.Cookie{
		Name:     "jwt_token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})

	return c.JSON(fiber.Map{"message": "Logout successful"})
}

// RefreshAPI rotates a session: a valid refresh token buys a new token
// pair and a new expiry on the same session row.
func RefreshAPI(c *fiber.Ctx) error {
	type RefreshRequest struct {
		RefreshToken string `json:"refresh_token"`
	}

	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}

	claims, err := ValidateJWT(req.RefreshToken)
	if err != nil || claims.TokenType != "refresh" {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid refresh token"})
	}

	session, err := database.GetSessionByRefreshToken(config.GetDB(), req.RefreshToken)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Session not found"})
	}

	accessToken, refreshToken, expiresAt, err := GenerateTokenPair(claims.UserID, claims.Email)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to generate token"})
	}

	if err := database.RotateSession(config.GetDB(), session.ID, accessToken, refreshToken, expiresAt); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to rotate session"})
	}

	c.Cookie(&fiber.Cookie{
		Name:     "jwt_token",
		Value:    accessToken,
		Expires:  expiresAt,
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return c.JSON(fiber.Map{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"expires_at":    expiresAt,
	})
}

// ChangePasswordAPI updates the caller's password after re-verifying
// the current one. Other sessions stay alive; only the credential
// changes.
func ChangePasswordAPI(c *fiber.Ctx) error {
	type ChangePasswordRequest struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if len(req.NewPassword) < 8 {
		return c.Status(422).JSON(fiber.Map{"error": "Password must be at least 8 characters"})
	}

	userID := c.Locals("user_id").(string)
	user, err := database.GetUserByID(config.GetDB(), userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	if !CheckPasswordHash(req.CurrentPassword, user.Password) {
		return c.Status(401).JSON(fiber.Map{"error": "Current password is incorrect"})
	}

	hashed, err := HashPassword(req.NewPassword)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to hash password"})
	}
	if err := database.UpdateUserPassword(config.GetDB(), userID, hashed); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update password"})
	}

	return c.JSON(fiber.Map{"message": "Password updated"})
}

func MeAPI(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	user, err := database.GetUserByID(config.GetDB(), userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(fiber.Map{"user": user})
}

// SessionsAPI lists the caller's active sessions, newest first. Tokens
// never leave the server; the descriptor's plain shape has no token
// fields.
func SessionsAPI(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	svc := services.NewCRUDService(config.GetDB(), schema.Sessions)
	result, err := svc.Index(c.Context(), services.ListQuery{
		Page:    c.QueryInt("page", 0),
		Limit:   c.QueryInt("limit", 0),
		OrderBy: "created_at:desc",
		Where:   map[string]any{"user_id": userID},
	})
	if err != nil {
		return err
	}
	return c.JSON(result)
}
