package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/seferogluemre/LibraryManagement-sub001/app/config"
	"github.com/seferogluemre/LibraryManagement-sub001/app/database"
)

func SetupAuthRoutes(app *fiber.App) {
	api := app.Group("/api/auth")

	// Public routes
	api.Post("/login", LoginAPI)
	api.Post("/refresh", RefreshAPI)

	// Protected routes
	api.Use(AuthMiddleware)
	api.Post("/logout", LogoutAPI)
	api.Post("/change-password", ChangePasswordAPI)
	api.Get("/me", MeAPI)
	api.Get("/sessions", SessionsAPI)
}

// AuthMiddleware validates the JWT, checks the session row still
// exists and is unexpired, and sets user context.
func AuthMiddleware(c *fiber.Ctx) error {
	// JWT from cookie or Authorization header
	tokenString := c.Cookies("jwt_token")
	if tokenString == "" {
		auth := c.Get("Authorization")
		if strings.HasPrefix(auth, "Bearer ") {
			tokenString = strings.TrimPrefix(auth, "Bearer ")
		}
	}

	if tokenString == "" {
		return c.Status(401).JSON(fiber.Map{"error": "No token found"})
	}

	claims, err := ValidateJWT(tokenString)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid token"})
	}
	if claims.TokenType != "access" {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid token"})
	}

	// Logged-out sessions leave no row behind, so the token dies with it.
	session, err := database.GetSessionByAccessToken(config.GetDB(), tokenString)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Session expired"})
	}

	c.Locals("user_id", claims.UserID)
	c.Locals("user_email", claims.Email)
	c.Locals("session_id", session.ID)
	return c.Next()
}
