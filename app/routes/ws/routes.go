package ws

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/seferogluemre/LibraryManagement-sub001/app/config"
	"github.com/seferogluemre/LibraryManagement-sub001/app/database"
	"github.com/seferogluemre/LibraryManagement-sub001/app/presence"
)

// SetupWSRoutes mounts the live-connection endpoint. Every open socket
// holds one presence slot; any inbound frame doubles as a heartbeat so
// the slot survives the tracker's TTL sweep.
func SetupWSRoutes(app *fiber.App, tracker *presence.Tracker) {
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws", websocket.New(func(conn *websocket.Conn) {
		defer conn.Close()

		userID := conn.Query("userId")
		if _, err := uuid.Parse(userID); err != nil {
			conn.WriteJSON(fiber.Map{"type": "error", "message": "userId query parameter required"})
			return
		}

		connID := tracker.Connect(userID)
		defer tracker.Disconnect(userID, connID)

		unread, err := database.GetUserNotifications(config.GetDB(), userID, 10)
		if err != nil {
			log.Printf("ws: failed to load notifications for %s: %v", userID, err)
		}
		conn.WriteJSON(fiber.Map{
			"type":          "welcome",
			"message":       "Connected to " + config.AppConfig.AppName,
			"connection_id": connID,
			"online":        tracker.Count(),
			"notifications": unread,
		})

		for {
			messageType, payload, err := conn.ReadMessage()
			if err != nil {
				return
			}
			tracker.Heartbeat(userID, connID)

			if messageType == websocket.TextMessage && string(payload) == "ping" {
				if err := conn.WriteJSON(fiber.Map{"type": "pong", "online": tracker.Count()}); err != nil {
					return
				}
			}
		}
	}))
}
