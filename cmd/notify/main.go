package main

import (
	"flag"
	"fmt"

	"github.com/seferogluemre/LibraryManagement-sub001/app/config"
	"github.com/seferogluemre/LibraryManagement-sub001/app/database"
	"github.com/seferogluemre/LibraryManagement-sub001/app/models"
)

// Broadcasts a system notification to every active user. Used for
// maintenance announcements.
func main() {
	message := flag.String("message", "", "notification message")
	flag.Parse()

	if *message == "" {
		fmt.Println("Usage: notify -message <text>")
		return
	}

	config.InitDB()
	db := config.GetDB()
	defer db.Close()

	userIDs, err := database.GetActiveUserIDs(db)
	if err != nil {
		fmt.Printf("Error loading users: %v\n", err)
		return
	}

	sent := 0
	for _, userID := range userIDs {
		n := &models.Notification{
			Type:    models.NotificationSystem,
			UserID:  userID,
			Message: *message,
		}
		if err := database.CreateNotification(db, n); err != nil {
			fmt.Printf("Error notifying %s: %v\n", userID, err)
			continue
		}
		sent++
	}

	fmt.Printf("Notification sent to %d of %d users\n", sent, len(userIDs))
}
