package services

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/seferogluemre/LibraryManagement-sub001/app/database"
	"github.com/seferogluemre/LibraryManagement-sub001/app/models"
)

// StartScheduler starts the background task scheduler.
func StartScheduler(db *sql.DB, mailer *Mailer) {
	go func() {
		log.Println("Scheduler started...")
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			now := time.Now()

			// Trigger at 7:00 AM
			if now.Hour() == 7 && now.Minute() == 0 {
				log.Println("Triggering scheduled tasks [07:00]...")

				if err := RunOverdueScan(db, mailer, now); err != nil {
					log.Printf("Error running overdue scan: %v", err)
				}

				if n, err := database.DeleteExpiredSessions(db); err != nil {
					log.Printf("Error clearing expired sessions: %v", err)
				} else if n > 0 {
					log.Printf("Cleared %d expired sessions", n)
				}
			}
		}
	}()
}

// RunOverdueScan creates one OVERDUE_BOOK notification per overdue
// assignment for the staff member who issued the book, at most once per
// day per assignment, and sends a best-effort email.
func RunOverdueScan(db *sql.DB, mailer *Mailer, now time.Time) error {
	overdue, err := database.GetOverdueAssignments(db, now)
	if err != nil {
		return err
	}

	for _, oa := range overdue {
		already, err := database.HasOverdueNotificationToday(db, oa.AssignedByID, oa.AssignmentID)
		if err != nil {
			return err
		}
		if already {
			continue
		}

		daysLate := int(now.Sub(oa.DueDate).Hours() / 24)
		notification := &models.Notification{
			Type:    models.NotificationOverdueBook,
			UserID:  oa.AssignedByID,
			Message: fmt.Sprintf("%q assigned to %s is %d day(s) overdue", oa.BookTitle, oa.StudentName, daysLate),
			Metadata: map[string]any{
				"assignment_id": oa.AssignmentID,
				"book_id":       oa.BookID,
				"student_id":    oa.StudentID,
				"due_date":      oa.DueDate.Format(time.RFC3339),
			},
		}
		if err := database.CreateNotification(db, notification); err != nil {
			return err
		}

		user, err := database.GetUserByID(db, oa.AssignedByID)
		if err != nil {
			log.Printf("Overdue mail skipped, user lookup failed: %v", err)
			continue
		}
		if err := mailer.Send(user.Email, "Overdue book: "+oa.BookTitle, notification.Message); err != nil {
			log.Printf("Overdue mail to %s failed: %v", user.Email, err)
		}
	}

	if len(overdue) > 0 {
		log.Printf("Overdue scan complete: %d assignment(s) overdue", len(overdue))
	}
	return nil
}
