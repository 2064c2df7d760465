package model

import "time"

// SupportTicket is a user-filed support request. Status and priority are
// free-text by convention ("open"/"in_progress"/"closed", "low"/"medium"/
// "high"); the store does not constrain them.
type SupportTicket struct {
	ID          string    `json:"id"          db:"id"`
	UserID      string    `json:"userId"      db:"user_id"`
	Email       string    `json:"email"       db:"email"`
	Subject     string    `json:"subject"     db:"subject"`
	Description string    `json:"description" db:"description"`
	Status      string    `json:"status"      db:"status"`
	Priority    string    `json:"priority"    db:"priority"`
	CreatedAt   time.Time `json:"createdAt"   db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt"   db:"updated_at"`
}
