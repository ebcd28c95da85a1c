package models

import "time"

// Feedback is a message submitted through the public feedback form.
// SubmitterID is "" for anonymous submissions.
type Feedback struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Email       string    `json:"email" db:"email"`
	Message     string    `json:"message" db:"message"`
	SubmitterID string    `json:"submitterId" db:"submitter_id"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	Response    *string   `json:"response,omitempty" db:"response"`
}
