package models

import "time"

// VerifiedStudent records a school affiliation that has been claimed
type VerifiedStudent struct {
	ID         string    `json:"id" db:"id"`
	School     string    `json:"school" db:"school"`
	StudentID  string    `json:"studentId" db:"student_id"`
	VerifiedAt time.Time `json:"verifiedAt" db:"verified_at"`
}
