package models

import (
	"time"
)

// User is the portal profile kept alongside each account in the 'users' table.
// Department stays nil until the user picks one.
type User struct {
	ID          string    `json:"id" db:"id" example:"8d0c3c1e-5f3a-4b5b-9a52-2f0a5f5c2a10"`
	Email       string    `json:"email" db:"email" example:"student@yu.ac.kr"`
	DisplayName string    `json:"displayName" db:"display_name" example:"홍길동"`
	Department  *string   `json:"department,omitempty" db:"department" example:"컴퓨터공학과"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// HasDepartment reports whether a department has been chosen
func (u *User) HasDepartment() bool {
	return u != nil && u.Department != nil && *u.Department != ""
}
