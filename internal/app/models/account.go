package models

import "time"

// Account is a credential record owned by the identity provider
type Account struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	DisplayName  string    `db:"display_name"`
	CreatedAt    time.Time `db:"created_at"`
}

// Session is one signed-in context of an account. AdminDepartment is the
// administrator's department selection and lives only as long as the session.
type Session struct {
	ID              string     `db:"id"`
	AccountID       string     `db:"account_id"`
	CreatedAt       time.Time  `db:"created_at"`
	ExpiresAt       time.Time  `db:"expires_at"`
	RevokedAt       *time.Time `db:"revoked_at"`
	AdminDepartment *string    `db:"admin_department"`
}

// Active reports whether the session can still be used at now
func (s *Session) Active(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}
