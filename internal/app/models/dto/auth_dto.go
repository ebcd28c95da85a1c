package dto

import "time"

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required" validate:"notblank" example:"student@yu.ac.kr"`
	Password string `json:"password" binding:"required" validate:"notblank" example:"password123"`
}

// SignupRequest represents a new account registration
type SignupRequest struct {
	Email       string `json:"email" binding:"required" validate:"notblank" example:"student@yu.ac.kr"`
	Password    string `json:"password" binding:"required" example:"password123"`
	DisplayName string `json:"displayName" example:"홍길동"`
}

// SessionUser is the identity a session belongs to
type SessionUser struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

// SessionResponse is returned after sign-in and sign-up
type SessionResponse struct {
	AccessToken string      `json:"accessToken"`
	TokenType   string      `json:"tokenType" example:"Bearer"`
	ExpiresAt   time.Time   `json:"expiresAt"`
	User        SessionUser `json:"user"`
	IsAdmin     bool        `json:"isAdmin"`
	Redirect    string      `json:"redirect" example:"/major-check"`
}

// CurrentSessionResponse reports the caller's session, if any
type CurrentSessionResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          *SessionUser `json:"user,omitempty"`
	IsAdmin       bool         `json:"isAdmin"`
}

// VerificationRequest claims a school affiliation for a student id
type VerificationRequest struct {
	School    string `json:"school" example:"영남대학교"`
	StudentID string `json:"studentId" example:"21812345"`
}
