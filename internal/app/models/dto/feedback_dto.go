package dto

import "time"

// FeedbackRequest is a feedback form submission
type FeedbackRequest struct {
	Name    string `json:"name" example:"홍길동"`
	Email   string `json:"email" example:"student@yu.ac.kr"`
	Message string `json:"message" example:"도서관 운영시간 연장을 건의합니다."`
}

// FeedbackResponseRequest is an administrator's reply
type FeedbackResponseRequest struct {
	Response string `json:"response" example:"검토 후 반영하겠습니다."`
}

// FeedbackItem is one feedback record as shown to a viewer
type FeedbackItem struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	Response  *string   `json:"response,omitempty"`
	CanDelete bool      `json:"canDelete"`
}

// FeedbackPrefill holds form defaults taken from the session
type FeedbackPrefill struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// FeedbackListResponse is the feedback page
type FeedbackListResponse struct {
	Prefill FeedbackPrefill `json:"prefill"`
	Items   []FeedbackItem  `json:"items"`
}
