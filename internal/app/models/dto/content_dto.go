package dto

import "time"

// SortStateDTO is a sort key and direction
type SortStateDTO struct {
	Key   string `json:"key" example:"date"`
	Order string `json:"order" example:"desc"`
}

// SortControls holds the state each sort control switches to when clicked
type SortControls struct {
	Title SortStateDTO `json:"title"`
	Date  SortStateDTO `json:"date"`
}

// ContentItemResponse is one notice, event or benefit
type ContentItemResponse struct {
	ID          string     `json:"id"`
	Category    string     `json:"category" example:"notices"`
	Title       string     `json:"title"`
	Content     string     `json:"content,omitempty"`
	Department  string     `json:"department"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	DisplayTime string     `json:"displayTime,omitempty" example:"2024. 05. 01. 오후 03:04"`
	ViewCount   int        `json:"viewCount"`
	Path        string     `json:"path" example:"/noticedetail/8d0c3c1e-5f3a-4b5b-9a52-2f0a5f5c2a10"`
}

// ContentListResponse is a category view page
type ContentListResponse struct {
	Category           string                `json:"category"`
	Department         string                `json:"department,omitempty"`
	DepartmentRequired bool                  `json:"departmentRequired"`
	Message            string                `json:"message,omitempty"`
	Sort               SortStateDTO          `json:"sort"`
	Controls           SortControls          `json:"controls"`
	Items              []ContentItemResponse `json:"items"`
}

// HomeResponse holds the most viewed items of the user's department
type HomeResponse struct {
	Department string                `json:"department"`
	Notices    []ContentItemResponse `json:"notices"`
	Events     []ContentItemResponse `json:"events"`
	Benefits   []ContentItemResponse `json:"benefits"`
}

// ContentForm is the admin create/edit form
type ContentForm struct {
	Title   string `json:"title" example:"중간고사 일정 안내"`
	Content string `json:"content" example:"중간고사는 ..."`
}

// ManageListResponse is the admin management list for one department
type ManageListResponse struct {
	Category   string                `json:"category"`
	Department string                `json:"department"`
	Items      []ContentItemResponse `json:"items"`
}
