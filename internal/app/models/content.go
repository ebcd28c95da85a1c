package models

import "time"

// Category names one of the department-scoped content collections
type Category string

const (
	CategoryNotices  Category = "notices"
	CategoryEvents   Category = "events"
	CategoryBenefits Category = "benefits"
)

// Categories lists every content category in display order
var Categories = []Category{CategoryNotices, CategoryEvents, CategoryBenefits}

// Valid reports whether c is a known category
func (c Category) Valid() bool {
	switch c {
	case CategoryNotices, CategoryEvents, CategoryBenefits:
		return true
	}
	return false
}

// ContentItem is a notice, event/news post or partnership benefit.
// CreatedAt may be NULL in the store; ViewCount treats NULL as 0.
type ContentItem struct {
	ID         string     `json:"id" db:"id"`
	Category   Category   `json:"category"`
	Title      string     `json:"title" db:"title"`
	Content    string     `json:"content" db:"content"`
	Department string     `json:"department" db:"department"`
	CreatedAt  *time.Time `json:"createdAt,omitempty" db:"created_at"`
	ViewCount  int        `json:"viewCount" db:"view_count"`
}

// CreatedAtOrZero returns the creation time, or the zero instant when unset
func (c *ContentItem) CreatedAtOrZero() time.Time {
	if c.CreatedAt == nil {
		return time.Time{}
	}
	return *c.CreatedAt
}
