package helpers

import "strings"

// NullableString converts a string to a pointer suitable for a nullable column.
// Blank strings become nil.
func NullableString(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

// StringValue dereferences a nullable column value, returning "" for NULL.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// IntValue dereferences a nullable integer column, treating NULL as 0.
func IntValue(i *int32) int {
	if i == nil {
		return 0
	}
	return int(*i)
}
