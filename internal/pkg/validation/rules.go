package validation

import (
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// PasswordMinLength is counted in characters, not bytes
const PasswordMinLength = 8

var (
	emailPattern     = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)
	studentIDPattern = regexp.MustCompile(`^\d{8}$`)
)

func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func IsValidPassword(password string) bool {
	return utf8.RuneCountInString(password) >= PasswordMinLength
}

// IsValidStudentID reports whether id is exactly eight ASCII digits
func IsValidStudentID(id string) bool {
	return studentIDPattern.MatchString(id)
}

// RegisterCustomRules adds the portal's custom tags to a validator instance.
//
//	studentid - exactly eight digits
//	notblank  - non-empty after trimming whitespace
func RegisterCustomRules(v *validator.Validate) error {
	if err := v.RegisterValidation("studentid", func(fl validator.FieldLevel) bool {
		return IsValidStudentID(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

// DepartmentList is the fixed set of known department names.
type DepartmentList []string

// Contains reports whether name is in the list. The match is exact and case-sensitive.
func (l DepartmentList) Contains(name string) bool {
	return slices.Contains(l, name)
}

// Names returns a copy of the list
func (l DepartmentList) Names() []string {
	return slices.Clone([]string(l))
}
