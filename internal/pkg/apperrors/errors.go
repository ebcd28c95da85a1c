// Package apperrors holds the sentinel errors shared by services and the
// HTTP error middleware. Services wrap them with fmt.Errorf or CustomError;
// the middleware maps them to status codes with errors.Is.
package apperrors

import "errors"

var (
	ErrResourceNotFound     = errors.New("resource not found")
	ErrConflict             = errors.New("conflict")
	ErrBadRequest           = errors.New("bad request")
	ErrValidationFailed     = errors.New("validation failed")
	ErrConfirmationRequired = errors.New("confirmation required")
	ErrPermissionDenied     = errors.New("permission denied")
)

// Sign-in and tokens
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenRevoked       = errors.New("token revoked")
)

// Student verification
var (
	ErrSchoolNotFound         = errors.New("school not found")
	ErrInvalidStudentID       = errors.New("invalid student ID format")
	ErrStudentIDAlreadyExists = errors.New("student ID already exists")
)

var (
	ErrDepartmentRequired = errors.New("department is required")
	ErrUnknownDepartment  = errors.New("department is not in the known list")

	ErrContentNotFound      = errors.New("content not found")
	ErrContentFieldsMissing = errors.New("title and content are required")

	ErrFeedbackNotFound      = errors.New("feedback not found")
	ErrFeedbackFieldsMissing = errors.New("name, email and message are required")
	ErrFeedbackNotOwned      = errors.New("feedback belongs to another submitter")
	ErrEmptyFeedbackResponse = errors.New("response is empty")
)

// CustomError decorates a sentinel with a log message, an optional
// user-facing StatusMsg and extra response details.
type CustomError struct {
	Err       error
	Message   string
	StatusMsg string
	Details   map[string]interface{}
}

func (e *CustomError) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	default:
		return "unknown error"
	}
}

func (e *CustomError) Unwrap() error { return e.Err }

func NewCustomError(err error, message string) *CustomError {
	return &CustomError{Err: err, Message: message}
}

// NewResourceNotFoundError wraps ErrResourceNotFound with message
func NewResourceNotFoundError(message string) error {
	return NewCustomError(ErrResourceNotFound, message)
}

func (e *CustomError) WithStatusMsg(msg string) *CustomError {
	e.StatusMsg = msg
	return e
}

func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// StatusMessage finds the first StatusMsg in err's chain.
func StatusMessage(err error) (string, bool) {
	var ce *CustomError
	if errors.As(err, &ce) && ce.StatusMsg != "" {
		return ce.StatusMsg, true
	}
	return "", false
}

// DetailsOf finds the details of the first CustomError in err's chain.
func DetailsOf(err error) map[string]interface{} {
	var ce *CustomError
	if !errors.As(err, &ce) {
		return nil
	}
	return ce.Details
}
