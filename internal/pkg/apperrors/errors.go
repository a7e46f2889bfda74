package apperrors

import "errors"

// Authentication failures. All of them are collapsed into a single generic
// sign-in failure at the API boundary so callers cannot enumerate usernames
// or probe account status.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrAccountLocked      = errors.New("account is locked")
)

// Authorization failures. Internally distinguishable via AuthorizationError,
// externally surfaced as a uniform access-denied response.
var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrRoleMismatch     = errors.New("role not permitted for this operation")
	ErrNotOwner         = errors.New("caller does not own the target record")
	ErrUnknownRole      = errors.New("unknown role")
)

// Token errors
var (
	ErrTokenExpired  = errors.New("token expired")
	ErrTokenInvalid  = errors.New("invalid token")
	ErrTokenNotFound = errors.New("token not found")
	ErrTokenRevoked  = errors.New("token revoked")
	ErrInvalidFormat = errors.New("invalid token format")
)

// Resource errors
var (
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrValidationFailed      = errors.New("validation failed")
	ErrBadRequest            = errors.New("bad request")
)

// Student and account errors
var (
	ErrStudentNotFound    = errors.New("student not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrUsernameTaken      = errors.New("username already exists")
)

// Teacher errors
var (
	ErrTeacherNotFound = errors.New("teacher not found")
)

// Department errors
var (
	ErrDepartmentNotFound      = errors.New("department not found")
	ErrDepartmentAlreadyExists = errors.New("department with this name or code already exists")
	ErrDepartmentHasRelations  = errors.New("department has associated data and cannot be deleted")
)

// Course errors
var (
	ErrCourseNotFound      = errors.New("course not found")
	ErrCourseAlreadyExists = errors.New("course with this code already exists")
)

// AuthSubject names the record kind an authorization decision was about.
type AuthSubject string

const (
	SubjectStudent AuthSubject = "STUDENT"
	SubjectTeacher AuthSubject = "TEACHER"
)

// AuthorizationError carries the internal kind of an authorization denial.
// It matches ErrPermissionDenied so the boundary maps every kind to the same
// access-denied response; the kind sentinel stays reachable through
// errors.Is for diagnostics and tests.
type AuthorizationError struct {
	Kind    error // ErrRoleMismatch, ErrNotOwner or ErrUnknownRole
	Subject AuthSubject
}

// Error implements the error interface
func (e *AuthorizationError) Error() string {
	if e.Kind != nil {
		return e.Kind.Error()
	}
	return ErrPermissionDenied.Error()
}

// Is reports a match for both the kind sentinel and ErrPermissionDenied.
func (e *AuthorizationError) Is(target error) bool {
	return target == ErrPermissionDenied || target == e.Kind
}

// NewRoleMismatchError creates a denial for a caller holding the wrong role
func NewRoleMismatchError(subject AuthSubject) *AuthorizationError {
	return &AuthorizationError{Kind: ErrRoleMismatch, Subject: subject}
}

// NewNotOwnerError creates a denial for a caller targeting a record they do not own
func NewNotOwnerError(subject AuthSubject) *AuthorizationError {
	return &AuthorizationError{Kind: ErrNotOwner, Subject: subject}
}

// NewUnknownRoleError creates a fail-closed denial for a role outside the closed set
func NewUnknownRoleError() *AuthorizationError {
	return &AuthorizationError{Kind: ErrUnknownRole}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements the errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with an underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// IsAuthenticationError reports whether err is any of the authentication
// failure kinds that must be collapsed at the boundary.
func IsAuthenticationError(err error) bool {
	for _, e := range []error{ErrInvalidCredentials, ErrUserNotFound, ErrAccountDisabled, ErrAccountLocked} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
