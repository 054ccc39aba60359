package domain

import "errors"

// ErrNotFound is returned by repositories when no row matches.
// Services translate it into the context-appropriate coded error.
var ErrNotFound = errors.New("not found")

// Error is a domain fault with a stable machine-readable code. Services
// return these; the handler layer alone maps codes to HTTP statuses and
// renders the {status, code, message} envelope.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

var (
	ErrInvalidRequest = &Error{
		Code:    "INVALID_REQUEST",
		Message: "Invalid request. Please provide all required fields: username, email, password, full_name, age, gender.",
	}
	ErrUsernameExists = &Error{
		Code:    "USERNAME_EXISTS",
		Message: "The provided username is already taken. Please choose a different username.",
	}
	ErrEmailExists = &Error{
		Code:    "EMAIL_EXISTS",
		Message: "The provided email is already registered. Please use a different email address.",
	}
	ErrInvalidPassword = &Error{
		Code:    "INVALID_PASSWORD",
		Message: "Password must be at least 8 characters long and contain an uppercase letter, lowercase letter, number, and special character.",
	}
	ErrInvalidAge = &Error{
		Code:    "INVALID_AGE",
		Message: "Invalid age value. Age must be a positive integer.",
	}
	ErrGenderRequired = &Error{
		Code:    "GENDER_REQUIRED",
		Message: "Gender field is required. Please specify the gender.",
	}
	ErrMissingFields = &Error{
		Code:    "MISSING_FIELDS",
		Message: "Missing fields. Please provide both username and password.",
	}
	ErrInvalidCredentials = &Error{
		Code:    "INVALID_CREDENTIALS",
		Message: "Invalid credentials. The provided username or password is incorrect.",
	}
	ErrInvalidToken = &Error{
		Code:    "INVALID_TOKEN",
		Message: "Invalid access token provided.",
	}
	ErrInvalidKey = &Error{
		Code:    "INVALID_KEY",
		Message: "The provided key is not valid or missing.",
	}
	ErrInvalidValue = &Error{
		Code:    "INVALID_VALUE",
		Message: "The provided value is not valid or missing.",
	}
	ErrMissingValue = &Error{
		Code:    "MISSING_VALUE",
		Message: "'value' key is missing in the request.",
	}
	ErrKeyExists = &Error{
		Code:    "KEY_EXISTS",
		Message: "The provided key already exists in the database. To update an existing key, use the update API.",
	}
	ErrKeyNotFound = &Error{
		Code:    "KEY_NOT_FOUND",
		Message: "The provided key does not exist in the database.",
	}
	ErrInternal = &Error{
		Code:    "INTERNAL_SERVER_ERROR",
		Message: "An internal server error occurred. Please try again later.",
	}
)
