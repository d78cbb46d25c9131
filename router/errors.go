package router

var (

	// ErrInvalidData is sent when a value in request is invalid
	ErrInvalidData = "INVALID_DATA"
	// ErrInternal is send when a internal server error occurs.
	ErrInternal = "INTERNAL_ERROR"
	// ErrParsing is sent when an error occurs in parsing the request
	ErrParsing = "PARSING_ERROR"
	// ErrUnauthenticated is sent when a gated operation has no resolved identity
	ErrUnauthenticated = "UNAUTHENTICATED"
	// ErrForbidden is sent when the identity does not own the target resource.
	// Missing rows on delete paths share this code; the distinction stays
	// internal to the db package.
	ErrForbidden = "FORBIDDEN"
	// ErrNotFound is sent when a expected value is missing from request
	ErrNotFound = "NOT_FOUND"
	// ErrDuplicate is sent when a username is already taken
	ErrDuplicate = "DUPLICATE"
	// ErrBadCredentials is sent when login credentials do not match
	ErrBadCredentials = "BAD_CREDENTIALS"
)
