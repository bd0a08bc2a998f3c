package httperr

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	CodeInvalidRequest = "invalid_request"
	CodeInternal       = "internal_error"

	CodeEmptyFile       = "empty_file"
	CodeFileTooLarge    = "file_too_large"
	CodeUnsupportedType = "unsupported_file_type"
	CodeInvalidImage    = "invalid_image"

	CodeInvalidEmail    = "invalid_email"
	CodeWeakPassword    = "weak_password"
	CodePasswordTooLong = "password_too_long"
	CodeInvalidUsername = "invalid_username"
	CodeNameRequired    = "name_required"
	CodeEmailTaken      = "email_already_exists"
	CodeUsernameTaken   = "username_already_exists"
	CodeInvalidCreds    = "invalid_credentials"
	CodeUnauthorized    = "unauthorized"
	CodeForbidden       = "forbidden"
	CodeUserNotFound    = "user_not_found"
	CodeAnalysisMissing = "analysis_not_found"
	CodeFileMissing     = "file_not_found"
)

const genericMessage = "Something went wrong, please try again."

type mapping struct {
	status  int
	message string
}

var table = map[string]mapping{
	CodeInvalidRequest: {http.StatusBadRequest, "Invalid request."},

	CodeEmptyFile:       {http.StatusBadRequest, "The uploaded file is empty."},
	CodeFileTooLarge:    {http.StatusBadRequest, "File size exceeds maximum limit."},
	CodeUnsupportedType: {http.StatusBadRequest, "Only JPEG, PNG, GIF and WebP images can be uploaded."},
	CodeInvalidImage:    {http.StatusBadRequest, "The uploaded file is not a valid image."},

	CodeInvalidEmail:  {http.StatusBadRequest, "The email address is not valid."},
	CodeWeakPassword:  {http.StatusBadRequest, "Password must be at least 6 characters."},
	CodeNameRequired:  {http.StatusBadRequest, "Name is required."},

	CodePasswordTooLong: {http.StatusBadRequest, "Password must be at most 72 bytes."},
	CodeInvalidUsername: {http.StatusBadRequest, "Username must be at most 100 characters."},

	CodeEmailTaken:    {http.StatusConflict, "This email is already registered."},
	CodeUsernameTaken: {http.StatusConflict, "This username is already taken."},
	CodeInvalidCreds:  {http.StatusUnauthorized, "Invalid email or password."},
	CodeUnauthorized:  {http.StatusUnauthorized, "Login required."},
	CodeForbidden:     {http.StatusForbidden, "You do not have permission to do that."},
	CodeUserNotFound:  {http.StatusNotFound, "User not found."},

	CodeAnalysisMissing: {http.StatusNotFound, "Analysis not found."},
	CodeFileMissing:     {http.StatusNotFound, "File not found."},
}

// Status returns the HTTP status and user facing message for err.
// Errors that are not business errors map to 500.
func Status(err error) (int, string, string) {
	if code := CodeOf(err); code != "" {
		if m, ok := table[code]; ok {
			return m.status, code, m.message
		}
		return http.StatusBadRequest, code, code
	}
	return http.StatusInternalServerError, CodeInternal, genericMessage
}

// FromError writes the JSON error for err. Unexpected errors are logged
// and replaced with a generic message.
func FromError(c *gin.Context, err error) {
	status, code, message := Status(err)
	if status == http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "request_failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err,
		)
	}
	Write(c, status, code, message)
}
