package apperrors

import (
	"net/http"
)

// Factories for the domain error taxonomy. Handlers translate HTTPCode to
// the response status; clients branch on Code.

// ErrNotFound converts a repository miss (e.g. gorm.ErrRecordNotFound) into
// a 404. Ownership misses use the same factory so a foreign job id is
// indistinguishable from a nonexistent one.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrPreconditionMissing signals that a required prior step (profile,
// voice sample, photo) has not been completed yet.
func ErrPreconditionMissing(domain, message string) *AppError {
	return New(CodePreconditionMissing, domain, message, http.StatusConflict)
}

// ErrQuotaExceeded carries the remaining budget (characters or days) so
// the client can display it.
func ErrQuotaExceeded(domain, message string, details interface{}) *AppError {
	return New(CodeQuotaExceeded, domain, message, http.StatusTooManyRequests).WithDetails(details)
}

// ErrProvider wraps an upstream HTTP failure. upstreamStatus and body are
// preserved in Details for diagnostics; the caller gets a 502.
func ErrProvider(err error, domain, message string, upstreamStatus int, body string) *AppError {
	return Wrap(err, CodeProviderError, domain, message, http.StatusBadGateway).
		WithDetails(map[string]interface{}{
			"upstream_status": upstreamStatus,
			"upstream_body":   body,
		})
}

// ErrProviderContract signals that the upstream call nominally succeeded
// but the response was missing an expected field.
func ErrProviderContract(domain, message string) *AppError {
	return New(CodeProviderContract, domain, message, http.StatusBadGateway)
}

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrEmailTaken = New(
	CodeAlreadyExists,
	"auth",
	"Email is already registered",
	http.StatusConflict,
)
