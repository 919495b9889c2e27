package apperrors

import (
	"net/http"
)

/*
Factories and predefined variables for recruiting-domain errors.
Repositories return plain sentinel errors; services translate them
into these AppErrors before they reach a handler.
*/

// --- Factories wrapping repository errors ---

// ErrNotFound converts a repository "record not found" into a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists converts a uniqueness violation into a 409.
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict is the generic conflict factory (409).
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// --- Factories for new errors ---

// ErrInvalidOperation flags an operation the current state does not allow (400).
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrInvalidStatus flags an illegal status transition (400).
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// ErrTenantMismatch flags cross-company access attempts (403).
func ErrTenantMismatch(domain string) *AppError {
	return New(CodeForbidden, domain, "Resource belongs to another company", http.StatusForbidden)
}

// --- Predefined variables for frequent static errors ---

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrWeakPassword = New(
	CodeValidationFailed,
	"auth",
	"Password must be at least 8 characters long",
	http.StatusBadRequest,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"user",
	"A user with this email already exists",
	http.StatusConflict,
)

var ErrInvalidUserRole = New(
	CodeInvalidOperation,
	"business_logic",
	"Invalid user role for this operation",
	http.StatusBadRequest,
)

var ErrManagerCycle = New(
	CodeInvalidOperation,
	"user",
	"Manager assignment would create a cycle",
	http.StatusBadRequest,
)

var ErrVerdictAlreadySubmitted = New(
	CodeConflict,
	"pipeline",
	"A human verdict has already been submitted for this interview",
	http.StatusConflict,
)

var ErrTerminalStatus = New(
	CodeInvalidStatus,
	"pipeline",
	"Candidate is in a terminal status; only an explicit human verdict may change it",
	http.StatusConflict,
)
