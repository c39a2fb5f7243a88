package util

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DomainError standardizes application errors. Operational errors carry a
// safe client-facing message; anything else is surfaced as a generic 500 and
// logged with full detail server-side.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Status returns the response status keyword: "fail" for client errors,
// "error" for server errors.
func (e *DomainError) Status() string {
	if e.HTTPStatus >= 400 && e.HTTPStatus < 500 {
		return "fail"
	}
	return "error"
}

// Operational reports whether the error is expected and client-facing.
func (e *DomainError) Operational() bool {
	return e.Code != "INTERNAL_ERROR"
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status}
}

// NewValidationError joins the individual validation messages.
func NewValidationError(messages ...string) error {
	return NewDomainError("VALIDATION_FAILED",
		"Invalid input data. "+strings.Join(messages, ". "), http.StatusBadRequest)
}

// NewCastError flags a malformed identifier or type mismatch.
func NewCastError(field, value string) error {
	return NewDomainError("CAST_ERROR",
		fmt.Sprintf("Invalid %s: %s.", field, value), http.StatusBadRequest)
}

// NewDuplicateField flags a uniqueness violation.
func NewDuplicateField(field string) error {
	return NewDomainError("DUPLICATE_FIELD",
		fmt.Sprintf("Duplicate field value: %s. Please use another value!", field),
		http.StatusBadRequest)
}

func NewNotFound(resource string) error {
	return NewDomainError("NOT_FOUND", fmt.Sprintf("No %s found with that ID", resource),
		http.StatusNotFound)
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized)
}

func NewForbidden(message string) error {
	return NewDomainError("FORBIDDEN", message, http.StatusForbidden)
}

func NewInvalidToken() error {
	return NewDomainError("INVALID_TOKEN", "Invalid token. Please log in again",
		http.StatusUnauthorized)
}

func NewExpiredToken() error {
	return NewDomainError("EXPIRED_TOKEN", "Your token has expired! Please log in again",
		http.StatusUnauthorized)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "Something went very wrong!",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError translates low-level persistence and token failures into the
// uniform client-facing shape. Unrecognized errors become a generic 500 whose
// detail is never leaked to the client.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return &DomainError{Code: "HTTP_ERROR", Message: fiberErr.Message, HTTPStatus: fiberErr.Code}
	}

	if errors.Is(err, jwt.ErrTokenExpired) {
		return mustDomain(NewExpiredToken())
	}
	if errors.Is(err, jwt.ErrTokenMalformed) ||
		errors.Is(err, jwt.ErrTokenSignatureInvalid) ||
		errors.Is(err, jwt.ErrTokenUnverifiable) ||
		errors.Is(err, jwt.ErrTokenNotValidYet) {
		return mustDomain(NewInvalidToken())
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return mustDomain(NewDuplicateField(constraintField(pgErr.ConstraintName)))
		case pgerrcode.InvalidTextRepresentation:
			return mustDomain(NewCastError("value", pgErr.Message))
		case pgerrcode.CheckViolation, pgerrcode.NotNullViolation:
			return mustDomain(NewValidationError(pgErr.Message))
		case pgerrcode.ForeignKeyViolation:
			return mustDomain(NewValidationError(fmt.Sprintf("referenced %s does not exist", constraintField(pgErr.ConstraintName))))
		}
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return mustDomain(NewNotFound("resource"))
	}

	return mustDomain(NewInternalError(err))
}

// MapError converts generic errors to DomainError.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	return ToDomainError(err)
}

// constraintField derives the offending column list from a constraint name
// such as "users_email_key" or "reviews_tour_id_fkey".
func constraintField(constraint string) string {
	if constraint == "" {
		return "field"
	}
	name := constraint
	name = strings.TrimSuffix(name, "_key")
	name = strings.TrimSuffix(name, "_fkey")
	if idx := strings.Index(name, "_"); idx >= 0 {
		name = name[idx+1:]
	}
	if name == "" {
		return "field"
	}
	return name
}

func mustDomain(err error) *DomainError {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "Something went very wrong!",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}
