package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError_PassesThroughDomainErrors(t *testing.T) {
	original := NewDomainError("SOME_CODE", "some message", http.StatusTeapot)
	translated := ToDomainError(original)
	assert.Same(t, original, translated)
}

func TestToDomainError_NilIsNil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
}

func TestToDomainError_ExpiredToken(t *testing.T) {
	err := ToDomainError(jwt.ErrTokenExpired)
	require.NotNil(t, err)
	assert.Equal(t, http.StatusUnauthorized, err.HTTPStatus)
	assert.Equal(t, "Your token has expired! Please log in again", err.Message)
}

func TestToDomainError_InvalidToken(t *testing.T) {
	for _, sentinel := range []error{
		jwt.ErrTokenMalformed,
		jwt.ErrTokenSignatureInvalid,
		jwt.ErrTokenUnverifiable,
		jwt.ErrTokenNotValidYet,
	} {
		err := ToDomainError(sentinel)
		require.NotNil(t, err)
		assert.Equal(t, http.StatusUnauthorized, err.HTTPStatus)
		assert.Equal(t, "Invalid token. Please log in again", err.Message)
	}
}

func TestToDomainError_UniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_email_key"}
	err := ToDomainError(pgErr)
	require.NotNil(t, err)
	assert.Equal(t, http.StatusBadRequest, err.HTTPStatus)
	assert.Equal(t, "Duplicate field value: email. Please use another value!", err.Message)
}

func TestToDomainError_NoRows(t *testing.T) {
	err := ToDomainError(pgx.ErrNoRows)
	require.NotNil(t, err)
	assert.Equal(t, http.StatusNotFound, err.HTTPStatus)
	assert.Equal(t, "fail", err.Status())
}

func TestToDomainError_FiberError(t *testing.T) {
	err := ToDomainError(fiber.ErrMethodNotAllowed)
	require.NotNil(t, err)
	assert.Equal(t, http.StatusMethodNotAllowed, err.HTTPStatus)
}

func TestToDomainError_UnknownBecomesGeneric500(t *testing.T) {
	err := ToDomainError(errors.New("pool exhausted: connection refused"))
	require.NotNil(t, err)
	assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus)
	assert.Equal(t, "Something went very wrong!", err.Message)
	assert.Equal(t, "error", err.Status())
	assert.False(t, err.Operational())
}

func TestDomainError_Status(t *testing.T) {
	assert.Equal(t, "fail", NewDomainError("X", "m", http.StatusBadRequest).Status())
	assert.Equal(t, "fail", NewDomainError("X", "m", http.StatusNotFound).Status())
	assert.Equal(t, "error", NewDomainError("X", "m", http.StatusInternalServerError).Status())
}

func TestNewValidationError_JoinsMessages(t *testing.T) {
	err := ToDomainError(NewValidationError("A tour must have a name", "A tour must have a price"))
	assert.Equal(t, "Invalid input data. A tour must have a name. A tour must have a price", err.Message)
	assert.Equal(t, http.StatusBadRequest, err.HTTPStatus)
}

func TestNewCastError(t *testing.T) {
	err := ToDomainError(NewCastError("id", "not-a-uuid"))
	assert.Equal(t, "Invalid id: not-a-uuid.", err.Message)
}

func TestNewNotFound(t *testing.T) {
	err := ToDomainError(NewNotFound("tour"))
	assert.Equal(t, "No tour found with that ID", err.Message)
	assert.Equal(t, http.StatusNotFound, err.HTTPStatus)
}

func TestConstraintField(t *testing.T) {
	cases := map[string]string{
		"users_email_key":       "email",
		"reviews_tour_id_fkey":  "tour_id",
		"tours_name_key":        "name",
		"":                      "field",
		"reviews_tour_user_key": "tour_user",
	}
	for constraint, want := range cases {
		assert.Equal(t, want, constraintField(constraint), constraint)
	}
}
