package pkg

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError(t *testing.T) {
	cause := errors.New("dynamo down")
	err := NewDomainError("INTERNAL_ERROR", "An internal error occurred", cause, http.StatusInternalServerError)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "INTERNAL_ERROR: An internal error occurred: dynamo down", err.Error())

	body := err.ToHTTPError()
	assert.Equal(t, "INTERNAL_ERROR", body.Code)
	assert.Nil(t, body.Fields)
}

func TestAppError_WithFields(t *testing.T) {
	err := NewDomainErrorSimple("VALIDATION_ERROR", "Invalid request", http.StatusBadRequest).
		WithFields(map[string]string{"amount_cents": "must be greater than 0"})

	assert.Equal(t, "VALIDATION_ERROR: Invalid request", err.Error())
	assert.Equal(t, http.StatusBadRequest, err.HTTPStatus)
	assert.Equal(t, "must be greater than 0", err.ToHTTPError().Fields["amount_cents"])
}
