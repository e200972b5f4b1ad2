package serverutils

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		kind ErrorKind
		want int
	}{
		{KindUnauthorized, fiber.StatusUnauthorized},
		{KindForbidden, fiber.StatusForbidden},
		{KindNotFound, fiber.StatusNotFound},
		{KindInvalidArgument, fiber.StatusBadRequest},
		{KindUploadFailed, fiber.StatusBadGateway},
		{KindInternal, fiber.StatusInternalServerError},
		{ErrorKind("SOMETHING_ELSE"), fiber.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, HTTPStatus(tc.kind), string(tc.kind))
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := UploadFailed("failed to store attachment", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "UPLOAD_FAILED")
	assert.Contains(t, err.Error(), "disk full")
}

func TestValidateRequestFoldsFieldErrors(t *testing.T) {
	type payload struct {
		Name string `validate:"required"`
	}

	err := ValidateRequest(payload{})
	var appErr *AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, KindInvalidArgument, appErr.Kind)
	assert.Contains(t, appErr.Message, "Name")

	assert.NoError(t, ValidateRequest(payload{Name: "ok"}))
}
