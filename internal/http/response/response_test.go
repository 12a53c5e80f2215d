package response

import (
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusOKWithData(t *testing.T) {
	resp := StatusOKWithData(map[string]int{"id": 1})

	assert.Equal(t, StatusOK, resp.Status)
	assert.Empty(t, resp.Error)
	assert.NotNil(t, resp.Data)
}

func TestError(t *testing.T) {
	resp := Error("something went wrong")

	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, "something went wrong", resp.Error)
}

func TestValidationError(t *testing.T) {
	type request struct {
		Name   string  `validate:"required"`
		Email  string  `validate:"required,email"`
		Amount float64 `validate:"gt=0"`
		Period string  `validate:"oneof=weekly monthly yearly"`
	}

	err := validator.New().Struct(request{
		Email:  "not-an-email",
		Amount: -5,
		Period: "daily",
	})
	require.Error(t, err)
	var validateErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validateErrs)

	resp := ValidationError(validateErrs)
	assert.Equal(t, StatusError, resp.Status)
	assert.Contains(t, resp.Error, "field Name is a required field")
	assert.Contains(t, resp.Error, "field Email must be a valid email address")
	assert.Contains(t, resp.Error, "field Amount must be greater than 0")
	assert.Contains(t, resp.Error, "field Period must be one of: weekly monthly yearly")
}
