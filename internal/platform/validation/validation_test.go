package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"name_mascota" validate:"required,max=10"`
	Kind  int64  `json:"tipo_post" validate:"oneof=1 2 3"`
	Email string `form:"email_address" validate:"omitempty,email"`
}

func TestStruct_OK(t *testing.T) {
	assert.NoError(t, Struct(sample{Name: "Firulais", Kind: 1}))
}

func TestStruct_ReportsJSONFieldNames(t *testing.T) {
	err := Struct(sample{Name: "", Kind: 7, Email: "nope"})
	require.Error(t, err)

	var verr *Error
	require.True(t, errors.As(err, &verr))

	byField := map[string]FieldError{}
	for _, f := range verr.Fields {
		byField[f.Field] = f
	}
	require.Len(t, byField, 3)
	assert.Equal(t, "required", byField["name_mascota"].Rule)
	assert.Equal(t, "oneof", byField["tipo_post"].Rule)
	assert.Equal(t, "email", byField["email_address"].Rule)
	assert.Contains(t, byField["tipo_post"].Message, "1 2 3")
}

func TestVar(t *testing.T) {
	assert.NoError(t, Var("email_address", "a@b.com", "required,email"))

	err := Var("email_address", "", "required,email")
	fields := Fields(err)
	require.Len(t, fields, 1)
	assert.Equal(t, "email_address", fields[0].Field)
	assert.Equal(t, "required", fields[0].Rule)
}

func TestFields_NonValidationError(t *testing.T) {
	assert.Nil(t, Fields(errors.New("boom")))
}
