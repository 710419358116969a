package core

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

type validatorSample struct {
	Name  string `json:"name" validate:"required"`
	CPF   string `json:"cpf" validate:"required,cpf"`
	CNPJ  string `json:"cnpj" validate:"omitempty,cnpj"`
	Phone string `json:"phone" validate:"omitempty,phone"`
	Start string `json:"start_time" validate:"omitempty,hhmm"`
}

func TestInitValidators(t *testing.T) {
	validate, translator := NewValidator()

	valid := validatorSample{Name: "Ana", CPF: "529.982.247-25", CNPJ: "11.222.333/0001-81", Phone: "(11) 98765-4321", Start: "08:30"}
	assert.NoError(t, validate.Struct(valid))

	invalid := validatorSample{CPF: "123", CNPJ: "1", Phone: "12", Start: "25:00"}
	err := NewFieldErrors(validate.Struct(invalid), translator)
	vErr, ok := err.(*ValidationError)
	if !assert.True(t, ok, "want *ValidationError, got %T", err) {
		return
	}
	assert.Equal(t, map[string]string{
		"name":       "this field is required",
		"cpf":        "invalid CPF",
		"cnpj":       "invalid CNPJ",
		"phone":      "phone must have 10 or 11 digits",
		"start_time": "time must be in HH:MM format",
	}, vErr.FieldMap())
	assert.True(t, IsValidation(err))
}

func TestAPIError(t *testing.T) {
	err := NewAPIError(404, "event 9 not found")
	assert.Equal(t, "api request failed: 404 Not Found - event 9 not found", err.Error())
	assert.Equal(t, 404, APIStatus(err))
	assert.Equal(t, 0, APIStatus(NewAuthError("x")))
}

func TestIsShutdown(t *testing.T) {
	err := errors.Wrap(NewShutdownError("no secret key"), "issuing tokens")
	assert.True(t, IsShutdown(err))
	assert.Equal(t, "issuing tokens: no secret key", err.Error())
	assert.False(t, IsShutdown(NewAuthError("x")))
}
