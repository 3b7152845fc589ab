package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Title  string  `json:"title" validate:"required"`
	Amount float64 `json:"amount" validate:"required,gt=0"`
	Type   string  `json:"type" validate:"required,oneof=credit debit"`
}

func TestValidateRequest(t *testing.T) {
	assert.Nil(t, ValidateRequest(sampleRequest{Title: "Salary", Amount: 10, Type: "credit"}))

	errs := ValidateRequest(sampleRequest{Amount: -1, Type: "refund"})
	require.Len(t, errs, 3)

	byField := map[string]ValidationError{}
	for _, e := range errs {
		byField[e.Field] = e
	}
	assert.Equal(t, "required", byField["Title"].Type)
	assert.Equal(t, "gt", byField["Amount"].Type)
	assert.Equal(t, "Value must be greater than 0", byField["Amount"].Message)
	assert.Equal(t, "oneof", byField["Type"].Type)
	assert.Equal(t, "Value must be one of: credit debit", byField["Type"].Message)
}
