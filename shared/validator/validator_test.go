package validator_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"quadra/shared/validator"
)

type registerPayload struct {
	Name           string `json:"name"            validate:"required,max=100"`
	Email          string `json:"email"           validate:"required,email"`
	EnrollmentCode string `json:"enrollment_code" validate:"required,enrollment"`
}

func TestValidateDecodesAndValidates(t *testing.T) {
	body := `{"name":"Maria Souza","email":"maria@edu.unifor.br","enrollment_code":"1234567"}`

	var payload registerPayload
	err := validator.Validate(strings.NewReader(body), &payload)

	assert.NoError(t, err)
	assert.Equal(t, "1234567", payload.EnrollmentCode)
}

func TestValidateRejectsMalformedJSON(t *testing.T) {
	var payload registerPayload
	err := validator.Validate(strings.NewReader("{not json"), &payload)

	assert.Error(t, err)
}

func TestEnrollmentValidation(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantErr bool
	}{
		{
			name: "seven digits",
			code: "1234567",
		},
		{
			name:    "six digits",
			code:    "123456",
			wantErr: true,
		},
		{
			name:    "eight digits",
			code:    "12345678",
			wantErr: true,
		},
		{
			name:    "letters mixed in",
			code:    "12a4567",
			wantErr: true,
		},
		{
			name:    "empty",
			code:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.code, "required,enrollment")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateStructMessages(t *testing.T) {
	payload := registerPayload{
		Name:           "Maria Souza",
		Email:          "not-an-email",
		EnrollmentCode: "1234567",
	}

	err := validator.ValidateStruct(&payload)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "valid email address")
}
