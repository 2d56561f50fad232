package utils

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type periodPayload struct {
	StartMonth string `json:"startMonth" binding:"required,yearmonth"`
	EndMonth   string `json:"endMonth" binding:"required,yearmonth,monthafter=StartMonth"`
	Kind       string `json:"kind" binding:"omitempty,testkind"`
	Note       string `json:"note" binding:"omitempty,notblank"`
}

func TestValidators(t *testing.T) {
	require.NoError(t, InitValidators())
	require.NoError(t, RegisterEnumValidation("testkind", "GCK", "Home Caring Fellowship"))

	tests := []struct {
		name    string
		payload periodPayload
		wantErr string
	}{
		{"valid period", periodPayload{StartMonth: "2024-01", EndMonth: "2024-03", Kind: "Home Caring Fellowship"}, ""},
		{"year boundary", periodPayload{StartMonth: "2023-12", EndMonth: "2024-01"}, ""},
		{"bad month", periodPayload{StartMonth: "2024-1", EndMonth: "2024-03"}, "startMonth must be a month in YYYY-MM format"},
		{"end equals start", periodPayload{StartMonth: "2024-03", EndMonth: "2024-03"}, "endMonth must be after StartMonth"},
		{"unknown enum value", periodPayload{StartMonth: "2024-01", EndMonth: "2024-02", Kind: "Picnic"}, "kind has an unsupported value"},
		{"blank note", periodPayload{StartMonth: "2024-01", EndMonth: "2024-02", Note: "  "}, "note cannot be blank"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(tt.payload)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, ValidationMessage(err), tt.wantErr)
		})
	}
}
