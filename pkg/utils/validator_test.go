package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	Title  string   `json:"title" validate:"required,min=1,max=10"`
	Email  string   `json:"email" validate:"omitempty,email"`
	Rating int      `json:"rating" validate:"required,min=1,max=5"`
	Price  *float64 `json:"price" validate:"required,gte=0"`
}

type secretRequest struct {
	Secret string `json:"secret" validate:"required,max=72,maxbytes=72"`
	Note   string `json:"note" validate:"nonul"`
}

func TestValidateStruct(t *testing.T) {
	price := 9.5

	t.Run("valid", func(t *testing.T) {
		errs := ValidateStruct(sampleRequest{Title: "Dune", Rating: 5, Price: &price})
		assert.Nil(t, errs)
	})

	t.Run("uses json names", func(t *testing.T) {
		errs := ValidateStruct(sampleRequest{Email: "nope", Rating: 9})
		assert.Equal(t, map[string]string{
			"title":  "This field is required",
			"email":  "Invalid email format",
			"rating": "Must be at most 5",
			"price":  "This field is required",
		}, errs)
	})

	t.Run("negative price", func(t *testing.T) {
		negative := -1.0
		errs := ValidateStruct(sampleRequest{Title: "Dune", Rating: 1, Price: &negative})
		assert.Equal(t, map[string]string{"price": "Must be greater than or equal to 0"}, errs)
	})
}

func TestFormatValidationErrorsIsSorted(t *testing.T) {
	msg := FormatValidationErrors(map[string]string{
		"title":  "This field is required",
		"author": "This field is required",
	})
	assert.Equal(t, "author: This field is required; title: This field is required", msg)
}

func TestCustomTags(t *testing.T) {
	tests := []struct {
		name string
		req  secretRequest
		want map[string]string
	}{
		{"ascii at limit", secretRequest{Secret: strings.Repeat("a", 72)}, nil},
		{"multibyte over byte limit", secretRequest{Secret: strings.Repeat("é", 40)}, map[string]string{
			"secret": "Maximum size is 72 bytes",
		}},
		{"multibyte under byte limit", secretRequest{Secret: strings.Repeat("é", 36)}, nil},
		{"nul in text", secretRequest{Secret: "ok", Note: "bad\x00note"}, map[string]string{
			"note": "Must not contain NUL characters",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateStruct(tt.req)
			if tt.want == nil {
				assert.Empty(t, errs)
				return
			}
			assert.Equal(t, tt.want, errs)
		})
	}
}
