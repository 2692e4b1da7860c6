package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"ten digits gets country code", "3105551234", "573105551234"},
		{"formatted local number", "(310) 555-1234", "573105551234"},
		{"already qualified", "573105551234", "573105551234"},
		{"plus prefix stripped", "+57 310 555 1234", "573105551234"},
		{"fifteen digits pass through", "123456789012345", "123456789012345"},
		{"short number passes through", "911", "911"},
		{"sixteen digits pass through unchanged", "1234567890123456", "1234567890123456"},
		{"letters stripped", "tel:310-555-1234x", "573105551234"},
		{"no digits", "hola", ""},
		{"empty input", "", ""},
		{"symbols only", "+-() ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePhone(tt.raw, "57"))
		})
	}
}
