package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{" Ana@Example.COM ", "ana@example.com", true},
		{"a.b+tag@mail.example.org", "a.b+tag@mail.example.org", true},
		{"", "", false},
		{"not-an-email", "", false},
		{"ana@localhost", "", false},
		{"Ana <ana@example.com>", "", false},
		{"@example.com", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := NormalizeEmail(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsSlug(t *testing.T) {
	assert.True(t, IsSlug("acme-cuts"))
	assert.True(t, IsSlug("studio42"))
	assert.False(t, IsSlug("Acme"))
	assert.False(t, IsSlug("acme--cuts"))
	assert.False(t, IsSlug("-acme"))
	assert.False(t, IsSlug(""))
}
