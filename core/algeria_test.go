package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWilayas(t *testing.T) {
	assert.Len(t, Wilayas, 58)
	assert.Equal(t, "Adrar", Wilayas[0])
	assert.Equal(t, "El Meniaa", Wilayas[57])
}

func TestIsWilaya(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"Alger", true},
		{"Oran", true},
		{"Béjaïa", true},
		{"Bordj Badji Mokhtar", true},
		{"", false},
		{"alger", false}, // case sensitive
		{"Atlantis", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsWilaya(tt.name), tt.name)
	}
}
