package fleet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCapabilities(t *testing.T) {
	tests := []struct {
		name        string
		specialties []string
		requested   []string
		want        bool
	}{
		{"empty request matches anyone", []string{"Photography"}, nil, true},
		{"empty request matches empty specialties", nil, nil, true},
		{"exact match", []string{"Photography"}, []string{"Photography"}, true},
		{"case insensitive", []string{"photography"}, []string{"PHOTOGRAPHY"}, true},
		{"superset qualifies", []string{"Photography", "Videography", "Drone"}, []string{"Drone"}, true},
		{"all requested must be covered", []string{"Photography"}, []string{"Photography", "Videography"}, false},
		{"no specialties fails non-empty request", nil, []string{"Photography"}, false},
		{"whitespace tolerated", []string{" Photography "}, []string{"photography"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasCapabilities(tt.specialties, tt.requested))
		})
	}
}
