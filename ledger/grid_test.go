package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNavigate(t *testing.T) {
	tests := []struct {
		name  string
		key   Key
		index int
		count int
		cols  int
		want  int
	}{
		{"right moves forward", KeyRight, 3, 8, 4, 4},
		{"right clamps at last item", KeyRight, 7, 8, 4, 7},
		{"left moves back", KeyLeft, 3, 8, 4, 2},
		{"left clamps at first item", KeyLeft, 0, 8, 4, 0},
		{"down moves a full row", KeyDown, 3, 8, 4, 7},
		{"down clamps when past count", KeyDown, 5, 8, 4, 5},
		{"up moves a full row", KeyUp, 5, 8, 4, 1},
		{"up clamps when negative", KeyUp, 1, 8, 4, 1},
		{"ragged last row is unreachable by down", KeyDown, 4, 7, 4, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, activated := Navigate(tt.key, tt.index, tt.count, tt.cols)
			assert.Equal(t, tt.want, got)
			assert.False(t, activated)
		})
	}
}

func TestNavigateEnterActivates(t *testing.T) {
	got, activated := Navigate(KeyEnter, 5, 8, 4)
	assert.Equal(t, 5, got)
	assert.True(t, activated)
}

func TestNavigateEmptyGridIgnoresEverything(t *testing.T) {
	for _, key := range []Key{KeyLeft, KeyRight, KeyUp, KeyDown, KeyEnter} {
		got, activated := Navigate(key, 0, 0, 4)
		assert.Equal(t, 0, got)
		assert.False(t, activated)
	}
}
