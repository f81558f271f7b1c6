package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ids of rows 0..5 in list order
var rowIDs = []int{10, 11, 12, 13, 14, 15}

func TestSelectionPlainClickToggles(t *testing.T) {
	s := NewSelection()

	s.Toggle(12, 2, false, false, rowIDs)
	assert.True(t, s.Has(12))
	assert.Equal(t, 1, s.Len())

	s.Toggle(12, 2, false, false, rowIDs)
	assert.False(t, s.Has(12))
	assert.Equal(t, 0, s.Len())
}

func TestSelectionCtrlClickBehavesLikePlainToggle(t *testing.T) {
	s := NewSelection()

	s.Toggle(11, 1, false, true, rowIDs)
	s.Toggle(14, 4, false, true, rowIDs)
	assert.Equal(t, []int{11, 14}, s.IDs())

	s.Toggle(11, 1, false, true, rowIDs)
	assert.Equal(t, []int{14}, s.IDs())
}

func TestSelectionShiftClickSelectsRange(t *testing.T) {
	s := NewSelection()

	// anchor at row 2, then shift-click row 5: rows 2..5 inclusive
	s.Toggle(12, 2, false, false, rowIDs)
	s.Toggle(15, 5, true, false, rowIDs)
	assert.Equal(t, []int{12, 13, 14, 15}, s.IDs())
}

func TestSelectionShiftClickIsAdditive(t *testing.T) {
	s := NewSelection()

	s.Toggle(10, 0, false, false, rowIDs) // already selected, outside range
	s.Toggle(13, 3, false, false, rowIDs) // anchor at row 3
	s.Toggle(15, 5, true, false, rowIDs)
	assert.Equal(t, []int{10, 13, 14, 15}, s.IDs())
}

func TestSelectionShiftClickBackwardRange(t *testing.T) {
	s := NewSelection()

	s.Toggle(14, 4, false, false, rowIDs)
	s.Toggle(11, 1, true, false, rowIDs)
	assert.Equal(t, []int{11, 12, 13, 14}, s.IDs())
}

func TestSelectionShiftWithoutAnchorIsPlainToggle(t *testing.T) {
	s := NewSelection()

	s.Toggle(13, 3, true, false, rowIDs)
	assert.Equal(t, []int{13}, s.IDs())
}

func TestSelectionShiftMovesAnchor(t *testing.T) {
	s := NewSelection()

	s.Toggle(10, 0, false, false, rowIDs)
	s.Toggle(12, 2, true, false, rowIDs) // rows 0..2, anchor now row 2
	s.Toggle(14, 4, true, false, rowIDs) // rows 2..4
	assert.Equal(t, []int{10, 11, 12, 13, 14}, s.IDs())
}

func TestSelectionIntersectDropsDeadIDs(t *testing.T) {
	s := NewSelection()

	s.Toggle(10, 0, false, false, rowIDs)
	s.Toggle(12, 2, false, false, rowIDs)
	s.Toggle(15, 5, false, false, rowIDs)

	// rows 12 and 15 vanished in a reload
	s.Intersect([]int{10, 11, 13, 14})
	assert.Equal(t, []int{10}, s.IDs())
}

func TestSelectionClear(t *testing.T) {
	s := NewSelection()

	s.Toggle(10, 0, false, false, rowIDs)
	s.Clear()
	assert.Equal(t, 0, s.Len())

	// anchor dropped too: shift after clear degrades to plain toggle
	s.Toggle(13, 3, true, false, rowIDs)
	assert.Equal(t, []int{13}, s.IDs())
}
