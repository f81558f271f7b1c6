package ledger

import "sort"

// Selection tracks which committed matches are marked for bulk actions, plus
// the anchor row used to resolve shift-click ranges. Range endpoints are list
// positions in the current ordered match list, not ids, so the caller passes
// the live ordered id slice on every toggle.
type Selection struct {
	ids    map[int]struct{}
	anchor int // row index of the last acted-upon row, -1 when unset
}

func NewSelection() *Selection {
	return &Selection{ids: make(map[int]struct{}), anchor: -1}
}

// Toggle applies one click. Plain and ctrl/cmd clicks toggle membership of
// matchID and move the anchor. Shift clicks select the inclusive range
// between the anchor and rowIndex, adding to whatever is already selected;
// without an anchor a shift click degrades to a plain toggle.
func (s *Selection) Toggle(matchID, rowIndex int, shiftHeld, ctrlHeld bool, orderedIDs []int) {
	if shiftHeld && s.anchor >= 0 {
		lo, hi := s.anchor, rowIndex
		if lo > hi {
			lo, hi = hi, lo
		}
		if lo < 0 {
			lo = 0
		}
		if hi > len(orderedIDs)-1 {
			hi = len(orderedIDs) - 1
		}
		for i := lo; i <= hi; i++ {
			s.ids[orderedIDs[i]] = struct{}{}
		}
		s.anchor = rowIndex
		return
	}

	// ctrlHeld is behaviorally identical to a plain click; both toggle.
	_ = ctrlHeld
	if _, ok := s.ids[matchID]; ok {
		delete(s.ids, matchID)
	} else {
		s.ids[matchID] = struct{}{}
	}
	s.anchor = rowIndex
}

// Has reports membership.
func (s *Selection) Has(matchID int) bool {
	_, ok := s.ids[matchID]
	return ok
}

// IDs returns the selected ids in ascending order.
func (s *Selection) IDs() []int {
	ids := make([]int, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (s *Selection) Len() int {
	return len(s.ids)
}

// Clear empties the selection and drops the anchor.
func (s *Selection) Clear() {
	s.ids = make(map[int]struct{})
	s.anchor = -1
}

// Intersect drops ids no longer present in the live list. Called after every
// reload so the selection never references a row that no longer exists.
func (s *Selection) Intersect(liveIDs []int) {
	live := make(map[int]struct{}, len(liveIDs))
	for _, id := range liveIDs {
		live[id] = struct{}{}
	}
	for id := range s.ids {
		if _, ok := live[id]; !ok {
			delete(s.ids, id)
		}
	}
}
