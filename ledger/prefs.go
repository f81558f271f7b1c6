package ledger

import (
	"strconv"
	"sync"
)

// PrefMainCharacter stores the globally selected "main" character id; new
// drafts are pre-seeded with it.
const PrefMainCharacter = "main_character_id"

// PreferenceStore is the injected persistence port for small user
// preferences. Implementations may be backed by anything; MemoryPreferences
// is the in-memory fallback.
type PreferenceStore interface {
	GetPreference(key string) (string, bool)
	SetPreference(key, value string)
}

// MemoryPreferences keeps preferences for the lifetime of the process.
type MemoryPreferences struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryPreferences() *MemoryPreferences {
	return &MemoryPreferences{values: make(map[string]string)}
}

func (p *MemoryPreferences) GetPreference(key string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	v, ok := p.values[key]
	return v, ok
}

func (p *MemoryPreferences) SetPreference(key, value string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.values[key] = value
}

func mainCharacterID(prefs PreferenceStore) (int, bool) {
	if prefs == nil {
		return 0, false
	}
	raw, ok := prefs.GetPreference(PrefMainCharacter)
	if !ok {
		return 0, false
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
