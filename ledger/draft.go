package ledger

import (
	"errors"

	"github.com/ngtkana/senseki-db/models"
)

// ErrDraftDirty is returned when a non-forced discard would throw away a
// result or comment the user already entered. Callers confirm and retry with
// force.
var ErrDraftDirty = errors.New("draft has a result or comment; discard must be forced")

// DraftState describes how far along the in-progress match is.
type DraftState int

const (
	DraftEmpty DraftState = iota
	DraftPartiallyFilled
	DraftReadyToCommit
)

// Draft is the transient staging record being filled in by the user. Every
// field is optional until populated; it never touches the store itself — the
// ledger promotes it with a create call once it reaches DraftReadyToCommit.
//
// Commit policy: all three of self character, opponent character and result
// must be explicit before the draft is eligible. Result is deliberately not
// defaulted to a win — a silent default mis-records losses.
type Draft struct {
	CharacterID         *int
	OpponentCharacterID *int
	Result              models.MatchResult // empty until chosen
	Comment             string
}

// State derives the machine state from the populated fields.
func (d Draft) State() DraftState {
	if d.CharacterID == nil && d.OpponentCharacterID == nil && d.Result == "" && d.Comment == "" {
		return DraftEmpty
	}
	if d.CharacterID != nil && d.OpponentCharacterID != nil && d.Result != "" {
		return DraftReadyToCommit
	}
	return DraftPartiallyFilled
}

// dirty reports whether discarding would lose deliberate input. Character
// picks alone are cheap to redo; a typed comment or a chosen result is not.
func (d Draft) dirty() bool {
	return d.Result != "" || d.Comment != ""
}

// createRequest promotes the draft into the wire request. Only valid in
// DraftReadyToCommit.
func (d Draft) createRequest(sessionID int) models.CreateMatchRequest {
	req := models.CreateMatchRequest{
		SessionID:           sessionID,
		CharacterID:         *d.CharacterID,
		OpponentCharacterID: *d.OpponentCharacterID,
		Result:              d.Result,
	}
	if d.Comment != "" {
		comment := d.Comment
		req.Comment = &comment
	}
	return req
}
