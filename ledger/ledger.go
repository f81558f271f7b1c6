package ledger

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/ngtkana/senseki-db/models"
)

// NoticeLevel classifies a user-visible notice.
type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeError
)

// Notifier receives the user-visible messages the ledger decides to surface.
// The ledger is the single place store failures become messages; components
// below it only return errors.
type Notifier interface {
	Notify(level NoticeLevel, message string)
}

// SessionLedger owns the locally cached, eventually-consistent view of one
// session's matches, the draft being entered, and the row selection. Every
// mutating call goes through the store and folds the authoritative response
// back in: merge-by-id on success, rollback plus notice on failure, eviction
// on not-found. Aggregates are rederived after every change.
//
// All methods must be called from a single goroutine; the ledger does no
// locking of its own. In-flight calls from other components may race at the
// store — each completion here only applies the deltas it is responsible for.
type SessionLedger struct {
	store    RecordStore
	prefs    PreferenceStore
	notifier Notifier

	sessionID int
	matches   []models.MatchResponse // ascending match_order
	stats     models.SessionStats
	draft     Draft
	selection *Selection
}

// NewSessionLedger builds a ledger for one session. The initial draft is
// seeded with the preferred main character when one is stored.
func NewSessionLedger(store RecordStore, prefs PreferenceStore, notifier Notifier, sessionID int) *SessionLedger {
	l := &SessionLedger{
		store:     store,
		prefs:     prefs,
		notifier:  notifier,
		sessionID: sessionID,
		selection: NewSelection(),
	}
	l.resetDraft()
	return l
}

// Load replaces the cached match list with the store's current state. Safe to
// call at any time; the selection is intersected with the surviving ids.
func (l *SessionLedger) Load(ctx context.Context) error {
	matches, err := l.store.ListMatches(ctx, l.sessionID)
	if err != nil {
		l.notify(NoticeError, fmt.Sprintf("マッチ取得失敗: %v", err))
		return err
	}
	l.matches = matches
	l.sortMatches()
	l.selection.Intersect(l.orderedIDs())
	l.recompute()
	return nil
}

// Matches returns a copy of the cached ordered match list.
func (l *SessionLedger) Matches() []models.MatchResponse {
	out := make([]models.MatchResponse, len(l.matches))
	copy(out, l.matches)
	return out
}

// Stats returns the current derived session aggregate.
func (l *SessionLedger) Stats() models.SessionStats {
	return l.stats
}

// Draft returns the current draft snapshot.
func (l *SessionLedger) Draft() Draft {
	return l.draft
}

// SelectedIDs returns the ids currently marked for bulk action.
func (l *SessionLedger) SelectedIDs() []int {
	return l.selection.IDs()
}

// IsSelected reports whether a committed match is selected.
func (l *SessionLedger) IsSelected(matchID int) bool {
	return l.selection.Has(matchID)
}

// --- draft entry ---------------------------------------------------------

// SetMainCharacter records the globally selected main character and carries
// it into the draft, mirroring the header picker driving the entry row.
func (l *SessionLedger) SetMainCharacter(ctx context.Context, characterID int) error {
	if l.prefs != nil {
		l.prefs.SetPreference(PrefMainCharacter, strconv.Itoa(characterID))
	}
	return l.SetDraftSelf(ctx, characterID)
}

// SetDraftSelf fills in the draft's own character and commits if the draft
// just became complete.
func (l *SessionLedger) SetDraftSelf(ctx context.Context, characterID int) error {
	l.draft.CharacterID = &characterID
	return l.maybeCommitDraft(ctx)
}

// SetDraftOpponent fills in the opponent character and commits if complete.
func (l *SessionLedger) SetDraftOpponent(ctx context.Context, characterID int) error {
	l.draft.OpponentCharacterID = &characterID
	return l.maybeCommitDraft(ctx)
}

// SetDraftResult records the explicit win/loss choice and commits if
// complete. The result click is usually the commit trigger under the
// explicit-result policy.
func (l *SessionLedger) SetDraftResult(ctx context.Context, result models.MatchResult) error {
	if !result.Valid() {
		return fmt.Errorf("invalid result %q", result)
	}
	l.draft.Result = result
	return l.maybeCommitDraft(ctx)
}

// SetDraftComment updates the draft comment. Comments never trigger a
// commit; they ride along with whichever field completes the draft.
func (l *SessionLedger) SetDraftComment(comment string) {
	l.draft.Comment = comment
}

// DiscardDraft drops the draft with no store call. A draft holding a result
// or comment refuses a non-forced discard so a stray Escape cannot lose
// typed work.
func (l *SessionLedger) DiscardDraft(force bool) error {
	if !force && l.draft.dirty() {
		return ErrDraftDirty
	}
	l.resetDraft()
	return nil
}

// maybeCommitDraft promotes the draft once it is complete: one create call,
// merge of the authoritative row, aggregate rederive, then a fresh draft so
// entry continues uninterrupted. On failure the draft stays as it was.
func (l *SessionLedger) maybeCommitDraft(ctx context.Context) error {
	if l.draft.State() != DraftReadyToCommit {
		return nil
	}

	created, err := l.store.CreateMatch(ctx, l.draft.createRequest(l.sessionID))
	if err != nil {
		l.notify(NoticeError, fmt.Sprintf("マッチ追加失敗: %v", err))
		return err
	}

	l.mergeMatch(*created)
	l.recompute()
	l.resetDraft()
	return nil
}

func (l *SessionLedger) resetDraft() {
	l.draft = Draft{}
	if id, ok := mainCharacterID(l.prefs); ok {
		l.draft.CharacterID = &id
	}
}

// --- committed-match edits -----------------------------------------------

// SetMatchResult flips the result of a committed match.
func (l *SessionLedger) SetMatchResult(ctx context.Context, matchID int, result models.MatchResult) error {
	if !result.Valid() {
		return fmt.Errorf("invalid result %q", result)
	}
	return l.patchMatch(ctx, matchID, models.UpdateMatchRequest{Result: &result})
}

// SetMatchComment rewrites the comment of a committed match.
func (l *SessionLedger) SetMatchComment(ctx context.Context, matchID int, comment string) error {
	return l.patchMatch(ctx, matchID, models.UpdateMatchRequest{Comment: &comment})
}

// SetMatchSelf changes the recorded own character of a committed match.
func (l *SessionLedger) SetMatchSelf(ctx context.Context, matchID, characterID int) error {
	return l.patchMatch(ctx, matchID, models.UpdateMatchRequest{CharacterID: &characterID})
}

// SetMatchOpponent changes the recorded opponent character.
func (l *SessionLedger) SetMatchOpponent(ctx context.Context, matchID, characterID int) error {
	return l.patchMatch(ctx, matchID, models.UpdateMatchRequest{OpponentCharacterID: &characterID})
}

// patchMatch is the one optimistic read-modify-write path: apply the field
// locally, issue the PATCH, then reconcile with the echoed record. A failed
// call rolls the row back exactly; a missing record evicts it.
func (l *SessionLedger) patchMatch(ctx context.Context, matchID int, req models.UpdateMatchRequest) error {
	idx := l.indexOf(matchID)
	if idx < 0 {
		return ErrNotFound
	}

	prev := l.matches[idx]
	applyResponsePatch(&l.matches[idx], req)
	l.recompute()

	updated, err := l.store.UpdateMatch(ctx, matchID, req)
	if errors.Is(err, ErrNotFound) {
		l.removeMatch(matchID)
		l.recompute()
		l.notify(NoticeError, "マッチは既に削除されています")
		return err
	}
	if err != nil {
		l.matches[idx] = prev
		l.recompute()
		l.notify(NoticeError, fmt.Sprintf("マッチ更新失敗: %v", err))
		return err
	}

	l.matches[idx] = *updated
	l.sortMatches()
	l.recompute()
	return nil
}

// DeleteMatch removes one committed match. Orders of the remaining matches
// are untouched.
func (l *SessionLedger) DeleteMatch(ctx context.Context, matchID int) error {
	err := l.store.DeleteMatch(ctx, matchID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		l.notify(NoticeError, fmt.Sprintf("マッチ削除失敗: %v", err))
		return err
	}
	// Gone either way: deleted by us or already deleted by someone else.
	l.removeMatch(matchID)
	l.selection.Intersect(l.orderedIDs())
	l.recompute()
	return nil
}

// --- selection -------------------------------------------------------------

// ToggleSelect routes a row click (with modifiers) into the selection.
func (l *SessionLedger) ToggleSelect(matchID, rowIndex int, shiftHeld, ctrlHeld bool) {
	l.selection.Toggle(matchID, rowIndex, shiftHeld, ctrlHeld, l.orderedIDs())
}

// BulkDelete deletes every selected match with independent per-id calls: one
// failure does not block the rest. The selection is cleared and the list
// reloaded regardless, so local state converges on whatever the store kept.
func (l *SessionLedger) BulkDelete(ctx context.Context) error {
	var failed []error
	for _, id := range l.selection.IDs() {
		if err := l.store.DeleteMatch(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
			failed = append(failed, fmt.Errorf("match %d: %w", id, err))
		}
	}
	l.selection.Clear()

	if err := l.Load(ctx); err != nil {
		failed = append(failed, err)
	}

	if len(failed) > 0 {
		err := errors.Join(failed...)
		l.notify(NoticeError, fmt.Sprintf("一括削除で%d件失敗: %v", len(failed), err))
		return err
	}
	return nil
}

// --- internals --------------------------------------------------------------

func (l *SessionLedger) indexOf(matchID int) int {
	for i, m := range l.matches {
		if m.ID == matchID {
			return i
		}
	}
	return -1
}

func (l *SessionLedger) orderedIDs() []int {
	ids := make([]int, len(l.matches))
	for i, m := range l.matches {
		ids[i] = m.ID
	}
	return ids
}

func (l *SessionLedger) mergeMatch(m models.MatchResponse) {
	if idx := l.indexOf(m.ID); idx >= 0 {
		l.matches[idx] = m
	} else {
		l.matches = append(l.matches, m)
	}
	l.sortMatches()
}

func (l *SessionLedger) removeMatch(matchID int) {
	if idx := l.indexOf(matchID); idx >= 0 {
		l.matches = append(l.matches[:idx], l.matches[idx+1:]...)
	}
}

func (l *SessionLedger) sortMatches() {
	sort.SliceStable(l.matches, func(i, j int) bool {
		return l.matches[i].MatchOrder < l.matches[j].MatchOrder
	})
}

func (l *SessionLedger) recompute() {
	results := make([]models.MatchResult, len(l.matches))
	for i, m := range l.matches {
		results[i] = m.Result
	}
	l.stats = models.TallyResults(results)
}

func (l *SessionLedger) notify(level NoticeLevel, message string) {
	if l.notifier != nil {
		l.notifier.Notify(level, message)
	}
}

// applyResponsePatch mirrors the server's field-level merge onto the cached
// response row, for the optimistic apply before the echo arrives.
func applyResponsePatch(m *models.MatchResponse, req models.UpdateMatchRequest) {
	if req.CharacterID != nil {
		m.CharacterID = *req.CharacterID
		m.CharacterName = "" // name resolved by the echoed record
	}
	if req.OpponentCharacterID != nil {
		m.OpponentCharacterID = *req.OpponentCharacterID
		m.OpponentCharacterName = ""
	}
	if req.Result != nil {
		m.Result = *req.Result
	}
	if req.Comment != nil {
		m.Comment = req.Comment
	}
}
