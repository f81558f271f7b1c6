package ledger

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"

	"github.com/ngtkana/senseki-db/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory RecordStore with the server's order-allocation
// behavior and switchable failures.
type fakeStore struct {
	matches map[int]*models.MatchResponse
	nextID  int

	createCalls []models.CreateMatchRequest
	deleteCalls []int

	failCreate error
	failUpdate error
	failDelete map[int]error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		matches:    make(map[int]*models.MatchResponse),
		nextID:     1,
		failDelete: make(map[int]error),
	}
}

func (f *fakeStore) charName(id int) string {
	return fmt.Sprintf("fighter-%d", id)
}

func (f *fakeStore) maxOrder(sessionID int) int {
	max := 0
	for _, m := range f.matches {
		if m.SessionID == sessionID && m.MatchOrder > max {
			max = m.MatchOrder
		}
	}
	return max
}

// seed inserts a committed match directly, bypassing the call counters.
func (f *fakeStore) seed(sessionID, charID, oppID int, result models.MatchResult) *models.MatchResponse {
	m := &models.MatchResponse{
		ID:                    f.nextID,
		SessionID:             sessionID,
		CharacterID:           charID,
		OpponentCharacterID:   oppID,
		CharacterName:         f.charName(charID),
		OpponentCharacterName: f.charName(oppID),
		Result:                result,
		MatchOrder:            f.maxOrder(sessionID) + 1,
	}
	f.nextID++
	f.matches[m.ID] = m
	return m
}

func (f *fakeStore) CreateMatch(ctx context.Context, req models.CreateMatchRequest) (*models.MatchResponse, error) {
	f.createCalls = append(f.createCalls, req)
	if f.failCreate != nil {
		return nil, f.failCreate
	}
	m := f.seed(req.SessionID, req.CharacterID, req.OpponentCharacterID, req.Result)
	m.Comment = req.Comment
	out := *m
	return &out, nil
}

func (f *fakeStore) ListMatches(ctx context.Context, sessionID int) ([]models.MatchResponse, error) {
	var out []models.MatchResponse
	for _, m := range f.matches {
		if m.SessionID == sessionID {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MatchOrder < out[j].MatchOrder })
	return out, nil
}

func (f *fakeStore) UpdateMatch(ctx context.Context, matchID int, req models.UpdateMatchRequest) (*models.MatchResponse, error) {
	if f.failUpdate != nil {
		return nil, f.failUpdate
	}
	m, ok := f.matches[matchID]
	if !ok {
		return nil, ErrNotFound
	}
	if req.CharacterID != nil {
		m.CharacterID = *req.CharacterID
		m.CharacterName = f.charName(*req.CharacterID)
	}
	if req.OpponentCharacterID != nil {
		m.OpponentCharacterID = *req.OpponentCharacterID
		m.OpponentCharacterName = f.charName(*req.OpponentCharacterID)
	}
	if req.Result != nil {
		m.Result = *req.Result
	}
	if req.Comment != nil {
		m.Comment = req.Comment
	}
	out := *m
	return &out, nil
}

func (f *fakeStore) DeleteMatch(ctx context.Context, matchID int) error {
	f.deleteCalls = append(f.deleteCalls, matchID)
	if err, ok := f.failDelete[matchID]; ok {
		return err
	}
	if _, ok := f.matches[matchID]; !ok {
		return ErrNotFound
	}
	delete(f.matches, matchID)
	return nil
}

func (f *fakeStore) ListSessions(ctx context.Context) ([]models.SessionResponse, error) {
	return nil, nil
}

func (f *fakeStore) ListCharacters(ctx context.Context) ([]models.CharacterResponse, error) {
	return nil, nil
}

func (f *fakeStore) CreateGSPRecord(ctx context.Context, req models.CreateGSPRecordRequest) (*models.GSPRecordResponse, error) {
	return nil, nil
}

func (f *fakeStore) ListGSPRecords(ctx context.Context, sessionID int) ([]models.GSPRecordResponse, error) {
	return nil, nil
}

type recordedNotice struct {
	level   NoticeLevel
	message string
}

type recordingNotifier struct {
	notices []recordedNotice
}

func (n *recordingNotifier) Notify(level NoticeLevel, message string) {
	n.notices = append(n.notices, recordedNotice{level, message})
}

func orders(matches []models.MatchResponse) []int {
	out := make([]int, len(matches))
	for i, m := range matches {
		out[i] = m.MatchOrder
	}
	return out
}

// --- tests ------------------------------------------------------------------

func TestDraftLifecycleCommitsExactlyOnce(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	l := NewSessionLedger(store, NewMemoryPreferences(), nil, 1)

	require.NoError(t, l.SetDraftSelf(ctx, 3))
	assert.Empty(t, store.createCalls, "self alone must not commit")

	require.NoError(t, l.SetDraftOpponent(ctx, 7))
	assert.Empty(t, store.createCalls, "both characters without a result must not commit")

	require.NoError(t, l.SetDraftResult(ctx, models.ResultWin))
	require.Len(t, store.createCalls, 1)

	req := store.createCalls[0]
	assert.Equal(t, 1, req.SessionID)
	assert.Equal(t, 3, req.CharacterID)
	assert.Equal(t, 7, req.OpponentCharacterID)
	assert.Equal(t, models.ResultWin, req.Result)
	assert.Nil(t, req.Comment)

	assert.Equal(t, DraftEmpty, l.Draft().State(), "draft resets after commit")
	assert.Equal(t, []int{1}, orders(l.Matches()))
	assert.Equal(t, models.SessionStats{MatchCount: 1, Wins: 1}, l.Stats())
}

func TestDraftCommentRidesAlongWithCommit(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	l := NewSessionLedger(store, NewMemoryPreferences(), nil, 1)

	require.NoError(t, l.SetDraftSelf(ctx, 3))
	l.SetDraftComment("対空が通った")
	require.NoError(t, l.SetDraftOpponent(ctx, 7))
	require.NoError(t, l.SetDraftResult(ctx, models.ResultWin))

	require.Len(t, store.createCalls, 1)
	if assert.NotNil(t, store.createCalls[0].Comment) {
		assert.Equal(t, "対空が通った", *store.createCalls[0].Comment)
	}
}

func TestSequentialCommitsGetDistinctIncreasingOrders(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	prefs := NewMemoryPreferences()
	l := NewSessionLedger(store, prefs, nil, 1)
	require.NoError(t, l.SetMainCharacter(ctx, 5))

	for i := 0; i < 3; i++ {
		require.NoError(t, l.SetDraftOpponent(ctx, 10+i))
		require.NoError(t, l.SetDraftResult(ctx, models.ResultLoss))
	}

	got := orders(l.Matches())
	assert.Equal(t, []int{1, 2, 3}, got)

	seen := make(map[int]bool)
	for _, o := range got {
		assert.False(t, seen[o], "orders must be pairwise distinct")
		seen[o] = true
	}
}

func TestMainCharacterReseedsEachDraft(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	l := NewSessionLedger(store, NewMemoryPreferences(), nil, 1)

	require.NoError(t, l.SetMainCharacter(ctx, 5))
	require.NoError(t, l.SetDraftOpponent(ctx, 9))
	require.NoError(t, l.SetDraftResult(ctx, models.ResultWin))

	d := l.Draft()
	if assert.NotNil(t, d.CharacterID, "fresh draft is pre-seeded with the main character") {
		assert.Equal(t, 5, *d.CharacterID)
	}
	assert.Nil(t, d.OpponentCharacterID)
	assert.Empty(t, d.Result)
}

func TestFailedCreateKeepsDraftForRetry(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	notifier := &recordingNotifier{}
	l := NewSessionLedger(store, NewMemoryPreferences(), notifier, 1)

	require.NoError(t, l.SetDraftSelf(ctx, 1))
	require.NoError(t, l.SetDraftOpponent(ctx, 2))

	store.failCreate = errors.New("store unavailable")
	err := l.SetDraftResult(ctx, models.ResultWin)
	require.Error(t, err)
	assert.Empty(t, l.Matches(), "no optimistic append on failure")
	assert.Equal(t, DraftReadyToCommit, l.Draft().State(), "draft survives for retry")
	require.Len(t, notifier.notices, 1)
	assert.Equal(t, NoticeError, notifier.notices[0].level)

	// same action retried succeeds
	store.failCreate = nil
	require.NoError(t, l.SetDraftResult(ctx, models.ResultWin))
	assert.Len(t, store.createCalls, 2)
	assert.Equal(t, []int{1}, orders(l.Matches()))
	assert.Equal(t, DraftEmpty, l.Draft().State())
}

func TestDiscardDraftGuardsDirtyInput(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	l := NewSessionLedger(store, NewMemoryPreferences(), nil, 1)

	require.NoError(t, l.SetDraftSelf(ctx, 1))
	assert.NoError(t, l.DiscardDraft(false), "character picks alone discard freely")

	require.NoError(t, l.SetDraftResult(ctx, models.ResultWin))
	assert.ErrorIs(t, l.DiscardDraft(false), ErrDraftDirty)

	require.NoError(t, l.DiscardDraft(true))
	assert.Equal(t, DraftEmpty, l.Draft().State())
	assert.Empty(t, store.createCalls, "discard never talks to the store")
}

func TestDeleteMatchNeverRenumbers(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.seed(1, 3, 7, models.ResultWin)
	m2 := store.seed(1, 3, 8, models.ResultLoss)
	store.seed(1, 3, 9, models.ResultWin)

	l := NewSessionLedger(store, NewMemoryPreferences(), nil, 1)
	require.NoError(t, l.Load(ctx))
	assert.Equal(t, []int{1, 2, 3}, orders(l.Matches()))

	require.NoError(t, l.DeleteMatch(ctx, m2.ID))
	assert.Equal(t, []int{1, 3}, orders(l.Matches()), "surviving orders keep their values")
	assert.Equal(t, models.SessionStats{MatchCount: 2, Wins: 2}, l.Stats())

	// the next commit goes past the gap, not into it
	require.NoError(t, l.SetDraftSelf(ctx, 3))
	require.NoError(t, l.SetDraftOpponent(ctx, 9))
	require.NoError(t, l.SetDraftResult(ctx, models.ResultLoss))
	assert.Equal(t, []int{1, 3, 4}, orders(l.Matches()))
}

func TestPatchRollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	m := store.seed(1, 3, 7, models.ResultWin)
	notifier := &recordingNotifier{}

	l := NewSessionLedger(store, NewMemoryPreferences(), notifier, 1)
	require.NoError(t, l.Load(ctx))

	store.failUpdate = errors.New("store unavailable")
	err := l.SetMatchResult(ctx, m.ID, models.ResultLoss)
	require.Error(t, err)

	cached := l.Matches()[0]
	assert.Equal(t, models.ResultWin, cached.Result, "optimistic flip rolled back")
	assert.Equal(t, models.SessionStats{MatchCount: 1, Wins: 1}, l.Stats())
	require.Len(t, notifier.notices, 1)
	assert.Equal(t, NoticeError, notifier.notices[0].level)
}

func TestPatchMergesAuthoritativeEcho(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	m := store.seed(1, 3, 7, models.ResultWin)

	l := NewSessionLedger(store, NewMemoryPreferences(), nil, 1)
	require.NoError(t, l.Load(ctx))

	require.NoError(t, l.SetMatchOpponent(ctx, m.ID, 12))
	cached := l.Matches()[0]
	assert.Equal(t, 12, cached.OpponentCharacterID)
	assert.Equal(t, "fighter-12", cached.OpponentCharacterName, "name comes from the echoed record")
}

func TestPatchNotFoundEvictsEntry(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	m1 := store.seed(1, 3, 7, models.ResultWin)
	m2 := store.seed(1, 3, 8, models.ResultLoss)

	l := NewSessionLedger(store, NewMemoryPreferences(), nil, 1)
	require.NoError(t, l.Load(ctx))

	// another actor deletes m1 behind our back
	delete(store.matches, m1.ID)

	err := l.SetMatchComment(ctx, m1.ID, "遅延が酷い")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, []int{m2.ID}, []int{l.Matches()[0].ID})
	assert.Equal(t, models.SessionStats{MatchCount: 1, Losses: 1}, l.Stats())
}

func TestBulkDeleteClearsSelectionAndReloads(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	m1 := store.seed(1, 3, 7, models.ResultWin)
	m2 := store.seed(1, 3, 8, models.ResultLoss)
	m3 := store.seed(1, 3, 9, models.ResultWin)
	m4 := store.seed(1, 3, 10, models.ResultLoss)

	l := NewSessionLedger(store, NewMemoryPreferences(), nil, 1)
	require.NoError(t, l.Load(ctx))

	// shift-select rows 1..2 (m2, m3)
	l.ToggleSelect(m2.ID, 1, false, false)
	l.ToggleSelect(m3.ID, 2, true, false)
	assert.Equal(t, []int{m2.ID, m3.ID}, l.SelectedIDs())

	require.NoError(t, l.BulkDelete(ctx))
	assert.Empty(t, l.SelectedIDs())
	assert.Equal(t, []int{m1.ID, m4.ID}, []int{l.Matches()[0].ID, l.Matches()[1].ID})
	assert.Equal(t, []int{1, 4}, orders(l.Matches()))
}

func TestBulkDeletePartialFailureDeletesTheRest(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	m1 := store.seed(1, 3, 7, models.ResultWin)
	m2 := store.seed(1, 3, 8, models.ResultLoss)
	notifier := &recordingNotifier{}

	l := NewSessionLedger(store, NewMemoryPreferences(), notifier, 1)
	require.NoError(t, l.Load(ctx))

	store.failDelete[m1.ID] = errors.New("store unavailable")
	l.ToggleSelect(m1.ID, 0, false, false)
	l.ToggleSelect(m2.ID, 1, false, true)

	err := l.BulkDelete(ctx)
	require.Error(t, err)
	assert.Empty(t, l.SelectedIDs(), "selection clears even on partial failure")
	// the failed row survives the reload, the other is gone
	require.Len(t, l.Matches(), 1)
	assert.Equal(t, m1.ID, l.Matches()[0].ID)
	assert.NotEmpty(t, notifier.notices)
}

func TestReloadIntersectsSelectionWithLiveIDs(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	m1 := store.seed(1, 3, 7, models.ResultWin)
	m2 := store.seed(1, 3, 8, models.ResultLoss)

	l := NewSessionLedger(store, NewMemoryPreferences(), nil, 1)
	require.NoError(t, l.Load(ctx))

	l.ToggleSelect(m1.ID, 0, false, false)
	l.ToggleSelect(m2.ID, 1, false, false)

	delete(store.matches, m2.ID)
	require.NoError(t, l.Load(ctx))

	assert.Equal(t, []int{m1.ID}, l.SelectedIDs(), "dangling id dropped on reload")
}
