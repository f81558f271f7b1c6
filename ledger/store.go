// Package ledger implements the client side of the match ledger: the draft
// entry state machine, multi-row selection, grid keyboard navigation, and the
// reconciliation of the locally cached match list against the authoritative
// store after every mutation.
package ledger

import (
	"context"
	"errors"

	"github.com/ngtkana/senseki-db/models"
)

// ErrNotFound reports that the store no longer has the record — usually
// because another actor deleted it first. Store implementations must return
// it (wrapped is fine) for missing records so the ledger can evict its cache
// entry instead of rolling back.
var ErrNotFound = errors.New("record not found")

// RecordStore is the persistence collaborator. The HTTP client in package
// client implements it against the API server; tests swap in fakes.
type RecordStore interface {
	CreateMatch(ctx context.Context, req models.CreateMatchRequest) (*models.MatchResponse, error)
	ListMatches(ctx context.Context, sessionID int) ([]models.MatchResponse, error)
	UpdateMatch(ctx context.Context, matchID int, req models.UpdateMatchRequest) (*models.MatchResponse, error)
	DeleteMatch(ctx context.Context, matchID int) error

	ListSessions(ctx context.Context) ([]models.SessionResponse, error)
	ListCharacters(ctx context.Context) ([]models.CharacterResponse, error)

	CreateGSPRecord(ctx context.Context, req models.CreateGSPRecordRequest) (*models.GSPRecordResponse, error)
	ListGSPRecords(ctx context.Context, sessionID int) ([]models.GSPRecordResponse, error)
}
