package models

import "time"

// MatchResult is the binary outcome of a match.
type MatchResult string

const (
	ResultWin  MatchResult = "win"
	ResultLoss MatchResult = "loss"
)

// Valid reports whether r is one of the two known outcomes.
func (r MatchResult) Valid() bool {
	return r == ResultWin || r == ResultLoss
}

// Match records a single game within a session.
//
// MatchOrder is the per-session entry position. It is assigned once at
// creation (max existing order + 1) and never renumbered afterwards, so
// deletions leave gaps. The composite unique index turns a concurrent
// double-allocation into a retryable conflict instead of a silent duplicate.
type Match struct {
	ID                  int         `json:"id" gorm:"primaryKey"`
	SessionID           int         `json:"session_id" gorm:"not null;uniqueIndex:idx_session_match_order,priority:1"`
	CharacterID         int         `json:"character_id" gorm:"not null"`
	OpponentCharacterID int         `json:"opponent_character_id" gorm:"not null"`
	Result              MatchResult `json:"result" gorm:"type:varchar(10);not null;check:result IN ('win','loss')"`
	MatchOrder          int         `json:"match_order" gorm:"not null;uniqueIndex:idx_session_match_order,priority:2"`
	Comment             *string     `json:"comment,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
