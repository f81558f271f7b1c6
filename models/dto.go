package models

// Request/response shapes of the JSON API. The ledger engine caches the
// response types as-is, so they double as its local record representation.

// DateLayout is the wire format of session dates.
const DateLayout = "2006-01-02"

type CharacterResponse struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	NameEn     string `json:"name_en"`
	FighterKey string `json:"fighter_key"`
}

type CreateSessionRequest struct {
	SessionDate string  `json:"session_date"`
	Title       *string `json:"title,omitempty"`
	Notes       *string `json:"notes,omitempty"`
	StartGSP    *int    `json:"start_gsp,omitempty"`
	EndGSP      *int    `json:"end_gsp,omitempty"`
}

// UpdateSessionRequest carries only the fields to change; nil means "leave
// as is".
type UpdateSessionRequest struct {
	SessionDate *string `json:"session_date,omitempty"`
	Title       *string `json:"title,omitempty"`
	Notes       *string `json:"notes,omitempty"`
	StartGSP    *int    `json:"start_gsp,omitempty"`
	EndGSP      *int    `json:"end_gsp,omitempty"`
}

type SessionResponse struct {
	ID          int     `json:"id"`
	SessionDate string  `json:"session_date"`
	Title       *string `json:"title,omitempty"`
	Notes       *string `json:"notes,omitempty"`
	StartGSP    *int    `json:"start_gsp,omitempty"`
	EndGSP      *int    `json:"end_gsp,omitempty"`

	SessionStats
}

type CreateMatchRequest struct {
	SessionID           int         `json:"session_id"`
	CharacterID         int         `json:"character_id"`
	OpponentCharacterID int         `json:"opponent_character_id"`
	Result              MatchResult `json:"result"`
	Comment             *string     `json:"comment,omitempty"`
}

// UpdateMatchRequest is a field-level patch; nil fields stay untouched.
// SessionID and MatchOrder are immutable and deliberately absent.
type UpdateMatchRequest struct {
	CharacterID         *int         `json:"character_id,omitempty"`
	OpponentCharacterID *int         `json:"opponent_character_id,omitempty"`
	Result              *MatchResult `json:"result,omitempty"`
	Comment             *string      `json:"comment,omitempty"`
}

type MatchResponse struct {
	ID                    int         `json:"id"`
	SessionID             int         `json:"session_id"`
	CharacterID           int         `json:"character_id"`
	OpponentCharacterID   int         `json:"opponent_character_id"`
	CharacterName         string      `json:"character_name"`
	OpponentCharacterName string      `json:"opponent_character_name"`
	Result                MatchResult `json:"result"`
	MatchOrder            int         `json:"match_order"`
	Comment               *string     `json:"comment,omitempty"`
}

type CreateGSPRecordRequest struct {
	SessionID  int     `json:"session_id"`
	MatchOrder int     `json:"match_order"`
	GSP        int     `json:"gsp"`
	Note       *string `json:"note,omitempty"`
}

type GSPRecordResponse struct {
	ID         int     `json:"id"`
	SessionID  int     `json:"session_id"`
	MatchOrder int     `json:"match_order"`
	GSP        int     `json:"gsp"`
	Note       *string `json:"note,omitempty"`
}
