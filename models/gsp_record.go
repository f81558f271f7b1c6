package models

import "time"

// GSPRecord is a ranked-score (Global Smash Power) reading taken at some
// point in a session, keyed by the match order it was observed after.
type GSPRecord struct {
	ID         int     `json:"id" gorm:"primaryKey"`
	SessionID  int     `json:"session_id" gorm:"not null;index:idx_gsp_records_session_order,priority:1"`
	MatchOrder int     `json:"match_order" gorm:"not null;index:idx_gsp_records_session_order,priority:2"`
	GSP        int     `json:"gsp" gorm:"not null"`
	Note       *string `json:"note,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
