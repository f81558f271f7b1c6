package models

import "time"

// Session is one play session (one calendar day, usually). It owns its
// matches and GSP records; deleting a session cascades to both.
type Session struct {
	ID          int       `json:"id" gorm:"primaryKey"`
	SessionDate time.Time `json:"session_date" gorm:"type:date;not null"`
	Title       *string   `json:"title,omitempty"`
	Notes       *string   `json:"notes,omitempty"`

	// Ranked-score bookends for the session (optional)
	StartGSP *int `json:"start_gsp,omitempty"`
	EndGSP   *int `json:"end_gsp,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Matches    []Match     `json:"-" gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
	GSPRecords []GSPRecord `json:"-" gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
}
