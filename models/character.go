package models

import "time"

// Character is one fighter roster entry. The roster is seeded at startup and
// treated as read-only reference data everywhere else.
type Character struct {
	ID         int    `json:"id" gorm:"primaryKey"`
	Name       string `json:"name" gorm:"size:50;not null;uniqueIndex"`
	NameEn     string `json:"name_en" gorm:"size:50;not null"`
	FighterKey string `json:"fighter_key" gorm:"size:50;not null;uniqueIndex"` // asset lookup key, e.g. "mariod"

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
