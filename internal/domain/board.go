package domain

import "time"

// BoardKeys is the three-tier credential set bound to one board. Keys are
// generated once at creation time and returned to the caller exactly once,
// in the create-board response.
type BoardKeys struct {
	Read   string `json:"read"`
	Submit string `json:"submit"`
	Admin  string `json:"admin"`
}

// Board represents a boards row. Name is the external lookup key; ID is
// internal and never exposed over the API.
type Board struct {
	ID        int64
	Name      string
	Keys      BoardKeys
	CreatedAt time.Time
}

// ScoreRecord is one player's entry on a board. ExtraInfo is free-form and
// serializes as null when absent.
type ScoreRecord struct {
	Player    string  `json:"player"`
	Score     int32   `json:"score"`
	ExtraInfo *string `json:"extra_info"`
}
