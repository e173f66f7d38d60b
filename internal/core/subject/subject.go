package subject

import "time"

// Subject represents a school subject ("Math"). Many-to-many with classes
// through the enrollment join table.
type Subject struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ClassRef is a class row as seen from a subject's class listing.
type ClassRef struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	GuildID *string `json:"guild_id"`
}
