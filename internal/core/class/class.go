package class

import "time"

// TeacherRef is the head-teacher shown alongside a class.
type TeacherRef struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Class represents a school class ("10A") and its optional Discord binding.
//
// Key is the secret that authenticates the guild-initialization handshake. It
// is generated once at creation and only ever disclosed through the admin-only
// key endpoint, hence the JSON omission.
type Class struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	GuildID   *string     `json:"guild_id"`
	Key       string      `json:"-"`
	Teacher   *TeacherRef `json:"teacher,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

// Initialized reports whether the class is bound to a Discord guild.
func (c *Class) Initialized() bool {
	return c.GuildID != nil && *c.GuildID != ""
}
