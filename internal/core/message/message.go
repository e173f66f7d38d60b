// Package message implements the per-enrollment message feed: announcements a
// subject teacher posts into a class's subject channel.
package message

import "time"

// Message is immutable once created except for deletion.
type Message struct {
	ID             string    `json:"id"`
	ClassSubjectID string    `json:"-"`
	AuthorID       string    `json:"author_id"`
	AuthorName     string    `json:"author"`
	Title          string    `json:"title"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"created_at"`
}
