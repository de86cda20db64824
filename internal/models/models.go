package models

import "time"

// Item is a single todo entry joined with its category names for display.
type Item struct {
	ID          int64      `db:"id"`
	UserID      string     `db:"user_id"`
	Title       string     `db:"title"`
	Place       *string    `db:"place"` // nil -> not set
	Done        bool       `db:"done"`
	CompletedAt *time.Time `db:"completed_date"` // nil unless done
	Category    string     `db:"category_name"`
	SubCategory string     `db:"sub_category_name"`
}

// EventType tags inbound platform events.
type EventType int

const (
	EventUnknown EventType = iota
	EventMessage
	EventFollow // new subscriber (/start)
)

// Event is a platform-neutral inbound event. Text is nil for message
// events that carry no text payload (stickers, photos, ...).
type Event struct {
	Type   EventType
	UserID string
	Text   *string
}
