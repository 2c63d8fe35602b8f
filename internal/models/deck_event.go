package models

import (
	"database/sql"
	"time"
)

// DeckEvent is one journaled mutation of the deck. The journal is an audit
// trail only; deck state is never rebuilt from it.
type DeckEvent struct {
	ID        int64     `json:"id"`
	EventType string    `json:"event_type"` // shuffle|reset|draw|insert
	Card      *string   `json:"card,omitempty"`
	DeckSize  int64     `json:"deck_size"`
	CreatedAt time.Time `json:"created_at"`
}

func InsertDeckEvent(db *sql.DB, e DeckEvent) error {
	_, err := db.Exec(
		`INSERT INTO deck_events(event_type, card, deck_size) VALUES (?, ?, ?)`,
		e.EventType, e.Card, e.DeckSize,
	)
	return err
}

// ListDeckEvents returns the most recent events, newest first.
func ListDeckEvents(db *sql.DB, limit int64) ([]DeckEvent, error) {
	rows, err := db.Query(
		`SELECT id, event_type, card, deck_size, created_at FROM deck_events ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []DeckEvent{}
	for rows.Next() {
		var e DeckEvent
		var card sql.NullString
		if err := rows.Scan(&e.ID, &e.EventType, &card, &e.DeckSize, &e.CreatedAt); err != nil {
			return nil, err
		}
		if card.Valid {
			e.Card = &card.String
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
