package models_test

import (
	"path/filepath"
	"testing"

	"deck-of-cards-go/internal/database"
	"deck-of-cards-go/internal/models"
)

func TestDeckEvents_InsertAndList(t *testing.T) {
	db, err := database.OpenAndMigrate(filepath.Join(t.TempDir(), "deck.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	if err := models.InsertDeckEvent(db, models.DeckEvent{EventType: "shuffle", DeckSize: 55}); err != nil {
		t.Fatalf("insert shuffle: %v", err)
	}
	card := "Ace of Hearts"
	if err := models.InsertDeckEvent(db, models.DeckEvent{EventType: "draw", Card: &card, DeckSize: 54}); err != nil {
		t.Fatalf("insert draw: %v", err)
	}

	events, err := models.ListDeckEvents(db, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	// Newest first.
	if events[0].EventType != "draw" {
		t.Fatalf("first event = %q, want draw", events[0].EventType)
	}
	if events[0].Card == nil || *events[0].Card != card {
		t.Fatalf("draw event card = %v, want %q", events[0].Card, card)
	}
	if events[1].EventType != "shuffle" || events[1].Card != nil {
		t.Fatalf("second event = %+v, want shuffle without card", events[1])
	}

	limited, err := models.ListDeckEvents(db, 1)
	if err != nil {
		t.Fatalf("list limit 1: %v", err)
	}
	if len(limited) != 1 || limited[0].EventType != "draw" {
		t.Fatalf("limited list = %+v", limited)
	}
}
