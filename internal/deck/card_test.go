package deck_test

import (
	"testing"

	"deck-of-cards-go/internal/deck"
)

func TestCard_String_ProperCards(t *testing.T) {
	cases := []struct {
		card deck.Card
		want string
	}{
		{deck.Card{Number: deck.Ace, Suit: deck.Heart}, "Ace of Hearts"},
		{deck.Card{Number: deck.Two, Suit: deck.Diamond}, "Two of Diamonds"},
		{deck.Card{Number: deck.Ten, Suit: deck.Club}, "Ten of Clubs"},
		{deck.Card{Number: deck.Jack, Suit: deck.Spade}, "Jack of Spades"},
		{deck.Card{Number: deck.Queen, Suit: deck.Heart}, "Queen of Hearts"},
		{deck.Card{Number: deck.King, Suit: deck.Spade}, "King of Spades"},
	}
	for _, tc := range cases {
		if got := tc.card.String(); got != tc.want {
			t.Fatalf("String() = %q, want %q", got, tc.want)
		}
	}
}

func TestCard_String_Jokers(t *testing.T) {
	cases := []deck.Card{
		{Number: deck.NumberJoker, Suit: deck.SuitJoker},
		{Number: deck.NumberJoker, Suit: deck.Spade},
		{Number: deck.King, Suit: deck.SuitJoker},
	}
	for _, c := range cases {
		if got := c.String(); got != "Joker" {
			t.Fatalf("String() for %+v = %q, want Joker", c, got)
		}
	}
}

func TestCard_String_Illegal(t *testing.T) {
	cases := []deck.Card{
		{Number: 14, Suit: deck.Heart},
		{Number: deck.Ace, Suit: 5},
		{Number: -1, Suit: deck.Heart},
		{Number: deck.Ace, Suit: -2},
	}
	for _, c := range cases {
		if got := c.String(); got != "Illegal card" {
			t.Fatalf("String() for %+v = %q, want Illegal card", c, got)
		}
	}
}

func TestCard_IsValid(t *testing.T) {
	valid := []deck.Card{
		{Number: deck.NumberJoker, Suit: deck.SuitJoker},
		{Number: deck.Ace, Suit: deck.Heart},
		{Number: deck.King, Suit: deck.Spade},
	}
	for _, c := range valid {
		if !c.IsValid() {
			t.Fatalf("expected %+v to be valid", c)
		}
	}

	invalid := []deck.Card{
		{Number: 14, Suit: deck.Heart},
		{Number: -1, Suit: deck.Heart},
		{Number: deck.Ace, Suit: 5},
		{Number: deck.Ace, Suit: -1},
	}
	for _, c := range invalid {
		if c.IsValid() {
			t.Fatalf("expected %+v to be invalid", c)
		}
	}
}

func TestCard_StructuralEquality(t *testing.T) {
	a := deck.Card{Number: deck.Ace, Suit: deck.Heart}
	b := deck.Card{Number: deck.Ace, Suit: deck.Heart}
	if a != b {
		t.Fatal("identical cards should compare equal")
	}
	if a == (deck.Card{Number: deck.Ace, Suit: deck.Spade}) {
		t.Fatal("different suits should not compare equal")
	}
}
