package deck

import "fmt"

// CardNumber is the rank of a card. The zero value is the joker rank so that
// Card's zero value is a joker.
type CardNumber int

const (
	NumberJoker CardNumber = iota
	Ace
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

type CardSuit int

const (
	SuitJoker CardSuit = iota
	Heart
	Diamond
	Club
	Spade
)

var numberNames = []string{"Joker", "Ace", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine", "Ten", "Jack", "Queen", "King"}

var suitNames = []string{"Joker", "Heart", "Diamond", "Club", "Spade"}

func (n CardNumber) String() string {
	if n < NumberJoker || n > King {
		return fmt.Sprintf("CardNumber(%d)", int(n))
	}
	return numberNames[n]
}

func (s CardSuit) String() string {
	if s < SuitJoker || s > Spade {
		return fmt.Sprintf("CardSuit(%d)", int(s))
	}
	return suitNames[s]
}

// Card is an immutable (number, suit) pair. Equality is structural, so Card
// values can be compared with == and used as map keys.
type Card struct {
	Number CardNumber `json:"number"`
	Suit   CardSuit   `json:"suit"`
}

// IsValid reports whether both fields are inside their enumeration bounds.
// Jokers count as valid.
func (c Card) IsValid() bool {
	return c.Number >= NumberJoker && c.Number <= King &&
		c.Suit >= SuitJoker && c.Suit <= Spade
}

// IsJoker reports whether the card renders as a joker. Either field being the
// joker ordinal makes the whole card a joker.
func (c Card) IsJoker() bool {
	return c.Number == NumberJoker || c.Suit == SuitJoker
}

// String renders the canonical text. Out-of-range fields degrade to
// "Illegal card" rather than failing; there is no error path here.
func (c Card) String() string {
	if c.IsJoker() {
		return "Joker"
	}
	if c.Number < Ace || c.Number > King || c.Suit < Heart || c.Suit > Spade {
		return "Illegal card"
	}
	return numberNames[c.Number] + " of " + suitNames[c.Suit] + "s"
}
