package deck

import (
	"crypto/rand"
	"errors"
	"math/big"
	"sync"
	"time"
)

const (
	// JokerCount is both the number of jokers in a fresh deck and the cap
	// enforced by Insert.
	JokerCount = 3

	standardSize = 13*4 + JokerCount
)

var (
	ErrDuplicateCard = errors.New("card already in deck")
	ErrJokerLimit    = errors.New("joker limit reached")
)

// Deck is the single shared mutable deck. All operations take the internal
// lock, so each logical operation (peek, draw, insert, shuffle, reset) is
// serializable with respect to concurrent callers.
type Deck struct {
	mu    sync.Mutex
	cards []Card
}

// New builds the canonical 55-card deck and gives it an initial shuffle.
// The instance is meant to live for the whole process.
func New() *Deck {
	d := &Deck{}
	d.Reset()
	d.Shuffle()
	return d
}

// Cards returns a copy of the current sequence, front first.
func (d *Deck) Cards() []Card {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snapshotLocked()
}

func (d *Deck) Count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.cards)
}

// NextCard peeks at the front card without removing it. The second return is
// false when the deck is empty.
func (d *Deck) NextCard() (Card, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.cards) == 0 {
		return Card{}, false
	}
	return d.cards[0], true
}

// RandomCard peeks at a uniformly random card without removing it.
func (d *Deck) RandomCard() (Card, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.cards) == 0 {
		return Card{}, false
	}
	return d.cards[randIntn(len(d.cards))], true
}

// Find returns the first card matching (number, suit), non-mutating.
func (d *Deck) Find(n CardNumber, s CardSuit) (Card, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	i := d.indexOfLocked(Card{Number: n, Suit: s})
	if i < 0 {
		return Card{}, false
	}
	return d.cards[i], true
}

// RemoveCard removes the first occurrence structurally equal to c. Removing a
// card that is not present is a no-op returning false.
func (d *Deck) RemoveCard(c Card) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.removeLocked(c)
}

// AddCard appends c unconditionally. It performs no policy checks and cannot
// fail; callers that need the insertion policy use Insert.
func (d *Deck) AddCard(c Card) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cards = append(d.cards, c)
}

// Insert appends c subject to the insertion policy: non-joker cards must not
// already be present, and at most JokerCount jokers may coexist. The check and
// the append happen under one lock acquisition so concurrent inserts cannot
// both pass the check.
func (d *Deck) Insert(c Card) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if c.IsJoker() {
		if d.jokersLocked() >= JokerCount {
			return ErrJokerLimit
		}
	} else if d.indexOfLocked(c) >= 0 {
		return ErrDuplicateCard
	}
	d.cards = append(d.cards, c)
	return nil
}

// DrawNext removes and returns the front card. An empty deck is a defined
// "no card" outcome, not an error.
func (d *Deck) DrawNext() (Card, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.cards) == 0 {
		return Card{}, false
	}
	c := d.cards[0]
	d.removeLocked(c)
	return c, true
}

// DrawRandom removes and returns a uniformly random card.
func (d *Deck) DrawRandom() (Card, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.cards) == 0 {
		return Card{}, false
	}
	c := d.cards[randIntn(len(d.cards))]
	d.removeLocked(c)
	return c, true
}

// Reset discards the current contents and rebuilds the canonical unshuffled
// deck: Ace..King outer, Heart..Spade inner, then the joker triplet. Returns
// the new sequence.
func (d *Deck) Reset() []Card {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cards = newCanonical()
	return d.snapshotLocked()
}

// Shuffle permutes the deck in place with a crypto/rand Fisher–Yates, giving
// each call an independently random permutation. An empty deck is rebuilt to
// the canonical 55 cards first. Returns the new sequence.
// If crypto/rand fails we fall back to a time-seeded shuffle as a last resort.
func (d *Deck) Shuffle() []Card {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.cards) == 0 {
		d.cards = newCanonical()
	}
	for i := len(d.cards) - 1; i > 0; i-- {
		nBig, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			d.fallbackShuffleLocked()
			return d.snapshotLocked()
		}
		j := int(nBig.Int64())
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
	return d.snapshotLocked()
}

func newCanonical() []Card {
	cards := make([]Card, 0, standardSize)
	for n := Ace; n <= King; n++ {
		for s := Heart; s <= Spade; s++ {
			cards = append(cards, Card{Number: n, Suit: s})
		}
	}
	for i := 0; i < JokerCount; i++ {
		cards = append(cards, Card{Number: NumberJoker, Suit: SuitJoker})
	}
	return cards
}

func (d *Deck) snapshotLocked() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}

func (d *Deck) indexOfLocked(c Card) int {
	for i, have := range d.cards {
		if have == c {
			return i
		}
	}
	return -1
}

func (d *Deck) removeLocked(c Card) bool {
	i := d.indexOfLocked(c)
	if i < 0 {
		return false
	}
	d.cards = append(d.cards[:i], d.cards[i+1:]...)
	return true
}

func (d *Deck) jokersLocked() int {
	n := 0
	for _, c := range d.cards {
		if c.IsJoker() {
			n++
		}
	}
	return n
}

func randIntn(n int) int {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// Predictable, used only if crypto/rand fails.
		return int(time.Now().UnixNano() % int64(n))
	}
	return int(nBig.Int64())
}

func (d *Deck) fallbackShuffleLocked() {
	seed := time.Now().UnixNano()
	for i := len(d.cards) - 1; i > 0; i-- {
		seed = (seed*6364136223846793005 + 1) & 0x7fffffffffffffff
		j := int(seed % int64(i+1))
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}
