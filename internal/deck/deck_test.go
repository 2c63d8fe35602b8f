package deck_test

import (
	"sync"
	"testing"

	"deck-of-cards-go/internal/deck"
)

func joker() deck.Card {
	return deck.Card{Number: deck.NumberJoker, Suit: deck.SuitJoker}
}

func TestReset_CanonicalDeck(t *testing.T) {
	d := &deck.Deck{}
	cards := d.Reset()

	if len(cards) != 55 {
		t.Fatalf("reset deck has %d cards, want 55", len(cards))
	}
	if cards[0] != (deck.Card{Number: deck.Ace, Suit: deck.Heart}) {
		t.Fatalf("first card is %v, want Ace of Hearts", cards[0])
	}

	seen := map[deck.Card]int{}
	for _, c := range cards {
		seen[c]++
	}
	if seen[joker()] != 3 {
		t.Fatalf("reset deck has %d jokers, want 3", seen[joker()])
	}
	if len(seen) != 53 {
		t.Fatalf("reset deck has %d distinct cards, want 52 + joker", len(seen))
	}
	for c, n := range seen {
		if c != joker() && n != 1 {
			t.Fatalf("card %v appears %d times, want 1", c, n)
		}
	}

	// Number-major order: suits cycle fastest.
	i := 0
	for n := deck.Ace; n <= deck.King; n++ {
		for s := deck.Heart; s <= deck.Spade; s++ {
			if cards[i] != (deck.Card{Number: n, Suit: s}) {
				t.Fatalf("card %d is %v, want %v %v", i, cards[i], n, s)
			}
			i++
		}
	}
}

func TestShuffle_IsPermutation(t *testing.T) {
	d := &deck.Deck{}
	before := d.Reset()
	after := d.Shuffle()

	if len(after) != len(before) {
		t.Fatalf("shuffle changed size: %d -> %d", len(before), len(after))
	}

	count := func(cards []deck.Card) map[deck.Card]int {
		m := map[deck.Card]int{}
		for _, c := range cards {
			m[c]++
		}
		return m
	}
	b, a := count(before), count(after)
	for c, n := range b {
		if a[c] != n {
			t.Fatalf("card %v count changed: %d -> %d", c, n, a[c])
		}
	}
}

func TestShuffle_EmptyDeckRepopulates(t *testing.T) {
	d := &deck.Deck{}
	cards := d.Shuffle()
	if len(cards) != 55 {
		t.Fatalf("shuffle on empty deck yields %d cards, want 55", len(cards))
	}
}

func TestPeeks_EmptyDeck(t *testing.T) {
	d := &deck.Deck{}
	if _, ok := d.NextCard(); ok {
		t.Fatal("NextCard on empty deck should report no card")
	}
	if _, ok := d.RandomCard(); ok {
		t.Fatal("RandomCard on empty deck should report no card")
	}
	if d.Count() != 0 {
		t.Fatalf("empty deck count = %d", d.Count())
	}
}

func TestNextCard_DoesNotMutate(t *testing.T) {
	d := &deck.Deck{}
	d.Reset()
	c, ok := d.NextCard()
	if !ok {
		t.Fatal("expected a card")
	}
	if c != (deck.Card{Number: deck.Ace, Suit: deck.Heart}) {
		t.Fatalf("next card is %v, want Ace of Hearts", c)
	}
	if d.Count() != 55 {
		t.Fatalf("peek changed count to %d", d.Count())
	}
}

func TestDrawNext_RemovesFront(t *testing.T) {
	d := &deck.Deck{}
	d.Reset()

	c, ok := d.DrawNext()
	if !ok {
		t.Fatal("expected a card")
	}
	if c != (deck.Card{Number: deck.Ace, Suit: deck.Heart}) {
		t.Fatalf("drew %v, want Ace of Hearts", c)
	}
	if d.Count() != 54 {
		t.Fatalf("count after draw = %d, want 54", d.Count())
	}
	if _, found := d.Find(c.Number, c.Suit); found {
		t.Fatalf("drawn card %v still in deck", c)
	}
}

func TestDrawRandom_ShrinksByOne(t *testing.T) {
	d := &deck.Deck{}
	d.Reset()
	c, ok := d.DrawRandom()
	if !ok {
		t.Fatal("expected a card")
	}
	if !c.IsValid() {
		t.Fatalf("drew invalid card %v", c)
	}
	if d.Count() != 54 {
		t.Fatalf("count after draw = %d, want 54", d.Count())
	}
}

func TestRemoveCard_NotPresent(t *testing.T) {
	d := &deck.Deck{}
	d.Reset()
	d.RemoveCard(deck.Card{Number: deck.Ace, Suit: deck.Heart})

	if d.RemoveCard(deck.Card{Number: deck.Ace, Suit: deck.Heart}) {
		t.Fatal("second removal of the same card should return false")
	}
	if d.Count() != 54 {
		t.Fatalf("failed removal changed count to %d", d.Count())
	}
}

func TestAddCard_Unconditional(t *testing.T) {
	d := &deck.Deck{}
	d.Reset()
	d.AddCard(deck.Card{Number: deck.Ace, Suit: deck.Heart})
	if d.Count() != 56 {
		t.Fatalf("AddCard should append even duplicates, count = %d", d.Count())
	}
}

func TestInsert_Policy(t *testing.T) {
	d := &deck.Deck{}
	d.Reset()

	// Duplicate non-joker rejected.
	if err := d.Insert(deck.Card{Number: deck.Ace, Suit: deck.Heart}); err != deck.ErrDuplicateCard {
		t.Fatalf("duplicate insert err = %v, want ErrDuplicateCard", err)
	}
	if d.Count() != 55 {
		t.Fatalf("rejected insert changed count to %d", d.Count())
	}

	// Fourth joker rejected.
	if err := d.Insert(joker()); err != deck.ErrJokerLimit {
		t.Fatalf("fourth joker err = %v, want ErrJokerLimit", err)
	}

	// Third joker accepted when only two present.
	if !d.RemoveCard(joker()) {
		t.Fatal("expected to remove a joker")
	}
	if err := d.Insert(joker()); err != nil {
		t.Fatalf("third joker insert err = %v", err)
	}
	if d.Count() != 55 {
		t.Fatalf("count after joker round-trip = %d, want 55", d.Count())
	}

	// Drawn card can come back.
	c, _ := d.DrawNext()
	if err := d.Insert(c); err != nil {
		t.Fatalf("re-insert of drawn card err = %v", err)
	}
}

func TestDeck_ConcurrentDraws(t *testing.T) {
	d := &deck.Deck{}
	d.Reset()

	const goroutines = 10
	var wg sync.WaitGroup
	wg.Add(goroutines)
	drawn := make(chan deck.Card, 55)

	for g := 0; g < goroutines; g++ {
		go func() {
			defer wg.Done()
			for {
				c, ok := d.DrawRandom()
				if !ok {
					return
				}
				drawn <- c
			}
		}()
	}
	wg.Wait()
	close(drawn)

	counts := map[deck.Card]int{}
	total := 0
	for c := range drawn {
		counts[c]++
		total++
	}
	if total != 55 {
		t.Fatalf("concurrent draws yielded %d cards, want 55", total)
	}
	if counts[joker()] != 3 {
		t.Fatalf("drew %d jokers, want 3", counts[joker()])
	}
	for c, n := range counts {
		if c != joker() && n != 1 {
			t.Fatalf("card %v drawn %d times", c, n)
		}
	}
	if d.Count() != 0 {
		t.Fatalf("deck not empty after draining: %d", d.Count())
	}
}
