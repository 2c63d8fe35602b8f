package handlers

import (
	"database/sql"
	"net/http"
	"strconv"

	"deck-of-cards-go/internal/deck"
	"deck-of-cards-go/internal/models"
	"deck-of-cards-go/internal/tracing"
	ws "deck-of-cards-go/pkg/websocket"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DeckAPI serves every operation on the single shared deck. The deck instance
// lives for the whole process; the journal db and event hub are optional
// collaborators (nil db / nil hub provider disables them, used in tests).
type DeckAPI struct {
	deck *deck.Deck
	db   *sql.DB
	hub  func() (*ws.Hub, bool)
	log  *zap.SugaredLogger
}

func NewDeckAPI(d *deck.Deck, db *sql.DB, hub func() (*ws.Hub, bool), log *zap.SugaredLogger) *DeckAPI {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &DeckAPI{deck: d, db: db, hub: hub, log: log}
}

type cardView struct {
	Number int    `json:"number"`
	Suit   int    `json:"suit"`
	Text   string `json:"text"`
}

func newCardView(c deck.Card) cardView {
	return cardView{Number: int(c.Number), Suit: int(c.Suit), Text: c.String()}
}

type deckView struct {
	Count int        `json:"count"`
	Cards []cardView `json:"cards"`
}

// envelope is the response shape shared by every deck endpoint: a
// human-readable message, the relevant card when there is one, and the deck's
// state after the operation.
type envelope struct {
	Message string    `json:"message"`
	Card    *cardView `json:"card,omitempty"`
	Deck    deckView  `json:"deck"`
}

func (a *DeckAPI) deckState() deckView {
	cards := a.deck.Cards()
	views := make([]cardView, len(cards))
	for i, c := range cards {
		views[i] = newCardView(c)
	}
	return deckView{Count: len(views), Cards: views}
}

type insertRequest struct {
	Number int `json:"number"`
	Suit   int `json:"suit"`
}

// GetDeck returns the full current sequence.
func (a *DeckAPI) GetDeck(c *gin.Context) {
	state := a.deckState()
	c.JSON(http.StatusOK, envelope{
		Message: strconv.Itoa(state.Count) + " cards in the deck.",
		Deck:    state,
	})
}

// PeekNext returns the front card without removing it.
func (a *DeckAPI) PeekNext(c *gin.Context) {
	card, ok := a.deck.NextCard()
	if !ok {
		a.emptyDeck(c)
		return
	}
	view := newCardView(card)
	c.JSON(http.StatusOK, envelope{
		Message: "The next card is the " + card.String() + ".",
		Card:    &view,
		Deck:    a.deckState(),
	})
}

// PeekRandom returns a uniformly random card without removing it.
func (a *DeckAPI) PeekRandom(c *gin.Context) {
	card, ok := a.deck.RandomCard()
	if !ok {
		a.emptyDeck(c)
		return
	}
	view := newCardView(card)
	c.JSON(http.StatusOK, envelope{
		Message: "Picked the " + card.String() + " at random.",
		Card:    &view,
		Deck:    a.deckState(),
	})
}

// DrawNext removes and returns the front card.
func (a *DeckAPI) DrawNext(c *gin.Context) {
	card, ok := a.deck.DrawNext()
	if !ok {
		a.emptyDeck(c)
		return
	}
	a.recordEvent("draw", &card)
	view := newCardView(card)
	c.JSON(http.StatusOK, envelope{
		Message: "Drew the " + card.String() + ".",
		Card:    &view,
		Deck:    a.deckState(),
	})
}

// DrawRandom removes and returns a uniformly random card.
func (a *DeckAPI) DrawRandom(c *gin.Context) {
	card, ok := a.deck.DrawRandom()
	if !ok {
		a.emptyDeck(c)
		return
	}
	a.recordEvent("draw", &card)
	view := newCardView(card)
	c.JSON(http.StatusOK, envelope{
		Message: "Drew the " + card.String() + " at random.",
		Card:    &view,
		Deck:    a.deckState(),
	})
}

// GetCard looks up a specific card by number and suit, non-mutating.
func (a *DeckAPI) GetCard(c *gin.Context) {
	number, err1 := strconv.Atoi(c.Query("number"))
	suit, err2 := strconv.Atoi(c.Query("suit"))
	if err1 != nil || err2 != nil {
		writeAPIError(c, models.ErrInvalidCard)
		return
	}
	want := deck.Card{Number: deck.CardNumber(number), Suit: deck.CardSuit(suit)}
	if !want.IsValid() {
		writeAPIError(c, models.ErrInvalidCard)
		return
	}

	card, ok := a.deck.Find(want.Number, want.Suit)
	if !ok {
		c.JSON(http.StatusNotFound, envelope{
			Message: "The " + want.String() + " is not in the deck.",
			Deck:    a.deckState(),
		})
		return
	}
	view := newCardView(card)
	c.JSON(http.StatusOK, envelope{
		Message: "The " + card.String() + " is in the deck.",
		Card:    &view,
		Deck:    a.deckState(),
	})
}

// InsertCard adds a card subject to the insertion policy: no duplicate
// non-joker cards, at most three jokers. Policy violations are semantic
// rejections (409), distinct from malformed requests (400).
func (a *DeckAPI) InsertCard(c *gin.Context) {
	var req insertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeAPIError(c, models.ErrInvalidJSON)
		return
	}
	card := deck.Card{Number: deck.CardNumber(req.Number), Suit: deck.CardSuit(req.Suit)}
	if !card.IsValid() {
		writeAPIError(c, models.ErrInvalidCard)
		return
	}

	if err := a.deck.Insert(card); err != nil {
		view := newCardView(card)
		c.JSON(http.StatusConflict, envelope{
			Message: "Rejected the " + card.String() + ": " + err.Error() + ".",
			Card:    &view,
			Deck:    a.deckState(),
		})
		return
	}
	a.recordEvent("insert", &card)
	view := newCardView(card)
	c.JSON(http.StatusOK, envelope{
		Message: "Added the " + card.String() + " to the deck.",
		Card:    &view,
		Deck:    a.deckState(),
	})
}

// Shuffle permutes the deck, rebuilding it first if empty.
func (a *DeckAPI) Shuffle(c *gin.Context) {
	_, span := tracing.StartSpan(c.Request.Context(), "deck.shuffle")
	a.deck.Shuffle()
	span.End()

	a.recordEvent("shuffle", nil)
	c.JSON(http.StatusOK, envelope{
		Message: "Deck shuffled.",
		Deck:    a.deckState(),
	})
}

// Reset rebuilds the canonical unshuffled 55-card deck.
func (a *DeckAPI) Reset(c *gin.Context) {
	a.deck.Reset()
	a.recordEvent("reset", nil)
	c.JSON(http.StatusOK, envelope{
		Message: "Deck reset.",
		Deck:    a.deckState(),
	})
}

// ListEvents returns the most recent journal entries, newest first.
func (a *DeckAPI) ListEvents(c *gin.Context) {
	if a.db == nil {
		c.JSON(http.StatusOK, gin.H{"events": []models.DeckEvent{}})
		return
	}
	limit := int64(50)
	if v := c.Query("limit"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		if n > 500 {
			n = 500
		}
		limit = n
	}
	events, err := models.ListDeckEvents(a.db, limit)
	if err != nil {
		writeAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

func (a *DeckAPI) emptyDeck(c *gin.Context) {
	c.JSON(http.StatusNotFound, envelope{
		Message: "No cards left in the deck.",
		Deck:    a.deckState(),
	})
}

// recordEvent journals a mutation and broadcasts it to stream subscribers.
// Both sinks are best-effort; a journal failure never fails the request.
func (a *DeckAPI) recordEvent(eventType string, card *deck.Card) {
	size := a.deck.Count()

	if a.db != nil {
		e := models.DeckEvent{EventType: eventType, DeckSize: int64(size)}
		if card != nil {
			s := card.String()
			e.Card = &s
		}
		if err := models.InsertDeckEvent(a.db, e); err != nil {
			a.log.Errorw("journal insert failed", "event", eventType, "err", err)
		}
	}

	if a.hub != nil {
		if hub, ok := a.hub(); ok && hub != nil {
			payload := gin.H{"count": size}
			if card != nil {
				payload["card"] = newCardView(*card)
			}
			hub.Broadcast(eventType, payload)
		}
	}

	a.log.Infow("deck event", "event", eventType, "count", size)
}
