package handlers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"

	"deck-of-cards-go/internal/deck"
	"deck-of-cards-go/internal/models"

	"github.com/gin-gonic/gin"
)

func writeAPIError(c *gin.Context, err error) {
	if err == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	// Known sentinel errors
	if errors.Is(err, models.ErrNotFound) || errors.Is(err, sql.ErrNoRows) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	// Safe typed validation / conflict errors (do NOT echo raw errors).
	switch {
	case errors.Is(err, models.ErrInvalidJSON):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	case errors.Is(err, models.ErrInvalidCard):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid card"})
		return
	case errors.Is(err, deck.ErrDuplicateCard):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "card already in deck"})
		return
	case errors.Is(err, deck.ErrJokerLimit):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "joker limit reached"})
		return
	}

	// Unknown/internal errors: log details, return generic message.
	log.Printf("internal error: %v", err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
