package handlers

import "github.com/gin-gonic/gin"

// RegisterDeckRoutes wires every deck endpoint onto the /api group.
func RegisterDeckRoutes(rg *gin.RouterGroup, api *DeckAPI) {
	rg.GET("/deck", api.GetDeck)
	rg.GET("/deck/next", api.PeekNext)
	rg.GET("/deck/random", api.PeekRandom)
	rg.POST("/deck/draw/next", api.DrawNext)
	rg.POST("/deck/draw/random", api.DrawRandom)
	rg.GET("/deck/cards", api.GetCard)
	rg.POST("/deck/cards", api.InsertCard)
	rg.POST("/deck/shuffle", api.Shuffle)
	rg.POST("/deck/reset", api.Reset)
	rg.GET("/deck/events", api.ListEvents)
}
