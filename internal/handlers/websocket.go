package handlers

import (
	"net/http"
	"net/url"
	"strings"
	"sync"

	ws "deck-of-cards-go/pkg/websocket"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := strings.TrimSpace(r.Header.Get("Origin"))
		if origin == "" {
			// Non-browser clients (no Origin) are allowed.
			return true
		}
		if cfgDevAllowAll() {
			return true
		}
		if cfgIsDev() {
			return isLocalhostOrigin(origin) || isAllowedOrigin(origin)
		}
		return isAllowedOrigin(origin)
	},
}

// set by config at startup
var originMu sync.RWMutex
var allowedOrigins = map[string]bool{}
var devMode = false
var devAllowAll = false

func SetWebSocketOriginPolicy(isDev bool, allowAllDev bool, origins []string) {
	originMu.Lock()
	defer originMu.Unlock()
	devMode = isDev
	devAllowAll = allowAllDev
	allowedOrigins = map[string]bool{}
	for _, o := range origins {
		o = strings.TrimSpace(o)
		if o != "" {
			allowedOrigins[o] = true
		}
	}
}

func cfgIsDev() bool {
	originMu.RLock()
	defer originMu.RUnlock()
	return devMode
}
func cfgDevAllowAll() bool {
	originMu.RLock()
	defer originMu.RUnlock()
	return devMode && devAllowAll
}
func isAllowedOrigin(origin string) bool {
	originMu.RLock()
	defer originMu.RUnlock()
	return allowedOrigins[origin]
}

func isLocalhostOrigin(origin string) bool {
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	host := u.Hostname()
	return host == "localhost" || host == "127.0.0.1" || host == "::1"
}

// EventStreamHandler upgrades the connection and subscribes it to the deck
// event stream. The stream is one-way; inbound frames are discarded.
func EventStreamHandler(hubProvider func() (*ws.Hub, bool)) gin.HandlerFunc {
	return func(c *gin.Context) {
		hub, ok := hubProvider()
		if !ok || hub == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "event stream unavailable"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the HTTP error.
			return
		}

		client := ws.NewClient(conn, hub)
		hub.Register(client)
		go client.WritePump()
		go client.ReadPump()
	}
}
