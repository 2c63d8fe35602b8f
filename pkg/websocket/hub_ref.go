package websocket

import "sync/atomic"

// HubRef is an atomic indirection to the currently-active Hub, letting the
// server swap in a fresh hub after a panic without restarting HTTP. The event
// stream handler calls Get() per connection and deck handlers per broadcast.
type HubRef struct {
	v atomic.Value // stores *Hub
}

func NewHubRef(initial *Hub) *HubRef {
	r := &HubRef{}
	r.v.Store(initial)
	return r
}

func (r *HubRef) Get() (*Hub, bool) {
	h, ok := r.v.Load().(*Hub)
	return h, ok && h != nil
}

func (r *HubRef) Set(h *Hub) {
	r.v.Store(h)
}
