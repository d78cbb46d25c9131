package client

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/waveboard-app/waveboard-backend/log"
)

// DefaultConversationInterval is how often the conversation view re-fetches.
const DefaultConversationInterval = 3 * time.Second

// ConversationRenderer receives full replacements of the peer list and of
// the selected conversation.
type ConversationRenderer interface {
	RenderPeers(peers []Peer, selected int64)
	RenderConversation(msgs []Message)
}

// Viewport abstracts scroll state. When the view was near the bottom before
// a re-render it is pinned back to the bottom afterwards, keeping the latest
// message visible.
type Viewport interface {
	NearBottom() bool
	ScrollToBottom()
}

// ConversationView polls the selected two-party conversation. It has two
// states: no peer selected and peer selected. The first successful peer
// load auto-selects the first peer if none is selected yet; every selection
// change reloads the conversation immediately.
type ConversationView struct {
	api      *Client
	renderer ConversationRenderer
	viewport Viewport
	interval time.Duration

	seq      atomic.Uint64
	mu       sync.Mutex
	peer     int64
	rendered uint64
}

// NewConversationView builds a conversation view. viewport may be nil when
// scroll pinning is not wanted. interval <= 0 means
// DefaultConversationInterval.
func NewConversationView(api *Client, renderer ConversationRenderer, viewport Viewport, interval time.Duration) *ConversationView {
	if interval <= 0 {
		interval = DefaultConversationInterval
	}
	return &ConversationView{
		api:      api,
		renderer: renderer,
		viewport: viewport,
		interval: interval,
	}
}

// Peer returns the currently selected peer id, 0 when none.
func (v *ConversationView) Peer() int64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.peer
}

// SelectPeer transitions to the peer-selected state and reloads the
// conversation.
func (v *ConversationView) SelectPeer(ctx context.Context, peerID int64) {
	v.mu.Lock()
	v.peer = peerID
	v.mu.Unlock()
	v.Refresh(ctx)
}

// LoadPeers fetches the peer list and renders it. While no peer is selected,
// the first peer in the list is selected automatically.
func (v *ConversationView) LoadPeers(ctx context.Context) error {
	peers, err := v.api.Peers(ctx)
	if err != nil {
		return err
	}
	if v.Peer() == 0 && len(peers) > 0 {
		v.SelectPeer(ctx, peers[0].ID)
	}
	v.renderer.RenderPeers(peers, v.Peer())
	return nil
}

// Run loads peers, renders once, then re-fetches on every tick until ctx is
// done. Fetches run in their own goroutines so a slow cycle never blocks the
// next scheduled one.
func (v *ConversationView) Run(ctx context.Context) {
	if err := v.LoadPeers(ctx); err != nil {
		log.Warn.Printf("peer list: %v\n", err)
	}
	v.Refresh(ctx)

	ticker := time.NewTicker(v.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			go v.Refresh(ctx)
		}
	}
}

// Refresh fetches and re-renders the selected conversation once. Responses
// that lost the race to a newer cycle, or that belong to a peer no longer
// selected, are dropped.
func (v *ConversationView) Refresh(ctx context.Context) {
	peer := v.Peer()
	if peer == 0 {
		return
	}
	seq := v.seq.Add(1)

	msgs, err := v.api.Conversation(ctx, peer)
	if err != nil {
		log.Warn.Printf("conversation refresh: %v\n", err)
		return
	}

	pin := v.viewport != nil && v.viewport.NearBottom()

	v.mu.Lock()
	defer v.mu.Unlock()
	if seq <= v.rendered || v.peer != peer {
		return
	}
	v.rendered = seq
	v.renderer.RenderConversation(msgs)
	if pin {
		v.viewport.ScrollToBottom()
	}
}
