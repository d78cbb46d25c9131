package client

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/waveboard-app/waveboard-backend/log"
)

// DefaultFeedInterval is how often the feed view re-fetches.
const DefaultFeedInterval = 5 * time.Second

// FeedRenderer receives the full post list on every successful cycle. Each
// call replaces the previous view wholesale.
type FeedRenderer interface {
	RenderFeed(posts []Post)
}

// FeedView polls the feed on a fixed interval and re-renders it. A failed
// fetch logs and leaves the previous render in place. Overlapping fetches
// are sequenced: a response older than the newest rendered one is dropped.
type FeedView struct {
	api      *Client
	renderer FeedRenderer
	interval time.Duration

	// Drafts holds in-progress comment text keyed by post id.
	Drafts *DraftStore

	seq      atomic.Uint64
	mu       sync.Mutex
	rendered uint64
}

// NewFeedView builds a feed view. interval <= 0 means DefaultFeedInterval.
func NewFeedView(api *Client, renderer FeedRenderer, interval time.Duration) *FeedView {
	if interval <= 0 {
		interval = DefaultFeedInterval
	}
	return &FeedView{
		api:      api,
		renderer: renderer,
		interval: interval,
		Drafts:   NewDraftStore(),
	}
}

// Run renders once immediately, then on every tick until ctx is done. Each
// fetch runs in its own goroutine so a slow cycle never blocks the next.
func (v *FeedView) Run(ctx context.Context) {
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

// Refresh fetches and re-renders the feed once.
func (v *FeedView) Refresh(ctx context.Context) {
	seq := v.seq.Add(1)

	posts, err := v.api.Feed(ctx)
	if err != nil {
		log.Warn.Printf("feed refresh: %v\n", err)
		return
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if seq <= v.rendered {
		// a newer cycle already rendered; drop the stale response
		return
	}
	v.rendered = seq
	v.renderer.RenderFeed(posts)
}

// SubmitComment sends the stored draft for a post. An all-whitespace draft
// is silently skipped. The draft is cleared only after the server accepts
// the comment, and the feed re-renders right away.
func (v *FeedView) SubmitComment(ctx context.Context, postID int64) error {
	draft := v.Drafts.Get(postID)
	if strings.TrimSpace(draft) == "" {
		return nil
	}
	if err := v.api.CreateComment(ctx, postID, draft); err != nil {
		return err
	}
	v.Drafts.Clear(postID)
	v.Refresh(ctx)
	return nil
}
