package client_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/waveboard-app/waveboard-backend/client"
)

type conversationRecorder struct {
	mu          sync.Mutex
	peerRenders [][]client.Peer
	convRenders [][]client.Message
}

func (r *conversationRecorder) RenderPeers(peers []client.Peer, selected int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.peerRenders = append(r.peerRenders, peers)
}

func (r *conversationRecorder) RenderConversation(msgs []client.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.convRenders = append(r.convRenders, msgs)
}

func (r *conversationRecorder) lastConversation() []client.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.convRenders) == 0 {
		return nil
	}
	return r.convRenders[len(r.convRenders)-1]
}

func (r *conversationRecorder) conversationCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.convRenders)
}

type fakeViewport struct {
	mu         sync.Mutex
	nearBottom bool
	pinned     int
}

func (v *fakeViewport) NearBottom() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.nearBottom
}

func (v *fakeViewport) ScrollToBottom() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pinned++
}

func (v *fakeViewport) pinCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pinned
}

func TestConversationView_AutoSelectsFirstPeer(t *testing.T) {
	ts := newBackend(t)
	ctx := context.Background()

	alice := newUser(t, ts, "alice")
	bob := newUser(t, ts, "bob")
	newUser(t, ts, "carol")

	bobID, err := bob.Session(ctx)
	require.NoError(t, err)
	require.NoError(t, bob.SendMessage(ctx, mustID(t, ctx, alice), "hi alice", nil))

	rec := &conversationRecorder{}
	view := client.NewConversationView(alice, rec, nil, time.Minute)

	require.NoError(t, view.LoadPeers(ctx))

	// peers are ordered by id, so bob (registered before carol) is selected
	require.Equal(t, bobID.ID, view.Peer())
	require.Len(t, rec.lastConversation(), 1)
	require.Equal(t, "hi alice", rec.lastConversation()[0].Content)
}

func TestConversationView_NoPeersNoSelection(t *testing.T) {
	ts := newBackend(t)
	ctx := context.Background()

	alice := newUser(t, ts, "alice")

	rec := &conversationRecorder{}
	view := client.NewConversationView(alice, rec, nil, time.Minute)

	require.NoError(t, view.LoadPeers(ctx))
	require.Zero(t, view.Peer())
	require.Zero(t, rec.conversationCount())

	// refreshing while unselected is a no-op
	view.Refresh(ctx)
	require.Zero(t, rec.conversationCount())
}

func TestConversationView_SelectPeerReloads(t *testing.T) {
	ts := newBackend(t)
	ctx := context.Background()

	alice := newUser(t, ts, "alice")
	bob := newUser(t, ts, "bob")
	carol := newUser(t, ts, "carol")

	aliceID := mustID(t, ctx, alice)
	bobID := mustID(t, ctx, bob)
	carolID := mustID(t, ctx, carol)

	require.NoError(t, bob.SendMessage(ctx, aliceID, "from bob", nil))
	require.NoError(t, carol.SendMessage(ctx, aliceID, "from carol", nil))

	rec := &conversationRecorder{}
	view := client.NewConversationView(alice, rec, nil, time.Minute)

	view.SelectPeer(ctx, bobID)
	require.Len(t, rec.lastConversation(), 1)
	require.Equal(t, "from bob", rec.lastConversation()[0].Content)

	view.SelectPeer(ctx, carolID)
	require.Equal(t, "from carol", rec.lastConversation()[0].Content)
}

func TestConversationView_PinsWhenNearBottom(t *testing.T) {
	ts := newBackend(t)
	ctx := context.Background()

	alice := newUser(t, ts, "alice")
	bob := newUser(t, ts, "bob")
	require.NoError(t, bob.SendMessage(ctx, mustID(t, ctx, alice), "hey", nil))

	vp := &fakeViewport{nearBottom: true}
	rec := &conversationRecorder{}
	view := client.NewConversationView(alice, rec, vp, time.Minute)

	view.SelectPeer(ctx, mustID(t, ctx, bob))
	require.Equal(t, 1, vp.pinCount())

	// scrolled up: the render must not yank the viewport down
	vp.mu.Lock()
	vp.nearBottom = false
	vp.mu.Unlock()
	view.Refresh(ctx)
	require.Equal(t, 1, vp.pinCount())
}

func mustID(t *testing.T, ctx context.Context, c *client.Client) int64 {
	t.Helper()
	id, err := c.Session(ctx)
	require.NoError(t, err)
	return id.ID
}
