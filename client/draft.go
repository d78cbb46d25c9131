package client

import "sync"

// DraftStore keeps in-progress comment text per post so typing survives the
// feed re-render every poll cycle. Drafts are cleared only on successful
// submission, never on a timer tick.
type DraftStore struct {
	mu     sync.Mutex
	drafts map[int64]string
}

func NewDraftStore() *DraftStore {
	return &DraftStore{drafts: make(map[int64]string)}
}

// Set records the uncommitted input text for a post.
func (s *DraftStore) Set(postID int64, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[postID] = text
}

// Get returns the draft for a post, "" when none.
func (s *DraftStore) Get(postID int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drafts[postID]
}

// Clear drops the draft for a post.
func (s *DraftStore) Clear(postID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, postID)
}
