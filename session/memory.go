package session

import (
	"context"
	"sync"
)

// MemoryProvider is an in-process Provider for tests and single-node runs
// without redis.
type MemoryProvider struct {
	mu     sync.Mutex
	tokens map[string]int64
}

func NewMemory() *MemoryProvider {
	return &MemoryProvider{tokens: make(map[string]int64)}
}

func (p *MemoryProvider) Create(ctx context.Context, userID int64) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	token := newToken(32)
	p.tokens[token] = userID
	return token, nil
}

func (p *MemoryProvider) Resolve(ctx context.Context, token string) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	id, ok := p.tokens[token]
	if !ok {
		return 0, ErrNoSession
	}
	return id, nil
}

func (p *MemoryProvider) Destroy(ctx context.Context, token string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.tokens, token)
	return nil
}

var _ Provider = (*MemoryProvider)(nil)
