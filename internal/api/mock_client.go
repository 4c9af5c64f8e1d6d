package api

import (
	"context"
	"sync"
)

// ReplyFetcher is the part of Client the chat layer depends on
type ReplyFetcher interface {
	FetchReply(ctx context.Context, message string) (string, error)
}

// Ensure Client implements ReplyFetcher
var _ ReplyFetcher = (*Client)(nil)

// MockFetcher is a mock implementation of ReplyFetcher for testing
type MockFetcher struct {
	// Mock return values
	Reply string
	Err   error
	// Release, when non-nil, blocks FetchReply until it is closed or ctx ends
	Release chan struct{}

	mu    sync.Mutex
	calls []string
}

// Ensure MockFetcher implements ReplyFetcher
var _ ReplyFetcher = (*MockFetcher)(nil)

// FetchReply records the message and returns the configured reply or error
func (m *MockFetcher) FetchReply(ctx context.Context, message string) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, message)
	release := m.Release
	m.mu.Unlock()

	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	if m.Err != nil {
		return "", m.Err
	}
	return m.Reply, nil
}

// Calls returns the messages received so far
func (m *MockFetcher) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns how many requests were made
func (m *MockFetcher) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
