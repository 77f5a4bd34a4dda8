package kvstore

import "context"

// MemoryStore keeps documents in process memory. It backs tests and serves as
// the fallback when the SQLite database cannot be opened; documents written to
// it do not survive the session.
type MemoryStore struct {
	documents map[string][]byte

	// GetErr and SetErr, when non-nil, are returned by every Get/Set call.
	// Tests use them to simulate an unreadable or unwritable store.
	GetErr error
	SetErr error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{documents: make(map[string][]byte)}
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	value, ok := s.documents[key]
	if !ok {
		return nil, ErrNotFound
	}
	return value, nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	if s.SetErr != nil {
		return s.SetErr
	}
	s.documents[key] = append([]byte(nil), value...)
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
