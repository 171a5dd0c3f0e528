package localstore

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/roamcar/roamcar/internal/domain"
	"github.com/roamcar/roamcar/internal/store"
)

// SessionStore implements store.SessionStore over a KV directory.
// The session is a single JSON document, present only while logged in.
type SessionStore struct {
	kv     *KV
	logger *slog.Logger
}

// Ensure SessionStore implements store.SessionStore
var _ store.SessionStore = (*SessionStore)(nil)

// NewSessionStore returns a session store over the given KV directory.
func NewSessionStore(kv *KV, logger *slog.Logger) *SessionStore {
	return &SessionStore{
		kv:     kv,
		logger: logger.With("component", "session_store"),
	}
}

// Get implements store.SessionStore.Get. An unparsable session record is
// cleared and reported as absent.
func (s *SessionStore) Get(ctx context.Context) (*domain.SessionUser, error) {
	data, ok, err := s.kv.Get(KeySession)
	if err != nil {
		return nil, store.NewStoreError("session", "load", "failed to read session", err)
	}
	if !ok {
		return nil, store.ErrNotFound
	}

	var session domain.SessionUser
	if err := json.Unmarshal(data, &session); err != nil {
		s.logger.Warn("clearing unparsable session record", "error", err)
		if err := s.kv.Delete(KeySession); err != nil {
			return nil, store.NewStoreError("session", "load", "failed to clear corrupt record", err)
		}
		return nil, store.ErrNotFound
	}
	return &session, nil
}

// Put implements store.SessionStore.Put
func (s *SessionStore) Put(ctx context.Context, session *domain.SessionUser) error {
	data, err := json.Marshal(session)
	if err != nil {
		return store.NewStoreError("session", "save", "failed to encode session", err)
	}
	if err := s.kv.Set(KeySession, data); err != nil {
		return store.NewStoreError("session", "save", "failed to persist session", err)
	}
	return nil
}

// Clear implements store.SessionStore.Clear
func (s *SessionStore) Clear(ctx context.Context) error {
	if err := s.kv.Delete(KeySession); err != nil {
		return store.NewStoreError("session", "clear", "failed to delete session", err)
	}
	return nil
}
