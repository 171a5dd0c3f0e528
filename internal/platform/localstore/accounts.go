package localstore

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/roamcar/roamcar/internal/domain"
	"github.com/roamcar/roamcar/internal/store"
)

// AccountStore implements store.AccountStore over a KV directory.
// The full account set is held in memory; Create rewrites the whole
// persisted document.
type AccountStore struct {
	kv     *KV
	logger *slog.Logger

	mu       sync.Mutex
	accounts []domain.UserAccount
}

// Ensure AccountStore implements store.AccountStore
var _ store.AccountStore = (*AccountStore)(nil)

// NewAccountStore loads the persisted account set and returns a store over
// it. An unparsable document is cleared and treated as empty; that is never
// an error.
func NewAccountStore(kv *KV, logger *slog.Logger) (*AccountStore, error) {
	s := &AccountStore{
		kv:     kv,
		logger: logger.With("component", "account_store"),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *AccountStore) load() error {
	data, ok, err := s.kv.Get(KeyUsers)
	if err != nil {
		return store.NewStoreError("user", "load", "failed to read accounts", err)
	}
	if !ok {
		s.accounts = nil
		return nil
	}

	var raw []domain.UserAccount
	if err := json.Unmarshal(data, &raw); err != nil {
		s.logger.Warn("clearing unparsable account record", "error", err)
		if err := s.kv.Delete(KeyUsers); err != nil {
			return store.NewStoreError("user", "load", "failed to clear corrupt record", err)
		}
		s.accounts = nil
		return nil
	}

	s.accounts = make([]domain.UserAccount, 0, len(raw))
	for _, account := range raw {
		s.accounts = append(s.accounts, migrateAccount(account))
	}
	return nil
}

// migrateAccount coerces a persisted record to the current schema: email
// and phone are re-normalized (blank when missing), and any role that is
// not exactly "admin" degrades to "user".
func migrateAccount(account domain.UserAccount) domain.UserAccount {
	account.Email = domain.NormalizeEmail(account.Email)
	account.Phone = domain.NormalizePhone(account.Phone)
	account.Role = domain.ParseRole(string(account.Role))
	return account
}

// List implements store.AccountStore.List
func (s *AccountStore) List(ctx context.Context) ([]domain.UserAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.UserAccount, len(s.accounts))
	copy(out, s.accounts)
	return out, nil
}

// GetByID implements store.AccountStore.GetByID
func (s *AccountStore) GetByID(ctx context.Context, id string) (*domain.UserAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, account := range s.accounts {
		if account.ID == id {
			found := account
			return &found, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// GetByEmail implements store.AccountStore.GetByEmail
func (s *AccountStore) GetByEmail(ctx context.Context, email string) (*domain.UserAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, account := range s.accounts {
		if account.Email == email {
			found := account
			return &found, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// Create implements store.AccountStore.Create
func (s *AccountStore) Create(ctx context.Context, account *domain.UserAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.accounts {
		if existing.Email == account.Email {
			return store.ErrEmailExists
		}
		if existing.Phone == account.Phone {
			return store.ErrPhoneExists
		}
	}

	next := make([]domain.UserAccount, 0, len(s.accounts)+1)
	next = append(next, *account)
	next = append(next, s.accounts...)

	if err := s.persist(next); err != nil {
		return err
	}
	s.accounts = next
	return nil
}

func (s *AccountStore) persist(accounts []domain.UserAccount) error {
	data, err := json.Marshal(accounts)
	if err != nil {
		return store.NewStoreError("user", "save", "failed to encode accounts", err)
	}
	if err := s.kv.Set(KeyUsers, data); err != nil {
		return store.NewStoreError("user", "save", "failed to persist accounts", err)
	}
	return nil
}
