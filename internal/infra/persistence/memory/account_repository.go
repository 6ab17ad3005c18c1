// Package memory keeps accounts in process memory. It backs local runs
// without a database and the HTTP tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"accounts/internal/domain/entity"
	"accounts/internal/domain/repository"

	"github.com/google/uuid"
)

type accountRepository struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]entity.Account
	now      func() time.Time
}

// NewAccountRepository returns an empty in-memory store.
func NewAccountRepository() repository.AccountRepository {
	return &accountRepository{
		accounts: make(map[uuid.UUID]entity.Account),
		now:      time.Now,
	}
}

func (r *accountRepository) Create(_ context.Context, account *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[account.ID]; ok {
		return repository.ErrDuplicateAccount
	}
	if r.conflicts(account, uuid.Nil) {
		return repository.ErrDuplicateAccount
	}

	now := r.now()
	account.CreatedAt = now
	account.UpdatedAt = now
	r.accounts[account.ID] = *account

	return nil
}

func (r *accountRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}

	return &account, nil
}

func (r *accountRepository) FindByEmail(_ context.Context, email string) (*entity.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, account := range r.accounts {
		if account.Email == email {
			return &account, nil
		}
	}

	return nil, repository.ErrAccountNotFound
}

func (r *accountRepository) Update(_ context.Context, account *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.accounts[account.ID]
	if !ok {
		return repository.ErrAccountNotFound
	}
	if r.conflicts(account, account.ID) {
		return repository.ErrDuplicateAccount
	}

	stored.Username = account.Username
	stored.Email = account.Email
	stored.PasswordHash = account.PasswordHash
	stored.UpdatedAt = r.now()
	r.accounts[account.ID] = stored
	account.UpdatedAt = stored.UpdatedAt

	return nil
}

func (r *accountRepository) DeleteByID(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.accounts, id)

	return nil
}

func (r *accountRepository) ListUsernames(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	usernames := make([]string, 0, len(r.accounts))
	for _, account := range r.accounts {
		usernames = append(usernames, account.Username)
	}
	sort.Strings(usernames)

	return usernames, nil
}

// conflicts reports whether another account (other than self) holds the username or email.
// Callers hold the lock.
func (r *accountRepository) conflicts(account *entity.Account, self uuid.UUID) bool {
	for id, other := range r.accounts {
		if id == self {
			continue
		}
		if other.Username == account.Username || other.Email == account.Email {
			return true
		}
	}

	return false
}
