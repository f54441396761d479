package badgerdb

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/animo-meet/backend/internal/core/domain"
	"github.com/dgraph-io/badger/v4"
)

const userKeyPrefix = "user:"

// UserRepository persists accounts in BadgerDB, keyed by username. Values
// are JSON-encoded domain.User records.
type UserRepository struct {
	db *badger.DB
}

func NewUserRepository(db *badger.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user domain.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	return r.db.Update(func(txn *badger.Txn) error {
		key := []byte(userKeyPrefix + user.Username)
		if _, err := txn.Get(key); err == nil {
			return domain.ErrUserExists
		}
		return txn.Set(key, data)
	})
}

func (r *UserRepository) GetByUsername(username string) (domain.User, error) {
	var user domain.User

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(userKeyPrefix + username))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &user)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return domain.User{}, domain.ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}
