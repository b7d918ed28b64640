package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	badger "github.com/dgraph-io/badger/v4"
)

const badgerKeyPrefix = "session/"

// BadgerRepository stores session records as JSON values in a Badger
// key-value store. It keeps the record table across process restarts; the
// workspace trees live on disk anyway, so a durable table is the natural
// extension point the Repository interface anticipates. Workspace recovery
// after a restart is up to the caller.
type BadgerRepository struct {
	db *badger.DB

	// mu serializes the read-modify-write transactions. Badger aborts
	// concurrent update transactions on one key with ErrConflict, which a
	// caller touching a live session must never see; the table-wide lock
	// keeps write transactions conflict-free, matching the memory backend.
	mu sync.Mutex
}

// NewBadgerRepository creates a Repository backed by a Badger database at
// path. An empty path opens an in-memory database, which is useful in tests.
// The caller owns the returned repository and should Close it when done.
func NewBadgerRepository(path string) (*BadgerRepository, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	if path == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	return &BadgerRepository{db: db}, nil
}

// Close releases the underlying database.
func (r *BadgerRepository) Close() error {
	return r.db.Close()
}

func badgerKey(id string) []byte {
	return []byte(badgerKeyPrefix + id)
}

func (r *BadgerRepository) Create(s Session) error {
	key := badgerKey(s.ID)

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if err == nil {
			return fmt.Errorf("%w: %s", ErrSessionExists, s.ID)
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("store session %s: %w", s.ID, err)
		}

		value, err := json.Marshal(s)
		if err != nil {
			return fmt.Errorf("encode session %s: %w", s.ID, err)
		}
		return txn.Set(key, value)
	})
}

func (r *BadgerRepository) Get(id string) (Session, error) {
	var s Session

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(badgerKey(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
			}
			return fmt.Errorf("load session %s: %w", id, err)
		}
		return item.Value(func(value []byte) error {
			return json.Unmarshal(value, &s)
		})
	})
	if err != nil {
		return Session{}, err
	}
	return s, nil
}

func (r *BadgerRepository) Update(s Session) error {
	key := badgerKey(s.ID)

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("%w: %s", ErrSessionNotFound, s.ID)
			}
			return fmt.Errorf("load session %s: %w", s.ID, err)
		}

		value, err := json.Marshal(s)
		if err != nil {
			return fmt.Errorf("encode session %s: %w", s.ID, err)
		}
		return txn.Set(key, value)
	})
}

func (r *BadgerRepository) Delete(id string) error {
	key := badgerKey(id)

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
			}
			return fmt.Errorf("load session %s: %w", id, err)
		}
		return txn.Delete(key)
	})
}

func (r *BadgerRepository) List() ([]Session, error) {
	var sessions []Session
	prefix := []byte(badgerKeyPrefix)

	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var s Session
			err := it.Item().Value(func(value []byte) error {
				return json.Unmarshal(value, &s)
			})
			if err != nil {
				return fmt.Errorf("decode session record: %w", err)
			}
			sessions = append(sessions, s)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sessions, nil
}
