package badgerdb

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/animo-meet/backend/internal/core/domain"
	"github.com/dgraph-io/badger/v4"
)

const (
	meetingKeyPrefix = "meeting:"
	hostKeyPrefix    = "host:"
)

// MeetingRepository persists meeting records keyed by code, plus a
// "host:{username}:{code}" index so a host's past meetings come back with a
// single prefix scan.
type MeetingRepository struct {
	db *badger.DB
}

func NewMeetingRepository(db *badger.DB) *MeetingRepository {
	return &MeetingRepository{db: db}
}

func (r *MeetingRepository) Create(meeting domain.Meeting) error {
	data, err := json.Marshal(meeting)
	if err != nil {
		return fmt.Errorf("marshal meeting: %w", err)
	}

	return r.db.Update(func(txn *badger.Txn) error {
		key := []byte(meetingKeyPrefix + meeting.Code)
		if _, err := txn.Get(key); err == nil {
			return domain.ErrMeetingExists
		}
		if err := txn.Set(key, data); err != nil {
			return err
		}
		indexKey := []byte(hostKeyPrefix + meeting.HostUsername + ":" + meeting.Code)
		return txn.Set(indexKey, nil)
	})
}

func (r *MeetingRepository) Get(code string) (domain.Meeting, error) {
	var meeting domain.Meeting

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(meetingKeyPrefix + code))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &meeting)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return domain.Meeting{}, domain.ErrMeetingNotFound
	}
	if err != nil {
		return domain.Meeting{}, err
	}
	return meeting, nil
}

func (r *MeetingRepository) HostedBy(username string) ([]string, error) {
	var codes []string
	prefix := []byte(hostKeyPrefix + username + ":")

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			codes = append(codes, string(it.Item().Key()[len(prefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return codes, nil
}
