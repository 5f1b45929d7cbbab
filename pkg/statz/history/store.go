// Package history persists collected snapshots in a local Badger
// database so past readings can be listed, re-rendered, and used as
// comparison baselines.
package history

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/statz-dev/statz/pkg/statz/logging"
	"github.com/statz-dev/statz/pkg/statz/snapshot"
)

// logger is the package-level logger for history operations.
var logger = logging.Get("history")

// ErrNotFound is returned when a history record doesn't exist.
var ErrNotFound = errors.New("history record not found")

// KeySeparator separates kind from timestamp in record keys.
const KeySeparator = '\x00'

// Record is one stored snapshot. Data holds the snapshot in its JSON
// encoding, which preserves map key order and numeric literals.
type Record struct {
	// ID uniquely identifies the record.
	ID uuid.UUID

	// Kind names what was collected ("specs" or "usage").
	Kind string

	// TakenAt is when the snapshot was collected.
	TakenAt time.Time

	// Data is the JSON-encoded snapshot.
	Data []byte
}

// Snapshot decodes the record's stored snapshot.
func (r *Record) Snapshot() (snapshot.Node, error) {
	return snapshot.Unmarshal(r.Data)
}

// encode serializes the record to bytes using gob.
func (r *Record) encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decode deserializes bytes into the record using gob.
func (r *Record) decode(data []byte) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(r)
}

// makeKey creates a record key. The zero-padded UnixNano timestamp
// keeps iteration within a kind chronological.
// Format: <kind>\x00<unixnano>\x00<id>
func makeKey(kind string, takenAt time.Time, id uuid.UUID) []byte {
	return []byte(fmt.Sprintf("%s%c%020d%c%s",
		kind, KeySeparator, takenAt.UnixNano(), KeySeparator, id))
}

// makeKeyPrefix returns the prefix for all records of a kind.
func makeKeyPrefix(kind string) []byte {
	return []byte(kind + string(KeySeparator))
}

// Store wraps Badger for history operations.
type Store struct {
	db *badger.DB
}

// Open opens or creates a history store at the given path.
func Open(path string) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Disable badger logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the store.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put stores a snapshot and returns the record created for it.
func (s *Store) Put(kind string, data snapshot.Node) (*Record, error) {
	encoded, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}

	record := &Record{
		ID:      uuid.New(),
		Kind:    kind,
		TakenAt: time.Now().UTC(),
		Data:    encoded,
	}
	value, err := record.encode()
	if err != nil {
		return nil, err
	}

	key := makeKey(kind, record.TakenAt, record.ID)
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("history record stored", "kind", kind, "id", record.ID)
	return record, nil
}

// List returns records of a kind, newest first. A limit of 0 returns
// everything.
func (s *Store) List(kind string, limit int) ([]*Record, error) {
	prefix := makeKeyPrefix(kind)
	var records []*Record

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()

		// Reverse iteration starts past the last key of the prefix.
		seek := append(append([]byte{}, prefix...), 0xff)
		for it.Seek(seek); it.ValidForPrefix(prefix); it.Next() {
			if limit > 0 && len(records) >= limit {
				break
			}
			var record Record
			if err := it.Item().Value(record.decode); err != nil {
				return err
			}
			records = append(records, &record)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Latest returns the most recent record of a kind.
func (s *Store) Latest(kind string) (*Record, error) {
	records, err := s.List(kind, 1)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}
	return records[0], nil
}

// Get retrieves a record by ID, searching across kinds.
func (s *Store) Get(id uuid.UUID) (*Record, error) {
	suffix := []byte(string(KeySeparator) + id.String())
	var found *Record

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if !bytes.HasSuffix(it.Item().Key(), suffix) {
				continue
			}
			var record Record
			if err := it.Item().Value(record.decode); err != nil {
				return err
			}
			found = &record
			return nil
		}
		return ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// Prune deletes the oldest records of a kind beyond keep and returns
// how many were removed.
func (s *Store) Prune(kind string, keep int) (int, error) {
	prefix := makeKeyPrefix(kind)
	pruned := 0

	err := s.db.Update(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		var keys [][]byte
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}

		if len(keys) <= keep {
			return nil
		}
		for _, key := range keys[:len(keys)-keep] {
			if err := txn.Delete(key); err != nil {
				return err
			}
			pruned++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if pruned > 0 {
		logger.Info("history pruned", "kind", kind, "removed", pruned, "kept", keep)
	}
	return pruned, nil
}
