// Package pebblestore implements the repositories and the unit of work on an
// embedded Pebble key-value store, for single-node deployments and hermetic
// tests.
//
// Aggregates are stored as JSON documents. Secondary indexes are plain keys
// whose suffix sorts in the order the ports promise (creation order for
// tenders and quotations, adjudication date then creation order for awards).
// Units of work are serialised: Begin takes the store's single write slot and
// holds it until Commit or Rollback.
package pebblestore

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"tendering/internal/pkg/errs"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
)

// Store owns the Pebble database and the write slot shared by every unit of
// work created from it.
type Store struct {
	db   *pebble.DB
	slot chan struct{}
}

// Open opens (or creates) a store in dir on the real filesystem.
func Open(dir string) (*Store, error) {
	return open(filepath.Clean(dir), &pebble.Options{})
}

// OpenInMemory opens a store backed by an in-memory filesystem. Its contents
// are lost on Close.
func OpenInMemory() (*Store, error) {
	return open("", &pebble.Options{FS: vfs.NewMem()})
}

func open(dir string, opts *pebble.Options) (*Store, error) {
	db, err := pebble.Open(dir, opts)
	if err != nil {
		return nil, fmt.Errorf("pebble open: %w", err)
	}
	return &Store{
		db:   db,
		slot: make(chan struct{}, 1),
	}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// acquire waits for the write slot or for ctx to end.
func (s *Store) acquire(ctx context.Context) error {
	select {
	case s.slot <- struct{}{}:
		return nil
	case <-ctx.Done():
		return errs.NewRepositoryError("acquire write slot", ctx.Err())
	}
}

func (s *Store) release() {
	<-s.slot
}

// session is the view a repository works through: the indexed batch of the
// active unit of work, or the database itself when there is none.
type session struct {
	store *Store
	batch *pebble.Batch
}

func (s session) reader() pebble.Reader {
	if s.batch != nil {
		return s.batch
	}
	return s.store.db
}

// update runs fn against the active batch. Outside a unit of work it takes
// the write slot and commits a batch of its own, so multi-key writes stay
// atomic either way.
func (s session) update(ctx context.Context, operation string, fn func(b *pebble.Batch) error) error {
	if s.batch != nil {
		return fn(s.batch)
	}

	if err := s.store.acquire(ctx); err != nil {
		return err
	}
	defer s.store.release()

	b := s.store.db.NewIndexedBatch()
	defer func() { _ = b.Close() }()

	if err := fn(b); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return errs.NewRepositoryError(operation, err)
	}
	if err := b.Commit(pebble.Sync); err != nil {
		return errs.NewRepositoryError(operation, err)
	}
	return nil
}

// getJSON decodes the value stored under key into v. It reports false when
// the key is absent.
func getJSON(r pebble.Reader, key []byte, v any) (bool, error) {
	raw, closer, err := r.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	defer func() { _ = closer.Close() }()

	if err = json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func setJSON(w pebble.Writer, key []byte, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return w.Set(key, raw, nil)
}

func exists(r pebble.Reader, key []byte) (bool, error) {
	_, closer, err := r.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, closer.Close()
}

// scanValues returns copies of the values stored under prefix, in key order.
func scanValues(r pebble.Reader, prefix []byte) ([][]byte, error) {
	it, err := r.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: prefixEnd(prefix),
	})
	if err != nil {
		return nil, err
	}
	defer func() { _ = it.Close() }()

	var values [][]byte
	for it.First(); it.Valid(); it.Next() {
		values = append(values, append([]byte(nil), it.Value()...))
	}
	return values, it.Error()
}

// nextSeq allocates the next value of the store-wide creation counter inside
// the batch.
func nextSeq(b *pebble.Batch) (uint64, error) {
	var seq uint64
	raw, closer, err := b.Get(seqKey)
	switch {
	case errors.Is(err, pebble.ErrNotFound):
	case err != nil:
		return 0, err
	default:
		seq = binary.BigEndian.Uint64(raw)
		_ = closer.Close()
	}

	seq++
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], seq)
	if err = b.Set(seqKey, buf[:], nil); err != nil {
		return 0, err
	}
	return seq, nil
}
