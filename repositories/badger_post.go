package repositories

import (
	"encoding/json"
	"feed-lab/domain"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

const (
	postPrefix  = "post:"
	sequenceKey = "seq:post"
)

// BadgerPostRepository stores posts in an in-memory BadgerDB.
// Nothing is written to disk, so the feed still starts empty on every run.
type BadgerPostRepository struct {
	mu  sync.Mutex
	db  *badger.DB
	seq *badger.Sequence
	log *slog.Logger
}

// NewBadgerPostRepository opens the in-memory database and stores the seed posts.
func NewBadgerPostRepository(log *slog.Logger, seed ...domain.Post) (*BadgerPostRepository, error) {
	db, err := badger.Open(badger.DefaultOptions("").
		WithInMemory(true).
		WithLoggingLevel(badger.ERROR))
	if err != nil {
		return nil, fmt.Errorf("badger opening failed: %w", err)
	}
	seq, err := db.GetSequence([]byte(sequenceKey), 100)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("badger sequence failed: %w", err)
	}
	repository := &BadgerPostRepository{db: db, seq: seq, log: log}
	for _, post := range seed {
		if err = repository.Add(post); err != nil {
			_ = repository.Close()
			return nil, err
		}
	}
	return repository, nil
}

// Add persists a post under "post:{sequence_padded}:{uuid}".
//  1. The 19-digit zero padding keeps lexicographical order equal to insertion order.
//  2. The uuid suffix keeps duplicate ids as distinct entries.
func (r *BadgerPostRepository) Add(post domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next, err := r.seq.Next()
	if err != nil {
		return err
	}
	key := fmt.Sprintf("%s%019d:%s", postPrefix, next, post.ID)
	bytes, err := json.Marshal(post)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), bytes)
	})
}

// List reads every post with a prefix scan inside a single read transaction.
func (r *BadgerPostRepository) List() ([]domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	posts := make([]domain.Post, 0)
	err := r.scan(func(post domain.Post) bool {
		posts = append(posts, post)
		return true
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// Find scans in insertion order and stops on the first post carrying id.
func (r *BadgerPostRepository) Find(id uuid.UUID) (domain.Post, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var found domain.Post
	var ok bool
	err := r.scan(func(post domain.Post) bool {
		if post.ID == id {
			found, ok = post, true
			return false
		}
		return true
	})
	if err != nil {
		return domain.Post{}, false, err
	}
	return found, ok, nil
}

// Close releases the sequence lease and the database.
func (r *BadgerPostRepository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.seq.Release(); err != nil {
		r.log.Warn("Badger sequence release failed", "error", err)
	}
	return r.db.Close()
}

// scan walks posts oldest first until fn returns false.
func (r *BadgerPostRepository) scan(fn func(post domain.Post) bool) error {
	return r.db.View(func(txn *badger.Txn) error {
		prefix := []byte(postPrefix)
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var post domain.Post
			err := it.Item().Value(func(value []byte) error {
				return json.Unmarshal(value, &post)
			})
			if err != nil {
				return err
			}
			if !fn(post) {
				return nil
			}
		}
		return nil
	})
}
