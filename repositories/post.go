//go:generate go run go.uber.org/mock/mockgen -source=post.go -destination=../mocks/mock_post_repository.go -package=mocks
package repositories

import (
	"feed-lab/domain"
	"sync"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// IPostRepository is the shared handle every operation receives.
// Add, List and Find are atomic and totally ordered relative to one another.
type IPostRepository interface {
	Add(post domain.Post) error
	List() ([]domain.Post, error)
	Find(id uuid.UUID) (domain.Post, bool, error)
}

// PostStore keeps posts in insertion order behind a single exclusive lock.
// There is no reader/writer split: add, list and find all serialize.
type PostStore struct {
	mu    sync.Mutex
	posts []domain.Post
}

// NewPostStore creates a store already holding the given bootstrap posts.
func NewPostStore(seed ...domain.Post) *PostStore {
	store := &PostStore{}
	for _, post := range seed {
		_ = store.Add(post)
	}
	return store
}

// Add appends the post at the end of the feed.
// No uniqueness check is performed: duplicate ids are accepted and only the
// first one stays reachable through Find. It never fails.
func (s *PostStore) Add(post domain.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts = append(s.posts, post)
	return nil
}

// List returns a snapshot copy, oldest first. Never nil.
func (s *PostStore) List() ([]domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := make([]domain.Post, len(s.posts))
	copy(snapshot, s.posts)
	return snapshot, nil
}

// Find returns the first post carrying id.
func (s *PostStore) Find(id uuid.UUID) (domain.Post, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := lo.Find(s.posts, func(p domain.Post) bool {
		return p.ID == id
	})
	return post, ok, nil
}
