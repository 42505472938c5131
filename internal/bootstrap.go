package internal

import (
	"feed-lab/domain"
	"time"

	"github.com/google/uuid"
)

// SeedPosts returns the two sample posts the service starts with.
// Content is fixed; ids and timestamps are fresh on every call.
func SeedPosts(now time.Time) []domain.Post {
	author := domain.Author{Name: "Me"}
	return []domain.Post{
		domain.NewPost("First Post",
			"This is the first post ever",
			author, now, uuid.New()),
		domain.NewPost("My web app is now online",
			"Today marks the day that this app is online!",
			author, now, uuid.New()),
	}
}
