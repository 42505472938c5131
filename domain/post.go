// Package domain contains core concepts of the feed.
// This file defines Post entities and their wire shape.
// Posts are immutable once created: no update operation exists.
package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Author is owned by value by each Post.
type Author struct {
	Name string `json:"name"`
}

// Post represents an immutable authored entry of the feed.
// The JSON tags are the one stable contract with external callers.
type Post struct {
	ID        uuid.UUID `json:"id"` // sole lookup key
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Author    Author    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

func NewPost(title, body string, author Author, createdAt time.Time, id uuid.UUID) Post {
	return Post{
		ID:        id,
		Title:     title,
		Body:      body,
		Author:    author,
		CreatedAt: createdAt,
	}
}

// DecodePost reads a Post from its wire shape.
// Every field must be present under its exact lower-case name and must not
// be null. Unknown fields are ignored.
func DecodePost(payload []byte) (Post, error) {
	fields, err := decodeObject(payload, "post")
	if err != nil {
		return Post{}, err
	}
	var post Post
	if err = decodeField(fields, "id", &post.ID); err != nil {
		return Post{}, err
	}
	if err = decodeField(fields, "title", &post.Title); err != nil {
		return Post{}, err
	}
	if err = decodeField(fields, "body", &post.Body); err != nil {
		return Post{}, err
	}
	var rawAuthor json.RawMessage
	if err = decodeField(fields, "author", &rawAuthor); err != nil {
		return Post{}, err
	}
	author, err := decodeObject(rawAuthor, "author")
	if err != nil {
		return Post{}, err
	}
	if err = decodeField(author, "name", &post.Author.Name); err != nil {
		return Post{}, err
	}
	if err = decodeField(fields, "created_at", &post.CreatedAt); err != nil {
		return Post{}, err
	}
	return post, nil
}

func decodeObject(payload []byte, name string) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, fmt.Errorf("%s must be an object, got null", name)
	}
	return fields, nil
}

func decodeField(fields map[string]json.RawMessage, key string, target any) error {
	raw, ok := fields[key]
	if !ok {
		return fmt.Errorf("missing field `%s`", key)
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return fmt.Errorf("field `%s` must not be null", key)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("field `%s`: %w", key, err)
	}
	return nil
}
