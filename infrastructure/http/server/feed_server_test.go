package server

import (
	"encoding/json"
	"feed-lab/domain"
	"feed-lab/mocks"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const samplePost = `{"id":"00000000-0000-0000-0000-000000000001","title":"T","body":"B","author":{"name":"A"},"created_at":"2024-01-01T00:00:00Z"}`

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, fmt.Errorf("connection reset by peer")
}

func TestFeedOperation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := mocks.NewMockIPostRepository(ctrl)
	operation := NewFeedOperation(mockRepo)

	t.Run("should return an empty array when no post exists", func(t *testing.T) {
		req := require.New(t)
		mockRepo.EXPECT().List().Return([]domain.Post{}, nil).Times(1)

		rec := httptest.NewRecorder()
		operation.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/feed", nil))

		req.Equal(http.StatusOK, rec.Code)
		req.Equal("[]", rec.Body.String())
	})

	t.Run("should return every post in store order", func(t *testing.T) {
		req := require.New(t)
		at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		posts := []domain.Post{
			domain.NewPost("first", "b1", domain.Author{Name: "Me"}, at, uuid.New()),
			domain.NewPost("second", "b2", domain.Author{Name: "Me"}, at, uuid.New()),
		}
		mockRepo.EXPECT().List().Return(posts, nil).Times(1)

		rec := httptest.NewRecorder()
		operation.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/feed", nil))

		req.Equal(http.StatusOK, rec.Code)
		var decoded []domain.Post
		req.NoError(json.Unmarshal(rec.Body.Bytes(), &decoded))
		req.Equal(posts, decoded)
	})

	t.Run("should report a server fault when the store fails", func(t *testing.T) {
		req := require.New(t)
		mockRepo.EXPECT().List().Return(nil, fmt.Errorf("DB Closed")).Times(1)

		rec := httptest.NewRecorder()
		operation.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/feed", nil))

		req.Equal(http.StatusInternalServerError, rec.Code)
		req.Equal("DB Closed", rec.Body.String())
	})
}

func TestCreateOperation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := mocks.NewMockIPostRepository(ctrl)

	t.Run("should store the post and echo the payload", func(t *testing.T) {
		req := require.New(t)
		var created []domain.Post
		operation := NewCreateOperation(mockRepo, func(p domain.Post) { created = append(created, p) })
		expected := domain.NewPost("T", "B", domain.Author{Name: "A"},
			time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			uuid.MustParse("00000000-0000-0000-0000-000000000001"))

		mockRepo.EXPECT().Add(expected).Return(nil).Times(1)

		rec := httptest.NewRecorder()
		operation.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/post", strings.NewReader(samplePost)))

		req.Equal(http.StatusCreated, rec.Code)
		req.Equal(samplePost, rec.Body.String())
		req.Equal([]domain.Post{expected}, created)
	})

	t.Run("should echo the payload byte for byte", func(t *testing.T) {
		req := require.New(t)
		operation := NewCreateOperation(mockRepo, nil)
		payload := "{\n  \"id\": \"00000000-0000-0000-0000-000000000001\",\n  \"title\": \"spaced\",\n  \"body\": \"B\",\n" +
			"  \"author\": {\"name\": \"A\"},\n  \"created_at\": \"2024-01-01T00:00:00Z\",\n  \"extra\": true\n}"

		mockRepo.EXPECT().Add(gomock.Any()).Return(nil).Times(1)

		rec := httptest.NewRecorder()
		operation.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/post", strings.NewReader(payload)))

		req.Equal(http.StatusCreated, rec.Code)
		req.Equal(payload, rec.Body.String())
	})

	t.Run("should reject a body that is not json", func(t *testing.T) {
		req := require.New(t)
		operation := NewCreateOperation(mockRepo, nil)

		// Repository should NEVER be called
		mockRepo.EXPECT().Add(gomock.Any()).Times(0)

		rec := httptest.NewRecorder()
		operation.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/post", strings.NewReader("not json")))

		req.Equal(http.StatusBadRequest, rec.Code)
		req.NotEmpty(rec.Body.String())
	})

	t.Run("should reject a malformed id", func(t *testing.T) {
		req := require.New(t)
		operation := NewCreateOperation(mockRepo, nil)
		mockRepo.EXPECT().Add(gomock.Any()).Times(0)
		payload := strings.Replace(samplePost, "00000000-0000-0000-0000-000000000001", "42", 1)

		rec := httptest.NewRecorder()
		operation.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/post", strings.NewReader(payload)))

		req.Equal(http.StatusBadRequest, rec.Code)
	})

	notPosts := []struct {
		name    string
		payload string
	}{
		{"an empty object", `{}`},
		{"null", `null`},
		{"a partial post", `{"title":"only"}`},
		{"upper-case keys", `{"ID":"00000000-0000-0000-0000-000000000002","TITLE":"x","BODY":"y","AUTHOR":{"NAME":"z"},"CREATED_AT":"2024-01-01T00:00:00Z"}`},
		{"a post without author name", strings.Replace(samplePost, `{"name":"A"}`, `{}`, 1)},
		{"a post with a null field", strings.Replace(samplePost, `"body":"B"`, `"body":null`, 1)},
	}
	for _, c := range notPosts {
		t.Run("should reject "+c.name+" without touching the store", func(t *testing.T) {
			req := require.New(t)
			called := false
			operation := NewCreateOperation(mockRepo, func(domain.Post) { called = true })

			// Repository should NEVER be called
			mockRepo.EXPECT().Add(gomock.Any()).Times(0)

			rec := httptest.NewRecorder()
			operation.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/post", strings.NewReader(c.payload)))

			req.Equal(http.StatusBadRequest, rec.Code)
			req.NotEmpty(rec.Body.String())
			req.False(called)
		})
	}

	t.Run("should report a server fault when the body cannot be read", func(t *testing.T) {
		req := require.New(t)
		operation := NewCreateOperation(mockRepo, nil)
		mockRepo.EXPECT().Add(gomock.Any()).Times(0)

		rec := httptest.NewRecorder()
		operation.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/post", failingReader{}))

		req.Equal(http.StatusInternalServerError, rec.Code)
		req.Equal("connection reset by peer", rec.Body.String())
	})

	t.Run("should report a server fault when the store fails", func(t *testing.T) {
		req := require.New(t)
		called := false
		operation := NewCreateOperation(mockRepo, func(domain.Post) { called = true })
		mockRepo.EXPECT().Add(gomock.Any()).Return(fmt.Errorf("DB Closed")).Times(1)

		rec := httptest.NewRecorder()
		operation.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/post", strings.NewReader(samplePost)))

		req.Equal(http.StatusInternalServerError, rec.Code)
		req.Equal("DB Closed", rec.Body.String())
		req.False(called)
	})
}

func TestGetOperation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := mocks.NewMockIPostRepository(ctrl)
	operation := NewGetOperation(mockRepo)
	id := uuid.MustParse("00000000-0000-0000-0000-000000000001")

	get := func(raw string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodGet, "/post/"+raw, nil)
		r = mux.SetURLVars(r, map[string]string{"id": raw})
		rec := httptest.NewRecorder()
		operation.ServeHTTP(rec, r)
		return rec
	}

	t.Run("should return the post when it exists", func(t *testing.T) {
		req := require.New(t)
		post := domain.NewPost("T", "B", domain.Author{Name: "A"}, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), id)
		mockRepo.EXPECT().Find(id).Return(post, true, nil).Times(1)

		rec := get(id.String())

		req.Equal(http.StatusOK, rec.Code)
		req.JSONEq(samplePost, rec.Body.String())
	})

	t.Run("should return not found with an empty body", func(t *testing.T) {
		req := require.New(t)
		mockRepo.EXPECT().Find(id).Return(domain.Post{}, false, nil).Times(1)

		rec := get(id.String())

		req.Equal(http.StatusNotFound, rec.Code)
		req.Empty(rec.Body.String())
	})

	t.Run("should reject an id that is not a uuid", func(t *testing.T) {
		req := require.New(t)
		mockRepo.EXPECT().Find(gomock.Any()).Times(0)

		rec := get("42")

		req.Equal(http.StatusBadRequest, rec.Code)
		req.NotEmpty(rec.Body.String())
	})

	t.Run("should reject a request without an id", func(t *testing.T) {
		req := require.New(t)
		mockRepo.EXPECT().Find(gomock.Any()).Times(0)

		rec := httptest.NewRecorder()
		operation.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/post", nil))

		req.Equal(http.StatusBadRequest, rec.Code)
		req.Empty(rec.Body.String())
	})

	t.Run("should report a server fault when the store fails", func(t *testing.T) {
		req := require.New(t)
		mockRepo.EXPECT().Find(id).Return(domain.Post{}, false, fmt.Errorf("DB Closed")).Times(1)

		rec := get(id.String())

		req.Equal(http.StatusInternalServerError, rec.Code)
		req.Equal("DB Closed", rec.Body.String())
	})
}
