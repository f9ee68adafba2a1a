package wire

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"book-review/internal/data/entity"
	"book-review/internal/data/repository"
	"book-review/internal/data/repository/repotest"
	"book-review/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type envelope struct {
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	IsSuccess bool            `json:"isSuccess"`
}

type testClient struct {
	t      *testing.T
	router http.Handler
	token  string
}

func testConfig() *utils.Config {
	return &utils.Config{
		JWT:  utils.JWTConfig{Secret: "test-secret", ExpiryHours: 1},
		CORS: utils.CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}},
		Book: utils.BookConfig{DefaultImage: "/rich and poor dad.jpg"},
	}
}

func newClient(t *testing.T, repo *repository.Repository) *testClient {
	t.Helper()
	app := Wiring(repo, testConfig(), zap.NewNop())
	return &testClient{t: t, router: app.Router}
}

func (c *testClient) do(method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	c.t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(c.t, json.NewEncoder(&buf).Encode(b))
	}

	r := httptest.NewRequest(method, path, &buf)
	r.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		r.Header.Set("Authorization", "Bearer "+c.token)
	}

	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, r)

	var env envelope
	require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &env), "body: %s", rec.Body.String())
	return rec, env
}

func (c *testClient) login(name, email string) {
	c.t.Helper()
	rec, _ := c.do(http.MethodPost, "/api/auth/register", map[string]string{
		"name": name, "email": email, "password": "secret123",
	})
	require.Equal(c.t, http.StatusCreated, rec.Code)

	rec, env := c.do(http.MethodPost, "/api/auth/login", map[string]string{
		"email": email, "password": "secret123",
	})
	require.Equal(c.t, http.StatusOK, rec.Code)

	var auth struct {
		Token string `json:"token"`
	}
	require.NoError(c.t, json.Unmarshal(env.Data, &auth))
	c.token = auth.Token
}

func decode[T any](t *testing.T, data json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(data, &v))
	return v
}

type bookData struct {
	ID          string  `json:"_id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Genre       string  `json:"genre"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Price       float64 `json:"price"`
}

type reviewData struct {
	ID         string `json:"_id"`
	BookID     string `json:"bookId"`
	BookTitle  string `json:"bookTitle"`
	UserName   string `json:"userName"`
	Rating     int    `json:"rating"`
	ReviewText string `json:"reviewText"`
}

var dune = map[string]any{
	"title":       "Dune",
	"author":      "Frank Herbert",
	"genre":       "Science Fiction",
	"description": "Desert planet",
	"price":       9.99,
}

func TestRootAndFallbacks(t *testing.T) {
	c := newClient(t, repotest.NewRepository())

	rec, env := c.do(http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome to Book Review App", env.Message)
	assert.True(t, env.IsSuccess)
	assert.Equal(t, "null", string(env.Data))

	rec, env = c.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", env.Message)

	rec, env = c.do(http.MethodGet, "/api/nothing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", env.Message)
	assert.False(t, env.IsSuccess)

	rec, env = c.do(http.MethodPatch, "/api/books", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "Method not allowed", env.Message)
}

func TestBookLifecycle(t *testing.T) {
	c := newClient(t, repotest.NewRepository())

	rec, env := c.do(http.MethodGet, "/api/books", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", string(env.Data))

	// Writes need a token
	rec, _ = c.do(http.MethodPost, "/api/books", dune)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	c.login("Alice", "alice@example.com")

	rec, env = c.do(http.MethodPost, "/api/books", dune)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[bookData](t, env.Data)
	assert.Equal(t, "Dune", created.Title)
	assert.Equal(t, "/rich and poor dad.jpg", created.Image)

	rec, env = c.do(http.MethodPost, "/api/books", dune)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Book already exists", env.Message)
	assert.False(t, env.IsSuccess)

	rec, env = c.do(http.MethodGet, "/api/books", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	books := decode[[]bookData](t, env.Data)
	require.Len(t, books, 1)
	assert.Equal(t, created, books[0])

	rec, env = c.do(http.MethodGet, "/api/books/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created, decode[bookData](t, env.Data))

	update := map[string]any{
		"title":  "Dune Messiah",
		"author": "Frank Herbert",
		"genre":  "Science Fiction",
		"price":  12.5,
	}
	rec, env = c.do(http.MethodPut, "/api/books/"+created.ID, update)
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[bookData](t, env.Data)
	assert.Equal(t, "Dune Messiah", updated.Title)
	assert.Empty(t, updated.Description)
	assert.Empty(t, updated.Image)
	assert.Equal(t, 12.5, updated.Price)

	rec, env = c.do(http.MethodPut, "/api/books/"+uuid.NewString(), update)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Book not found", env.Message)

	rec, env = c.do(http.MethodDelete, "/api/books/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created.ID, decode[bookData](t, env.Data).ID)

	rec, _ = c.do(http.MethodDelete, "/api/books/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = c.do(http.MethodGet, "/api/books/not-a-uuid", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	_, env = c.do(http.MethodGet, "/api/books", nil)
	assert.Equal(t, "[]", string(env.Data))
}

func TestBookValidation(t *testing.T) {
	c := newClient(t, repotest.NewRepository())
	c.login("Alice", "alice@example.com")

	rec, env := c.do(http.MethodPost, "/api/books", `{"title":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request body", env.Message)

	rec, env = c.do(http.MethodPost, "/api/books", map[string]any{"title": "Dune", "author": "Frank Herbert", "genre": "Sci-Fi"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Validation failed: price: This field is required", env.Message)

	withNUL := map[string]any{"title": "Du\u0000ne", "author": "Frank Herbert", "genre": "Sci-Fi", "price": 1}
	rec, env = c.do(http.MethodPost, "/api/books", withNUL)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Validation failed: title: Must not contain NUL characters", env.Message)
}

func TestRegisterRejectsMultibytePasswordOverBcryptLimit(t *testing.T) {
	c := newClient(t, repotest.NewRepository())

	rec, env := c.do(http.MethodPost, "/api/auth/register", map[string]string{
		"name": "Alice", "email": "alice@example.com", "password": strings.Repeat("é", 40),
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Validation failed: password: Maximum size is 72 bytes", env.Message)
	assert.False(t, env.IsSuccess)
}

func TestAuthFlow(t *testing.T) {
	c := newClient(t, repotest.NewRepository())

	rec, env := c.do(http.MethodPost, "/api/auth/register", map[string]string{
		"name": "Alice", "email": "alice@example.com", "password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Validation failed: password: Minimum length is 6", env.Message)

	c.login("Alice", "Alice@Example.com")

	rec, env = c.do(http.MethodPost, "/api/auth/register", map[string]string{
		"name": "Alice", "email": "alice@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Email already registered", env.Message)

	rec, env = c.do(http.MethodGet, "/api/auth/me", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode[map[string]any](t, env.Data)
	assert.Equal(t, "alice@example.com", me["email"])
	assert.NotContains(t, me, "password")

	rec, _ = c.do(http.MethodPost, "/api/auth/logout", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, utils.TokenCookie, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)

	// The same token no longer works
	rec, _ = c.do(http.MethodGet, "/api/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	c.token = ""
	rec, env = c.do(http.MethodPost, "/api/auth/login", map[string]string{
		"email": "alice@example.com", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid email or password", env.Message)
}

func TestLoginSetsCookie(t *testing.T) {
	c := newClient(t, repotest.NewRepository())
	c.login("Alice", "alice@example.com")

	rec, _ := c.do(http.MethodPost, "/api/auth/login", map[string]string{
		"email": "alice@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, utils.TokenCookie, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	// The cookie alone authenticates
	r := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	r.AddCookie(&http.Cookie{Name: utils.TokenCookie, Value: cookies[0].Value})
	me := httptest.NewRecorder()
	c.router.ServeHTTP(me, r)
	assert.Equal(t, http.StatusOK, me.Code)
}

func TestReviewFlow(t *testing.T) {
	store := repotest.NewStore()
	alice := newClient(t, store.Repository())
	alice.login("Alice", "alice@example.com")
	bob := newClient(t, store.Repository())
	bob.login("Bob", "bob@example.com")

	rec, env := alice.do(http.MethodPost, "/api/books", dune)
	require.Equal(t, http.StatusCreated, rec.Code)
	book := decode[bookData](t, env.Data)

	rec, env = alice.do(http.MethodPost, "/api/reviews", map[string]any{
		"bookId": book.ID, "rating": 6, "reviewText": "too good",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Validation failed: rating: Must be at most 5", env.Message)

	rec, env = alice.do(http.MethodPost, "/api/reviews", map[string]any{
		"bookId": book.ID, "rating": 4, "reviewText": "   ",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Validation failed: reviewText: This field is required", env.Message)

	rec, env = alice.do(http.MethodPost, "/api/reviews", map[string]any{
		"bookId": book.ID, "rating": 4, "reviewText": "Spice must flow",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	review := decode[reviewData](t, env.Data)
	assert.Equal(t, "Alice", review.UserName)
	assert.Equal(t, "Dune", review.BookTitle)

	rec, env = alice.do(http.MethodPost, "/api/reviews", map[string]any{
		"bookId": book.ID, "rating": 2, "reviewText": "again",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "You have already reviewed this book", env.Message)

	rec, env = bob.do(http.MethodPut, "/api/reviews/"+review.ID, map[string]any{"rating": 1, "reviewText": "mine now"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "You can only modify your own reviews", env.Message)

	rec, _ = bob.do(http.MethodDelete, "/api/reviews/"+review.ID, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, env = bob.do(http.MethodPost, "/api/reviews", map[string]any{
		"bookId": book.ID, "rating": 1, "reviewText": "sand everywhere",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env = alice.do(http.MethodGet, "/api/reviews/book/"+book.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	reviews := decode[[]reviewData](t, env.Data)
	require.Len(t, reviews, 2)
	assert.Equal(t, "Bob", reviews[0].UserName, "newest first")

	rec, env = alice.do(http.MethodGet, "/api/reviews/book/"+book.ID+"/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode[map[string]any](t, env.Data)
	assert.InDelta(t, 2.5, stats["averageRating"], 0.001)
	assert.EqualValues(t, 2, stats["reviewCount"])

	rec, env = alice.do(http.MethodGet, "/api/reviews/me", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	mine := decode[[]reviewData](t, env.Data)
	require.Len(t, mine, 1)
	assert.Equal(t, review.ID, mine[0].ID)

	rec, env = alice.do(http.MethodPut, "/api/reviews/"+review.ID, map[string]any{"rating": 5, "reviewText": "even better"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, decode[reviewData](t, env.Data).Rating)

	rec, env = alice.do(http.MethodGet, "/api/reviews/"+review.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "even better", decode[reviewData](t, env.Data).ReviewText)

	rec, env = alice.do(http.MethodDelete, "/api/reviews/"+review.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", string(env.Data))

	rec, env = alice.do(http.MethodGet, "/api/reviews/"+review.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Review not found", env.Message)

	rec, env = alice.do(http.MethodGet, "/api/reviews/book/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Book not found", env.Message)
}

// brokenBooks fails every call so the 500 path can be observed.
type brokenBooks struct{ repository.BookRepository }

var errDatabaseDown = errors.New("database down")

func (brokenBooks) FindAll(context.Context) ([]*entity.Book, error) {
	return nil, errDatabaseDown
}

func TestUnexpectedErrorIsOpaque(t *testing.T) {
	repo := repotest.NewRepository()
	repo.Book = brokenBooks{repo.Book}
	c := newClient(t, repo)

	rec, env := c.do(http.MethodGet, "/api/books", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", env.Message)
	assert.False(t, env.IsSuccess)
	assert.NotContains(t, rec.Body.String(), "database down")
}
