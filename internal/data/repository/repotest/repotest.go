// Package repotest provides in-memory repositories with the same contract as
// the Postgres and redis ones, for tests that should not need infrastructure.
package repotest

import (
	"context"
	"sort"
	"sync"
	"time"

	"book-review/internal/data/entity"
	"book-review/internal/data/repository"

	"github.com/google/uuid"
)

// Store holds every collection behind one lock so cross-entity rules
// (unique titles, cascading review deletes) behave like the database.
type Store struct {
	mu      sync.Mutex
	users   map[uuid.UUID]entity.User
	books   map[uuid.UUID]entity.Book
	reviews map[uuid.UUID]entity.Review
	revoked map[string]time.Time
	seq     map[uuid.UUID]int
	next    int
}

func NewStore() *Store {
	return &Store{
		users:   make(map[uuid.UUID]entity.User),
		books:   make(map[uuid.UUID]entity.Book),
		reviews: make(map[uuid.UUID]entity.Review),
		revoked: make(map[string]time.Time),
		seq:     make(map[uuid.UUID]int),
	}
}

// NewRepository wires a fresh Store into every repository slot.
func NewRepository() *repository.Repository {
	return NewStore().Repository()
}

func (s *Store) Repository() *repository.Repository {
	return &repository.Repository{
		User:   &userRepo{s},
		Book:   &bookRepo{s},
		Review: &reviewRepo{s},
		Token:  &tokenRepo{s},
	}
}

func (s *Store) stamp(id uuid.UUID) {
	s.next++
	s.seq[id] = s.next
}

// ==================== BOOKS ====================

type bookRepo struct{ s *Store }

func (r *bookRepo) titleTaken(title string, except uuid.UUID) bool {
	for id, b := range r.s.books {
		if id != except && b.Title == title {
			return true
		}
	}
	return false
}

func (r *bookRepo) Create(ctx context.Context, book *entity.Book) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.books[book.ID]; ok || r.titleTaken(book.Title, uuid.Nil) {
		return repository.ErrDuplicate
	}
	r.s.books[book.ID] = *book
	r.s.stamp(book.ID)
	return nil
}

func (r *bookRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Book, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.books[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r *bookRepo) FindByTitle(ctx context.Context, title string) (*entity.Book, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, b := range r.s.books {
		if b.Title == title {
			found := b
			return &found, nil
		}
	}
	return nil, nil
}

func (r *bookRepo) FindAll(ctx context.Context) ([]*entity.Book, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	books := make([]*entity.Book, 0, len(r.s.books))
	for _, b := range r.s.books {
		b := b
		books = append(books, &b)
	}
	sort.Slice(books, func(i, j int) bool {
		return r.s.seq[books[i].ID] < r.s.seq[books[j].ID]
	})
	return books, nil
}

func (r *bookRepo) Update(ctx context.Context, book *entity.Book) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.books[book.ID]; !ok {
		return repository.ErrNotFound
	}
	if r.titleTaken(book.Title, book.ID) {
		return repository.ErrDuplicate
	}
	r.s.books[book.ID] = *book
	return nil
}

func (r *bookRepo) Delete(ctx context.Context, id uuid.UUID) (*entity.Book, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.books[id]
	if !ok {
		return nil, nil
	}
	delete(r.s.books, id)
	for reviewID, review := range r.s.reviews {
		if review.BookID == id {
			delete(r.s.reviews, reviewID)
		}
	}
	return &b, nil
}

// ==================== REVIEWS ====================

type reviewRepo struct{ s *Store }

func (r *reviewRepo) Create(ctx context.Context, review *entity.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.reviews {
		if existing.UserID == review.UserID && existing.BookID == review.BookID {
			return repository.ErrDuplicate
		}
	}
	r.s.reviews[review.ID] = *review
	r.s.stamp(review.ID)
	return nil
}

func (r *reviewRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	review, ok := r.s.reviews[id]
	if !ok {
		return nil, nil
	}
	return &review, nil
}

// filter returns matching reviews newest first.
func (r *reviewRepo) filter(match func(entity.Review) bool) []*entity.Review {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	reviews := make([]*entity.Review, 0)
	for _, review := range r.s.reviews {
		if match(review) {
			review := review
			reviews = append(reviews, &review)
		}
	}
	sort.Slice(reviews, func(i, j int) bool {
		return r.s.seq[reviews[i].ID] > r.s.seq[reviews[j].ID]
	})
	return reviews
}

func (r *reviewRepo) FindByBookID(ctx context.Context, bookID uuid.UUID) ([]*entity.Review, error) {
	return r.filter(func(review entity.Review) bool { return review.BookID == bookID }), nil
}

func (r *reviewRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Review, error) {
	return r.filter(func(review entity.Review) bool { return review.UserID == userID }), nil
}

func (r *reviewRepo) FindByUserAndBook(ctx context.Context, userID, bookID uuid.UUID) (*entity.Review, error) {
	reviews := r.filter(func(review entity.Review) bool {
		return review.UserID == userID && review.BookID == bookID
	})
	if len(reviews) == 0 {
		return nil, nil
	}
	return reviews[0], nil
}

func (r *reviewRepo) Update(ctx context.Context, review *entity.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.reviews[review.ID]
	if !ok {
		return repository.ErrNotFound
	}
	existing.Rating = review.Rating
	existing.ReviewText = review.ReviewText
	existing.UpdatedAt = review.UpdatedAt
	r.s.reviews[review.ID] = existing
	return nil
}

func (r *reviewRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.reviews[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.reviews, id)
	return nil
}

func (r *reviewRepo) GetBookReviewStats(ctx context.Context, bookID uuid.UUID) (float64, int64, error) {
	reviews := r.filter(func(review entity.Review) bool { return review.BookID == bookID })
	if len(reviews) == 0 {
		return 0, 0, nil
	}

	total := 0
	for _, review := range reviews {
		total += review.Rating
	}
	return float64(total) / float64(len(reviews)), int64(len(reviews)), nil
}

// ==================== USERS ====================

type userRepo struct{ s *Store }

func (r *userRepo) Create(ctx context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *userRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	user, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, user := range r.s.users {
		if user.Email == email {
			found := user
			return &found, nil
		}
	}
	return nil, nil
}

// ==================== TOKENS ====================

type tokenRepo struct{ s *Store }

func (r *tokenRepo) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.revoked[tokenID] = time.Now().Add(ttl)
	return nil
}

func (r *tokenRepo) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	expiresAt, ok := r.s.revoked[tokenID]
	return ok && time.Now().Before(expiresAt), nil
}
