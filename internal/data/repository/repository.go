package repository

import (
	"errors"

	"book-review/pkg/database"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned by writes that matched no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique constraint rejects a write.
	ErrDuplicate = errors.New("record already exists")
)

const uniqueViolation = "23505"

type Repository struct {
	User   UserRepository
	Book   BookRepository
	Review ReviewRepository
	Token  TokenRepository
}

func NewRepository(db database.PgxIface, rdb *redis.Client, log *zap.Logger) *Repository {
	return &Repository{
		User:   NewUserRepository(db, log),
		Book:   NewBookRepository(db, log),
		Review: NewReviewRepository(db, log),
		Token:  NewTokenRepository(rdb, log),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
