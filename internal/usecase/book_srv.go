package usecase

import (
	"context"
	"errors"
	"fmt"

	"book-review/internal/data/entity"
	"book-review/internal/data/repository"
	"book-review/internal/dto/request"
	"book-review/internal/dto/response"
	"book-review/pkg/apperror"
	"book-review/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	msgBookExists   = "Book already exists"
	msgBookNotFound = "Book not found"
)

type BookService interface {
	GetBooks(ctx context.Context) ([]response.BookResponse, error)
	GetBookByID(ctx context.Context, bookID string) (*response.BookResponse, error)
	CreateBook(ctx context.Context, req *request.BookRequest) (*response.BookResponse, error)
	UpdateBook(ctx context.Context, bookID string, req *request.BookRequest) (*response.BookResponse, error)
	DeleteBook(ctx context.Context, bookID string) (*response.BookResponse, error)
}

type bookService struct {
	repo         *repository.Repository
	defaultImage string
	log          *zap.Logger
}

func NewBookService(
	repo *repository.Repository,
	config utils.BookConfig,
	log *zap.Logger,
) BookService {
	return &bookService{
		repo:         repo,
		defaultImage: config.DefaultImage,
		log:          log.With(zap.String("service", "book")),
	}
}

func (s *bookService) GetBooks(ctx context.Context) ([]response.BookResponse, error) {
	books, err := s.repo.Book.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to get books", zap.Error(err))
		return nil, fmt.Errorf("get books: %w", err)
	}

	s.log.Debug("Books retrieved", zap.Int("count", len(books)))
	return response.BooksToResponse(books), nil
}

func (s *bookService) GetBookByID(ctx context.Context, bookID string) (*response.BookResponse, error) {
	book, err := s.findBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	resp := response.BookToResponse(book)
	return &resp, nil
}

func (s *bookService) CreateBook(ctx context.Context, req *request.BookRequest) (*response.BookResponse, error) {
	// Title must be unique
	existing, err := s.repo.Book.FindByTitle(ctx, req.Title)
	if err != nil {
		s.log.Error("Failed to check book title", zap.Error(err), zap.String("title", req.Title))
		return nil, fmt.Errorf("check book title: %w", err)
	}
	if existing != nil {
		return nil, apperror.Conflict(msgBookExists)
	}

	image := req.Image
	if image == "" {
		image = s.defaultImage
	}

	book := &entity.Book{
		Base:        entity.NewBase(),
		Title:       req.Title,
		Author:      req.Author,
		Genre:       req.Genre,
		Description: req.Description,
		Image:       image,
		Price:       *req.Price,
	}

	// The unique index still catches a concurrent insert of the same title
	if err := s.repo.Book.Create(ctx, book); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.Conflict(msgBookExists)
		}
		s.log.Error("Failed to create book", zap.Error(err), zap.String("title", req.Title))
		return nil, fmt.Errorf("create book: %w", err)
	}

	s.log.Info("Book created",
		zap.String("book_id", book.ID.String()),
		zap.String("title", book.Title),
	)

	resp := response.BookToResponse(book)
	return &resp, nil
}

func (s *bookService) UpdateBook(ctx context.Context, bookID string, req *request.BookRequest) (*response.BookResponse, error) {
	book, err := s.findBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	// Full overwrite, no defaults
	book.Title = req.Title
	book.Author = req.Author
	book.Genre = req.Genre
	book.Description = req.Description
	book.Image = req.Image
	book.Price = *req.Price
	book.Touch()

	if err := s.repo.Book.Update(ctx, book); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, apperror.Conflict(msgBookExists)
		case errors.Is(err, repository.ErrNotFound):
			return nil, apperror.NotFound(msgBookNotFound)
		}
		s.log.Error("Failed to update book", zap.Error(err), zap.String("book_id", bookID))
		return nil, fmt.Errorf("update book: %w", err)
	}

	s.log.Info("Book updated", zap.String("book_id", bookID))

	resp := response.BookToResponse(book)
	return &resp, nil
}

func (s *bookService) DeleteBook(ctx context.Context, bookID string) (*response.BookResponse, error) {
	id, err := uuid.Parse(bookID)
	if err != nil {
		return nil, apperror.NotFound(msgBookNotFound)
	}

	book, err := s.repo.Book.Delete(ctx, id)
	if err != nil {
		s.log.Error("Failed to delete book", zap.Error(err), zap.String("book_id", bookID))
		return nil, fmt.Errorf("delete book: %w", err)
	}
	if book == nil {
		return nil, apperror.NotFound(msgBookNotFound)
	}

	s.log.Info("Book deleted",
		zap.String("book_id", bookID),
		zap.String("title", book.Title),
	)

	resp := response.BookToResponse(book)
	return &resp, nil
}

// findBook resolves an id from the URL; a malformed id is simply not found.
func (s *bookService) findBook(ctx context.Context, bookID string) (*entity.Book, error) {
	id, err := uuid.Parse(bookID)
	if err != nil {
		return nil, apperror.NotFound(msgBookNotFound)
	}

	book, err := s.repo.Book.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get book", zap.Error(err), zap.String("book_id", bookID))
		return nil, fmt.Errorf("get book %s: %w", bookID, err)
	}
	if book == nil {
		return nil, apperror.NotFound(msgBookNotFound)
	}
	return book, nil
}
