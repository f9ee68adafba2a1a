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

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	msgReviewNotFound  = "Review not found"
	msgAlreadyReviewed = "You have already reviewed this book"
	msgNotReviewOwner  = "You can only modify your own reviews"
)

type ReviewService interface {
	// Public endpoints
	GetReviewByID(ctx context.Context, reviewID string) (*response.ReviewResponse, error)
	GetBookReviews(ctx context.Context, bookID string) ([]response.ReviewResponse, error)
	GetBookReviewStats(ctx context.Context, bookID string) (*response.BookReviewStats, error)

	// Authenticated endpoints
	CreateReview(ctx context.Context, userID uuid.UUID, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	GetUserReviews(ctx context.Context, userID uuid.UUID) ([]response.ReviewResponse, error)
	UpdateReview(ctx context.Context, reviewID string, userID uuid.UUID, req *request.UpdateReviewRequest) (*response.ReviewResponse, error)
	DeleteReview(ctx context.Context, reviewID string, userID uuid.UUID) error
}

type reviewService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) CreateReview(ctx context.Context, userID uuid.UUID, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	// Check if book exists
	book, err := s.findBook(ctx, req.BookID)
	if err != nil {
		return nil, err
	}

	// One review per user and book
	existingReview, err := s.repo.Review.FindByUserAndBook(ctx, userID, book.ID)
	if err != nil {
		s.log.Error("Failed to check existing review", zap.Error(err))
		return nil, fmt.Errorf("check existing review: %w", err)
	}
	if existingReview != nil {
		return nil, apperror.Conflict(msgAlreadyReviewed)
	}

	review := &entity.Review{
		Base:       entity.NewBase(),
		BookID:     book.ID,
		UserID:     userID,
		Rating:     req.Rating,
		ReviewText: req.ReviewText,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.Conflict(msgAlreadyReviewed)
		}
		s.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("book_id", req.BookID),
		)
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("book_id", req.BookID),
		zap.Int("rating", req.Rating),
	)

	resp := response.ReviewToResponse(review, s.userName(ctx, userID), book.Title)
	return &resp, nil
}

func (s *reviewService) GetReviewByID(ctx context.Context, reviewID string) (*response.ReviewResponse, error) {
	review, err := s.findReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	resp := response.ReviewToResponse(review, s.userName(ctx, review.UserID), s.bookTitle(ctx, review.BookID))
	return &resp, nil
}

func (s *reviewService) GetBookReviews(ctx context.Context, bookID string) ([]response.ReviewResponse, error) {
	book, err := s.findBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	reviews, err := s.repo.Review.FindByBookID(ctx, book.ID)
	if err != nil {
		s.log.Error("Failed to get book reviews", zap.Error(err), zap.String("book_id", bookID))
		return nil, fmt.Errorf("get book reviews: %w", err)
	}

	reviewResponses := make([]response.ReviewResponse, len(reviews))
	for i, review := range reviews {
		reviewResponses[i] = response.ReviewToResponse(review, s.userName(ctx, review.UserID), book.Title)
	}

	s.log.Debug("Book reviews retrieved",
		zap.String("book_id", bookID),
		zap.Int("count", len(reviews)),
	)
	return reviewResponses, nil
}

func (s *reviewService) GetUserReviews(ctx context.Context, userID uuid.UUID) ([]response.ReviewResponse, error) {
	reviews, err := s.repo.Review.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to get user reviews", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("get user reviews: %w", err)
	}

	userName := s.userName(ctx, userID)

	reviewResponses := make([]response.ReviewResponse, len(reviews))
	for i, review := range reviews {
		reviewResponses[i] = response.ReviewToResponse(review, userName, s.bookTitle(ctx, review.BookID))
	}
	return reviewResponses, nil
}

func (s *reviewService) UpdateReview(ctx context.Context, reviewID string, userID uuid.UUID, req *request.UpdateReviewRequest) (*response.ReviewResponse, error) {
	review, err := s.findOwnedReview(ctx, reviewID, userID)
	if err != nil {
		return nil, err
	}

	review.Rating = req.Rating
	review.ReviewText = req.ReviewText
	review.Touch()

	if err := s.repo.Review.Update(ctx, review); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound(msgReviewNotFound)
		}
		s.log.Error("Failed to update review", zap.Error(err), zap.String("review_id", reviewID))
		return nil, fmt.Errorf("update review: %w", err)
	}

	s.log.Info("Review updated",
		zap.String("review_id", reviewID),
		zap.String("user_id", userID.String()),
		zap.Int("rating", req.Rating),
	)

	resp := response.ReviewToResponse(review, s.userName(ctx, userID), s.bookTitle(ctx, review.BookID))
	return &resp, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, reviewID string, userID uuid.UUID) error {
	review, err := s.findOwnedReview(ctx, reviewID, userID)
	if err != nil {
		return err
	}

	if err := s.repo.Review.Delete(ctx, review.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound(msgReviewNotFound)
		}
		s.log.Error("Failed to delete review", zap.Error(err), zap.String("review_id", reviewID))
		return fmt.Errorf("delete review: %w", err)
	}

	s.log.Info("Review deleted",
		zap.String("review_id", reviewID),
		zap.String("user_id", userID.String()),
	)
	return nil
}

func (s *reviewService) GetBookReviewStats(ctx context.Context, bookID string) (*response.BookReviewStats, error) {
	book, err := s.findBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	avgRating, count, err := s.repo.Review.GetBookReviewStats(ctx, book.ID)
	if err != nil {
		s.log.Error("Failed to get book review stats", zap.Error(err), zap.String("book_id", bookID))
		return nil, fmt.Errorf("get book review stats: %w", err)
	}

	return &response.BookReviewStats{
		BookID:        book.ID.String(),
		AverageRating: avgRating,
		ReviewCount:   count,
	}, nil
}

// Helpers

func (s *reviewService) findBook(ctx context.Context, bookID string) (*entity.Book, error) {
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

func (s *reviewService) findReview(ctx context.Context, reviewID string) (*entity.Review, error) {
	id, err := uuid.Parse(reviewID)
	if err != nil {
		return nil, apperror.NotFound(msgReviewNotFound)
	}

	review, err := s.repo.Review.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get review", zap.Error(err), zap.String("review_id", reviewID))
		return nil, fmt.Errorf("get review %s: %w", reviewID, err)
	}
	if review == nil {
		return nil, apperror.NotFound(msgReviewNotFound)
	}
	return review, nil
}

func (s *reviewService) findOwnedReview(ctx context.Context, reviewID string, userID uuid.UUID) (*entity.Review, error) {
	review, err := s.findReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.UserID != userID {
		s.log.Warn("Review ownership check failed",
			zap.String("review_id", reviewID),
			zap.String("user_id", userID.String()),
		)
		return nil, apperror.Forbidden(msgNotReviewOwner)
	}
	return review, nil
}

// userName and bookTitle decorate responses; a failed lookup leaves the field empty.
func (s *reviewService) userName(ctx context.Context, userID uuid.UUID) string {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		s.log.Warn("Failed to get review author", zap.Error(err), zap.String("user_id", userID.String()))
	}
	if user == nil {
		return ""
	}
	return user.Name
}

func (s *reviewService) bookTitle(ctx context.Context, bookID uuid.UUID) string {
	book, err := s.repo.Book.FindByID(ctx, bookID)
	if err != nil {
		s.log.Warn("Failed to get reviewed book", zap.Error(err), zap.String("book_id", bookID.String()))
	}
	if book == nil {
		return ""
	}
	return book.Title
}
