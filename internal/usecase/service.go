package usecase

import (
	"book-review/internal/data/repository"
	"book-review/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth   AuthService
	Book   BookService
	Review ReviewService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:   NewAuthService(repo, config, log),
		Book:   NewBookService(repo, config.Book, log),
		Review: NewReviewService(repo, log),
	}
}
