package usecase_test

import (
	"testing"

	"book-review/internal/data/repository"
	"book-review/internal/data/repository/repotest"
	"book-review/internal/dto/request"
	"book-review/internal/usecase"
	"book-review/pkg/apperror"
	"book-review/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testDefaultImage = "/rich and poor dad.jpg"

func testConfig() *utils.Config {
	return &utils.Config{
		JWT:  utils.JWTConfig{Secret: "test-secret", ExpiryHours: 1},
		Book: utils.BookConfig{DefaultImage: testDefaultImage},
	}
}

func newTestService(t *testing.T) (*usecase.Service, *repository.Repository) {
	t.Helper()
	repo := repotest.NewRepository()
	return usecase.NewService(repo, testConfig(), zap.NewNop()), repo
}

func requireStatus(t *testing.T, err error, status int, message string) {
	t.Helper()
	appErr, ok := apperror.As(err)
	require.True(t, ok, "expected *apperror.Error, got %v", err)
	assert.Equal(t, status, appErr.Status)
	assert.Equal(t, message, appErr.Message)
}

func price(v float64) *float64 { return &v }

func duneRequest() *request.BookRequest {
	return &request.BookRequest{
		Title:       "Dune",
		Author:      "Frank Herbert",
		Genre:       "Science Fiction",
		Description: "Desert planet",
		Price:       price(9.99),
	}
}
