package adaptor

import (
	"encoding/json"
	"net/http"

	"book-review/internal/usecase"
	"book-review/pkg/apperror"
	"book-review/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth   *AuthHandler
	Book   *BookHandler
	Review *ReviewHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Auth:   NewAuthHandler(service.Auth, config.Cookie, log),
		Book:   NewBookHandler(service.Book, log),
		Review: NewReviewHandler(service.Review, log),
	}
}

// payload is a request DTO that tidies its own fields before validation.
type payload interface {
	Normalize()
}

// decodeAndValidate writes the 400 response itself and reports whether the
// handler may continue.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req payload) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body")
		return false
	}

	req.Normalize()

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed: "+utils.FormatValidationErrors(validationErrors))
		return false
	}
	return true
}

// handleServiceError answers typed errors with their own status and message;
// anything else is logged and hidden behind a 500.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	if appErr, ok := apperror.As(err); ok {
		log.Warn(operation+" failed",
			zap.Int("status", appErr.Status),
			zap.String("message", appErr.Message),
			zap.String("operation", operation))
		utils.ResponseFailure(w, appErr.Status, appErr.Message)
		return
	}

	log.Error(operation+" failed",
		zap.Error(err),
		zap.String("operation", operation))
	utils.ResponseInternalError(w)
}
