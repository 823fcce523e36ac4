package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/koperasi-digital/koperasi-ledger/internal/apperrors"
	portssvc "github.com/koperasi-digital/koperasi-ledger/internal/core/ports/services"
	"github.com/koperasi-digital/koperasi-ledger/internal/dto"
	"github.com/koperasi-digital/koperasi-ledger/internal/middleware"
)

// postingHandler handles transaction submissions from the savings and loan
// modules.
type postingHandler struct {
	postingService portssvc.PostingSvcFacade
}

func newPostingHandler(postingService portssvc.PostingSvcFacade) *postingHandler {
	return &postingHandler{postingService: postingService}
}

func (h *postingHandler) submitTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	submitReq := dto.SubmitTransactionRequest{}
	if err := c.ShouldBindJSON(&submitReq); err != nil {
		logger.Error("Failed to bind JSON for SubmitTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Actor-ID header is required"})
		return
	}

	entry, err := h.postingService.SubmitTransaction(c.Request.Context(), submitReq, actorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error submitting transaction", slog.String("kind", submitReq.Kind), slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrConcurrency):
			logger.Warn("Conflict submitting transaction", slog.String("kind", submitReq.Kind), slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to submit transaction in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit transaction"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// registerPostingRoutes registers the transaction submission route. The
// extra middleware carries the rate limiter; postings are the hot path.
func registerPostingRoutes(group *gin.RouterGroup, postingService portssvc.PostingSvcFacade, extra ...gin.HandlerFunc) {
	postingHandler := newPostingHandler(postingService)

	transactions := group.Group("/transactions", extra...)
	{
		transactions.POST("", postingHandler.submitTransaction)
	}
}
