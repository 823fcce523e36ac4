package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/koperasi-digital/koperasi-ledger/internal/apperrors"
	"github.com/koperasi-digital/koperasi-ledger/internal/core/domain"
	portssvc "github.com/koperasi-digital/koperasi-ledger/internal/core/ports/services"
	"github.com/koperasi-digital/koperasi-ledger/internal/dto"
	"github.com/koperasi-digital/koperasi-ledger/internal/middleware"
)

// rateHandler handles HTTP requests for effective-dated interest rates.
type rateHandler struct {
	rateService portssvc.RateSvcFacade
}

func newRateHandler(rateService portssvc.RateSvcFacade) *rateHandler {
	return &rateHandler{rateService: rateService}
}

func (h *rateHandler) scheduleRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	scheduleReq := dto.ScheduleRateRequest{}
	if err := c.ShouldBindJSON(&scheduleReq); err != nil {
		logger.Error("Failed to bind JSON for ScheduleRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Actor-ID header is required"})
		return
	}

	rate, err := h.rateService.ScheduleRate(c.Request.Context(), scheduleReq, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error scheduling rate", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to schedule rate in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to schedule rate"})
		}
		return
	}

	logger.Info("Interest rate scheduled",
		slog.String("rate_id", rate.RateID),
		slog.String("scope_ref", rate.ScopeRef),
		slog.String("effective_date", rate.EffectiveDate.Format("2006-01-02")),
	)
	c.JSON(http.StatusCreated, dto.ToRateResponse(rate))
}

func (h *rateHandler) resolveRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	params := dto.ResolveRateParams{}
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "scopeRef and transactionType query parameters are required"})
		return
	}
	asOf := params.AsOf
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}

	rate, err := h.rateService.ResolveActiveRate(c.Request.Context(), params.ScopeRef, domain.RateTransactionType(params.TransactionType), asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No rate in force for the given scope and date"})
			return
		}
		logger.Error("Failed to resolve rate from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve rate"})
		return
	}

	c.JSON(http.StatusOK, dto.ToRateResponse(rate))
}

func (h *rateHandler) listRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	scopeRef := c.Query("scopeRef")
	txnType := c.Query("transactionType")
	if scopeRef == "" || txnType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "scopeRef and transactionType query parameters are required"})
		return
	}

	rates, err := h.rateService.ListRates(c.Request.Context(), scopeRef, domain.RateTransactionType(txnType))
	if err != nil {
		logger.Error("Failed to list rates from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list rates"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"rates": dto.ToRateResponses(rates)})
}

func (h *rateHandler) updateRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	rateID := c.Param("rateID")

	updateReq := dto.UpdateRateRequest{}
	if err := c.ShouldBindJSON(&updateReq); err != nil {
		logger.Error("Failed to bind JSON for UpdateRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Actor-ID header is required"})
		return
	}

	rate, err := h.rateService.UpdateRate(c.Request.Context(), rateID, updateReq, actorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Rate not found"})
		case errors.Is(err, apperrors.ErrConflict):
			logger.Warn("Rate already live", slog.String("rate_id", rateID))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update rate in service", slog.String("error", err.Error()), slog.String("rate_id", rateID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update rate"})
		}
		return
	}

	logger.Info("Interest rate updated", slog.String("rate_id", rate.RateID))
	c.JSON(http.StatusOK, dto.ToRateResponse(rate))
}

func (h *rateHandler) deleteRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	rateID := c.Param("rateID")

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Actor-ID header is required"})
		return
	}

	if err := h.rateService.DeleteRate(c.Request.Context(), rateID, actorID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Rate not found"})
		case errors.Is(err, apperrors.ErrConflict):
			logger.Warn("Rate already live", slog.String("rate_id", rateID))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to delete rate in service", slog.String("error", err.Error()), slog.String("rate_id", rateID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete rate"})
		}
		return
	}

	logger.Info("Interest rate deleted", slog.String("rate_id", rateID))
	c.Status(http.StatusNoContent)
}

// registerRateRoutes registers interest rate routes.
func registerRateRoutes(group *gin.RouterGroup, rateService portssvc.RateSvcFacade) {
	rateHandler := newRateHandler(rateService)

	rates := group.Group("/rates")
	{
		rates.POST("", rateHandler.scheduleRate)
		rates.GET("", rateHandler.listRates)
		rates.GET("/resolve", rateHandler.resolveRate)
		rates.PUT("/:rateID", rateHandler.updateRate)
		rates.DELETE("/:rateID", rateHandler.deleteRate)
	}
}
