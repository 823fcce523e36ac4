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

// periodHandler handles HTTP requests for accounting periods.
type periodHandler struct {
	periodService portssvc.PeriodSvcFacade
}

func newPeriodHandler(periodService portssvc.PeriodSvcFacade) *periodHandler {
	return &periodHandler{periodService: periodService}
}

func (h *periodHandler) openPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	createReq := dto.CreatePeriodRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for OpenPeriod", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Actor-ID header is required"})
		return
	}

	period, err := h.periodService.OpenPeriod(c.Request.Context(), createReq, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error opening period", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to open period in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open period"})
		}
		return
	}

	logger.Info("Accounting period opened", slog.String("period_id", period.PeriodID), slog.String("name", period.Name))
	c.JSON(http.StatusCreated, dto.ToPeriodResponse(period))
}

func (h *periodHandler) getPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	periodID := c.Param("periodID")

	period, err := h.periodService.GetPeriod(c.Request.Context(), periodID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Period not found"})
			return
		}
		logger.Error("Failed to get period from service", slog.String("error", err.Error()), slog.String("period_id", periodID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve period"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

func (h *periodHandler) listPeriods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	periods, err := h.periodService.ListPeriods(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list periods from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list periods"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"periods": dto.ToPeriodResponses(periods)})
}

// transition wraps the four status transition endpoints, which differ only
// in the service call.
func (h *periodHandler) transition(c *gin.Context, action string, fn func(ctx *gin.Context, periodID, actorID string) error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	periodID := c.Param("periodID")

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Actor-ID header is required"})
		return
	}

	if err := fn(c, periodID, actorID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Period not found"})
		case errors.Is(err, apperrors.ErrConflict):
			logger.Warn("Period transition rejected", slog.String("action", action), slog.String("period_id", periodID), slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to "+action+" period", slog.String("error", err.Error()), slog.String("period_id", periodID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action + " period"})
		}
		return
	}

	logger.Info("Period transition applied", slog.String("action", action), slog.String("period_id", periodID))
	c.Status(http.StatusNoContent)
}

func (h *periodHandler) closePeriod(c *gin.Context) {
	h.transition(c, "close", func(ctx *gin.Context, periodID, actorID string) error {
		return h.periodService.ClosePeriod(ctx.Request.Context(), periodID, actorID)
	})
}

func (h *periodHandler) reopenPeriod(c *gin.Context) {
	h.transition(c, "reopen", func(ctx *gin.Context, periodID, actorID string) error {
		return h.periodService.ReopenPeriod(ctx.Request.Context(), periodID, actorID)
	})
}

func (h *periodHandler) lockPeriod(c *gin.Context) {
	h.transition(c, "lock", func(ctx *gin.Context, periodID, actorID string) error {
		return h.periodService.LockPeriod(ctx.Request.Context(), periodID, actorID)
	})
}

func (h *periodHandler) unlockPeriod(c *gin.Context) {
	h.transition(c, "unlock", func(ctx *gin.Context, periodID, actorID string) error {
		return h.periodService.UnlockPeriod(ctx.Request.Context(), periodID, actorID)
	})
}

func (h *periodHandler) deletePeriod(c *gin.Context) {
	h.transition(c, "delete", func(ctx *gin.Context, periodID, actorID string) error {
		return h.periodService.DeletePeriod(ctx.Request.Context(), periodID, actorID)
	})
}

// registerPeriodRoutes registers accounting period routes.
func registerPeriodRoutes(group *gin.RouterGroup, periodService portssvc.PeriodSvcFacade) {
	periodHandler := newPeriodHandler(periodService)

	periods := group.Group("/periods")
	{
		periods.POST("", periodHandler.openPeriod)
		periods.GET("", periodHandler.listPeriods)
		periods.GET("/:periodID", periodHandler.getPeriod)
		periods.DELETE("/:periodID", periodHandler.deletePeriod)
		periods.POST("/:periodID/close", periodHandler.closePeriod)
		periods.POST("/:periodID/reopen", periodHandler.reopenPeriod)
		periods.POST("/:periodID/lock", periodHandler.lockPeriod)
		periods.POST("/:periodID/unlock", periodHandler.unlockPeriod)
	}
}
