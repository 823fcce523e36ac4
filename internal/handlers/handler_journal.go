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

// journalHandler handles HTTP requests for journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func newJournalHandler(journalService portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalService: journalService}
}

// respondJournalError maps service errors onto HTTP statuses. Validation
// failures carry the service message so clients can see which invariant was
// violated.
func respondJournalError(c *gin.Context, logger *slog.Logger, err error, action string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Journal entry not found"})
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrConcurrency):
		logger.Warn("Conflict", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error("Service failure", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}

func (h *journalHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	createReq := dto.CreateEntryRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for CreateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Warn("Actor ID not found in context")
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Actor-ID header is required"})
		return
	}

	entry, err := h.journalService.CreateEntry(c.Request.Context(), createReq, actorID)
	if err != nil {
		respondJournalError(c, logger, err, "create journal entry")
		return
	}

	logger.Info("Journal entry created",
		slog.String("entry_id", entry.EntryID),
		slog.String("entry_number", entry.EntryNumber),
		slog.String("status", string(entry.Status)),
	)
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

func (h *journalHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	entry, err := h.journalService.GetEntry(c.Request.Context(), entryID)
	if err != nil {
		respondJournalError(c, logger, err, "retrieve journal entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

func (h *journalHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	params := dto.ListEntriesParams{}
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination parameters"})
		return
	}

	entries, err := h.journalService.ListEntries(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to list journal entries", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list journal entries"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": dto.ToEntryResponses(entries)})
}

func (h *journalHandler) editEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	editReq := dto.EditEntryRequest{}
	if err := c.ShouldBindJSON(&editReq); err != nil {
		logger.Error("Failed to bind JSON for EditEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Actor-ID header is required"})
		return
	}

	entry, err := h.journalService.EditEntry(c.Request.Context(), entryID, editReq, actorID)
	if err != nil {
		respondJournalError(c, logger, err, "edit journal entry")
		return
	}

	logger.Info("Journal entry edited", slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

func (h *journalHandler) postEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Actor-ID header is required"})
		return
	}

	entry, err := h.journalService.PostEntry(c.Request.Context(), entryID, actorID)
	if err != nil {
		respondJournalError(c, logger, err, "post journal entry")
		return
	}

	logger.Info("Journal entry posted", slog.String("entry_id", entry.EntryID), slog.String("entry_number", entry.EntryNumber))
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

func (h *journalHandler) reverseEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	reverseReq := dto.ReverseEntryRequest{}
	if err := c.ShouldBindJSON(&reverseReq); err != nil {
		logger.Error("Failed to bind JSON for ReverseEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Actor-ID header is required"})
		return
	}

	reversal, err := h.journalService.ReverseEntry(c.Request.Context(), entryID, reverseReq.ReversalDate, actorID)
	if err != nil {
		respondJournalError(c, logger, err, "reverse journal entry")
		return
	}

	logger.Info("Journal entry reversed",
		slog.String("original_entry_id", entryID),
		slog.String("reversing_entry_id", reversal.EntryID),
	)
	c.JSON(http.StatusCreated, dto.ToEntryResponse(reversal))
}

func (h *journalHandler) deleteEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-Actor-ID header is required"})
		return
	}

	if err := h.journalService.DeleteEntry(c.Request.Context(), entryID, actorID); err != nil {
		respondJournalError(c, logger, err, "delete journal entry")
		return
	}

	logger.Info("Journal entry deleted", slog.String("entry_id", entryID))
	c.Status(http.StatusNoContent)
}

// registerJournalRoutes registers journal entry routes.
func registerJournalRoutes(group *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	journalHandler := newJournalHandler(journalService)

	entries := group.Group("/entries")
	{
		entries.POST("", journalHandler.createEntry)
		entries.GET("", journalHandler.listEntries)
		entries.GET("/:entryID", journalHandler.getEntry)
		entries.PUT("/:entryID", journalHandler.editEntry)
		entries.DELETE("/:entryID", journalHandler.deleteEntry)
		entries.POST("/:entryID/post", journalHandler.postEntry)
		entries.POST("/:entryID/reverse", journalHandler.reverseEntry)
	}
}
