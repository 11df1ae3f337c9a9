package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/meridianlend/ledger/internal/core/ports/services"
	"github.com/meridianlend/ledger/internal/dto"
	"github.com/meridianlend/ledger/internal/middleware"
)

// journalHandler handles HTTP requests for the journal engine.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func newJournalHandler(js portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalService: js}
}

// registerJournalRoutes registers journal entry routes.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	entries := rg.Group("/entries")
	{
		entries.POST("", h.createEntry)
		entries.POST("/preview", h.previewEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:id", h.getEntry)
		entries.POST("/:id/submit", h.submitEntry)
		entries.POST("/:id/approve", h.approveEntry)
		entries.POST("/:id/post", h.postEntry)
		entries.POST("/:id/reject", h.rejectEntry)
		entries.POST("/:id/reverse", h.reverseEntry)
	}
}

// createEntry godoc
// @Summary Create a journal entry
// @Description Validates and records a balanced double-entry transaction as a Draft. Set autoPost to drive it straight to Posted.
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateEntryRequest true "Entry details"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 422 {object} map[string]string "Unbalanced entry or no postable period"
// @Security BearerAuth
// @Router /entries [post]
func (h *journalHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.journalService.CreateEntry(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// previewEntry godoc
// @Summary Preview a journal entry
// @Description Dry-runs validation and rounding, returning the computed totals without persisting anything
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateEntryRequest true "Entry details"
// @Success 200 {object} dto.PreviewEntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /entries/preview [post]
func (h *journalHandler) previewEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	resp, err := h.journalService.PreviewEntry(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// listEntries godoc
// @Summary List journal entries
// @Tags entries
// @Produce  json
// @Param   periodID query string false "Filter by period"
// @Param   status query string false "Filter by status"
// @Param   sourceType query string false "Filter by source type"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Pagination cursor"
// @Success 200 {object} dto.ListEntriesResponse
// @Security BearerAuth
// @Router /entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.journalService.ListEntries(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getEntry godoc
// @Summary Get a journal entry with its lines
// @Tags entries
// @Produce  json
// @Param   id path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Security BearerAuth
// @Router /entries/{id} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	entry, err := h.journalService.GetEntry(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

func (h *journalHandler) entryAction(c *gin.Context, action func(entryID, actorID string) (*dto.EntryResponse, error)) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := action(c.Param("id"), actorID)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// submitEntry godoc
// @Summary Submit a draft entry for approval
// @Tags entries
// @Produce  json
// @Param   id path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 409 {object} map[string]string "Transition not allowed"
// @Security BearerAuth
// @Router /entries/{id}/submit [post]
func (h *journalHandler) submitEntry(c *gin.Context) {
	h.entryAction(c, func(entryID, actorID string) (*dto.EntryResponse, error) {
		entry, err := h.journalService.SubmitEntry(c.Request.Context(), entryID, actorID)
		if err != nil {
			return nil, err
		}
		resp := dto.ToEntryResponse(entry)
		return &resp, nil
	})
}

// approveEntry godoc
// @Summary Approve a pending entry
// @Description The submitter of an entry cannot approve it
// @Tags entries
// @Produce  json
// @Param   id path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 403 {object} map[string]string "Self-approval forbidden"
// @Failure 409 {object} map[string]string "Transition not allowed"
// @Security BearerAuth
// @Router /entries/{id}/approve [post]
func (h *journalHandler) approveEntry(c *gin.Context) {
	h.entryAction(c, func(entryID, actorID string) (*dto.EntryResponse, error) {
		entry, err := h.journalService.ApproveEntry(c.Request.Context(), entryID, actorID)
		if err != nil {
			return nil, err
		}
		resp := dto.ToEntryResponse(entry)
		return &resp, nil
	})
}

// postEntry godoc
// @Summary Post an approved entry
// @Description Makes the entry immutable ledger fact after re-validating the period and account gates
// @Tags entries
// @Produce  json
// @Param   id path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 409 {object} map[string]string "Transition not allowed or period closed"
// @Security BearerAuth
// @Router /entries/{id}/post [post]
func (h *journalHandler) postEntry(c *gin.Context) {
	h.entryAction(c, func(entryID, actorID string) (*dto.EntryResponse, error) {
		entry, err := h.journalService.PostEntry(c.Request.Context(), entryID, actorID)
		if err != nil {
			return nil, err
		}
		resp := dto.ToEntryResponse(entry)
		return &resp, nil
	})
}

// rejectEntry godoc
// @Summary Reject a pending or approved entry
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   id path string true "Entry ID"
// @Param   rejection body dto.RejectEntryRequest true "Rejection reason"
// @Success 200 {object} dto.EntryResponse
// @Failure 409 {object} map[string]string "Transition not allowed"
// @Security BearerAuth
// @Router /entries/{id}/reject [post]
func (h *journalHandler) rejectEntry(c *gin.Context) {
	var req dto.RejectEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	h.entryAction(c, func(entryID, actorID string) (*dto.EntryResponse, error) {
		entry, err := h.journalService.RejectEntry(c.Request.Context(), entryID, req.Reason, actorID)
		if err != nil {
			return nil, err
		}
		resp := dto.ToEntryResponse(entry)
		return &resp, nil
	})
}

// reverseEntry godoc
// @Summary Reverse a posted entry
// @Description Creates and posts the mirror entry, marking the original Reversed. Posted entries are never edited in place.
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   id path string true "Entry ID"
// @Param   reversal body dto.ReverseEntryRequest true "Reversal reason"
// @Success 201 {object} dto.EntryResponse
// @Failure 409 {object} map[string]string "Entry not posted or already reversed"
// @Security BearerAuth
// @Router /entries/{id}/reverse [post]
func (h *journalHandler) reverseEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ReverseEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reversal, err := h.journalService.ReverseEntry(c.Request.Context(), c.Param("id"), actorID, req.Reason)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(reversal))
}
