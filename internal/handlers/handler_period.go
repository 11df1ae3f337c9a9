package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/meridianlend/ledger/internal/core/domain"
	portssvc "github.com/meridianlend/ledger/internal/core/ports/services"
	"github.com/meridianlend/ledger/internal/dto"
	"github.com/meridianlend/ledger/internal/middleware"
)

// periodHandler handles HTTP requests for the accounting calendar.
type periodHandler struct {
	periodService portssvc.PeriodSvcFacade
}

func newPeriodHandler(ps portssvc.PeriodSvcFacade) *periodHandler {
	return &periodHandler{periodService: ps}
}

// registerPeriodRoutes registers accounting period routes.
func registerPeriodRoutes(rg *gin.RouterGroup, periodService portssvc.PeriodSvcFacade) {
	h := newPeriodHandler(periodService)

	periods := rg.Group("/periods")
	{
		periods.POST("/fiscal-years", h.createFiscalYear)
		periods.POST("/year-end-closing", h.yearEndClosing)
		periods.GET("", h.listPeriods)
		periods.GET("/:id", h.getPeriod)
		periods.POST("/:id/soft-close", h.softClose)
		periods.POST("/:id/close", h.close)
		periods.POST("/:id/lock", h.lock)
		periods.POST("/:id/reopen", h.reopen)
	}
}

// createFiscalYear godoc
// @Summary Open a fiscal year
// @Description Creates the twelve calendar-month periods of a fiscal year in one batch
// @Tags periods
// @Accept  json
// @Produce  json
// @Param   year body dto.CreateFiscalYearRequest true "Fiscal year"
// @Success 201 {array} dto.PeriodResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Fiscal year already exists"
// @Security BearerAuth
// @Router /periods/fiscal-years [post]
func (h *periodHandler) createFiscalYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateFiscalYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateFiscalYear", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	periods, err := h.periodService.CreateFiscalYear(c.Request.Context(), req.FiscalYear, creatorUserID)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToPeriodResponses(periods))
}

// listPeriods godoc
// @Summary List periods of a fiscal year
// @Tags periods
// @Produce  json
// @Param   fiscalYear query int true "Fiscal year"
// @Success 200 {array} dto.PeriodResponse
// @Security BearerAuth
// @Router /periods [get]
func (h *periodHandler) listPeriods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	fiscalYear, err := strconv.Atoi(c.Query("fiscalYear"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fiscalYear must be an integer"})
		return
	}

	periods, err := h.periodService.ListPeriods(c.Request.Context(), fiscalYear)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPeriodResponses(periods))
}

// getPeriod godoc
// @Summary Get a period by ID
// @Tags periods
// @Produce  json
// @Param   id path string true "Period ID"
// @Success 200 {object} dto.PeriodResponse
// @Failure 404 {object} map[string]string "Period not found"
// @Security BearerAuth
// @Router /periods/{id} [get]
func (h *periodHandler) getPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	period, err := h.periodService.GetPeriod(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

func (h *periodHandler) lifecycleAction(c *gin.Context, action func(periodID, actorID string) (*domain.AccountingPeriod, error)) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	period, err := action(c.Param("id"), actorID)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

// softClose godoc
// @Summary Soft-close a period
// @Description Flags the period as closing soon; postings are still accepted
// @Tags periods
// @Produce  json
// @Param   id path string true "Period ID"
// @Success 200 {object} dto.PeriodResponse
// @Failure 409 {object} map[string]string "Transition not allowed"
// @Security BearerAuth
// @Router /periods/{id}/soft-close [post]
func (h *periodHandler) softClose(c *gin.Context) {
	h.lifecycleAction(c, func(periodID, actorID string) (*domain.AccountingPeriod, error) {
		return h.periodService.SoftClosePeriod(c.Request.Context(), periodID, actorID)
	})
}

// close godoc
// @Summary Close a period
// @Description Hard-closes the period; blocked while any entry of the period is unresolved
// @Tags periods
// @Produce  json
// @Param   id path string true "Period ID"
// @Success 200 {object} dto.PeriodResponse
// @Failure 409 {object} map[string]string "Unresolved entries or transition not allowed"
// @Security BearerAuth
// @Router /periods/{id}/close [post]
func (h *periodHandler) close(c *gin.Context) {
	h.lifecycleAction(c, func(periodID, actorID string) (*domain.AccountingPeriod, error) {
		return h.periodService.ClosePeriod(c.Request.Context(), periodID, actorID)
	})
}

// lock godoc
// @Summary Lock a period
// @Description Makes the close permanent. A locked period can never be reopened.
// @Tags periods
// @Produce  json
// @Param   id path string true "Period ID"
// @Success 200 {object} dto.PeriodResponse
// @Failure 409 {object} map[string]string "Transition not allowed"
// @Security BearerAuth
// @Router /periods/{id}/lock [post]
func (h *periodHandler) lock(c *gin.Context) {
	h.lifecycleAction(c, func(periodID, actorID string) (*domain.AccountingPeriod, error) {
		return h.periodService.LockPeriod(c.Request.Context(), periodID, actorID)
	})
}

// reopen godoc
// @Summary Reopen a period
// @Description Returns a soft-closed or closed period to Open. Locked periods never reopen.
// @Tags periods
// @Produce  json
// @Param   id path string true "Period ID"
// @Success 200 {object} dto.PeriodResponse
// @Failure 409 {object} map[string]string "Period is locked"
// @Security BearerAuth
// @Router /periods/{id}/reopen [post]
func (h *periodHandler) reopen(c *gin.Context) {
	h.lifecycleAction(c, func(periodID, actorID string) (*domain.AccountingPeriod, error) {
		return h.periodService.ReopenPeriod(c.Request.Context(), periodID, actorID)
	})
}

// yearEndClosing godoc
// @Summary Generate the year-end closing entry
// @Description Zeroes every Revenue and Expense balance of the fiscal year into Retained Earnings and posts the entry
// @Tags periods
// @Accept  json
// @Produce  json
// @Param   year body dto.YearEndClosingRequest true "Fiscal year"
// @Success 201 {object} dto.EntryResponse
// @Success 204 "Nothing to close"
// @Failure 404 {object} map[string]string "Retained earnings account missing"
// @Security BearerAuth
// @Router /periods/year-end-closing [post]
func (h *periodHandler) yearEndClosing(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.YearEndClosingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.periodService.GenerateYearEndClosing(c.Request.Context(), req.FiscalYear, actorID)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	if entry == nil {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}
