package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/meridianlend/ledger/internal/core/ports/services"
	"github.com/meridianlend/ledger/internal/dto"
	"github.com/meridianlend/ledger/internal/middleware"
)

// accountHandler handles HTTP requests for the chart of accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
	journalService portssvc.JournalSvcFacade
}

func newAccountHandler(as portssvc.AccountSvcFacade, js portssvc.JournalSvcFacade) *accountHandler {
	return &accountHandler{accountService: as, journalService: js}
}

// registerAccountRoutes registers chart-of-accounts routes.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade, journalService portssvc.JournalSvcFacade) {
	h := newAccountHandler(accountService, journalService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/code/:code", h.getAccountByCode)
		accounts.GET("/:id", h.getAccount)
		accounts.PUT("/:id", h.updateAccount)
		accounts.POST("/:id/freeze", h.freezeAccount)
		accounts.POST("/:id/reactivate", h.reactivateAccount)
		accounts.POST("/:id/close", h.closeAccount)
		accounts.GET("/:id/balance", h.getBalance)
		accounts.GET("/:id/audit", h.listAuditTrail)
		accounts.GET("/:id/lines", h.listAccountLines)
	}

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.getTrialBalance)
	}
}

// createAccount godoc
// @Summary Create a GL account
// @Description Creates an account in the chart of accounts. The account code is generated from the parent unless supplied.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Parent or currency not found"
// @Failure 409 {object} map[string]string "Account code already exists"
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts
// @Tags accounts
// @Produce  json
// @Param   limit query int false "Page size" default(50)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListAccountsResponse
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToListAccountResponse(accounts)})
}

// getAccount godoc
// @Summary Get an account by ID
// @Tags accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /accounts/{id} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	account, err := h.accountService.GetAccountByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// getAccountByCode godoc
// @Summary Get an account by code
// @Tags accounts
// @Produce  json
// @Param   code path string true "Account code, e.g. 1-1000-001"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /accounts/code/{code} [get]
func (h *accountHandler) getAccountByCode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	account, err := h.accountService.GetAccountByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// updateAccount godoc
// @Summary Update an account
// @Description Updates the mutable fields of an account. System accounts accept only name and description.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   account body dto.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} dto.AccountResponse
// @Failure 403 {object} map[string]string "System account restriction"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /accounts/{id} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), c.Param("id"), req, actorID)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

func (h *accountHandler) statusAction(c *gin.Context, action func(string, string) (*dto.AccountResponse, error)) {
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

// freezeAccount godoc
// @Summary Freeze an account
// @Description Blocks new postings to the account until it is reactivated
// @Tags accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 409 {object} map[string]string "Account not active"
// @Security BearerAuth
// @Router /accounts/{id}/freeze [post]
func (h *accountHandler) freezeAccount(c *gin.Context) {
	h.statusAction(c, func(id, actorID string) (*dto.AccountResponse, error) {
		account, err := h.accountService.FreezeAccount(c.Request.Context(), id, actorID)
		if err != nil {
			return nil, err
		}
		resp := dto.ToAccountResponse(account)
		return &resp, nil
	})
}

// reactivateAccount godoc
// @Summary Reactivate a frozen account
// @Tags accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 409 {object} map[string]string "Account not frozen"
// @Security BearerAuth
// @Router /accounts/{id}/reactivate [post]
func (h *accountHandler) reactivateAccount(c *gin.Context) {
	h.statusAction(c, func(id, actorID string) (*dto.AccountResponse, error) {
		account, err := h.accountService.ReactivateAccount(c.Request.Context(), id, actorID)
		if err != nil {
			return nil, err
		}
		resp := dto.ToAccountResponse(account)
		return &resp, nil
	})
}

// closeAccount godoc
// @Summary Close an account
// @Description Closes an account permanently. Fails when the account has any journal history.
// @Tags accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 409 {object} map[string]string "Account has journal history"
// @Security BearerAuth
// @Router /accounts/{id}/close [post]
func (h *accountHandler) closeAccount(c *gin.Context) {
	h.statusAction(c, func(id, actorID string) (*dto.AccountResponse, error) {
		account, err := h.accountService.CloseAccount(c.Request.Context(), id, actorID)
		if err != nil {
			return nil, err
		}
		resp := dto.ToAccountResponse(account)
		return &resp, nil
	})
}

// getBalance godoc
// @Summary Get an account balance
// @Description Sums posted lines only, honouring the account's normal side. Control accounts can roll up descendants.
// @Tags accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   asOfDate query string false "Effective-date cutoff (YYYY-MM-DD)"
// @Param   periodID query string false "Restrict to one period"
// @Param   includeChildren query bool false "Roll up descendant accounts"
// @Success 200 {object} dto.BalanceResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /accounts/{id}/balance [get]
func (h *accountHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.BalanceQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	accountID := c.Param("id")
	balance, err := h.accountService.GetBalance(c.Request.Context(), accountID, params.AsOfDate, params.PeriodID, params.IncludeChildren)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	account, err := h.accountService.GetAccountByID(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{
		AccountID:   balance.AccountID,
		AccountCode: balance.AccountCode,
		NormalSide:  string(account.NormalSide),
		DebitTotal:  balance.DebitTotal,
		CreditTotal: balance.CreditTotal,
		Balance:     balance.Balance,
	})
}

// listAuditTrail godoc
// @Summary List the change log of an account
// @Tags accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 200 {array} dto.AuditRecordResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /accounts/{id}/audit [get]
func (h *accountHandler) listAuditTrail(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	records, err := h.accountService.ListAuditTrail(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAuditRecordResponses(records))
}

// listAccountLines godoc
// @Summary List the journal lines of an account
// @Description Pages the account's statement newest-first by effective date
// @Tags accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Pagination cursor"
// @Success 200 {object} dto.ListLinesResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /accounts/{id}/lines [get]
func (h *accountHandler) listAccountLines(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListLinesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.journalService.ListLinesByAccount(c.Request.Context(), c.Param("id"), params)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getTrialBalance godoc
// @Summary Trial balance report
// @Description Aggregates posted totals for every account with activity. DebitTotal always equals CreditTotal on a healthy ledger.
// @Tags reports
// @Produce  json
// @Param   asOfDate query string false "Effective-date cutoff (YYYY-MM-DD)"
// @Success 200 {object} dto.TrialBalanceResponse
// @Security BearerAuth
// @Router /reports/trial-balance [get]
func (h *accountHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var asOf *time.Time
	if raw := c.Query("asOfDate"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "asOfDate must be YYYY-MM-DD"})
			return
		}
		asOf = &parsed
	}

	resp, err := h.accountService.GetTrialBalance(c.Request.Context(), asOf)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
