package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/nurpe/contracts-service/internal/http/middleware"
	"github.com/nurpe/contracts-service/internal/metrics"
	"github.com/nurpe/contracts-service/internal/service"
)

type Handler struct {
	payments  *service.PaymentService
	contracts *service.ContractService
	reports   *service.ReportService
	log       zerolog.Logger
}

func NewHandler(payments *service.PaymentService, contracts *service.ContractService, reports *service.ReportService, log zerolog.Logger) *Handler {
	return &Handler{payments: payments, contracts: contracts, reports: reports, log: log}
}

func (h *Handler) Register(router *gin.Engine, profileMiddleware gin.HandlerFunc) {
	protected := router.Group("/")
	protected.Use(profileMiddleware)
	protected.GET("/contracts", h.listContracts)
	protected.GET("/contracts/:id", h.getContract)
	protected.GET("/jobs/unpaid", h.listUnpaidJobs)
	protected.POST("/jobs/:job_id/pay", h.payJob)
	protected.GET("/jobs/:job_id/receipt", h.jobReceipt)
	protected.POST("/balances/deposit/:userId", h.deposit)
	protected.GET("/balances/entries", h.listLedgerEntries)

	admin := router.Group("/admin")
	admin.GET("/best-profession", h.bestProfession)
	admin.GET("/best-clients", h.bestClients)
	admin.GET("/best-clients/export", h.exportBestClients)
}

type depositRequest struct {
	Amount *decimal.Decimal `json:"amount" binding:"required"`
}

func (h *Handler) payJob(c *gin.Context) {
	profile, ok := middleware.MustProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing profile"})
		return
	}

	jobID, err := parseID(c.Param("job_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job_id"})
		return
	}

	receipt, err := h.payments.PayJob(c.Request.Context(), jobID, profile)
	if err != nil {
		metrics.RecordPayment(outcome(err), decimal.Zero)
		h.handleError(c, err)
		return
	}
	metrics.RecordPayment("success", receipt.Amount)

	c.JSON(http.StatusOK, gin.H{
		"message":       "Payment successful",
		"jobId":         receipt.JobID,
		"amount":        receipt.Amount,
		"clientBalance": receipt.ClientBalance,
		"paidAt":        receipt.PaidAt,
	})
}

func (h *Handler) deposit(c *gin.Context) {
	profile, ok := middleware.MustProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing profile"})
		return
	}

	userID, err := parseID(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid userId"})
		return
	}

	var req depositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount is required"})
		return
	}

	receipt, err := h.payments.Deposit(c.Request.Context(), userID, *req.Amount, profile)
	if err != nil {
		metrics.RecordDeposit(outcome(err))
		h.handleError(c, err)
		return
	}
	metrics.RecordDeposit("success")

	c.JSON(http.StatusOK, gin.H{
		"message": "Deposit successful",
		"balance": receipt.Balance,
	})
}

func (h *Handler) listLedgerEntries(c *gin.Context) {
	profile, ok := middleware.MustProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing profile"})
		return
	}

	limit, err := parseLimit(c.Query("limit"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return
	}

	entries, err := h.contracts.ListLedgerEntries(c.Request.Context(), profile, limit)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *Handler) getContract(c *gin.Context) {
	profile, ok := middleware.MustProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing profile"})
		return
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	contract, err := h.contracts.GetContract(c.Request.Context(), id, profile)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, contract)
}

func (h *Handler) listContracts(c *gin.Context) {
	profile, ok := middleware.MustProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing profile"})
		return
	}

	contracts, err := h.contracts.ListContracts(c.Request.Context(), profile)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, contracts)
}

func (h *Handler) listUnpaidJobs(c *gin.Context) {
	profile, ok := middleware.MustProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing profile"})
		return
	}

	jobs, err := h.contracts.ListUnpaidJobs(c.Request.Context(), profile)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (h *Handler) jobReceipt(c *gin.Context) {
	profile, ok := middleware.MustProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing profile"})
		return
	}

	jobID, err := parseID(c.Param("job_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job_id"})
		return
	}

	result, err := h.contracts.JobReceipt(c.Request.Context(), jobID, profile)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, "application/pdf", result.Content)
}

func (h *Handler) bestProfession(c *gin.Context) {
	input, err := parseReportInput(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	best, err := h.reports.BestProfession(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, best)
}

func (h *Handler) bestClients(c *gin.Context) {
	input, err := parseReportInput(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.reports.BestClients(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, report.Clients)
}

func (h *Handler) exportBestClients(c *gin.Context) {
	input, err := parseReportInput(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.reports.ExportBestClients(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	const xlsx = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, xlsx, result.Content)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrJobNotFound), errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAlreadyPaid), errors.Is(err, service.ErrJobNotPaid):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInsufficientBalance),
		errors.Is(err, service.ErrContractNotActive),
		errors.Is(err, service.ErrDepositLimitExceeded),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrTransientStore):
		h.log.Warn().Err(err).Msg("transaction conflict persisted after retry")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "temporarily unavailable, retry later"})
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// outcome labels an engine error for metrics.
func outcome(err error) string {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, service.ErrJobNotFound):
		return "job_not_found"
	case errors.Is(err, service.ErrAlreadyPaid):
		return "already_paid"
	case errors.Is(err, service.ErrContractNotActive):
		return "contract_not_active"
	case errors.Is(err, service.ErrInsufficientBalance):
		return "insufficient_balance"
	case errors.Is(err, service.ErrDepositLimitExceeded):
		return "limit_exceeded"
	case errors.Is(err, service.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, service.ErrTransientStore):
		return "conflict"
	default:
		return "error"
	}
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil || id == 0 {
		return 0, service.ErrInvalidInput
	}
	return uint(id), nil
}

func parseLimit(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0, service.ErrInvalidInput
	}
	return limit, nil
}

func parseReportInput(c *gin.Context) (service.ReportInput, error) {
	start, _, err := parseDate(c.Query("start"))
	if err != nil {
		return service.ReportInput{}, errors.New("invalid start")
	}
	end, dateOnly, err := parseDate(c.Query("end"))
	if err != nil {
		return service.ReportInput{}, errors.New("invalid end")
	}
	if dateOnly {
		end = end.Add(24 * time.Hour)
	}
	limit, err := parseLimit(c.Query("limit"))
	if err != nil {
		return service.ReportInput{}, errors.New("invalid limit")
	}
	return service.ReportInput{PeriodStart: start, PeriodEnd: end, Limit: limit}, nil
}

// parseDate reports whether raw carried a date without a time, in which
// case the caller treats it as the whole day.
func parseDate(raw string) (time.Time, bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false, service.ErrInvalidInput
	}
	if parsed, err := time.Parse("2006-01-02", raw); err == nil {
		return parsed.UTC(), true, nil
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.UTC(), false, nil
		}
	}
	return time.Time{}, false, service.ErrInvalidInput
}
