package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rentora/rentora-api/internal/repository"
	"github.com/rentora/rentora-api/internal/services"
)

type LeaseHandler struct {
	leaseService     *services.LeaseService
	ledgerService    *services.LedgerService
	reconcileService *services.ReconcileService
}

func NewLeaseHandler(leaseService *services.LeaseService, ledgerService *services.LedgerService, reconcileService *services.ReconcileService) *LeaseHandler {
	return &LeaseHandler{
		leaseService:     leaseService,
		ledgerService:    ledgerService,
		reconcileService: reconcileService,
	}
}

// Index returns a paginated list of leases
func (h *LeaseHandler) Index(c *gin.Context) {
	query := &repository.LeaseQuery{ListQuery: repository.NewListQuery()}
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))
	query.Search = c.Query("search_term")
	query.Status = c.Query("status")
	if tenantID, err := strconv.ParseUint(c.Query("tenant_id"), 10, 32); err == nil {
		query.TenantID = uint(tenantID)
	}
	if shopID, err := strconv.ParseUint(c.Query("shop_id"), 10, 32); err == nil {
		query.ShopID = uint(shopID)
	}
	if startDate := c.Query("start_date"); startDate != "" {
		query.Filters["start_date"] = startDate
	}

	leases, total, err := h.leaseService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	now := time.Now()
	var responses []interface{}
	for i := range leases {
		responses = append(responses, leases[i].ToResponse(now, h.leaseService.WarningDays()))
	}

	c.JSON(http.StatusOK, gin.H{
		"leases": responses,
		"pagination": gin.H{
			"page":        query.Page,
			"per_page":    query.PerPage,
			"total":       total,
			"total_pages": (total + int64(query.PerPage) - 1) / int64(query.PerPage),
		},
	})
}

// Show returns a lease with its invoices, payments and deposit
func (h *LeaseHandler) Show(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("lease_id"), 10, 32)
	lease, err := h.leaseService.FindByIDWithDetails(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"lease": lease.ToResponse(time.Now(), h.leaseService.WarningDays())})
}

type CreateLeaseRequest struct {
	ShopID         uint    `json:"shop_id" binding:"required"`
	TenantID       uint    `json:"tenant_id" binding:"required"`
	MonthlyRent    float64 `json:"monthly_rent" binding:"required,gt=0"`
	OpeningBalance float64 `json:"opening_balance"`
	StartDate      string  `json:"start_date" binding:"required"`
	EndDate        *string `json:"end_date"`
	DepositAmount  float64 `json:"deposit_amount"`
}

// Create opens a lease and backfills its invoices
func (h *LeaseHandler) Create(c *gin.Context) {
	var req CreateLeaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be YYYY-MM-DD"})
		return
	}

	var endDate *time.Time
	if req.EndDate != nil && *req.EndDate != "" {
		parsed, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be YYYY-MM-DD"})
			return
		}
		if !parsed.After(startDate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be after start_date"})
			return
		}
		endDate = &parsed
	}

	lease, err := h.leaseService.Create(c.Request.Context(), services.CreateLeaseInput{
		ShopID:         req.ShopID,
		TenantID:       req.TenantID,
		MonthlyRent:    req.MonthlyRent,
		OpeningBalance: req.OpeningBalance,
		StartDate:      startDate,
		EndDate:        endDate,
		DepositAmount:  req.DepositAmount,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Lease created",
		"lease":   lease.ToResponse(time.Now(), h.leaseService.WarningDays()),
	})
}

type AdjustRentRequest struct {
	EffectiveDate string  `json:"effective_date" binding:"required"`
	NewRent       float64 `json:"new_rent" binding:"required,gt=0"`
	Note          *string `json:"note"`
}

// AdjustRent records a rent change and regenerates the lease's invoices
func (h *LeaseHandler) AdjustRent(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("lease_id"), 10, 32)

	var req AdjustRentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	effectiveDate, err := time.Parse("2006-01-02", req.EffectiveDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "effective_date must be YYYY-MM-DD"})
		return
	}

	if err := h.leaseService.AdjustRent(c.Request.Context(), uint(id), effectiveDate, req.NewRent, req.Note); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Rent adjusted"})
}

// Ledger returns the running-balance ledger and summary for a lease
func (h *LeaseHandler) Ledger(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("lease_id"), 10, 32)

	entries, summary, err := h.ledgerService.GetLedger(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ledger_entries": entries,
		"summary":        summary,
	})
}

// Reconcile forces a FIFO reallocation for the lease and returns the result
func (h *LeaseHandler) Reconcile(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("lease_id"), 10, 32)

	results, err := h.reconcileService.Reconcile(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	var allocations []gin.H
	for _, res := range results {
		allocations = append(allocations, gin.H{
			"period":            res.Obligation.Seq.String(),
			"amount":            res.Obligation.Amount,
			"paid_amount":       res.PaidAmount,
			"remaining_balance": res.RemainingBalance,
			"status":            res.Status,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Lease reconciled",
		"allocations": allocations,
	})
}
